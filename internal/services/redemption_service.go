package services

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"redeem-base/internal/config"
	"redeem-base/internal/models"
	"redeem-base/internal/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
)

// redeemABI is the redemption entry point of the card registry contract.
// The partner parameter is the fee recipient; this deployment always passes
// the zero address (no fee is charged at the call site).
const redeemABI = `[
	{
		"inputs": [
			{"name": "cardId", "type": "uint256"},
			{"name": "to", "type": "address"},
			{"name": "signature", "type": "bytes"},
			{"name": "partner", "type": "address"}
		],
		"name": "redeemCard",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

const (
	// gasMarginNumerator / gasMarginDenominator add a 20% safety margin on
	// top of the RPC gas estimate to tolerate estimation drift
	gasMarginNumerator   = 120
	gasMarginDenominator = 100

	gasPriceRetryDelay = 500 * time.Millisecond
)

// RedemptionService submits redemption transactions with the operator's
// funded wallet. It is the only component that mutates external state and it
// performs exactly one transaction submission per successful call.
type RedemptionService struct {
	pool            *ChainClientPool
	operatorKey     *ecdsa.PrivateKey
	operatorAddress common.Address
	contractAddress common.Address
	contractABI     abi.ABI
	confirmTimeout  time.Duration
	logger          *logrus.Logger
}

// NewRedemptionService parses the operator key and contract ABI once at
// startup. The operator key is read-only shared state for the process.
func NewRedemptionService(cfg *config.Config, pool *ChainClientPool, logger *logrus.Logger) (*RedemptionService, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(cfg.Blockchain.OperatorPrivateKey), "0x")
	operatorKey, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid operator private key: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(redeemABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse redeem ABI: %w", err)
	}

	return &RedemptionService{
		pool:            pool,
		operatorKey:     operatorKey,
		operatorAddress: crypto.PubkeyToAddress(operatorKey.PublicKey),
		contractAddress: common.HexToAddress(cfg.Blockchain.ContractAddress),
		contractABI:     parsedABI,
		confirmTimeout:  time.Duration(cfg.Blockchain.ConfirmTimeout) * time.Second,
		logger:          logger,
	}, nil
}

// OperatorAddress returns the gas-paying wallet address
func (r *RedemptionService) OperatorAddress() common.Address {
	return r.operatorAddress
}

// Execute submits the redemption carrying the card's authorization signature
// and waits for one confirmation.
//
// Stages: PRE-CHECK -> GAS-ESTIMATE -> GAS-PRICE -> SUBMIT -> CONFIRMED.
// The pre-check is an optimization only: two concurrent attempts on the same
// card can both pass it, and the contract rejecting a second redemption of an
// inactive card is the real safety mechanism. A submitted transaction is
// never retried; the whole flow is safe to re-run from scratch because the
// card signature is single-use on-chain.
func (r *RedemptionService) Execute(ctx context.Context, card *models.Card, recipientAddress string, signature []byte) (*models.TxResult, error) {
	// PRE-CHECK: the caller must have fetched fresh card data
	if !card.Active {
		return nil, models.ErrCardAlreadyRedeemed
	}

	chainInfo, ok := utils.GlobalChainRegistry.GetByID(card.ChainID)
	if !ok {
		return nil, fmt.Errorf("%w: chain %d", models.ErrUnsupportedChain, card.ChainID)
	}

	cardID, ok := new(big.Int).SetString(card.CardID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid card id: %s", card.CardID)
	}

	client, err := r.pool.Get(card.ChainID)
	if err != nil {
		return nil, err
	}

	recipient := common.HexToAddress(recipientAddress)

	// No partner fee is charged: the fee recipient is fixed to the zero
	// address at this call site
	callData, err := r.contractABI.Pack("redeemCard", cardID, recipient, signature, common.Address{})
	if err != nil {
		return nil, fmt.Errorf("failed to build redeem call data: %w", err)
	}

	log := r.logger.WithFields(logrus.Fields{
		"card_id":   card.CardID,
		"chain_id":  card.ChainID,
		"recipient": recipient.Hex(),
	})

	// GAS-ESTIMATE
	estimated, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: r.operatorAddress,
		To:   &r.contractAddress,
		Data: callData,
	})
	if err != nil {
		return nil, fmt.Errorf("gas estimation failed: %w", err)
	}
	gasLimit := estimated * gasMarginNumerator / gasMarginDenominator

	// GAS-PRICE: one bounded retry, the RPC occasionally hiccups on this call
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		time.Sleep(gasPriceRetryDelay)
		gasPrice, err = client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get gas price: %w", err)
		}
	}

	nonce, err := client.PendingNonceAt(ctx, r.operatorAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator nonce: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &r.contractAddress,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     callData,
	})

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(chainInfo.ChainID)), r.operatorKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	log.WithFields(logrus.Fields{
		"tx_hash":   signedTx.Hash().Hex(),
		"gas_limit": gasLimit,
		"gas_price": gasPrice.String(),
		"nonce":     nonce,
	}).Info("submitting redemption transaction")

	// SUBMIT: exactly once
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	// CONFIRMED: wait for one confirmation with a bounded deadline
	waitCtx, cancel := context.WithTimeout(ctx, r.confirmTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, client, signedTx)
	if err != nil {
		return nil, fmt.Errorf("transaction confirmation failed for %s: %w", signedTx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", signedTx.Hash().Hex())
	}

	log.WithFields(logrus.Fields{
		"tx_hash":      signedTx.Hash().Hex(),
		"block_number": receipt.BlockNumber.Uint64(),
		"gas_used":     receipt.GasUsed,
	}).Info("redemption confirmed")

	return &models.TxResult{
		TxHash:      signedTx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		ExplorerURL: utils.GlobalChainRegistry.TxURL(card.ChainID, signedTx.Hash().Hex()),
	}, nil
}
