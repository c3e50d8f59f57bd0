package services

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"redeem-base/internal/models"
	"redeem-base/internal/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// erc20MetadataABI covers the two read-only calls needed to format amounts
const erc20MetadataABI = `[
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

const (
	fallbackTokenSymbol   = "TOKEN"
	fallbackTokenDecimals = uint8(18)

	tokenMetadataTimeout = 10 * time.Second
)

// CardFetcher is the card registry dependency of the lookup service
type CardFetcher interface {
	FetchCard(ctx context.Context, cardID string) (*models.Card, error)
}

// CardLookupService fetches card records and enriches them with
// human-readable amount formatting resolved from on-chain token metadata.
type CardLookupService struct {
	fetcher  CardFetcher
	pool     *ChainClientPool
	erc20ABI abi.ABI
	logger   *logrus.Logger
}

// NewCardLookupService creates the lookup service
func NewCardLookupService(fetcher CardFetcher, pool *ChainClientPool, logger *logrus.Logger) (*CardLookupService, error) {
	parsedABI, err := abi.JSON(strings.NewReader(erc20MetadataABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 metadata ABI: %w", err)
	}
	return &CardLookupService{
		fetcher:  fetcher,
		pool:     pool,
		erc20ABI: parsedABI,
		logger:   logger,
	}, nil
}

// Lookup fetches a card and builds its display view. The card's chain must
// be a member of the chain registry; everything else about the record is
// passed through from the registry API unmodified.
func (s *CardLookupService) Lookup(ctx context.Context, cardID string) (*models.CardView, error) {
	card, err := s.fetcher.FetchCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	chainInfo, ok := utils.GlobalChainRegistry.GetByID(card.ChainID)
	if !ok {
		return nil, fmt.Errorf("%w: chain %d", models.ErrUnsupportedChain, card.ChainID)
	}

	symbol, decimals := s.resolveTokenMetadata(ctx, card, chainInfo)

	formatted := ""
	if amount, ok := new(big.Int).SetString(card.TokenAmount, 10); ok {
		formatted = fmt.Sprintf("%s %s", utils.FormatTokenAmount(amount, decimals), symbol)
	}

	return &models.CardView{
		Card:            *card,
		ChainName:       chainInfo.Name,
		FormattedAmount: formatted,
	}, nil
}

// resolveTokenMetadata resolves the symbol and decimals used for display.
// Native-asset cards short-circuit to the chain's native metadata. ERC20
// metadata is read from the token contract; a metadata failure falls back to
// generic values and never fails the lookup.
func (s *CardLookupService) resolveTokenMetadata(ctx context.Context, card *models.Card, chainInfo *utils.ChainInfo) (string, uint8) {
	if card.IsNativeToken() {
		return chainInfo.Symbol, chainInfo.Decimals
	}

	symbol, decimals, err := s.readERC20Metadata(ctx, card.ChainID, common.HexToAddress(card.TokenAddress))
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"chain_id": card.ChainID,
			"token":    card.TokenAddress,
			"error":    err.Error(),
		}).Warn("token metadata query failed, using fallback")
		return fallbackTokenSymbol, fallbackTokenDecimals
	}
	return symbol, decimals
}

// readERC20Metadata reads symbol() and decimals() from a token contract
func (s *CardLookupService) readERC20Metadata(ctx context.Context, chainID int64, token common.Address) (string, uint8, error) {
	client, err := s.pool.Get(chainID)
	if err != nil {
		return "", 0, err
	}

	callCtx, cancel := context.WithTimeout(ctx, tokenMetadataTimeout)
	defer cancel()

	symbolData, err := s.erc20ABI.Pack("symbol")
	if err != nil {
		return "", 0, err
	}
	symbolOut, err := client.CallContract(callCtx, ethereum.CallMsg{To: &token, Data: symbolData}, nil)
	if err != nil {
		return "", 0, fmt.Errorf("symbol call failed: %w", err)
	}
	var symbol string
	if err := s.erc20ABI.UnpackIntoInterface(&symbol, "symbol", symbolOut); err != nil {
		return "", 0, fmt.Errorf("failed to decode symbol: %w", err)
	}

	decimalsData, err := s.erc20ABI.Pack("decimals")
	if err != nil {
		return "", 0, err
	}
	decimalsOut, err := client.CallContract(callCtx, ethereum.CallMsg{To: &token, Data: decimalsData}, nil)
	if err != nil {
		return "", 0, fmt.Errorf("decimals call failed: %w", err)
	}
	var decimals uint8
	if err := s.erc20ABI.UnpackIntoInterface(&decimals, "decimals", decimalsOut); err != nil {
		return "", 0, fmt.Errorf("failed to decode decimals: %w", err)
	}

	return symbol, decimals, nil
}
