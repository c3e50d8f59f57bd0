package services

import (
	"fmt"
	"strings"

	"redeem-base/internal/models"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// RedemptionAuthorizer produces the one-time signature that proves possession
// of a card's secret. It reconstructs the card's signing key from decrypted
// key material and signs the canonical redemption message; no network calls.
type RedemptionAuthorizer struct{}

// NewRedemptionAuthorizer creates the authorizer
func NewRedemptionAuthorizer() *RedemptionAuthorizer {
	return &RedemptionAuthorizer{}
}

// RedemptionMessageHash computes the keccak256 hash of the canonical
// redemption message binding the operation type, card id and recipient.
// Field order and separators are fixed by the on-chain verifier; changing
// them breaks signature recovery in the contract.
func RedemptionMessageHash(cardID string, recipient common.Address) []byte {
	return crypto.Keccak256(
		[]byte("Redeem card:"),
		[]byte(cardID),
		[]byte("to:"),
		[]byte(recipient.Hex()),
	)
}

// Authorize signs the redemption message with the card's one-time private
// key using the personal-message convention (EIP-191 prefix over the message
// hash), so the signature is recoverable both off-chain and by the contract.
// The returned signature has V normalized to 27/28.
//
// The only failure mode is malformed key material, which can happen solely
// when decryption produced corrupt bytes, so it surfaces as an invalid-secret
// error.
func (a *RedemptionAuthorizer) Authorize(privateKeyHex, cardID, recipientAddress string) ([]byte, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	privateKey, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt key material", models.ErrInvalidCardSecret)
	}

	recipient := common.HexToAddress(recipientAddress)
	messageHash := RedemptionMessageHash(cardID, recipient)
	prefixedHash := accounts.TextHash(messageHash)

	signature, err := crypto.Sign(prefixedHash, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign redemption message: %w", err)
	}

	// Contract-side ecrecover expects V in {27, 28}
	signature[64] += 27

	return signature, nil
}

// CardAddress derives the card's public address from its private key.
// Useful for diagnostics; never logged together with key material.
func (a *RedemptionAuthorizer) CardAddress(privateKeyHex string) (common.Address, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	privateKey, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: corrupt key material", models.ErrInvalidCardSecret)
	}
	return crypto.PubkeyToAddress(privateKey.PublicKey), nil
}
