package services

import (
	"encoding/hex"
	"testing"

	"redeem-base/internal/models"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize_SignatureRecoversCardAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyHex := hex.EncodeToString(crypto.FromECDSA(key))

	authorizer := NewRedemptionAuthorizer()

	cardID := "12345"
	recipient := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

	signature, err := authorizer.Authorize(keyHex, cardID, recipient)
	require.NoError(t, err)
	require.Len(t, signature, 65)
	assert.Contains(t, []byte{27, 28}, signature[64])

	// Recover the signer the way the on-chain verifier does
	messageHash := RedemptionMessageHash(cardID, common.HexToAddress(recipient))
	prefixedHash := accounts.TextHash(messageHash)

	recoverSig := make([]byte, 65)
	copy(recoverSig, signature)
	recoverSig[64] -= 27

	pubKey, err := crypto.SigToPub(prefixedHash, recoverSig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(*pubKey))
}

func TestAuthorize_AcceptsHexPrefix(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyHex := "0x" + hex.EncodeToString(crypto.FromECDSA(key))

	authorizer := NewRedemptionAuthorizer()
	_, err = authorizer.Authorize(keyHex, "1", "0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	assert.NoError(t, err)
}

func TestAuthorize_CorruptKeyMaterial(t *testing.T) {
	authorizer := NewRedemptionAuthorizer()

	_, err := authorizer.Authorize("not-a-key", "1", "0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	assert.ErrorIs(t, err, models.ErrInvalidCardSecret)
}

func TestRedemptionMessageHash_BindsAllFields(t *testing.T) {
	recipientA := common.HexToAddress("0x8ba1f109551bD432803012645Ac136ddd64DBA72")
	recipientB := common.HexToAddress("0x0000000000000000000000000000000000000001")

	base := RedemptionMessageHash("12345", recipientA)

	assert.NotEqual(t, base, RedemptionMessageHash("12346", recipientA), "card id must be bound")
	assert.NotEqual(t, base, RedemptionMessageHash("12345", recipientB), "recipient must be bound")
	assert.Equal(t, base, RedemptionMessageHash("12345", recipientA), "hash must be deterministic")
}

func TestCardAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyHex := hex.EncodeToString(crypto.FromECDSA(key))

	authorizer := NewRedemptionAuthorizer()
	addr, err := authorizer.CardAddress(keyHex)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)
}
