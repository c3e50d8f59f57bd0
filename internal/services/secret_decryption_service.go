package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"redeem-base/internal/models"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// pbkdf2Iterations matches the card creation tooling. The high count is
	// a brute-force deterrent: card secrets have limited entropy.
	pbkdf2Iterations = 310000

	derivedKeyLength = 32
	gcmTagLength     = 16
)

// SecretDecryptionService validates a user-supplied card secret by attempting
// authenticated decryption of the card's encrypted private key.
type SecretDecryptionService struct{}

// NewSecretDecryptionService creates the decryption engine
func NewSecretDecryptionService() *SecretDecryptionService {
	return &SecretDecryptionService{}
}

// NormalizeCardSecret strips hyphen separators and uppercases the secret.
// Secrets are issued from an uppercase alphabet and entry widgets
// force-uppercase, so derivation accepts any casing of a valid secret.
func NormalizeCardSecret(secret string) string {
	return strings.ToUpper(strings.ReplaceAll(secret, "-", ""))
}

// Decrypt derives an AES-256 key from the secret and the envelope salt
// (PBKDF2-SHA256) and attempts AES-256-GCM decryption of the envelope
// ciphertext. On success it returns the card's private key material as a
// UTF-8 string.
//
// Every failure mode — malformed envelope JSON, bad hex or base64, short
// ciphertext, authentication tag mismatch — collapses into the single
// models.ErrInvalidCardSecret. Callers and logs must never learn which step
// failed.
func (s *SecretDecryptionService) Decrypt(rawEnvelope, secret string) (string, error) {
	env, err := models.ParseEnvelope(rawEnvelope)
	if err != nil {
		return "", models.ErrInvalidCardSecret
	}

	salt, err := hex.DecodeString(env.Salt)
	if err != nil || len(salt) == 0 {
		return "", models.ErrInvalidCardSecret
	}

	iv, err := hex.DecodeString(env.IV)
	if err != nil || len(iv) == 0 {
		return "", models.ErrInvalidCardSecret
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil || len(ciphertext) < gcmTagLength {
		return "", models.ErrInvalidCardSecret
	}

	key := pbkdf2.Key([]byte(NormalizeCardSecret(secret)), salt, pbkdf2Iterations, derivedKeyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", models.ErrInvalidCardSecret
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return "", models.ErrInvalidCardSecret
	}

	// Go's GCM expects the tag appended to the ciphertext, which is exactly
	// the envelope layout: encrypted content followed by the 16-byte tag.
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", models.ErrInvalidCardSecret
	}

	return string(plaintext), nil
}
