package models

import (
	"encoding/json"
	"strings"
)

// NativeTokenAddress is the sentinel token address that marks a card funded
// with the chain's native asset instead of an ERC20 token.
const NativeTokenAddress = "0x0000000000000000000000000000000000000000"

// EncryptedEnvelope is the encrypted private key blob stored on a card.
// Salt and IV are hex encoded. Ciphertext is base64 encoded and carries the
// GCM authentication tag in its trailing 16 bytes. The envelope is generated
// at card creation time and is immutable.
type EncryptedEnvelope struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
}

// ParseEnvelope decodes the encryptedPrivateKey field returned by the card
// registry API into a structured envelope.
func ParseEnvelope(raw string) (*EncryptedEnvelope, error) {
	var env EncryptedEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Card is the card record returned by the registry API. The service never
// mutates it; the on-chain contract is authoritative for the active flag.
type Card struct {
	CardID              string `json:"cardId"`
	SlotID              string `json:"slotId"`
	ChainID             int64  `json:"chainId"`
	Active              bool   `json:"active"`
	Status              string `json:"status"`
	TokenAddress        string `json:"tokenAddress"`
	TokenAmount         string `json:"tokenAmount"`
	Creator             string `json:"creator"`
	Message             string `json:"message"`
	EncryptedPrivateKey string `json:"encryptedPrivateKey"`
	CreatedAt           string `json:"createdAt"`
}

// IsNativeToken reports whether the card holds the chain's native asset.
func (c *Card) IsNativeToken() bool {
	return c.TokenAddress == "" || strings.EqualFold(c.TokenAddress, NativeTokenAddress)
}

// CardView is a Card enriched with display fields for the API surface.
type CardView struct {
	Card
	ChainName       string `json:"chainName"`
	FormattedAmount string `json:"formattedAmount"`
}

// TxResult describes a confirmed redemption transaction.
type TxResult struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
	ExplorerURL string `json:"explorerUrl"`
}
