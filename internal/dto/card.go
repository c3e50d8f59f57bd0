// Package dto defines the request and response shapes of the API surface
package dto

// CardInfoRequest is the body of POST /api/card-info
type CardInfoRequest struct {
	CardID string `json:"cardId"`
}

// VerifySecretRequest is the body of POST /api/verify-secret.
// The secret is never stored, logged or echoed back.
type VerifySecretRequest struct {
	CardID     string `json:"cardId"`
	CardSecret string `json:"cardSecret"`
}

// VerifySecretResponse confirms a valid secret
type VerifySecretResponse struct {
	Valid bool `json:"valid"`
}

// RedeemRequest is the body of POST /api/redeem
type RedeemRequest struct {
	CardID           string `json:"cardId"`
	CardSecret       string `json:"cardSecret"`
	RecipientAddress string `json:"recipientAddress"`
}

// RedeemResponse reports a confirmed redemption
type RedeemResponse struct {
	Success          bool   `json:"success"`
	TxHash           string `json:"txHash"`
	RecipientAddress string `json:"recipientAddress"`
	PartnerAddress   string `json:"partnerAddress"`
	Amount           string `json:"amount"`
	ExplorerURL      string `json:"explorerUrl"`
}

// ErrorResponse carries a short human-readable message. Internal detail
// (stack traces, raw RPC errors) stays in the server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}
