package models

import "errors"

var (
	// ErrCardNotFound means the registry API does not know the card id.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardAlreadyRedeemed means the card is no longer active on-chain.
	ErrCardAlreadyRedeemed = errors.New("card has already been redeemed or cancelled")

	// ErrInvalidCardSecret is the single error returned for every secret
	// verification failure. Malformed envelopes, wrong keys and tag
	// mismatches are deliberately indistinguishable so the API cannot be
	// used as a decryption oracle.
	ErrInvalidCardSecret = errors.New("invalid card secret")

	// ErrUnsupportedChain means the card's chain id is not in the registry.
	ErrUnsupportedChain = errors.New("unsupported chain")
)
