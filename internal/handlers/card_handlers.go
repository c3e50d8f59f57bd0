package handlers

import (
	"errors"
	"net/http"
	"time"

	"redeem-base/internal/dto"
	"redeem-base/internal/metrics"
	"redeem-base/internal/models"
	"redeem-base/internal/services"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CardHandler serves the card lookup, secret verification and redemption
// endpoints. Each request runs the stages strictly in sequence: lookup ->
// verify -> authorize -> execute; there is no shared per-request state.
type CardHandler struct {
	lookupService     *services.CardLookupService
	decryptionService *services.SecretDecryptionService
	authorizer        *services.RedemptionAuthorizer
	redemptionService *services.RedemptionService
	partnerAddress    string
	logger            *logrus.Logger
}

// NewCardHandler creates the handler
func NewCardHandler(
	lookupService *services.CardLookupService,
	decryptionService *services.SecretDecryptionService,
	authorizer *services.RedemptionAuthorizer,
	redemptionService *services.RedemptionService,
	partnerAddress string,
	logger *logrus.Logger,
) *CardHandler {
	return &CardHandler{
		lookupService:     lookupService,
		decryptionService: decryptionService,
		authorizer:        authorizer,
		redemptionService: redemptionService,
		partnerAddress:    partnerAddress,
		logger:            logger,
	}
}

// CardInfo returns card metadata with display enrichment
// POST /api/card-info
func (h *CardHandler) CardInfo(c *gin.Context) {
	var req dto.CardInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cardId is required"})
		return
	}

	view, err := h.lookupService.Lookup(c.Request.Context(), req.CardID)
	if err != nil {
		metrics.CardLookupsTotal.WithLabelValues("error").Inc()
		h.respondLookupError(c, req.CardID, err)
		return
	}

	metrics.CardLookupsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, view)
}

// VerifySecret checks a card secret without revealing anything beyond
// valid/invalid
// POST /api/verify-secret
func (h *CardHandler) VerifySecret(c *gin.Context) {
	var req dto.VerifySecretRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardID == "" || req.CardSecret == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cardId and cardSecret are required"})
		return
	}

	view, err := h.lookupService.Lookup(c.Request.Context(), req.CardID)
	if err != nil {
		h.respondLookupError(c, req.CardID, err)
		return
	}

	if !view.Active {
		metrics.SecretVerificationsTotal.WithLabelValues("already_redeemed").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrCardAlreadyRedeemed.Error()})
		return
	}

	if _, err := h.decryptionService.Decrypt(view.EncryptedPrivateKey, req.CardSecret); err != nil {
		metrics.SecretVerificationsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrInvalidCardSecret.Error()})
		return
	}

	metrics.SecretVerificationsTotal.WithLabelValues("valid").Inc()
	c.JSON(http.StatusOK, dto.VerifySecretResponse{Valid: true})
}

// Redeem verifies the secret, signs the redemption authorization with the
// card's one-time key and submits the transaction with the operator wallet
// POST /api/redeem
func (h *CardHandler) Redeem(c *gin.Context) {
	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardID == "" || req.CardSecret == "" || req.RecipientAddress == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cardId, cardSecret and recipientAddress are required"})
		return
	}

	// Validate the recipient before any network call
	if !common.IsHexAddress(req.RecipientAddress) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid recipient address"})
		return
	}

	// Always re-fetch: the contract state is externally authoritative
	view, err := h.lookupService.Lookup(c.Request.Context(), req.CardID)
	if err != nil {
		h.respondLookupError(c, req.CardID, err)
		return
	}

	if !view.Active {
		metrics.RedemptionsTotal.WithLabelValues("already_redeemed").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrCardAlreadyRedeemed.Error()})
		return
	}

	cardKey, err := h.decryptionService.Decrypt(view.EncryptedPrivateKey, req.CardSecret)
	if err != nil {
		metrics.RedemptionsTotal.WithLabelValues("invalid_secret").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrInvalidCardSecret.Error()})
		return
	}

	signature, err := h.authorizer.Authorize(cardKey, view.CardID, req.RecipientAddress)
	if err != nil {
		metrics.RedemptionsTotal.WithLabelValues("invalid_secret").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrInvalidCardSecret.Error()})
		return
	}

	started := time.Now()
	result, err := h.redemptionService.Execute(c.Request.Context(), &view.Card, req.RecipientAddress, signature)
	if err != nil {
		if errors.Is(err, models.ErrCardAlreadyRedeemed) {
			metrics.RedemptionsTotal.WithLabelValues("already_redeemed").Inc()
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrCardAlreadyRedeemed.Error()})
			return
		}
		metrics.RedemptionsTotal.WithLabelValues("failure").Inc()
		h.logger.WithFields(logrus.Fields{
			"card_id": req.CardID,
			"error":   err.Error(),
		}).Error("redemption failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "redemption failed"})
		return
	}

	metrics.RedemptionsTotal.WithLabelValues("success").Inc()
	metrics.RedemptionDuration.Observe(time.Since(started).Seconds())

	h.logger.WithFields(logrus.Fields{
		"card_id":   req.CardID,
		"tx_hash":   result.TxHash,
		"recipient": req.RecipientAddress,
	}).Info("card redeemed")

	c.JSON(http.StatusOK, dto.RedeemResponse{
		Success:          true,
		TxHash:           result.TxHash,
		RecipientAddress: req.RecipientAddress,
		PartnerAddress:   h.partnerAddress,
		Amount:           view.FormattedAmount,
		ExplorerURL:      result.ExplorerURL,
	})
}

// respondLookupError maps lookup failures onto the HTTP surface. Upstream
// detail is logged server-side only.
func (h *CardHandler) respondLookupError(c *gin.Context, cardID string, err error) {
	switch {
	case errors.Is(err, models.ErrCardNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: models.ErrCardNotFound.Error()})
	case errors.Is(err, models.ErrUnsupportedChain):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: models.ErrUnsupportedChain.Error()})
	default:
		h.logger.WithFields(logrus.Fields{
			"card_id": cardID,
			"error":   err.Error(),
		}).Error("card lookup failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to fetch card information"})
	}
}
