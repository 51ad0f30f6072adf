package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campfire/internal/services"
)

// AwardHandler receives awards from the issuance pipeline.
type AwardHandler struct {
	awardService services.AwardServicer
	auditService services.AuditServicer
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(awardService services.AwardServicer, auditService services.AuditServicer) *AwardHandler {
	return &AwardHandler{awardService: awardService, auditService: auditService}
}

// IssueAwardRequest represents an award minted by the issuance pipeline.
type IssueAwardRequest struct {
	CatalogItemID   *string                `json:"catalog_item_id" binding:"omitempty,uuid"`
	RecipientWallet string                 `json:"recipient_wallet" binding:"required,wallet"`
	ChainObjectID   string                 `json:"chain_object_id" binding:"required,max=256"`
	AwardedAt       *time.Time             `json:"awarded_at"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// IssueAward records an award and the holding it produced
// @Summary     Record an issued award
// @Description Called by the award issuance pipeline after minting.
// @Tags        internal
// @Accept      json
// @Produce     json
// @Security    PipelineKey
// @Param       request body IssueAwardRequest true "Issued award"
// @Success     201 {object} object "Holding created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Catalog item not found"
// @Failure     409 {object} ErrorResponse "Chain object already recorded"
// @Router      /internal/awards [post]
func (h *AwardHandler) IssueAward(c *gin.Context) {
	var req IssueAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	holding, err := h.awardService.IssueAward(c.Request.Context(), services.IssueAwardInput{
		CatalogItemID:   req.CatalogItemID,
		RecipientWallet: req.RecipientWallet,
		ChainObjectID:   req.ChainObjectID,
		AwardedAt:       req.AwardedAt,
		Metadata:        req.Metadata,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(holding.CurrentOwner, "AWARD_ISSUED", "holding", holding.ID, c.ClientIP(),
		map[string]interface{}{"chain_object_id": holding.ChainObjectID})

	c.JSON(http.StatusCreated, gin.H{"holding": holding})
}
