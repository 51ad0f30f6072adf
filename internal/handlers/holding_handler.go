package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campfire/internal/pagination"
	"campfire/internal/services"
)

// HoldingHandler serves read-only views of the holding store.
type HoldingHandler struct {
	holdingService services.HoldingServicer
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(holdingService services.HoldingServicer) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService}
}

// GetHoldingByID returns a holding with its award, catalog item and organization
// @Summary     Get a holding
// @Tags        holdings
// @Produce     json
// @Param       id path string true "Holding ID"
// @Success     200 {object} object "Holding"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /holdings/{id} [get]
func (h *HoldingHandler) GetHoldingByID(c *gin.Context) {
	holding, err := h.holdingService.GetHoldingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holding": holding})
}

// GetWalletHoldings returns the holdings a wallet currently owns
// @Summary     List a wallet's holdings
// @Tags        holdings
// @Produce     json
// @Param       wallet path  string true  "Wallet"
// @Param       limit  query int    false "Page size (1-100, default 50)"
// @Success     200 {object} object "Holdings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /wallets/{wallet}/holdings [get]
func (h *HoldingHandler) GetWalletHoldings(c *gin.Context) {
	holdings, err := h.holdingService.GetWalletHoldings(c.Request.Context(),
		c.Param("wallet"), pagination.ParseLimit(c.Query("limit")))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}
