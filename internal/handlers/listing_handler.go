package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "campfire/internal/errors"
	"campfire/internal/models"
	"campfire/internal/pagination"
	"campfire/internal/services"
)

// ListingHandler serves the listing collection and the lifecycle actions.
type ListingHandler struct {
	listingService services.ListingServicer
	queryService   services.ListingQueryServicer
	auditService   services.AuditServicer
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(
	listingService services.ListingServicer,
	queryService services.ListingQueryServicer,
	auditService services.AuditServicer,
) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		queryService:   queryService,
		auditService:   auditService,
	}
}

// ListingQuery represents the query parameters for listing collection reads.
type ListingQuery struct {
	Seller string `form:"seller" binding:"omitempty,wallet"`
	Buyer  string `form:"buyer" binding:"omitempty,wallet"`
	Wallet string `form:"wallet" binding:"omitempty,wallet"`
	Status string `form:"status" binding:"omitempty,listing_status"`
	Limit  string `form:"limit"`
}

// ListingActionRequest is the single request shape for every lifecycle
// action. Which fields are required depends on Action.
type ListingActionRequest struct {
	Action         string           `json:"action" binding:"omitempty,listing_action"`
	ListingID      string           `json:"listing_id"`
	HoldingID      string           `json:"holding_id"`
	Price          *decimal.Decimal `json:"price" swaggertype:"string" example:"2.5"`
	SellerWallet   string           `json:"seller_wallet" binding:"omitempty,wallet"`
	BuyerWallet    string           `json:"buyer_wallet" binding:"omitempty,wallet"`
	Wallet         string           `json:"wallet" binding:"omitempty,wallet"`
	PaymentTxHash  string           `json:"payment_tx_hash" binding:"max=256"`
	TransferTxHash string           `json:"transfer_tx_hash" binding:"max=256"`
}

// ListingActionResponse is returned by every successful lifecycle action.
type ListingActionResponse struct {
	Success        bool            `json:"success"`
	Listing        *models.Listing `json:"listing"`
	AwardAnnotated *bool           `json:"award_annotated,omitempty"`
}

// GetListings returns listings matching the query, newest first
// @Summary     List listings
// @Description Without filters only active listings are returned. wallet matches seller or buyer.
// @Tags        listings
// @Produce     json
// @Param       seller query string false "Seller wallet"
// @Param       buyer  query string false "Buyer wallet"
// @Param       wallet query string false "Seller or buyer wallet"
// @Param       status query string false "Listing status" Enums(active, payment_pending, awaiting_transfer, completed, cancelled)
// @Param       limit  query int    false "Page size (1-100, default 50)"
// @Success     200 {array}  models.Listing
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /listings [get]
func (h *ListingHandler) GetListings(c *gin.Context) {
	var q ListingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	filter := services.ListingFilter{
		Seller:      q.Seller,
		Buyer:       q.Buyer,
		Participant: q.Wallet,
		Limit:       pagination.ParseLimit(q.Limit),
	}
	if q.Status != "" {
		status := models.ListingStatus(q.Status)
		filter.Status = &status
	}

	listings, err := h.queryService.GetListings(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.NonNil(listings))
}

// GetListingByID returns a single listing
// @Summary     Get a listing
// @Tags        listings
// @Produce     json
// @Param       id path string true "Listing ID"
// @Success     200 {object} object "Listing with holding, award, catalog item and organization"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /listings/{id} [get]
func (h *ListingHandler) GetListingByID(c *gin.Context) {
	listing, err := h.queryService.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// ListingAction applies a lifecycle action to a listing
// @Summary     Create or transition a listing
// @Description Actions: create, cancel, purchase, release, payment-submitted, complete.
// @Tags        listings
// @Accept      json
// @Produce     json
// @Security    WalletAuth
// @Param       request body ListingActionRequest true "Action and its fields"
// @Success     200 {object} ListingActionResponse "Listing transitioned"
// @Success     201 {object} ListingActionResponse "Listing created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Conflict"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /listings [post]
func (h *ListingHandler) ListingAction(c *gin.Context) {
	var req ListingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	if req.Action == "" {
		respondWithError(c, apperrors.ErrMissingAction)
		return
	}
	if req.Action != services.ActionCreate && strings.TrimSpace(req.ListingID) == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "listing_id is required"))
		return
	}

	ctx := c.Request.Context()
	resp := ListingActionResponse{Success: true}
	status := http.StatusOK
	var actor string
	var err error

	switch req.Action {
	case services.ActionCreate:
		if strings.TrimSpace(req.HoldingID) == "" {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "holding_id is required"))
			return
		}
		if req.Price == nil {
			respondWithError(c, apperrors.ErrInvalidPrice)
			return
		}
		if _, ok := models.RoundPrice(*req.Price); !ok {
			respondWithError(c, apperrors.ErrInvalidPrice)
			return
		}
		if actor, err = actingWallet(c, "seller_wallet", req.SellerWallet); err == nil {
			resp.Listing, err = h.listingService.CreateListing(ctx, req.HoldingID, *req.Price, actor)
			status = http.StatusCreated
		}
	case services.ActionCancel:
		if actor, err = actingWallet(c, "seller_wallet", req.SellerWallet); err == nil {
			resp.Listing, err = h.listingService.CancelListing(ctx, req.ListingID, actor)
		}
	case services.ActionPurchase:
		if actor, err = actingWallet(c, "buyer_wallet", req.BuyerWallet); err == nil {
			resp.Listing, err = h.listingService.PurchaseListing(ctx, req.ListingID, actor)
		}
	case services.ActionRelease:
		if actor, err = actingWallet(c, "wallet", req.Wallet); err == nil {
			resp.Listing, err = h.listingService.ReleaseListing(ctx, req.ListingID, actor)
		}
	case services.ActionPaymentSubmitted:
		if actor, err = actingWallet(c, "buyer_wallet", req.BuyerWallet); err == nil {
			resp.Listing, err = h.listingService.MarkPaymentSubmitted(ctx, req.ListingID, actor, req.PaymentTxHash)
		}
	case services.ActionComplete:
		if actor, err = actingWallet(c, "seller_wallet", req.SellerWallet); err == nil {
			var result *services.CompletionResult
			if result, err = h.listingService.CompleteListing(ctx, req.ListingID, actor, req.TransferTxHash); err == nil {
				resp.Listing = result.Listing
				resp.AwardAnnotated = &result.AwardAnnotated
			}
		}
	default:
		err = apperrors.ErrUnknownAction
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, auditAction(req.Action), "listing", resp.Listing.ID, c.ClientIP(),
		auditChanges(req, resp.Listing))

	c.JSON(status, resp)
}

// auditAction maps "payment-submitted" to "LISTING_PAYMENT_SUBMITTED".
func auditAction(action string) string {
	return "LISTING_" + strings.ToUpper(strings.ReplaceAll(action, "-", "_"))
}

func auditChanges(req ListingActionRequest, listing *models.Listing) map[string]interface{} {
	changes := map[string]interface{}{"status": listing.Status}
	switch req.Action {
	case services.ActionCreate:
		changes["holding_id"] = listing.HoldingID
		changes["price"] = listing.Price.StringFixed(models.PriceScale)
	case services.ActionPurchase:
		changes["buyer_wallet"] = listing.BuyerWallet
	case services.ActionPaymentSubmitted:
		changes["payment_tx_hash"] = listing.PaymentTxHash
	case services.ActionComplete:
		changes["transfer_tx_hash"] = listing.TransferTxHash
		changes["buyer_wallet"] = listing.BuyerWallet
	}
	return changes
}
