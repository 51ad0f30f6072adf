package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"campfire/internal/models"
)

// ListingFilter holds optional filter parameters for listing collection queries.
// Wallet values are normalized by the query service.
type ListingFilter struct {
	Seller      string
	Buyer       string
	Participant string // matches seller OR buyer
	Status      *models.ListingStatus
	Limit       int
}

// IsEmpty reports whether no filter field was supplied.
func (f ListingFilter) IsEmpty() bool {
	return f.Seller == "" && f.Buyer == "" && f.Participant == "" && f.Status == nil
}

// ListingQueryServicer is the read-side projection over listings.
type ListingQueryServicer interface {
	GetListingByID(ctx context.Context, listingID string) (*models.Listing, error)
	GetListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
}

// CompletionResult separates the authoritative sale from the best-effort
// award annotation that follows it. A non-nil AnnotationErr never means the
// sale failed.
type CompletionResult struct {
	Listing        *models.Listing
	AwardAnnotated bool
	AnnotationErr  error
}

// ListingServicer is the listing lifecycle controller. It is the only writer
// of listing rows and of holding ownership.
type ListingServicer interface {
	CreateListing(ctx context.Context, holdingID string, price decimal.Decimal, sellerWallet string) (*models.Listing, error)
	CancelListing(ctx context.Context, listingID, sellerWallet string) (*models.Listing, error)
	PurchaseListing(ctx context.Context, listingID, buyerWallet string) (*models.Listing, error)
	ReleaseListing(ctx context.Context, listingID, wallet string) (*models.Listing, error)
	MarkPaymentSubmitted(ctx context.Context, listingID, buyerWallet, paymentTxHash string) (*models.Listing, error)
	CompleteListing(ctx context.Context, listingID, sellerWallet, transferTxHash string) (*CompletionResult, error)
}

// HoldingServicer exposes read access to the holding store.
type HoldingServicer interface {
	GetHoldingByID(ctx context.Context, holdingID string) (*models.Holding, error)
	GetWalletHoldings(ctx context.Context, wallet string, limit int) ([]models.Holding, error)
}

// AwardAnnotator records a completed resale on the originating award.
type AwardAnnotator interface {
	MarkSold(ctx context.Context, awardID, buyerWallet string, soldAt time.Time) error
}

// IssueAwardInput describes an award granted by the issuance subsystem and
// the chain object it minted.
type IssueAwardInput struct {
	CatalogItemID   *string
	RecipientWallet string
	ChainObjectID   string
	AwardedAt       *time.Time
	Metadata        map[string]interface{}
}

// AwardServicer is the marketplace's view of the award subsystem.
type AwardServicer interface {
	AwardAnnotator
	IssueAward(ctx context.Context, input IssueAwardInput) (*models.Holding, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(wallet, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
