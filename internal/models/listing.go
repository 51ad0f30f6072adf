package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus is the state of a sale offer.
type ListingStatus string

const (
	ListingStatusActive           ListingStatus = "active"
	ListingStatusPaymentPending   ListingStatus = "payment_pending"
	ListingStatusAwaitingTransfer ListingStatus = "awaiting_transfer"
	ListingStatusCompleted        ListingStatus = "completed"
	ListingStatusCancelled        ListingStatus = "cancelled"
)

// PriceScale is the number of decimal places a listing price is stored with.
const PriceScale = 4

// MaxPriceIntegerDigits is the integer part left by numeric(20,4).
const MaxPriceIntegerDigits = 16

// OpenListingStatuses are the states that hold a claim on the holding.
// At most one listing per holding may be in one of these.
var OpenListingStatuses = []ListingStatus{
	ListingStatusActive,
	ListingStatusPaymentPending,
	ListingStatusAwaitingTransfer,
}

// OpenListingUniqueIndexSQL backstops the one-open-listing-per-holding rule.
// The same statement ships in the migrations; tests apply it to SQLite.
const OpenListingUniqueIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS uq_listings_open_holding
ON listings (holding_id)
WHERE status IN ('active', 'payment_pending', 'awaiting_transfer') AND deleted_at IS NULL`

// IsValid reports whether s is a known status.
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusActive, ListingStatusPaymentPending, ListingStatusAwaitingTransfer,
		ListingStatusCompleted, ListingStatusCancelled:
		return true
	}
	return false
}

// RoundPrice rounds p to PriceScale places. ok is false unless the result
// is positive and fits the listings price column. The magnitude is read
// from the digit count and exponent before any rescaling, so inputs like
// 1e20000000 are rejected without expanding them.
func RoundPrice(p decimal.Decimal) (rounded decimal.Decimal, ok bool) {
	if p.Sign() <= 0 {
		return decimal.Zero, false
	}
	magnitude := integerDigits(p)
	if magnitude > MaxPriceIntegerDigits || magnitude < -PriceScale {
		return decimal.Zero, false
	}

	rounded = p.Round(PriceScale)
	if !rounded.IsPositive() || integerDigits(rounded) > MaxPriceIntegerDigits {
		return decimal.Zero, false
	}
	return rounded, true
}

// integerDigits is the position of the leading digit relative to the
// decimal point: 3 for 123.4, 0 for 0.5, -2 for 0.005.
func integerDigits(d decimal.Decimal) int {
	return d.NumDigits() + int(d.Exponent())
}

// Listing is an offer to sell one holding at a fixed price.
type Listing struct {
	Base
	HoldingID           string          `gorm:"type:uuid;not null;index" json:"holding_id"`
	SellerWallet        string          `gorm:"not null;index" json:"seller_wallet"`
	BuyerWallet         *string         `gorm:"index" json:"buyer_wallet"`
	Price               decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"price"`
	Status              ListingStatus   `gorm:"not null;index;default:'active'" json:"status"`
	PaymentTxHash       *string         `json:"payment_tx_hash"`
	PaymentSubmittedAt  *time.Time      `json:"payment_submitted_at"`
	TransferTxHash      *string         `json:"transfer_tx_hash"`
	TransferCompletedAt *time.Time      `json:"transfer_completed_at"`
	CancelledAt         *time.Time      `json:"cancelled_at"`

	// Relationships
	Holding *Holding `gorm:"foreignKey:HoldingID" json:"holding,omitempty"`
}
