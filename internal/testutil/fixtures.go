package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"campfire/internal/models"
	"campfire/internal/wallet"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestOrganization creates an issuing organization with a unique slug.
func CreateTestOrganization(t *testing.T, db *gorm.DB) *models.Organization {
	t.Helper()

	n := nextID()
	org := &models.Organization{
		Name: fmt.Sprintf("Test Org %d", n),
		Slug: fmt.Sprintf("test-org-%d", n),
	}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateTestCatalogItem creates a badge definition owned by the organization.
func CreateTestCatalogItem(t *testing.T, db *gorm.DB, orgID string) *models.CatalogItem {
	t.Helper()

	item := &models.CatalogItem{
		OrganizationID: &orgID,
		Name:           fmt.Sprintf("Test Badge %d", nextID()),
		Kind:           models.CatalogItemBadge,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test catalog item: %v", err)
	}
	return item
}

// CreateTestAward creates an award for the catalog item granted to recipient.
func CreateTestAward(t *testing.T, db *gorm.DB, catalogItemID, recipient string) *models.Award {
	t.Helper()

	award := &models.Award{
		CatalogItemID:   &catalogItemID,
		RecipientWallet: wallet.Normalize(recipient),
		AwardedAt:       time.Now().UTC(),
	}
	if err := db.Create(award).Error; err != nil {
		t.Fatalf("failed to create test award: %v", err)
	}
	return award
}

// CreateTestHolding creates a holding owned by owner with no originating award.
func CreateTestHolding(t *testing.T, db *gorm.DB, owner string) *models.Holding {
	t.Helper()
	return createHolding(t, db, owner, nil)
}

// CreateTestAwardedHolding creates the full organization -> catalog item ->
// award -> holding chain and returns the holding with its award.
func CreateTestAwardedHolding(t *testing.T, db *gorm.DB, owner string) (*models.Holding, *models.Award) {
	t.Helper()

	org := CreateTestOrganization(t, db)
	item := CreateTestCatalogItem(t, db, org.ID)
	award := CreateTestAward(t, db, item.ID, owner)
	return createHolding(t, db, owner, &award.ID), award
}

func createHolding(t *testing.T, db *gorm.DB, owner string, awardID *string) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		AwardID:       awardID,
		ChainObjectID: fmt.Sprintf("0xobject%d", nextID()),
		CurrentOwner:  wallet.Normalize(owner),
		AcquiredAt:    time.Now().UTC(),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// CreateTestListing creates a listing on the holding in the given status.
// Non-active statuses get a buyer so the row is internally consistent.
func CreateTestListing(t *testing.T, db *gorm.DB, holding *models.Holding, status models.ListingStatus) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		HoldingID:    holding.ID,
		SellerWallet: holding.CurrentOwner,
		Price:        decimal.RequireFromString("1.5"),
		Status:       status,
	}
	switch status {
	case models.ListingStatusPaymentPending:
		buyer := "0xfixturebuyer"
		listing.BuyerWallet = &buyer
	case models.ListingStatusAwaitingTransfer:
		buyer, tx, now := "0xfixturebuyer", "0xfixturepayment", time.Now().UTC()
		listing.BuyerWallet = &buyer
		listing.PaymentTxHash = &tx
		listing.PaymentSubmittedAt = &now
	}
	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("failed to create test listing: %v", err)
	}
	return listing
}
