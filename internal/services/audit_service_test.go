package services

import (
	"encoding/json"
	"testing"

	"campfire/internal/models"
	"campfire/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	holding := testutil.CreateTestHolding(t, db, sellerA)
	listing := testutil.CreateTestListing(t, db, holding, models.ListingStatusActive)

	svc.Log("  0xSellerA ", "LISTING_CANCEL", "listing", listing.ID, "127.0.0.1", map[string]interface{}{
		"status": "cancelled",
	})

	var entries []models.AuditLog
	db.Find(&entries)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Wallet != "0xsellera" || entry.ResourceID != listing.ID || entry.Action != "LISTING_CANCEL" {
		t.Errorf("unexpected entry %+v", entry)
	}

	var changes map[string]interface{}
	if err := json.Unmarshal([]byte(entry.Changes), &changes); err != nil {
		t.Fatalf("changes are not JSON: %v", err)
	}
	if changes["status"] != "cancelled" {
		t.Errorf("expected status change recorded, got %v", changes)
	}
}

func TestAuditLogNilChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)

	svc.Log("0xsellera", "LISTING_CREATE", "listing", "0190b1d2-4f3a-7c3d-8e4f-0123456789ab", "", nil)

	var entry models.AuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected entry: %v", err)
	}
	if entry.Changes != "" {
		t.Errorf("expected empty changes, got %q", entry.Changes)
	}
}

func TestAuditLogStoreFailureIsSwallowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAuditService(db)
	testutil.TeardownTestDB(t, db)

	// Must return normally; the listing action it records already committed.
	svc.Log("0xsellera", "LISTING_COMPLETE", "listing", "0190b1d2-4f3a-7c3d-8e4f-0123456789ab", "",
		map[string]interface{}{"status": models.ListingStatusCompleted})
}
