package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "campfire/internal/errors"
	"campfire/internal/models"
	"campfire/internal/pagination"
	"campfire/internal/uuid"
	"campfire/internal/wallet"
)

// listingJoin walks holding -> award -> catalog item -> organization.
// Intermediate relations are loaded along the way; missing ones stay nil.
const listingJoin = "Holding.Award.CatalogItem.Organization"

// listingQueryService serves read-only listing projections.
type listingQueryService struct {
	db *gorm.DB
}

// NewListingQueryService creates a new ListingQueryServicer.
func NewListingQueryService(db *gorm.DB) ListingQueryServicer {
	return &listingQueryService{db: db}
}

// GetListingByID returns a single listing with its full join.
func (s *listingQueryService) GetListingByID(ctx context.Context, listingID string) (*models.Listing, error) {
	return findJoinedListing(s.db.WithContext(ctx), listingID)
}

// GetListings returns listings matching the filter, newest first.
// With no filter at all only active listings are returned.
func (s *listingQueryService) GetListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	q := s.db.WithContext(ctx).Model(&models.Listing{})

	if seller := wallet.Normalize(filter.Seller); seller != "" {
		q = q.Where("seller_wallet = ?", seller)
	}
	if buyer := wallet.Normalize(filter.Buyer); buyer != "" {
		q = q.Where("buyer_wallet = ?", buyer)
	}
	if p := wallet.Normalize(filter.Participant); p != "" {
		q = q.Where("(seller_wallet = ? OR buyer_wallet = ?)", p, p)
	}

	switch {
	case filter.Status != nil:
		q = q.Where("status = ?", *filter.Status)
	case filter.IsEmpty():
		q = q.Where("status = ?", models.ListingStatusActive)
	}

	var listings []models.Listing
	if err := q.Preload(listingJoin).
		Order("created_at DESC").Order("id DESC").
		Scopes(pagination.Limit(filter.Limit)).
		Find(&listings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}

	return pagination.NonNil(listings), nil
}

// findJoinedListing loads a listing and its full join through db, which may
// be a transaction.
func findJoinedListing(db *gorm.DB, listingID string) (*models.Listing, error) {
	if !uuid.IsValid(listingID) {
		return nil, apperrors.ErrListingNotFound
	}

	var listing models.Listing
	if err := db.Preload(listingJoin).First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return &listing, nil
}
