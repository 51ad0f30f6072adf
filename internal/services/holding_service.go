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

const holdingJoin = "Award.CatalogItem.Organization"

// holdingService serves read access to holdings. Ownership changes go
// through the listing controller only.
type holdingService struct {
	db *gorm.DB
}

// NewHoldingService creates a new HoldingServicer.
func NewHoldingService(db *gorm.DB) HoldingServicer {
	return &holdingService{db: db}
}

// GetHoldingByID returns a holding with its award, catalog item and organization.
func (s *holdingService) GetHoldingByID(ctx context.Context, holdingID string) (*models.Holding, error) {
	if !uuid.IsValid(holdingID) {
		return nil, apperrors.ErrHoldingNotFound
	}

	var holding models.Holding
	if err := s.db.WithContext(ctx).Preload(holdingJoin).First(&holding, "id = ?", holdingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return &holding, nil
}

// GetWalletHoldings returns the holdings a wallet currently owns, most
// recently acquired first.
func (s *holdingService) GetWalletHoldings(ctx context.Context, walletID string, limit int) ([]models.Holding, error) {
	owner := wallet.Normalize(walletID)
	if owner == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Wallet is required")
	}

	var holdings []models.Holding
	if err := s.db.WithContext(ctx).Preload(holdingJoin).
		Where("current_owner = ?", owner).
		Order("acquired_at DESC").
		Scopes(pagination.Limit(limit)).
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return pagination.NonNil(holdings), nil
}
