package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "campfire/internal/errors"
	"campfire/internal/logger"
	"campfire/internal/models"
	"campfire/internal/uuid"
	"campfire/internal/wallet"
)

// awardService records awards handed over by the issuance subsystem and
// annotates them when the resulting holding is resold.
type awardService struct {
	db *gorm.DB
}

// NewAwardService creates a new AwardServicer.
func NewAwardService(db *gorm.DB) AwardServicer {
	return &awardService{db: db}
}

// IssueAward stores an award and the holding it produced in one transaction.
func (s *awardService) IssueAward(ctx context.Context, input IssueAwardInput) (*models.Holding, error) {
	recipient := wallet.Normalize(input.RecipientWallet)
	if recipient == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Recipient wallet is required")
	}
	chainObjectID := strings.TrimSpace(input.ChainObjectID)
	if chainObjectID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Chain object id is required")
	}

	var metadata datatypes.JSON
	if input.Metadata != nil {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Metadata must be a JSON object")
		}
		metadata = datatypes.JSON(data)
	}

	awardedAt := time.Now().UTC()
	if input.AwardedAt != nil {
		awardedAt = input.AwardedAt.UTC()
	}

	var holdingID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.CatalogItemID != nil {
			if !uuid.IsValid(*input.CatalogItemID) {
				return apperrors.ErrCatalogItemNotFound
			}
			var count int64
			if txErr := tx.Model(&models.CatalogItem{}).Where("id = ?", *input.CatalogItemID).Count(&count).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrStoreFailure, txErr)
			}
			if count == 0 {
				return apperrors.ErrCatalogItemNotFound
			}
		}

		award := &models.Award{
			CatalogItemID:   input.CatalogItemID,
			RecipientWallet: recipient,
			AwardedAt:       awardedAt,
		}
		if txErr := tx.Create(award).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreFailure, txErr)
		}

		holding := &models.Holding{
			AwardID:       &award.ID,
			ChainObjectID: chainObjectID,
			CurrentOwner:  recipient,
			AcquiredAt:    awardedAt,
			Metadata:      metadata,
		}
		if txErr := tx.Create(holding).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateChainObject
			}
			return apperrors.Wrap(apperrors.ErrStoreFailure, txErr)
		}

		holdingID = holding.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("award issued",
		"holding_id", holdingID,
		"recipient", recipient,
		"chain_object_id", chainObjectID,
	)

	return NewHoldingService(s.db).GetHoldingByID(ctx, holdingID)
}

// MarkSold flags the award as resold and makes the buyer its recipient of record.
func (s *awardService) MarkSold(ctx context.Context, awardID, buyerWallet string, soldAt time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Award{}).
		Where("id = ?", awardID).
		Updates(map[string]interface{}{
			"is_sold":          true,
			"sold_at":          soldAt,
			"recipient_wallet": wallet.Normalize(buyerWallet),
			"updated_at":       soldAt,
		})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Award not found")
	}
	return nil
}
