package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "campfire/internal/errors"
	"campfire/internal/logger"
	"campfire/internal/metrics"
	"campfire/internal/models"
	"campfire/internal/uuid"
	"campfire/internal/wallet"
)

// Listing actions, as named on the request boundary.
const (
	ActionCreate           = "create"
	ActionCancel           = "cancel"
	ActionPurchase         = "purchase"
	ActionRelease          = "release"
	ActionPaymentSubmitted = "payment-submitted"
	ActionComplete         = "complete"
)

// listingService is the listing lifecycle controller.
//
// Every transition after create is a single UPDATE guarded on the listing id
// and the status the caller validated against. When that UPDATE matches no
// row a concurrent transition won and the caller gets ErrListingUnavailable.
type listingService struct {
	db        *gorm.DB
	annotator AwardAnnotator
	metrics   *metrics.MarketplaceMetrics
	now       func() time.Time
}

// NewListingService creates a new ListingServicer. annotator may be nil, in
// which case completed sales are not recorded on the originating award.
func NewListingService(db *gorm.DB, annotator AwardAnnotator) ListingServicer {
	return &listingService{
		db:        db,
		annotator: annotator,
		metrics:   metrics.Marketplace(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateListing offers a holding for sale at a fixed price.
func (s *listingService) CreateListing(ctx context.Context, holdingID string, price decimal.Decimal, sellerWallet string) (*models.Listing, error) {
	listing, err := s.createListing(ctx, holdingID, price, sellerWallet)
	s.observe(ActionCreate, err)
	return listing, err
}

func (s *listingService) createListing(ctx context.Context, holdingID string, price decimal.Decimal, sellerWallet string) (*models.Listing, error) {
	seller := wallet.Normalize(sellerWallet)
	if seller == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Seller wallet is required")
	}

	rounded, ok := models.RoundPrice(price)
	if !ok {
		return nil, apperrors.ErrInvalidPrice
	}

	if !uuid.IsValid(holdingID) {
		return nil, apperrors.ErrHoldingNotFound
	}

	var listingID string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the holding so concurrent creates for it queue up behind us.
		var holding models.Holding
		if txErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&holding, "id = ?", holdingID).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrHoldingNotFound
			}
			return apperrors.Wrap(apperrors.ErrStoreFailure, txErr)
		}

		if !wallet.Equal(holding.CurrentOwner, seller) {
			return apperrors.ErrNotHoldingOwner
		}

		var open int64
		if txErr := tx.Model(&models.Listing{}).
			Where("holding_id = ? AND status IN ?", holdingID, models.OpenListingStatuses).
			Count(&open).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrStoreFailure, txErr)
		}
		if open > 0 {
			return apperrors.ErrOpenListingExists
		}

		listing := &models.Listing{
			HoldingID:    holdingID,
			SellerWallet: seller,
			Price:        rounded,
			Status:       models.ListingStatusActive,
		}
		if txErr := tx.Create(listing).Error; txErr != nil {
			// The partial unique index catches creates that raced past the count.
			if errors.Is(txErr, gorm.ErrDuplicatedKey) {
				return apperrors.ErrOpenListingExists
			}
			return apperrors.Wrap(apperrors.ErrStoreFailure, txErr)
		}

		listingID = listing.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.ForListing(listingID).Infow("listing created",
		"holding_id", holdingID,
		"seller", seller,
		"price", rounded.StringFixed(models.PriceScale),
	)

	return findJoinedListing(s.db.WithContext(ctx), listingID)
}

// CancelListing withdraws an active listing. The holding is not touched.
func (s *listingService) CancelListing(ctx context.Context, listingID, sellerWallet string) (*models.Listing, error) {
	listing, err := s.cancelListing(ctx, listingID, sellerWallet)
	s.observe(ActionCancel, err)
	return listing, err
}

func (s *listingService) cancelListing(ctx context.Context, listingID, sellerWallet string) (*models.Listing, error) {
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !wallet.Equal(listing.SellerWallet, sellerWallet) {
		return nil, apperrors.ErrNotSeller
	}
	if listing.Status != models.ListingStatusActive {
		return nil, apperrors.ErrNotActive
	}

	now := s.now()
	if err := s.transition(ctx, ActionCancel, listing.ID, models.ListingStatusActive, nil, map[string]interface{}{
		"status":       models.ListingStatusCancelled,
		"cancelled_at": now,
		"updated_at":   now,
	}); err != nil {
		return nil, err
	}

	s.logTransition(ActionCancel, listing.ID, models.ListingStatusCancelled, wallet.Normalize(sellerWallet))
	return findJoinedListing(s.db.WithContext(ctx), listing.ID)
}

// PurchaseListing reserves an active listing for a buyer. While the listing
// is payment_pending no other buyer can reserve it.
func (s *listingService) PurchaseListing(ctx context.Context, listingID, buyerWallet string) (*models.Listing, error) {
	listing, err := s.purchaseListing(ctx, listingID, buyerWallet)
	s.observe(ActionPurchase, err)
	return listing, err
}

func (s *listingService) purchaseListing(ctx context.Context, listingID, buyerWallet string) (*models.Listing, error) {
	buyer := wallet.Normalize(buyerWallet)
	if buyer == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Buyer wallet is required")
	}

	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.ListingStatusActive {
		return nil, apperrors.ErrListingUnavailable
	}
	if wallet.Equal(listing.SellerWallet, buyer) {
		return nil, apperrors.ErrSelfPurchase
	}

	now := s.now()
	if err := s.transition(ctx, ActionPurchase, listing.ID, models.ListingStatusActive, nil, map[string]interface{}{
		"status":               models.ListingStatusPaymentPending,
		"buyer_wallet":         buyer,
		"payment_tx_hash":      nil,
		"payment_submitted_at": nil,
		"updated_at":           now,
	}); err != nil {
		return nil, err
	}

	s.logTransition(ActionPurchase, listing.ID, models.ListingStatusPaymentPending, buyer)
	return findJoinedListing(s.db.WithContext(ctx), listing.ID)
}

// ReleaseListing drops a reservation and returns the listing to active.
// Either party may release.
func (s *listingService) ReleaseListing(ctx context.Context, listingID, walletID string) (*models.Listing, error) {
	listing, err := s.releaseListing(ctx, listingID, walletID)
	s.observe(ActionRelease, err)
	return listing, err
}

func (s *listingService) releaseListing(ctx context.Context, listingID, walletID string) (*models.Listing, error) {
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.ListingStatusPaymentPending {
		return nil, apperrors.ErrNotPaymentPending
	}
	if listing.BuyerWallet == nil {
		return nil, apperrors.ErrNoBuyer
	}
	if !wallet.EqualPtr(listing.BuyerWallet, walletID) && !wallet.Equal(listing.SellerWallet, walletID) {
		return nil, apperrors.ErrNotParticipant
	}

	// Guard on the buyer we validated so a stale release cannot drop a
	// newer reservation made after a release/reserve cycle.
	guard := map[string]interface{}{"buyer_wallet": *listing.BuyerWallet}
	if err := s.transition(ctx, ActionRelease, listing.ID, models.ListingStatusPaymentPending, guard, map[string]interface{}{
		"status":               models.ListingStatusActive,
		"buyer_wallet":         nil,
		"payment_tx_hash":      nil,
		"payment_submitted_at": nil,
		"updated_at":           s.now(),
	}); err != nil {
		return nil, err
	}

	s.logTransition(ActionRelease, listing.ID, models.ListingStatusActive, wallet.Normalize(walletID))
	return findJoinedListing(s.db.WithContext(ctx), listing.ID)
}

// MarkPaymentSubmitted records the buyer's off-system payment evidence.
func (s *listingService) MarkPaymentSubmitted(ctx context.Context, listingID, buyerWallet, paymentTxHash string) (*models.Listing, error) {
	listing, err := s.markPaymentSubmitted(ctx, listingID, buyerWallet, paymentTxHash)
	s.observe(ActionPaymentSubmitted, err)
	return listing, err
}

func (s *listingService) markPaymentSubmitted(ctx context.Context, listingID, buyerWallet, paymentTxHash string) (*models.Listing, error) {
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.Status != models.ListingStatusPaymentPending {
		return nil, apperrors.ErrNotPaymentPending
	}
	if listing.BuyerWallet == nil {
		return nil, apperrors.ErrNoBuyer
	}
	if !wallet.EqualPtr(listing.BuyerWallet, buyerWallet) {
		return nil, apperrors.ErrNotBuyer
	}
	txHash := strings.TrimSpace(paymentTxHash)
	if txHash == "" {
		return nil, apperrors.ErrMissingPaymentTx
	}

	now := s.now()
	guard := map[string]interface{}{"buyer_wallet": *listing.BuyerWallet}
	if err := s.transition(ctx, ActionPaymentSubmitted, listing.ID, models.ListingStatusPaymentPending, guard, map[string]interface{}{
		"status":               models.ListingStatusAwaitingTransfer,
		"payment_tx_hash":      txHash,
		"payment_submitted_at": now,
		"updated_at":           now,
	}); err != nil {
		return nil, err
	}

	s.logTransition(ActionPaymentSubmitted, listing.ID, models.ListingStatusAwaitingTransfer, wallet.Normalize(buyerWallet))
	return findJoinedListing(s.db.WithContext(ctx), listing.ID)
}

// CompleteListing records the seller's on-chain transfer. The listing status
// and the holding owner change in one transaction; the award annotation runs
// afterwards and its failure does not undo the sale.
func (s *listingService) CompleteListing(ctx context.Context, listingID, sellerWallet, transferTxHash string) (*CompletionResult, error) {
	result, err := s.completeListing(ctx, listingID, sellerWallet, transferTxHash)
	s.observe(ActionComplete, err)
	return result, err
}

func (s *listingService) completeListing(ctx context.Context, listingID, sellerWallet, transferTxHash string) (*CompletionResult, error) {
	listing, err := s.loadListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if !wallet.Equal(listing.SellerWallet, sellerWallet) {
		return nil, apperrors.ErrNotSeller
	}
	if listing.Status != models.ListingStatusAwaitingTransfer {
		return nil, apperrors.ErrNotAwaitingTransfer
	}
	if listing.BuyerWallet == nil || *listing.BuyerWallet == "" {
		return nil, apperrors.ErrNoBuyer
	}
	txHash := strings.TrimSpace(transferTxHash)
	if txHash == "" {
		return nil, apperrors.ErrMissingTransferTx
	}

	buyer := *listing.BuyerWallet
	now := s.now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Listing{}).
			Where("id = ? AND status = ? AND buyer_wallet = ?", listing.ID, models.ListingStatusAwaitingTransfer, buyer).
			Updates(map[string]interface{}{
				"status":                models.ListingStatusCompleted,
				"transfer_tx_hash":      txHash,
				"transfer_completed_at": now,
				"updated_at":            now,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrStoreFailure, res.Error)
		}
		if res.RowsAffected == 0 {
			s.metrics.ObserveRaceLoss(ActionComplete)
			return apperrors.ErrListingUnavailable
		}

		res = tx.Model(&models.Holding{}).
			Where("id = ? AND LOWER(TRIM(current_owner)) = ?", listing.HoldingID, wallet.Normalize(listing.SellerWallet)).
			Updates(map[string]interface{}{
				"current_owner":       buyer,
				"acquired_at":         now,
				"last_transferred_at": now,
				"updated_at":          now,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrStoreFailure, res.Error)
		}
		if res.RowsAffected == 0 {
			// The seller no longer owns what they listed. Roll back so the
			// listing is not marked completed against the wrong owner.
			s.metrics.ObserveInconsistency("holding_owner")
			logger.ForListing(listing.ID).Errorw("holding ownership diverged from listing",
				"holding_id", listing.HoldingID,
				"seller", listing.SellerWallet,
				"buyer", buyer,
			)
			return apperrors.ErrOwnershipDrift
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logTransition(ActionComplete, listing.ID, models.ListingStatusCompleted, listing.SellerWallet)

	result := &CompletionResult{}
	if listing.Holding != nil && listing.Holding.AwardID != nil && s.annotator != nil {
		if annErr := s.annotator.MarkSold(ctx, *listing.Holding.AwardID, buyer, now); annErr != nil {
			s.metrics.ObserveAnnotationFailure()
			logger.ForListing(listing.ID).Warnw("failed to mark award as sold",
				"award_id", *listing.Holding.AwardID,
				"error", annErr,
			)
			result.AnnotationErr = annErr
		} else {
			result.AwardAnnotated = true
		}
	}

	refreshed, err := findJoinedListing(s.db.WithContext(ctx), listing.ID)
	if err != nil {
		return nil, err
	}
	result.Listing = refreshed
	return result, nil
}

// loadListing reads the listing a transition validates against. Only the
// holding is joined; callers re-read the full projection after writing.
func (s *listingService) loadListing(ctx context.Context, listingID string) (*models.Listing, error) {
	if !uuid.IsValid(listingID) {
		return nil, apperrors.ErrListingNotFound
	}

	var listing models.Listing
	if err := s.db.WithContext(ctx).Preload("Holding").First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return &listing, nil
}

// transition applies updates to the listing only if it is still in status
// from and matches every guard column.
func (s *listingService) transition(
	ctx context.Context,
	action, listingID string,
	from models.ListingStatus,
	guard map[string]interface{},
	updates map[string]interface{},
) error {
	q := s.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ? AND status = ?", listingID, from)
	for column, value := range guard {
		q = q.Where(column+" = ?", value)
	}

	res := q.Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		s.metrics.ObserveRaceLoss(action)
		return apperrors.ErrListingUnavailable
	}
	return nil
}

func (s *listingService) logTransition(action, listingID string, to models.ListingStatus, actor string) {
	logger.ForListing(listingID).Infow("listing transition",
		"action", action,
		"status", to,
		"actor", actor,
	)
}

func (s *listingService) observe(action string, err error) {
	switch {
	case err == nil:
		s.metrics.ObserveTransition(action, metrics.OutcomeSuccess)
	case isStoreFailure(err):
		s.metrics.ObserveTransition(action, metrics.OutcomeError)
	default:
		s.metrics.ObserveTransition(action, metrics.OutcomeRejected)
	}
}

func isStoreFailure(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.CodeStoreFailure
}
