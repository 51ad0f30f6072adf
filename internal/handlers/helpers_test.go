package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"campfire/internal/middleware"
	"campfire/internal/models"
	"campfire/internal/services"
	"campfire/internal/validator"
)

// --- mock listing controller ---

type mockListingService struct {
	createListingFn        func(ctx context.Context, holdingID string, price decimal.Decimal, seller string) (*models.Listing, error)
	cancelListingFn        func(ctx context.Context, listingID, seller string) (*models.Listing, error)
	purchaseListingFn      func(ctx context.Context, listingID, buyer string) (*models.Listing, error)
	releaseListingFn       func(ctx context.Context, listingID, wallet string) (*models.Listing, error)
	markPaymentSubmittedFn func(ctx context.Context, listingID, buyer, txHash string) (*models.Listing, error)
	completeListingFn      func(ctx context.Context, listingID, seller, txHash string) (*services.CompletionResult, error)
}

func (m *mockListingService) CreateListing(ctx context.Context, holdingID string, price decimal.Decimal, seller string) (*models.Listing, error) {
	if m.createListingFn != nil {
		return m.createListingFn(ctx, holdingID, price, seller)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) CancelListing(ctx context.Context, listingID, seller string) (*models.Listing, error) {
	if m.cancelListingFn != nil {
		return m.cancelListingFn(ctx, listingID, seller)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) PurchaseListing(ctx context.Context, listingID, buyer string) (*models.Listing, error) {
	if m.purchaseListingFn != nil {
		return m.purchaseListingFn(ctx, listingID, buyer)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) ReleaseListing(ctx context.Context, listingID, wallet string) (*models.Listing, error) {
	if m.releaseListingFn != nil {
		return m.releaseListingFn(ctx, listingID, wallet)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) MarkPaymentSubmitted(ctx context.Context, listingID, buyer, txHash string) (*models.Listing, error) {
	if m.markPaymentSubmittedFn != nil {
		return m.markPaymentSubmittedFn(ctx, listingID, buyer, txHash)
	}
	return &models.Listing{}, nil
}

func (m *mockListingService) CompleteListing(ctx context.Context, listingID, seller, txHash string) (*services.CompletionResult, error) {
	if m.completeListingFn != nil {
		return m.completeListingFn(ctx, listingID, seller, txHash)
	}
	return &services.CompletionResult{Listing: &models.Listing{}}, nil
}

// --- mock listing query service ---

type mockListingQueryService struct {
	getListingByIDFn func(ctx context.Context, listingID string) (*models.Listing, error)
	getListingsFn    func(ctx context.Context, filter services.ListingFilter) ([]models.Listing, error)
}

func (m *mockListingQueryService) GetListingByID(ctx context.Context, listingID string) (*models.Listing, error) {
	if m.getListingByIDFn != nil {
		return m.getListingByIDFn(ctx, listingID)
	}
	return &models.Listing{}, nil
}

func (m *mockListingQueryService) GetListings(ctx context.Context, filter services.ListingFilter) ([]models.Listing, error) {
	if m.getListingsFn != nil {
		return m.getListingsFn(ctx, filter)
	}
	return []models.Listing{}, nil
}

// --- mock holding service ---

type mockHoldingService struct {
	getHoldingByIDFn    func(ctx context.Context, holdingID string) (*models.Holding, error)
	getWalletHoldingsFn func(ctx context.Context, wallet string, limit int) ([]models.Holding, error)
}

func (m *mockHoldingService) GetHoldingByID(ctx context.Context, holdingID string) (*models.Holding, error) {
	if m.getHoldingByIDFn != nil {
		return m.getHoldingByIDFn(ctx, holdingID)
	}
	return &models.Holding{}, nil
}

func (m *mockHoldingService) GetWalletHoldings(ctx context.Context, wallet string, limit int) ([]models.Holding, error) {
	if m.getWalletHoldingsFn != nil {
		return m.getWalletHoldingsFn(ctx, wallet, limit)
	}
	return []models.Holding{}, nil
}

// --- mock award service ---

type mockAwardService struct {
	issueAwardFn func(ctx context.Context, input services.IssueAwardInput) (*models.Holding, error)
}

func (m *mockAwardService) IssueAward(ctx context.Context, input services.IssueAwardInput) (*models.Holding, error) {
	if m.issueAwardFn != nil {
		return m.issueAwardFn(ctx, input)
	}
	return &models.Holding{}, nil
}

func (m *mockAwardService) MarkSold(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}

// --- mock audit service ---

type auditEntry struct {
	wallet, action, resourceType, resourceID string
	changes                                  map[string]interface{}
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(wallet, action, resourceType, resourceID, _ string, changes map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{wallet, action, resourceType, resourceID, changes})
}

// verify interface compliance
var (
	_ services.ListingServicer      = (*mockListingService)(nil)
	_ services.ListingQueryServicer = (*mockListingQueryService)(nil)
	_ services.HoldingServicer      = (*mockHoldingService)(nil)
	_ services.AwardServicer        = (*mockAwardService)(nil)
	_ services.AuditServicer        = (*mockAuditService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// injectWallet simulates a request that passed WalletAuth.
func injectWallet(w string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.WalletKey, w)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["code"] != code {
		t.Errorf("expected error code %q, got %v", code, result["code"])
	}
	if msg, ok := result["error"].(string); !ok || msg == "" {
		t.Errorf("expected error message string, got %v", result["error"])
	}
}
