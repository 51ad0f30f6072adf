package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campfire/internal/config"
	"campfire/internal/logger"
	"campfire/internal/middleware"
	"campfire/internal/models"
	"campfire/internal/server"
	"campfire/internal/testutil"
	"campfire/internal/validator"
)

const (
	testWalletSecret = "integration-wallet-secret"
	testPipelineKey  = "integration-pipeline-key"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		WalletJWTSecret:    testWalletSecret,
		PipelineAPIKey:     testPipelineKey,
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
	}
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}
	return &testApp{DB: db, Router: server.NewRouter(cfg, db)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// action posts a lifecycle action and returns the recorder.
func (app *testApp) action(body string) *httptest.ResponseRecorder {
	return app.request(http.MethodPost, "/api/v1/listings", body, "")
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// listingFrom extracts the listing object from a success envelope.
func listingFrom(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	require.Equal(t, true, result["success"], "body: %s", rec.Body.String())
	listing, ok := result["listing"].(map[string]interface{})
	require.True(t, ok, "expected listing object, body: %s", rec.Body.String())
	return listing
}

// issueHolding records an award for owner through the pipeline endpoint and
// returns the new holding id.
func (app *testApp) issueHolding(t *testing.T, owner string) string {
	t.Helper()

	org := testutil.CreateTestOrganization(t, app.DB)
	item := testutil.CreateTestCatalogItem(t, app.DB, org.ID)

	body := fmt.Sprintf(`{"catalog_item_id":%q,"recipient_wallet":%q,"chain_object_id":"0xobj-%d"}`,
		item.ID, owner, time.Now().UnixNano())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/internal/awards", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testPipelineKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "issue award failed: %s", rec.Body.String())

	holding := parseJSON(t, rec)["holding"].(map[string]interface{})
	return holding["id"].(string)
}

// walletToken signs a wallet token the router will accept.
func walletToken(t *testing.T, w string) string {
	t.Helper()
	token, err := middleware.GenerateWalletToken(w, []byte(testWalletSecret), time.Hour)
	require.NoError(t, err)
	return token
}

func (app *testApp) holding(t *testing.T, id string) models.Holding {
	t.Helper()
	var h models.Holding
	require.NoError(t, app.DB.Preload("Award").First(&h, "id = ?", id).Error)
	return h
}
