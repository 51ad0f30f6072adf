package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testWalletKey = []byte("wallet-test-secret")

func setupWalletRouter(required bool) *gin.Engine {
	r := gin.New()
	r.Use(WalletAuth(string(testWalletKey), required))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"wallet": c.GetString(WalletKey)})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func mustToken(t *testing.T, walletID string, key []byte, ttl time.Duration) string {
	t.Helper()
	token, err := GenerateWalletToken(walletID, key, ttl)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestWalletAuth(t *testing.T) {
	valid := mustToken(t, "0xAbC", testWalletKey, time.Hour)
	expired := mustToken(t, "0xabc", testWalletKey, -time.Minute)
	wrongKey := mustToken(t, "0xabc", []byte("other-secret"), time.Hour)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &WalletClaims{Wallet: "0xabc"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	tests := []struct {
		name       string
		required   bool
		header     string
		wantStatus int
		wantWallet string
	}{
		{name: "valid_token_binds_normalized_wallet", required: true, header: "Bearer " + valid, wantStatus: http.StatusOK, wantWallet: "0xabc"},
		{name: "optional_without_header", required: false, header: "", wantStatus: http.StatusOK, wantWallet: ""},
		{name: "required_without_header", required: true, header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed_header", required: false, header: "Token " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired_token", required: false, header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong_key", required: true, header: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized},
		{name: "unsigned_token", required: true, header: "Bearer " + noneToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(setupWalletRouter(tt.required), tt.header)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := parseBody(t, rec)
			if tt.wantStatus == http.StatusOK {
				if got, _ := body["wallet"].(string); got != tt.wantWallet {
					t.Errorf("wallet = %q, want %q", got, tt.wantWallet)
				}
				return
			}
			if code, _ := body["code"].(string); code != "UNAUTHORIZED" {
				t.Errorf("code = %q, want UNAUTHORIZED", code)
			}
		})
	}
}

func TestParseWalletTokenRequiresSecret(t *testing.T) {
	token := mustToken(t, "0xabc", testWalletKey, time.Hour)
	if _, err := ParseWalletToken(token, nil); err == nil {
		t.Error("expected error when no secret is configured")
	}
}
