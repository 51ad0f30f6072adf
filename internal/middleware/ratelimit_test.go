package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRateLimitRouter(perSecond float64) *gin.Engine {
	r := gin.New()
	r.POST("/listings", RateLimit(perSecond), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func postFrom(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/listings", http.NoBody)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects_burst_over_limit", func(t *testing.T) {
		r := setupRateLimitRouter(1)

		if rec := postFrom(r, "10.0.0.1:1234"); rec.Code != http.StatusOK {
			t.Fatalf("first request status = %d, want 200", rec.Code)
		}
		rec := postFrom(r, "10.0.0.1:1234")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("second request status = %d, want 429", rec.Code)
		}
		if code, _ := parseBody(t, rec)["code"].(string); code != "RATE_LIMITED" {
			t.Errorf("code = %q, want RATE_LIMITED", code)
		}
	})

	t.Run("limits_per_client", func(t *testing.T) {
		r := setupRateLimitRouter(1)

		postFrom(r, "10.0.0.1:1234")
		if rec := postFrom(r, "10.0.0.2:1234"); rec.Code != http.StatusOK {
			t.Errorf("other client status = %d, want 200", rec.Code)
		}
	})

	t.Run("disabled_when_not_positive", func(t *testing.T) {
		r := setupRateLimitRouter(0)

		for i := 0; i < 5; i++ {
			if rec := postFrom(r, "10.0.0.1:1234"); rec.Code != http.StatusOK {
				t.Fatalf("request %d status = %d, want 200", i, rec.Code)
			}
		}
	})
}
