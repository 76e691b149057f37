package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/screentocode/screen-to-code-backend/internal/account/domain"
	"github.com/screentocode/screen-to-code-backend/internal/account/repository"
	"github.com/screentocode/screen-to-code-backend/internal/account/service"
)

func newQuotaRouter(quota *service.QuotaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/convert", QuotaMiddleware(quota), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doConvert(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/convert", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuotaMiddleware_AllowsWithinLimit(t *testing.T) {
	quota := service.NewQuotaService(repository.NewTrialMemoryRepository(), 3)
	r := newQuotaRouter(quota)

	for i := 0; i < 3; i++ {
		w := doConvert(r, map[string]string{"X-User-Id": "user-1"})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doConvert(r, map[string]string{"X-User-Id": "user-1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Free trial limit reached")
}

func TestQuotaMiddleware_RemainingHeader(t *testing.T) {
	quota := service.NewQuotaService(repository.NewTrialMemoryRepository(), 3)
	r := newQuotaRouter(quota)

	w := doConvert(r, map[string]string{"X-User-Id": "user-1"})
	assert.Equal(t, "2", w.Header().Get("X-Trial-Remaining"))
}

func TestQuotaMiddleware_PaidPlanBypasses(t *testing.T) {
	quota := service.NewQuotaService(repository.NewTrialMemoryRepository(), 1)
	r := newQuotaRouter(quota)

	for i := 0; i < 5; i++ {
		w := doConvert(r, map[string]string{"X-User-Plan": "pro"})
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestQuotaMiddleware_AnonymousKeyedByIP(t *testing.T) {
	quota := service.NewQuotaService(repository.NewTrialMemoryRepository(), 1)
	r := newQuotaRouter(quota)

	w := doConvert(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same client IP, so the second anonymous call hits the same counter.
	w = doConvert(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestQuotaMiddleware_NoClientIPSharesBucket(t *testing.T) {
	quota := service.NewQuotaService(repository.NewTrialMemoryRepository(), 1)
	r := newQuotaRouter(quota)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/convert", nil)
		req.RemoteAddr = ""
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	// Unresolvable IPs land in one shared bucket instead of a fresh key
	// per request, so the limit still applies.
	assert.Equal(t, http.StatusTooManyRequests, send().Code)
}

type failingStore struct{}

func (failingStore) Consume(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	return nil, errors.New("store down")
}

func (failingStore) Usage(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	return nil, errors.New("store down")
}

func TestQuotaMiddleware_BrokenStoreFailsOpen(t *testing.T) {
	quota := service.NewQuotaService(failingStore{}, 1)
	r := newQuotaRouter(quota)

	w := doConvert(r, map[string]string{"X-User-Id": "user-1"})
	assert.Equal(t, http.StatusOK, w.Code)
}
