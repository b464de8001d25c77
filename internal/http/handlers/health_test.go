package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
)

func healthStatus(t *testing.T, h *HealthHandler) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthcheck", h.HealthCheck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	return w.Code
}

func TestHealthCheckPingsDatabase(t *testing.T) {
	db := testutil.DB(t)
	if code := healthStatus(t, NewHealthHandler(db)); code != http.StatusOK {
		t.Fatalf("healthy db: got %d", code)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	_ = sqlDB.Close()
	if code := healthStatus(t, NewHealthHandler(db)); code != http.StatusServiceUnavailable {
		t.Fatalf("closed db: got %d", code)
	}
}

func TestHealthCheckWithoutDatabase(t *testing.T) {
	if code := healthStatus(t, NewHealthHandler(nil)); code != http.StatusOK {
		t.Fatalf("got %d", code)
	}
}
