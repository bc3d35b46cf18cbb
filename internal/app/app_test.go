package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/rag"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// setupTestApp creates a minimal Application for testing endpoints.
func setupTestApp(t *testing.T) *Application {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	provider, err := catalog.NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })

	ctx := context.Background()
	if err := provider.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	cat, err := catalog.Load(ctx, provider)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	log := logger.New("info")

	return &Application{
		provider: provider,
		catalog:  cat,
		metrics:  m,
		logger:   log,
		answers:  rag.NewChain(),
	}
}

func TestLivenessCheck(t *testing.T) {
	t.Parallel()
	app := setupTestApp(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/livez", app.livenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if status, ok := response["status"].(string); !ok || status != "alive" {
		t.Errorf("status = %v, want alive", response["status"])
	}
}

func TestReadinessCheckHealthy(t *testing.T) {
	t.Parallel()
	app := setupTestApp(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/readyz", app.readinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if status, ok := response["status"].(string); !ok || status != "ready" {
		t.Errorf("status = %v, want ready", response["status"])
	}
	if _, ok := response["catalog"].(map[string]any); !ok {
		t.Errorf("expected catalog counts in response, got %v", response["catalog"])
	}
}

func TestReadinessCheckDatabaseDown(t *testing.T) {
	t.Parallel()
	app := setupTestApp(t)
	_ = app.provider.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/readyz", app.readinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
