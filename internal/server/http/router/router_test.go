package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ebiblio/storefront/internal/config"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/server/http/handlers"
	testhelpers "github.com/ebiblio/storefront/internal/test"
)

func testConfig() *config.Config {
	return &config.Config{AuthRatePerSecond: 100, AuthRateBurst: 100}
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.StorefrontFacadeStub{
		LibraryFacadeStub: testhelpers.LibraryFacadeStub{
			ShelfFn: func(context.Context, int64, time.Time) ([]model.LibraryItem, error) {
				return []model.LibraryItem{{ID: "1-1", BookID: 1, Kind: model.LineKindPurchase, StatusLabel: model.LabelPermanent}}, nil
			},
		},
	}
	engine := Setup(facade, testConfig(), logger)

	body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/library", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for library, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/books", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for public catalog, got %d", resp.Code)
	}
}

func TestSetupRejectsAnonymousLibrary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.StorefrontFacadeStub{}, testConfig(), logger)

	req := httptest.NewRequest(http.MethodGet, "/api/user/library", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestSetupGuardsAdminRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	customer := testhelpers.StorefrontFacadeStub{}
	engine := Setup(customer, testConfig(), logger)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for customer, got %d", resp.Code)
	}

	admin := testhelpers.StorefrontFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{ParseFn: func(string) (int64, string, error) {
			return 1, string(model.RoleAdmin), nil
		}},
	}
	engine = Setup(admin, testConfig(), logger)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for admin, got %d", resp.Code)
	}
}

var _ handlers.StorefrontFacade = (*testhelpers.StorefrontFacadeStub)(nil)
