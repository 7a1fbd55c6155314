package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/handler"
	"github.com/akuprof/fleetmanager/internal/middleware"
	"github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/service"
)

// ──────────────────────────────────────────────
// DRIVER READ SCOPING OVER HTTP
// ──────────────────────────────────────────────

type scopeFixture struct {
	router   *gin.Engine
	sessions *MockSessionStore
	tripRepo *MockTripRepository
	payouts  *MockPayoutRepository
}

// newScopeFixture builds a router with the auth middleware and the by-id read
// routes, plus one driver session per driver id ("token-<driverID>").
func newScopeFixture(t *testing.T, driverIDs ...string) *scopeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := NewMockSessionStore()
	for _, driverID := range driverIDs {
		if err := sessions.Save(context.Background(), &redis.Session{
			Token:    "token-" + driverID,
			UserID:   "user-" + driverID,
			Role:     string(domain.UserRoleDriver),
			DriverID: driverID,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tripRepo := NewMockTripRepository()
	payoutRepo := NewMockPayoutRepository()

	tripHandler := handler.NewTripHandler(
		service.NewTripService(nil, tripRepo, NewMockVehicleRepository(), NewMockDriverRepository(), nil))
	payoutHandler := handler.NewPayoutHandler(
		service.NewPayoutService(payoutRepo, tripRepo, NewMockDriverRepository(), NewMockLockStore()))

	router := gin.New()
	authed := middleware.AuthMiddleware(sessions)
	router.GET("/v1/trips/:id", authed, tripHandler.GetTrip)
	router.GET("/v1/payouts/:id", authed, payoutHandler.GetPayout)

	return &scopeFixture{router: router, sessions: sessions, tripRepo: tripRepo, payouts: payoutRepo}
}

func (f *scopeFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestGetTrip_DriverCannotReadForeignTrip(t *testing.T) {
	t.Parallel()

	f := newScopeFixture(t, "driver-1", "driver-2")
	f.tripRepo.AddTrip(completedTrip("trip-1", "vehicle-1", "driver-2", time.Now(), 1000, 300, 700))

	w := f.get("/v1/trips/trip-1", "token-driver-1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign trip, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "driver-2") {
		t.Error("response must not reveal the foreign trip")
	}

	// The owner still reads it.
	w = f.get("/v1/trips/trip-1", "token-driver-2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"total_amount":1000`) {
		t.Errorf("expected trip body, got %s", w.Body.String())
	}
}

func TestGetPayout_DriverCannotReadForeignPayout(t *testing.T) {
	t.Parallel()

	f := newScopeFixture(t, "driver-1", "driver-2")
	f.payouts.AddPayout(&domain.Payout{
		ID:       "payout-1",
		DriverID: "driver-2",
		Amount:   2400,
		Status:   domain.PayoutStatusPending,
	})

	w := f.get("/v1/payouts/payout-1", "token-driver-1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign payout, got %d: %s", w.Code, w.Body.String())
	}

	w = f.get("/v1/payouts/payout-1", "token-driver-2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for the owner, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"amount":2400`) {
		t.Errorf("expected payout body, got %s", w.Body.String())
	}
}

func TestGetTrip_ManagerReadsAnyTrip(t *testing.T) {
	t.Parallel()

	f := newScopeFixture(t, "driver-1")
	f.tripRepo.AddTrip(completedTrip("trip-1", "vehicle-1", "driver-1", time.Now(), 1000, 300, 700))

	// Manager sessions carry no driver id and are not scoped.
	if err := f.sessions.Save(context.Background(), &redis.Session{
		Token:  "token-manager",
		UserID: "user-manager",
		Role:   string(domain.UserRoleManager),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := f.get("/v1/trips/trip-1", "token-manager")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager, got %d: %s", w.Code, w.Body.String())
	}
}
