package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capacity-engine-backend/internal/auth"
	"capacity-engine-backend/internal/model"
)

func adminToken(t *testing.T, secret string, role auth.Role) string {
	t.Helper()
	token, err := auth.NewToken(secret, role, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/admin/capacity/recalculate"},
		{http.MethodGet, "/api/admin/capacity/projection"},
		{http.MethodPost, "/api/admin/capacity/toggle-sales"},
	}

	for _, tc := range testCases {
		w := doJSON(router, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)

		w = doJSON(router, tc.method, tc.path, "garbage-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with bad token", tc.method, tc.path)
	}
}

func TestToggleSalesRejectsInsufficientRole(t *testing.T) {
	router, _, cfg := setupTestRouter(t)

	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleSupport)
	w := doJSON(router, http.MethodPost, "/api/admin/capacity/toggle-sales", token,
		map[string]any{"tier": "gold", "enabled": false})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleSalesValidation(t *testing.T) {
	router, s, cfg := setupTestRouter(t)
	seedMarket(t, s)
	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleOps)

	// Unknown tier.
	w := doJSON(router, http.MethodPost, "/api/admin/capacity/toggle-sales", token,
		map[string]any{"tier": "bronze", "enabled": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing enabled flag.
	w = doJSON(router, http.MethodPost, "/api/admin/capacity/toggle-sales", token,
		map[string]any{"tier": "gold"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleSalesWithoutSnapshotIs404(t *testing.T) {
	router, _, cfg := setupTestRouter(t)
	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleSuperAdmin)

	w := doJSON(router, http.MethodPost, "/api/admin/capacity/toggle-sales", token,
		map[string]any{"tier": "gold", "enabled": false})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleSalesAppendsSnapshot(t *testing.T) {
	router, s, cfg := setupTestRouter(t)
	seedMarket(t, s)
	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleOps)

	// Seed the snapshot log through a forced recalculation.
	w := doJSON(router, http.MethodPost, "/api/admin/capacity/recalculate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/admin/capacity/toggle-sales", token,
		map[string]any{"tier": "gold", "enabled": false})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, s.DB().Model(&model.CapacitySnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	latest, err := s.LatestSnapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, latest.GoldSalesEnabled)
	assert.True(t, latest.SilverSalesEnabled)
}

func TestRecalculateReturnsSnapshotPayload(t *testing.T) {
	router, s, cfg := setupTestRouter(t)
	seedMarket(t, s)
	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleSuperAdmin)

	w := doJSON(router, http.MethodPost, "/api/admin/capacity/recalculate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "GREEN", resp.SystemStatus)
	assert.Equal(t, 4, resp.ProjectedDemand)
}

func TestRecalculateSurfacesRepositoryFailure(t *testing.T) {
	router, s, cfg := setupTestRouter(t)
	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleOps)

	sqlDB, err := s.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// Admin writes never fail open.
	w := doJSON(router, http.MethodPost, "/api/admin/capacity/recalculate", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestProjectionEndpoint(t *testing.T) {
	router, s, cfg := setupTestRouter(t)
	seedMarket(t, s)

	// Support staff may view projections but not toggle sales.
	token := adminToken(t, cfg.Auth.JWTSecret, auth.RoleSupport)
	w := doJSON(router, http.MethodGet, "/api/admin/capacity/projection", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Projections []struct {
			Year           int     `json:"year"`
			YearOffset     int     `json:"yearOffset"`
			DemandWeeks    int     `json:"demandWeeks"`
			SupplyWeeks    int     `json:"supplyWeeks"`
			UtilizationPct float64 `json:"utilizationPct"`
			RiskLevel      string  `json:"riskLevel"`
		} `json:"projections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Projections, 15)
	assert.Equal(t, 0, resp.Projections[0].YearOffset)
	assert.Equal(t, 100, resp.Projections[0].SupplyWeeks)
	assert.Equal(t, "LOW", resp.Projections[0].RiskLevel)
}
