package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wms-backend/internal/reports"
	"github.com/angelmondragon/wms-backend/internal/seed"
	"github.com/angelmondragon/wms-backend/internal/warehouses"
	pkgAuth "github.com/angelmondragon/wms-backend/pkg/auth"
	"github.com/angelmondragon/wms-backend/pkg/config"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	"github.com/angelmondragon/wms-backend/pkg/logger"
	"github.com/angelmondragon/wms-backend/pkg/metrics"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubWarehouses struct {
	warehouses.Service
}

func (stubWarehouses) List(_ context.Context, params pagination.Params) (*warehouses.WarehouseList, error) {
	return &warehouses.WarehouseList{Warehouses: []warehouses.WarehouseDTO{}, Pagination: pagination.NewMeta(params, 0)}, nil
}

func (stubWarehouses) Create(_ context.Context, input warehouses.WarehouseInput) (*warehouses.WarehouseDTO, error) {
	return &warehouses.WarehouseDTO{Name: input.Name}, nil
}

type stubReports struct {
	reports.Service
}

func (stubReports) InventoryLevels(context.Context) ([]reports.InventoryLevel, error) {
	return []reports.InventoryLevel{}, nil
}

type stubSeeder struct{}

func (stubSeeder) Seed(context.Context) (*seed.Result, error) { return &seed.Result{}, nil }

func (stubSeeder) ForceSeed(context.Context) (*seed.BatchResult, error) {
	return &seed.BatchResult{}, nil
}

func (stubSeeder) SeedMore(context.Context, seed.MoreOptions) (*seed.BatchResult, error) {
	return &seed.BatchResult{}, nil
}

func testConfig(env string) *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: env, Version: "test"},
		JWT:  config.JWTConfig{Secret: "router-secret", Issuer: "wms-api", ExpiresIn: time.Hour},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T, env string) (http.Handler, *config.Config) {
	t.Helper()
	cfg := testConfig(env)
	reg := prometheus.NewRegistry()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	h := NewRouter(cfg, logg, Deps{
		DB:          stubPinger{},
		Gatherer:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Warehouses:  stubWarehouses{},
		Reports:     stubReports{},
		Seeder:      stubSeeder{},
	})
	return h, cfg
}

func bearer(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "router@wms.com",
		Role:   role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func do(h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	h, _ := newTestRouter(t, "dev")

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health/live", "", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health/ready", "", "").Code)

	rec := do(h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wms_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h, _ := newTestRouter(t, "dev")

	for _, path := range []string{"/api/users", "/api/inventory", "/api/orders", "/api/warehouses", "/api/reports/metrics", "/api/auth/me"} {
		rec := do(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Access token required", path)
	}
}

func TestWarehouseAliasAndAdminGate(t *testing.T) {
	h, cfg := newTestRouter(t, "dev")
	employee := bearer(t, cfg, enums.RoleEmployee)
	admin := bearer(t, cfg, enums.RoleAdmin)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/warehouse", employee, "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/warehouses", employee, "").Code)

	body := `{"name":"DC","address":"1 Main","city":"Austin","state":"TX","zipCode":"73301"}`
	rec := do(h, http.MethodPost, "/api/warehouse", employee, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")

	assert.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/api/warehouses", admin, body).Code)
}

func TestUserWritesAreAdminOnly(t *testing.T) {
	h, cfg := newTestRouter(t, "dev")
	rec := do(h, http.MethodDelete, "/api/users/"+uuid.NewString(), bearer(t, cfg, enums.RoleManager), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReportsOpenToEveryRole(t *testing.T) {
	h, cfg := newTestRouter(t, "dev")
	for _, role := range enums.Roles() {
		rec := do(h, http.MethodGet, "/api/reports/inventory-levels", bearer(t, cfg, role), "")
		assert.Equal(t, http.StatusOK, rec.Code, role)
	}
}

func TestSeedRoutesHiddenInProduction(t *testing.T) {
	dev, _ := newTestRouter(t, "dev")
	assert.Equal(t, http.StatusOK, do(dev, http.MethodPost, "/api/seed", "", "").Code)

	prod, _ := newTestRouter(t, "prod")
	for _, path := range []string{"/api/seed", "/api/force-seed", "/api/seed-more"} {
		assert.Equal(t, http.StatusNotFound, do(prod, http.MethodPost, path, "", "").Code, path)
	}
}
