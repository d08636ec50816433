package router

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-fridge-tracker/internal/asset"
	"go-fridge-tracker/internal/blob"
	"go-fridge-tracker/internal/changelog"
	"go-fridge-tracker/internal/config"
	"go-fridge-tracker/internal/docstore"
	"go-fridge-tracker/internal/event"
	"go-fridge-tracker/internal/handler"
	"go-fridge-tracker/internal/metrics"
	"go-fridge-tracker/internal/middleware"
	"go-fridge-tracker/internal/repository"
	"go-fridge-tracker/internal/service"
)

const secret = "test-secret"

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{RequestTimeout: 5 * time.Second, RateLimitRPM: 1000, MaxUploadSize: 1 << 20}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := docstore.NewMemory(nil)
	blobs := blob.NewMemory("")
	bus := event.NewBus()

	types := repository.NewItemTypeRepository(store)
	fridge := repository.NewFridgeRepository(store)
	cart := repository.NewCartRepository(store)
	log := repository.NewChangeLogRepository(store)
	assets := asset.NewManager(blobs, asset.Options{}, nil)

	typeSvc := service.NewItemTypeService(types, assets, bus, nil, nil)
	fridgeSvc := service.NewFridgeService(fridge, types, assets, changelog.NewRecorder(log, bus, nil, nil), nil, nil)
	cartSvc := service.NewCartService(cart, fridge, bus, nil, nil)
	query := service.NewQueryService(types, fridge, cart, log, 0, nil)
	stats := service.NewStatsService(log, 0, nil, nil, nil)

	return New(cfg, logger, metrics.New(), middleware.NewActorMiddleware(service.NewAuthService(secret)), Handlers{
		ItemTypes:  handler.NewItemTypeHandler(typeSvc, query, cfg.MaxUploadSize),
		Fridge:     handler.NewFridgeHandler(fridgeSvc, cartSvc, query, cfg.MaxUploadSize),
		Cart:       handler.NewCartHandler(cartSvc, query),
		Stats:      handler.NewStatsHandler(stats, query),
		System:     handler.NewSystemHandler(store.Driver(), blobs.Driver()),
		ChangeFeed: http.NotFoundHandler(),
	})
}

func bearer(t *testing.T, email string, admin bool) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"admin": admin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func request(r http.Handler, method string, target string, auth string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPublicEndpoints(t *testing.T) {
	r := newRouter(t)

	health := request(r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"docstore":"memory"`)

	request(r, http.MethodGet, "/api/v1/fridge", "", "")
	m := request(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, m.Code)
	assert.Contains(t, m.Body.String(), "fridge_tracker_http_requests_total")
}

func TestAPIRequiresActor(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/v1/fridge", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/v1/fridge", "Bearer forged", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/fridge", bearer(t, "bob@home", false), "").Code)
}

func TestItemTypeWritesNeedAdmin(t *testing.T) {
	r := newRouter(t)

	member := request(r, http.MethodPost, "/api/v1/item-types", bearer(t, "bob@home", false), "name=Milk")
	assert.Equal(t, http.StatusForbidden, member.Code)

	admin := request(r, http.MethodPost, "/api/v1/item-types", bearer(t, "alice@home", true), "name=Milk")
	require.Equal(t, http.StatusCreated, admin.Code, admin.Body.String())

	list := request(r, http.MethodGet, "/api/v1/item-types?filter=mil", bearer(t, "bob@home", false), "")
	require.Equal(t, http.StatusOK, list.Code)

	var body struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Milk", body.Data[0].Name)
}

func TestActorFromTokenIsRecorded(t *testing.T) {
	r := newRouter(t)

	created := request(r, http.MethodPost, "/api/v1/fridge", bearer(t, "carol@home", false), "type_id=t&quantity=3&unit=pcs")
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	stats := request(r, http.MethodGet, "/api/v1/stats", bearer(t, "bob@home", false), "")
	require.Equal(t, http.StatusOK, stats.Code)
	assert.Contains(t, stats.Body.String(), `"top_user":"carol@home"`)
	assert.Contains(t, stats.Body.String(), `"item":"unknown"`)
}
