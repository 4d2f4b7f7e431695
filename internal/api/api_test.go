package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/api"
	"storefront/internal/db"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringSource string

func (s stringSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

const catalogDoc = `[
  {"id": "a", "name": "Impact Driver", "price": 199.99, "images": ["driver.jpg"], "stockQuantity": 30, "category": "Power Tools"},
  {"id": "b", "name": "Laser Receiver", "price": 149.99, "stockQuantity": 15, "category": "Measurement Tools"},
  {"id": "c", "name": "Battery Pack", "price": 10.00, "stockQuantity": 100, "category": "Accessories"}
]`

type server struct {
	t *testing.T
	h http.Handler
}

func newServer(t *testing.T, src service.Source) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.SeedUsers(ctx, gdb))

	products := repository.NewProductRepository(gdb)
	users := repository.NewUserRepository(gdb)
	catalog := service.NewCatalogService(products)
	_, err = catalog.Reload(ctx, stringSource(catalogDoc))
	require.NoError(t, err)

	r := api.NewRouter(api.Deps{
		DB:           gdb,
		Catalog:      catalog,
		Cart:         service.NewCartService(repository.NewCartRepository(gdb), products, users),
		Auth:         service.NewAuthService(users, "test-secret", time.Hour, nil),
		ImportSource: src,
		JWTSecret:    "test-secret",
	})
	return &server{t: t, h: r}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.h.ServeHTTP(w, req)
	return w
}

func (s *server) login(username, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(s.t, res.Token)
	assert.Equal(s.t, username, res.Username)
	return res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type productPage struct {
	Content []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func TestPublicCatalogRoutes(t *testing.T) {
	s := newServer(t, stringSource(catalogDoc))

	w := s.do(http.MethodGet, "/api/products?minPrice=100&maxPrice=200&sortBy=price&sortDir=DESC", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[productPage](t, w)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Impact Driver", page.Content[0].Name)
	assert.Equal(t, int64(2), page.TotalElements)

	w = s.do(http.MethodGet, "/api/products?size=1&page=2", "", nil)
	page = decode[productPage](t, w)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Battery Pack", page.Content[0].Name)
	assert.Equal(t, 3, page.TotalPages)

	w = s.do(http.MethodGet, "/api/products/search?name=laser", "", nil)
	assert.Equal(t, "Laser Receiver", decode[productPage](t, w).Content[0].Name)

	w = s.do(http.MethodGet, "/api/products/category/Accessories", "", nil)
	assert.Equal(t, int64(1), decode[productPage](t, w).TotalElements)

	w = s.do(http.MethodGet, "/api/products/categories", "", nil)
	assert.JSONEq(t, `["Accessories","Measurement Tools","Power Tools"]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/products/count", "", nil)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/products/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imageUrl":"driver.jpg"`)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/products/999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/products/abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/products?minPrice=cheap", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", nil).Code)
}

func TestAdminCatalogRoutes(t *testing.T) {
	s := newServer(t, stringSource(catalogDoc))
	adminToken := s.login("admin", "admin123")
	userToken := s.login("user", "user123")

	newProduct := map[string]any{"name": "Cordless Saw", "price": "89.50", "stockQuantity": 4, "category": "Power Tools"}
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/products", "", newProduct).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/products", userToken, newProduct).Code)

	w := s.do(http.MethodPost, "/api/products", adminToken, newProduct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		ID uint `json:"id"`
	}](t, w)

	bad := map[string]any{"name": "Free", "price": 0, "stockQuantity": 1}
	w = s.do(http.MethodPost, "/api/products", adminToken, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"price must be greater than 0"}`, w.Body.String())

	updated := map[string]any{"name": "Cordless Saw II", "price": 99, "stockQuantity": 2}
	path := "/api/products/" + itoa(created.ID)
	w = s.do(http.MethodPut, path, adminToken, updated)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Cordless Saw II")

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, path, adminToken, updated).Code)
}

func TestReloadRoute(t *testing.T) {
	s := newServer(t, stringSource(`[{"name": "Only One", "price": 1, "stockQuantity": 1}]`))
	adminToken := s.login("admin", "admin123")

	w := s.do(http.MethodPost, "/api/products/reload", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = s.do(http.MethodGet, "/api/products/count", "", nil)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}

func TestReloadRouteWithMissingSource(t *testing.T) {
	s := newServer(t, service.FileSource("/nonexistent/products.json"))
	adminToken := s.login("admin", "admin123")

	w := s.do(http.MethodPost, "/api/products/reload", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/products/count", "", nil)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

type cartLine struct {
	ID         uint   `json:"id"`
	ProductID  uint   `json:"productId"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"totalPrice"`
}

func TestCartRoutes(t *testing.T) {
	s := newServer(t, stringSource(catalogDoc))
	userToken := s.login("user", "user123")
	adminToken := s.login("admin", "admin123")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/cart", "", nil).Code)

	// product 3 is the 10.00 battery pack
	w := s.do(http.MethodPost, "/api/cart/add", userToken, map[string]any{"productId": 3, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/cart/add", userToken, map[string]any{"productId": 3, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	line := decode[cartLine](t, w)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, "50.00", line.TotalPrice)

	w = s.do(http.MethodGet, "/api/cart", userToken, nil)
	lines := decode[[]cartLine](t, w)
	require.Len(t, lines, 1)

	assert.JSONEq(t, `{"total":"50.00"}`, s.do(http.MethodGet, "/api/cart/total", userToken, nil).Body.String())
	assert.JSONEq(t, `{"count":5}`, s.do(http.MethodGet, "/api/cart/count", userToken, nil).Body.String())

	itemPath := "/api/cart/item/" + itoa(line.ID)
	w = s.do(http.MethodPut, itemPath+"?quantity=1", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"total":"10.00"}`, s.do(http.MethodGet, "/api/cart/total", userToken, nil).Body.String())

	// someone else's line looks missing
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, itemPath+"?quantity=7", adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, itemPath, adminToken, nil).Code)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, itemPath+"?quantity=0", userToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, itemPath, userToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/cart/add", userToken, map[string]any{"productId": 999, "quantity": 1}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/cart/add", userToken, map[string]any{"productId": 3, "quantity": 0}).Code)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, itemPath, userToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, itemPath, userToken, nil).Code)

	_ = s.do(http.MethodPost, "/api/cart/add", userToken, map[string]any{"productId": 1, "quantity": 1})
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/cart/clear", userToken, nil).Code)
	assert.JSONEq(t, `[]`, s.do(http.MethodGet, "/api/cart", userToken, nil).Body.String())
	assert.JSONEq(t, `{"total":"0.00"}`, s.do(http.MethodGet, "/api/cart/total", userToken, nil).Body.String())
}

func TestAuthRoutes(t *testing.T) {
	s := newServer(t, stringSource(catalogDoc))

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "Newbie", "password": "secret1", "email": "n@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "newbie", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "bad", "password": "secret1", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.login("newbie", "secret1")

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "newbie", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "newbie"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
