package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/seed"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/service/views"
)

var testNow = time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC)

type listResponse struct {
	Data  []map[string]any `json:"data"`
	Count int              `json:"count"`
}

func newEngine(t *testing.T, sources inventory.Sources) *gin.Engine {
	t.Helper()
	inv := inventory.NewService(sources, inventory.Options{Now: func() time.Time { return testNow }})
	_, err := inv.Load(context.Background())
	require.NoError(t, err)

	settings := config.Settings{CompanyName: "Acme", CurrencySymbol: "$", LowStockThreshold: 5}
	return New(Deps{
		Inventory: inv,
		Reporting: reporting.NewService(inv, settings, time.UTC, nil),
		Sessions:  views.NewSessionManager(),
		Settings:  settings,
	}, nil)
}

func do(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var out listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func ids(list listResponse) []string {
	out := make([]string, len(list.Data))
	for i, row := range list.Data {
		out[i], _ = row["id"].(string)
	}
	return out
}

func TestHealthz(t *testing.T) {
	rec := do(t, newEngine(t, inventory.SeedSources()), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListItems(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "search matches description", target: "/api/items?q=usb", want: []string{"item-8", "item-3"}},
		{name: "low stock filter", target: "/api/items?stock=low-stock", want: []string{"item-6", "item-3"}},
		{name: "all disables filter", target: "/api/items?category=all&q=wireless", want: []string{"item-9", "item-1", "item-2"}},
		{name: "quantity ascending", target: "/api/items?category=cat-3&sort=quantity&dir=asc", want: []string{"item-6", "item-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, engine, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			list := decodeList(t, rec)
			assert.Equal(t, tt.want, ids(list))
			assert.Equal(t, len(tt.want), list.Count)
		})
	}
}

func TestListRejectsInvalidQuery(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	rec := do(t, engine, http.MethodGet, "/api/items?color=red", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"param":"color"`)

	rec = do(t, engine, http.MethodGet, "/api/items?sort=name&dir=sideways", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodGet, "/api/movements?range=fortnight", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemLifecycle(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	rec := do(t, engine, http.MethodPost, "/api/items", `{"name":"Stapler","sku":"ST-001","quantity":12,"reorder_level":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	assert.True(t, strings.HasPrefix(id, "item-"), id)

	rec = do(t, engine, http.MethodPut, "/api/items/"+id, `{"name":"Heavy Stapler","sku":"ST-001","quantity":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"name":"Heavy Stapler"`)

	rec = do(t, engine, http.MethodGet, "/api/items/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, engine, http.MethodDelete, "/api/items/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, engine, http.MethodGet, "/api/items/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	list := decodeList(t, do(t, engine, http.MethodGet, "/api/items", ""))
	assert.Equal(t, 9, list.Count)
}

func TestWriteErrors(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{name: "missing name", method: http.MethodPost, target: "/api/items", body: `{"sku":"X-1"}`, status: http.StatusBadRequest},
		{name: "negative quantity", method: http.MethodPost, target: "/api/items", body: `{"name":"X","sku":"X-1","quantity":-1}`, status: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, target: "/api/items", body: `{`, status: http.StatusBadRequest},
		{name: "duplicate id", method: http.MethodPost, target: "/api/items", body: `{"id":"item-1","name":"X","sku":"X-1"}`, status: http.StatusConflict},
		{name: "update unknown", method: http.MethodPut, target: "/api/items/item-404", body: `{"name":"X","sku":"X-1"}`, status: http.StatusNotFound},
		{name: "delete unknown", method: http.MethodDelete, target: "/api/customers/cust-404", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, engine, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

// readOnlyCategories serves the seed categories and rejects every write.
type readOnlyCategories struct{}

func (readOnlyCategories) Name() string { return "postgrest" }

func (readOnlyCategories) List(context.Context) ([]models.Category, error) {
	return seed.Categories(), nil
}

func (readOnlyCategories) Insert(context.Context, models.Category) (models.Category, error) {
	return models.Category{}, errors.New("connection reset")
}

func (readOnlyCategories) Update(context.Context, models.Category) (models.Category, error) {
	return models.Category{}, errors.New("connection reset")
}

func (readOnlyCategories) Delete(context.Context, string) error {
	return errors.New("connection reset")
}

func TestRemoteWriteFailureIsBadGateway(t *testing.T) {
	sources := inventory.SeedSources()
	sources.Categories = readOnlyCategories{}
	engine := newEngine(t, sources)

	rec := do(t, engine, http.MethodPost, "/api/categories", `{"name":"Tools"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = do(t, engine, http.MethodPut, "/api/categories/cat-1", `{"name":"Gadgets"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	list := decodeList(t, do(t, engine, http.MethodGet, "/api/categories", ""))
	assert.Equal(t, 3, list.Count)
}

func TestFallbackStoreAcceptsLocalWrites(t *testing.T) {
	engine := newEngine(t, inventory.UnavailableSources("postgrest", errors.New("connection refused")))

	rec := do(t, engine, http.MethodPut, "/api/categories/cat-1", `{"name":"Gadgets"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, engine, http.MethodGet, "/api/categories/cat-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Gadgets"`)

	rec = do(t, engine, http.MethodPost, "/api/categories", `{"name":"Tools"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	list := decodeList(t, do(t, engine, http.MethodGet, "/api/categories", ""))
	assert.Equal(t, 4, list.Count)

	rec = do(t, engine, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fallback":true`)
}

func TestCustomerRoutes(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	stats := decodeList(t, do(t, engine, http.MethodGet, "/api/customers/stats?sort=total_spent&dir=desc", ""))
	assert.Equal(t, 5, stats.Count)

	rec := do(t, engine, http.MethodGet, "/api/customers/cust-1/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeList(t, rec).Count)

	rec = do(t, engine, http.MethodGet, "/api/customers/cust-9/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeList(t, rec).Count)
	assert.Contains(t, rec.Body.String(), inventory.UnknownCustomer)

	rec = do(t, engine, http.MethodGet, "/api/customers/cust-2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletedCustomerKeepsOrders(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	rec := do(t, engine, http.MethodDelete, "/api/customers/cust-1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, engine, http.MethodGet, "/api/customers/cust-1/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeList(t, rec).Count)

	var body struct {
		Customer struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cust-1", body.Customer.ID)
	assert.Equal(t, inventory.UnknownCustomer, body.Customer.Name)
}

func TestItemMovements(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	rec := do(t, engine, http.MethodGet, "/api/items/item-1/movements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []string{"mov-001", "mov-002", "mov-010"}, ids(decodeList(t, rec)))
}

func TestReports(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	rec := do(t, engine, http.MethodGet, "/api/reports/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash reporting.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, 9, dash.TotalItems)
	assert.Equal(t, 319, dash.TotalStock)

	rec = do(t, engine, http.MethodGet, "/api/reports/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme inventory report")

	rec = do(t, engine, http.MethodGet, "/api/reports/top-products?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var top []reporting.ProductSales
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	assert.Len(t, top, 2)

	rec = do(t, engine, http.MethodGet, "/api/reports/top-products?limit=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, path := range []string{"/movements/stats", "/movements/monthly", "/sales/monthly", "/stock-outs/reasons", "/low-stock"} {
		rec = do(t, engine, http.MethodGet, "/api/reports"+path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestSettings(t *testing.T) {
	rec := do(t, newEngine(t, inventory.SeedSources()), http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"company_name":"Acme"`)
}

func TestViewSessions(t *testing.T) {
	engine := newEngine(t, inventory.SeedSources())

	rec := do(t, engine, http.MethodGet, "/api/sessions/s1/views/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"query":""`)

	rec = do(t, engine, http.MethodPut, "/api/sessions/s1/views/items",
		`{"query":"wireless","sort":{"column":"quantity","direction":"desc"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, engine, http.MethodGet, "/api/sessions/s1/views/items/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var results struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Equal(t, []string{"item-1", "item-2", "item-9"}, ids(listResponse{Data: results.Data}))

	// Another session keeps its own criteria.
	rec = do(t, engine, http.MethodGet, "/api/sessions/s2/views/items/results", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results.Data, 9)

	rec = do(t, engine, http.MethodPut, "/api/sessions/s1/views/items", `{"filters":{"color":"red"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, engine, http.MethodPut, "/api/sessions/s1/views/widgets", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, engine, http.MethodDelete, "/api/sessions/s1/views/items", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, engine, http.MethodGet, "/api/sessions/s1/views/items", "")
	assert.Contains(t, rec.Body.String(), `"query":""`)

	rec = do(t, engine, http.MethodGet, "/api/sessions/s1/views/customer-stats/results", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
