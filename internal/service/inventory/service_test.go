package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/store"
)

var testNow = time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC)

func loadedService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(SeedSources(), Options{Now: func() time.Time { return testNow }})
	notices, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, notices)
	return svc
}

func itemIDs(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestLoadSeedSources(t *testing.T) {
	svc := loadedService(t)

	assert.Equal(t, 9, svc.Items.Len())
	assert.Equal(t, 3, svc.Categories.Len())
	assert.Equal(t, 5, svc.Orders.Len())
	for _, status := range svc.Statuses() {
		assert.True(t, status.Loaded, status.Name)
		assert.False(t, status.Fallback, status.Name)
		assert.Equal(t, "seed", status.Source)
	}
}

func TestLoadFallsBackWhenRemoteUnavailable(t *testing.T) {
	svc := NewService(UnavailableSources("postgrest", errors.New("dial tcp: connection refused")), Options{})

	notices, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, notices, 9)
	assert.Equal(t, 9, svc.Items.Len())
	for _, status := range svc.Statuses() {
		assert.True(t, status.Fallback, status.Name)
		assert.Contains(t, status.Notice, "connection refused")
	}
}

// memSource is an empty remote table that accepts every write.
type memSource[T store.Record[T]] struct {
	mu   sync.Mutex
	rows []T
}

func (m *memSource[T]) Name() string { return "memory" }

func (m *memSource[T]) List(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]T(nil), m.rows...), nil
}

func (m *memSource[T]) Insert(_ context.Context, r T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, r)
	return r, nil
}

func (m *memSource[T]) Update(_ context.Context, r T) (T, error) { return r, nil }

func (m *memSource[T]) Delete(context.Context, string) error { return nil }

func TestLoadSeedsEmptyRemoteAndLinksItems(t *testing.T) {
	sources := SeedSources()
	categories := &memSource[models.Category]{
		rows: []models.Category{{Meta: models.Meta{ID: "c-remote"}, Name: "Electronics"}},
	}
	items := &memSource[models.Item]{}
	sources.Categories = categories
	sources.Items = items

	svc := NewService(sources, Options{SeedEmpty: true})
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, items.rows, 9)
	for _, item := range svc.Items.Snapshot() {
		assert.Equal(t, "c-remote", item.CategoryID, item.Name)
		assert.Regexp(t, `^item-`, item.ID)
	}
	// Categories loaded non-empty, so nothing was inserted.
	assert.Len(t, categories.rows, 1)
}

func TestItemSchemaLowStock(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.Items.Query(query.Spec{Filters: query.Filters{"stock": models.StockLow}}, ItemSchema, testNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"item-6", "item-3"}, itemIDs(got))
}

func TestItemSchemaSearchAndPriceSort(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.Items.Query(query.Spec{Query: "usb"}, ItemSchema, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"item-8", "item-3"}, itemIDs(got))

	got, err = svc.Items.Query(query.Spec{
		Filters: query.Filters{"category": "cat-3"},
		Sort:    query.Sort{Column: "price", Direction: query.Desc},
	}, ItemSchema, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"item-5", "item-6"}, itemIDs(got))
}

func TestOrderSchemaStatusIgnoresCase(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.Orders.Query(query.Spec{Filters: query.Filters{"status": "Completed"}}, OrderSchema, testNow)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "order-5", got[0].ID)
	assert.Equal(t, "order-1", got[1].ID)

	_, err = svc.Orders.Query(query.Spec{Filters: query.Filters{"status": "shipped"}}, OrderSchema, testNow)
	var qerr *query.Error
	assert.ErrorAs(t, err, &qerr)
}

func TestOrderSchemaIDAlias(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.Orders.Query(query.Spec{Sort: query.Sort{Column: "id", Direction: query.Desc}}, OrderSchema, testNow)
	require.NoError(t, err)
	assert.Equal(t, "10005", got[0].OrderNumber)
}

func TestMovementSchemaWarehouseMatchesEitherEnd(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.Movements.Query(query.Spec{Filters: query.Filters{"warehouse": "Main Warehouse"}}, MovementSchema, testNow)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"mov-008", "mov-010", "mov-004", "mov-006", "mov-002", "mov-001"}, ids)
}

func TestMovementSchemaRange(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.Movements.Query(query.Spec{Filters: query.Filters{"range": "thisMonth"}}, MovementSchema, testNow)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "mov-007", got[0].ID)
	assert.Equal(t, "mov-008", got[1].ID)
	assert.Equal(t, "mov-010", got[2].ID)
}

func TestResolveCustomer(t *testing.T) {
	svc := loadedService(t)

	assert.Equal(t, "Jane Doe", svc.ResolveCustomer("cust-2").Name)

	missing := svc.ResolveCustomer("cust-404")
	assert.Equal(t, "cust-404", missing.ID)
	assert.Equal(t, UnknownCustomer, missing.Name)
}

func TestCustomerOrders(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.CustomerOrders("cust-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "order-1", got[0].ID)

	got, err = svc.CustomerOrders("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItemMovements(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.ItemMovements("item-1")
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"mov-010", "mov-002", "mov-001"}, ids)
}

func TestCustomerStatsSortedBySpend(t *testing.T) {
	svc := loadedService(t)

	got, err := svc.CustomerStats(query.Spec{Sort: query.Sort{Column: "total_spent", Direction: query.Desc}})
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"cust-2", "cust-4", "cust-5", "cust-3", "cust-1"}, ids)
	assert.InDelta(t, 249.99, got[0].TotalSpent, 1e-9)
	assert.Equal(t, 1, got[0].TotalOrders)
}

func TestRemovedCustomerRendersPlaceholder(t *testing.T) {
	svc := loadedService(t)
	require.NoError(t, svc.Customers.Remove(context.Background(), "cust-3"))

	order, ok := svc.Orders.Get("order-3")
	require.True(t, ok)
	assert.Equal(t, UnknownCustomer, svc.ResolveCustomer(order.CustomerID).Name)
}
