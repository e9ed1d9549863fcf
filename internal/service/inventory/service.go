// Package inventory owns the record stores of every dashboard domain and the
// cross-store lookups built on them.
package inventory

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/aggregate"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/query"
	"github.com/mamadbah2/stockroom/internal/repository/seed"
	"github.com/mamadbah2/stockroom/internal/store"
)

// UnknownCustomer is shown for orders whose customer no longer exists.
const UnknownCustomer = "Unknown customer"

// Table names of every domain, before any backend prefix.
const (
	TableItems          = "inventory_items"
	TableCategories     = "categories"
	TableSuppliers      = "suppliers"
	TablePurchaseOrders = "purchase_orders"
	TableStockOuts      = "stock_outs"
	TableOrders         = "customer_orders"
	TableMovements      = "stock_movements"
	TableCustomers      = "customers"
	TableUsers          = "users"
)

// Sources are the backends of every store.
type Sources struct {
	Items          store.Source[models.Item]
	Categories     store.Source[models.Category]
	Suppliers      store.Source[models.Supplier]
	PurchaseOrders store.Source[models.PurchaseOrder]
	StockOuts      store.Source[models.StockOutRecord]
	Orders         store.Source[models.Order]
	Movements      store.Source[models.Movement]
	Customers      store.Source[models.Customer]
	Users          store.Source[models.User]
}

// SeedSources returns sources serving the fixed seed records.
func SeedSources() Sources {
	return Sources{
		Items:          store.Fixed(seed.Items),
		Categories:     store.Fixed(seed.Categories),
		Suppliers:      store.Fixed(seed.Suppliers),
		PurchaseOrders: store.Fixed(seed.PurchaseOrders),
		StockOuts:      store.Fixed(seed.StockOuts),
		Orders:         store.Fixed(seed.Orders),
		Movements:      store.Fixed(seed.Movements),
		Customers:      store.Fixed(seed.Customers),
		Users:          store.Fixed(seed.Users),
	}
}

// UnavailableSources returns sources that fail with cause, so every store
// falls back to its seed records with a notice.
func UnavailableSources(name string, cause error) Sources {
	return Sources{
		Items:          store.Unavailable[models.Item](name, cause),
		Categories:     store.Unavailable[models.Category](name, cause),
		Suppliers:      store.Unavailable[models.Supplier](name, cause),
		PurchaseOrders: store.Unavailable[models.PurchaseOrder](name, cause),
		StockOuts:      store.Unavailable[models.StockOutRecord](name, cause),
		Orders:         store.Unavailable[models.Order](name, cause),
		Movements:      store.Unavailable[models.Movement](name, cause),
		Customers:      store.Unavailable[models.Customer](name, cause),
		Users:          store.Unavailable[models.User](name, cause),
	}
}

// Options tune every store of the service.
type Options struct {
	SeedEmpty bool
	Now       func() time.Time
	Logger    *zap.Logger
}

// Service holds one store per domain.
type Service struct {
	Items          *store.Store[models.Item]
	Categories     *store.Store[models.Category]
	Suppliers      *store.Store[models.Supplier]
	PurchaseOrders *store.Store[models.PurchaseOrder]
	StockOuts      *store.Store[models.StockOutRecord]
	Orders         *store.Store[models.Order]
	Movements      *store.Store[models.Movement]
	Customers      *store.Store[models.Customer]
	Users          *store.Store[models.User]

	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the stores. Nothing is read until Load.
func NewService(sources Sources, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Service{now: now, logger: logger}

	s.Categories = store.New(TableCategories, sources.Categories, seed.Categories,
		storeOptions[models.Category](opts, logger, "cat"))
	s.Suppliers = store.New(TableSuppliers, sources.Suppliers, seed.Suppliers,
		storeOptions[models.Supplier](opts, logger, "sup"))

	itemOpts := storeOptions[models.Item](opts, logger, "item")
	itemOpts.RemoteSeed = func() []models.Item {
		return seed.LinkItems(seed.Items(), s.Categories.Snapshot(), s.Suppliers.Snapshot())
	}
	s.Items = store.New(TableItems, sources.Items, seed.Items, itemOpts)

	s.PurchaseOrders = store.New(TablePurchaseOrders, sources.PurchaseOrders, seed.PurchaseOrders,
		storeOptions[models.PurchaseOrder](opts, logger, "po"))
	s.StockOuts = store.New(TableStockOuts, sources.StockOuts, seed.StockOuts,
		storeOptions[models.StockOutRecord](opts, logger, "so"))
	s.Orders = store.New(TableOrders, sources.Orders, seed.Orders,
		storeOptions[models.Order](opts, logger, "order"))
	s.Movements = store.New(TableMovements, sources.Movements, seed.Movements,
		storeOptions[models.Movement](opts, logger, "mov"))
	s.Customers = store.New(TableCustomers, sources.Customers, seed.Customers,
		storeOptions[models.Customer](opts, logger, "cust"))
	s.Users = store.New(TableUsers, sources.Users, seed.Users,
		storeOptions[models.User](opts, logger, "user"))

	return s
}

func storeOptions[T any](opts Options, logger *zap.Logger, prefix string) store.Options[T] {
	return store.Options[T]{
		IDPrefix:  prefix,
		SeedEmpty: opts.SeedEmpty,
		Now:       opts.Now,
		Logger:    logger.Named("store"),
	}
}

type loader interface {
	Load(ctx context.Context) error
}

// Load reads every store once. Categories and suppliers load first because
// seeding an empty item table links items to their rows. Fallback notices are
// returned; any other error aborts the load.
func (s *Service) Load(ctx context.Context) ([]*store.FallbackError, error) {
	stages := [][]loader{
		{s.Categories, s.Suppliers},
		{s.Items, s.PurchaseOrders, s.StockOuts, s.Orders, s.Movements, s.Customers, s.Users},
	}

	var notices []*store.FallbackError
	for _, stage := range stages {
		for _, l := range stage {
			err := l.Load(ctx)
			if err == nil {
				continue
			}
			var fallback *store.FallbackError
			if !errors.As(err, &fallback) {
				return notices, err
			}
			notices = append(notices, fallback)
		}
	}

	s.logger.Info("stores loaded", zap.Int("fallbacks", len(notices)))
	return notices, nil
}

// Statuses reports the load status of every store.
func (s *Service) Statuses() []store.Status {
	return []store.Status{
		s.Items.Status(),
		s.Categories.Status(),
		s.Suppliers.Status(),
		s.PurchaseOrders.Status(),
		s.StockOuts.Status(),
		s.Orders.Status(),
		s.Movements.Status(),
		s.Customers.Status(),
		s.Users.Status(),
	}
}

// Now is the clock used to evaluate date ranges.
func (s *Service) Now() time.Time {
	return s.now()
}

// ResolveCustomer returns the customer stored under id, or a placeholder
// named UnknownCustomer when the reference dangles.
func (s *Service) ResolveCustomer(id string) models.Customer {
	if c, ok := s.Customers.Get(id); ok {
		return c
	}
	return models.Customer{Meta: models.Meta{ID: id}, Name: UnknownCustomer}
}

// CustomerOrders returns the orders of one customer, newest first.
func (s *Service) CustomerOrders(customerID string) ([]models.Order, error) {
	if customerID == "" {
		return nil, nil
	}
	return s.Orders.Query(query.Spec{
		Filters: query.Filters{"customer": customerID},
		Sort:    query.Sort{Column: "date", Direction: query.Desc},
	}, OrderSchema, s.now())
}

// ItemMovements returns the movements of one item, newest first.
func (s *Service) ItemMovements(itemID string) ([]models.Movement, error) {
	if itemID == "" {
		return nil, nil
	}
	return s.Movements.Query(query.Spec{
		Filters: query.Filters{"product": itemID},
		Sort:    query.Sort{Column: "date", Direction: query.Desc},
	}, MovementSchema, s.now())
}

// CustomerStats derives per-customer order totals and runs spec over them.
func (s *Service) CustomerStats(spec query.Spec) ([]aggregate.CustomerStats, error) {
	stats := aggregate.CustomerOrderStats(s.Customers.Snapshot(), s.Orders.Snapshot())
	return query.Execute(stats, spec, CustomerStatsSchema, s.now())
}
