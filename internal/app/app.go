// Package app assembles the stores, services and export sinks from the
// configuration. Both the HTTP server and the operator CLI start here.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/bolt"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/postgrest"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/internal/service/views"
	"github.com/mamadbah2/stockroom/internal/store"
	postgrestclient "github.com/mamadbah2/stockroom/pkg/clients/postgrest"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

const connectTimeout = 10 * time.Second

// App holds the wired services of one process.
type App struct {
	Config    *config.Config
	Inventory *inventory.Service
	Reporting *reporting.Service
	Sessions  *views.SessionManager
	// Notices lists the stores serving seed data because their source failed.
	Notices []*store.FallbackError
	// Source is the resolved DATA_SOURCE kind.
	Source string

	closers []closer
	logger  *zap.Logger
}

type closer struct {
	name  string
	close func(context.Context) error
}

// New opens the configured data source, loads every store and registers the
// report sinks. A remote that cannot be reached does not fail startup: the
// stores fall back to their seed records and the notices are kept on App.
func New(ctx context.Context, cfg *config.Config, base *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	log := logger.Named(base, "app")

	loc, err := cfg.Reporting.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Sessions: views.NewSessionManager(),
		Source:   cfg.SourceKind(),
		logger:   log,
	}

	sources, mongoRepo := a.openSources(ctx)

	a.Inventory = inventory.NewService(sources, inventory.Options{
		SeedEmpty: cfg.Data.SeedEmptyRemote && a.Source != config.SourceSeed,
		Logger:    logger.Named(base, "svc.inventory"),
		Now:       func() time.Time { return time.Now().In(loc) },
	})

	notices, err := a.Inventory.Load(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("load stores: %w", err)
	}
	a.Notices = notices
	for _, notice := range notices {
		log.Warn("serving seed data", zap.String("store", notice.Store), zap.String("source", notice.Source), zap.Error(notice.Err))
	}

	a.Reporting = reporting.NewService(a.Inventory, cfg.Settings, loc, logger.Named(base, "svc.reporting"))
	a.registerSinks(ctx, mongoRepo, logger.Named(base, "repo.sheets"))

	log.Info("application ready", zap.String("source", a.Source), zap.Int("fallbacks", len(notices)))
	return a, nil
}

// openSources builds the sources of the resolved kind. It returns the MongoDB
// repository when one was connected so the snapshot sink can share it.
func (a *App) openSources(ctx context.Context) (inventory.Sources, *mongodb.Repository) {
	cfg := a.Config

	switch a.Source {
	case config.SourcePostgrest:
		return postgrestSources(postgrestclient.NewClient(cfg.Supabase), cfg.Supabase), nil

	case config.SourceMongoDB:
		repo, err := a.connectMongo(ctx)
		if err != nil {
			a.logger.Warn("mongodb unavailable, falling back to seed data", zap.Error(err))
			return inventory.UnavailableSources(config.SourceMongoDB, err), nil
		}
		return mongoSources(repo), repo

	case config.SourceBolt:
		db, err := bolt.Open(cfg.Bolt.Path)
		if err != nil {
			a.logger.Warn("bolt database unavailable, falling back to seed data", zap.String("path", cfg.Bolt.Path), zap.Error(err))
			return inventory.UnavailableSources(config.SourceBolt, err), nil
		}
		a.closers = append(a.closers, closer{name: "bolt", close: func(context.Context) error { return db.Close() }})
		return boltSources(db), nil

	default:
		return inventory.SeedSources(), nil
	}
}

func (a *App) connectMongo(ctx context.Context) (*mongodb.Repository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	repo, err := mongodb.NewRepository(connectCtx, a.Config.MongoDB.URI, a.Config.MongoDB.DBName)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer{name: "mongodb", close: repo.Close})
	return repo, nil
}

// registerSinks adds the MongoDB and Google Sheets snapshot exports that are
// configured. Sinks that cannot be initialised are skipped with a warning.
func (a *App) registerSinks(ctx context.Context, mongoRepo *mongodb.Repository, sheetsLogger *zap.Logger) {
	cfg := a.Config

	if mongoRepo == nil && cfg.MongoDB.URI != "" && a.Source != config.SourceMongoDB {
		repo, err := a.connectMongo(ctx)
		if err != nil {
			a.logger.Warn("mongodb snapshot sink disabled", zap.Error(err))
		} else {
			mongoRepo = repo
		}
	}
	if mongoRepo != nil {
		a.Reporting.AddSink("mongodb", mongoRepo)
	}

	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, sheetsLogger)
		if err != nil {
			a.logger.Warn("google sheets sink disabled", zap.Error(err))
			return
		}
		a.Reporting.AddSink("sheets", repo)
	}
}

// Close releases every opened connection, newest first.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range slices.Backward(a.closers) {
		if err := c.close(ctx); err != nil {
			a.logger.Error("failed to close resource", zap.String("resource", c.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func postgrestSources(c postgrestclient.Client, cfg config.SupabaseConfig) inventory.Sources {
	return inventory.Sources{
		Items:          postgrest.Table[models.Item](c, cfg.Table(inventory.TableItems)),
		Categories:     postgrest.Table[models.Category](c, cfg.Table(inventory.TableCategories)),
		Suppliers:      postgrest.Table[models.Supplier](c, cfg.Table(inventory.TableSuppliers)),
		PurchaseOrders: postgrest.Table[models.PurchaseOrder](c, cfg.Table(inventory.TablePurchaseOrders)),
		StockOuts:      postgrest.Table[models.StockOutRecord](c, cfg.Table(inventory.TableStockOuts)),
		Orders:         postgrest.Table[models.Order](c, cfg.Table(inventory.TableOrders)),
		Movements:      postgrest.Table[models.Movement](c, cfg.Table(inventory.TableMovements)),
		Customers:      postgrest.Table[models.Customer](c, cfg.Table(inventory.TableCustomers)),
		Users:          postgrest.Table[models.User](c, cfg.Table(inventory.TableUsers)),
	}
}

func mongoSources(r *mongodb.Repository) inventory.Sources {
	return inventory.Sources{
		Items:          mongodb.Collection[models.Item](r, inventory.TableItems),
		Categories:     mongodb.Collection[models.Category](r, inventory.TableCategories),
		Suppliers:      mongodb.Collection[models.Supplier](r, inventory.TableSuppliers),
		PurchaseOrders: mongodb.Collection[models.PurchaseOrder](r, inventory.TablePurchaseOrders),
		StockOuts:      mongodb.Collection[models.StockOutRecord](r, inventory.TableStockOuts),
		Orders:         mongodb.Collection[models.Order](r, inventory.TableOrders),
		Movements:      mongodb.Collection[models.Movement](r, inventory.TableMovements),
		Customers:      mongodb.Collection[models.Customer](r, inventory.TableCustomers),
		Users:          mongodb.Collection[models.User](r, inventory.TableUsers),
	}
}

func boltSources(d *bolt.DB) inventory.Sources {
	return inventory.Sources{
		Items:          bolt.Table[models.Item](d, inventory.TableItems),
		Categories:     bolt.Table[models.Category](d, inventory.TableCategories),
		Suppliers:      bolt.Table[models.Supplier](d, inventory.TableSuppliers),
		PurchaseOrders: bolt.Table[models.PurchaseOrder](d, inventory.TablePurchaseOrders),
		StockOuts:      bolt.Table[models.StockOutRecord](d, inventory.TableStockOuts),
		Orders:         bolt.Table[models.Order](d, inventory.TableOrders),
		Movements:      bolt.Table[models.Movement](d, inventory.TableMovements),
		Customers:      bolt.Table[models.Customer](d, inventory.TableCustomers),
		Users:          bolt.Table[models.User](d, inventory.TableUsers),
	}
}
