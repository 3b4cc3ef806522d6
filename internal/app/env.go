package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/config"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/logging"
	"github.com/blackwell-systems/navwatch/internal/navigator"
	"github.com/blackwell-systems/navwatch/internal/output"
	"github.com/blackwell-systems/navwatch/internal/store"
)

// env holds what every command needs: configuration, logger, store and
// catalog.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *store.DB
	catalog catalog.Catalog
}

// setup loads configuration, opens the store and reads the catalog.
// Callers must Close the returned env.
func setup() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	output.ConfigureColor(cfg.Output.Color, flagNoColor)

	logger, err := logging.New(flagVerbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		_ = logging.Sync(logger)
		return nil, fmt.Errorf("opening store: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		_ = db.Close()
		_ = logging.Sync(logger)
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Debug("environment ready",
		zap.String("db", dbPath),
		zap.String("catalog", cfg.CatalogPath),
		zap.Int("items", len(cat)),
	)

	return &env{cfg: cfg, logger: logger, db: db, catalog: cat}, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() error {
	err := e.db.Close()
	_ = logging.Sync(e.logger)
	return err
}

// newEngine builds an engine from the configuration.
func (e *env) newEngine() *navigator.Engine {
	opts := e.cfg.EngineOptions()
	opts.Logger = e.logger
	return navigator.New(opts)
}

// engineFor builds an engine holding the actor's retained events.
func (e *env) engineFor(actor string) (*navigator.Engine, error) {
	since := time.Now().Add(-e.cfg.Windows.Retention)
	evs, err := e.db.EventsSince(actor, since)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	engine := e.newEngine()
	engine.TrackAll(evs)
	return engine, nil
}

func currentContext() events.Context {
	return events.ParseContext(flagContext)
}
