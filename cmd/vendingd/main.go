package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/vendingkit/pkg/api"
	"github.com/dmitrymomot/vendingkit/pkg/config"
	"github.com/dmitrymomot/vendingkit/pkg/httpserver"
	"github.com/dmitrymomot/vendingkit/pkg/inventory"
	"github.com/dmitrymomot/vendingkit/pkg/logger"
	"github.com/dmitrymomot/vendingkit/pkg/machine"
	"github.com/dmitrymomot/vendingkit/pkg/redisconn"
	"github.com/dmitrymomot/vendingkit/pkg/translog"
)

type appConfig struct {
	Addr            string        `env:"VENDINGD_ADDR" envDefault:":8080"`
	Env             string        `env:"VENDINGD_ENV" envDefault:"development"`
	CatalogPath     string        `env:"VENDINGD_CATALOG" envDefault:"catalog.yaml"`
	TranslogBackend string        `env:"VENDINGD_TRANSLOG" envDefault:"memory"` // "memory" or "redis"
	TranslogMax     int           `env:"VENDINGD_TRANSLOG_MAX" envDefault:"0"`  // 0 keeps the memory log unbounded
	ShutdownTimeout time.Duration `env:"VENDINGD_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Env, "vendingd"))
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("vendingd terminated", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	inv, err := inventory.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		slog.String("path", cfg.CatalogPath),
		slog.Int("products", inv.Len()))

	storage, cleanup, err := newTranslogStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	m := machine.New(inv,
		machine.WithTransactionLog(translog.NewRecorder(storage)),
		machine.WithLogger(log),
	)

	router := api.New(m, api.WithLogger(log)).Router()

	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithLogger(log),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
	)
	return srv.Run(ctx, router)
}

// newTranslogStorage picks the transaction log backend: Redis when
// configured, in-process memory otherwise.
func newTranslogStorage(ctx context.Context, cfg appConfig) (translog.Storage, func(), error) {
	if cfg.TranslogBackend == "redis" {
		var redisCfg redisconn.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		client, err := redisconn.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return translog.NewRedisStorage(client), func() { _ = client.Close() }, nil
	}

	var opts []translog.MemoryOption
	if cfg.TranslogMax > 0 {
		opts = append(opts, translog.WithMaxEntries(cfg.TranslogMax))
	}
	return translog.NewMemoryStorage(opts...), func() {}, nil
}
