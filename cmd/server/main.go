package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/theuddeshya/Dynasty/internal/config"
	"github.com/theuddeshya/Dynasty/internal/core/graph"
	"github.com/theuddeshya/Dynasty/internal/domain"
	"github.com/theuddeshya/Dynasty/internal/handler"
	"github.com/theuddeshya/Dynasty/internal/hub"
	"github.com/theuddeshya/Dynasty/internal/loader"
	"github.com/theuddeshya/Dynasty/internal/logger"
	"github.com/theuddeshya/Dynasty/internal/logger/console"
	"github.com/theuddeshya/Dynasty/internal/metrics"
	"github.com/theuddeshya/Dynasty/internal/repository"
	"github.com/theuddeshya/Dynasty/internal/repository/sqlite"
	"github.com/theuddeshya/Dynasty/internal/service"
	"github.com/theuddeshya/Dynasty/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dataset := flag.String("dataset", "", "dataset file, URL, or \"store\" (overrides config)")
	watch := flag.Bool("watch", false, "reload the dataset file when it changes")
	flag.Parse()

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dataset != "" {
		cfg.Dataset.Source = *dataset
	}
	if *watch {
		cfg.Dataset.Watch = true
	}

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: cfg.Log.Debug,
		JSON:  cfg.Log.JSON,
	}))
	if path != "" {
		logger.Info("Config loaded", "path", path)
	}
	logger.Info("Starting family network explorer", "config", cfg.Summary())

	if err := run(cfg); err != nil {
		logger.Fatal("Server error", "err", err)
	}
	logger.Info("Server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := metrics.DefaultRegistry()

	var store repository.Repository
	if cfg.Store.Path != "" {
		repo, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open dataset store: %w", err)
		}
		defer repo.Close()
		store = repo
		logger.Info("Dataset store opened", "path", cfg.Store.Path)
	}

	var src loader.Source
	if cfg.Dataset.Source != "" {
		var err error
		src, err = loader.NewSource(cfg.Dataset.Source, cfg.Dataset.Format, store)
		if err != nil {
			return fmt.Errorf("invalid dataset source: %w", err)
		}
	}

	canvas := domain.DefaultCanvasPalette.WithOverrides(cfg.Palette.Canvas)
	badge := domain.DefaultBadgePalette.WithOverrides(cfg.Palette.Badge)
	builderOpts := []graph.Option{graph.WithPalette(canvas)}
	if cfg.Dataset.Seed != nil {
		builderOpts = append(builderOpts, graph.WithSeed(*cfg.Dataset.Seed))
	}

	eventBus := service.NewEventBus()
	svc := service.NewExplorerService(service.Options{
		Source:        src,
		Loader:        loader.New(graph.NewBuilder(builderOpts...)),
		Store:         store,
		EventBus:      eventBus,
		Metrics:       reg,
		CacheSize:     cfg.Filter.CacheSize,
		CanvasPalette: canvas,
		BadgePalette:  badge,
	})
	defer svc.Close()

	sseHub := hub.New(reg)
	events := make(chan service.Event, 100)
	eventBus.Subscribe(events)
	defer eventBus.Unsubscribe(events)

	mux := http.NewServeMux()
	handler.NewExplorerHandler(svc).Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", reg.Handler())

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handler.Chain(mux,
			handler.Recover,
			handler.CORS(cfg.Server.CORSOrigins),
			handler.Logger(reg),
		),
		ReadTimeout:  cfg.Server.ReadTimeout.Duration(),
		WriteTimeout: cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:  cfg.Server.IdleTimeout.Duration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return sseHub.Run(gctx) })
	g.Go(func() error { return hub.Forward(gctx, sseHub, events) })

	if src != nil {
		g.Go(func() error {
			reload(gctx, svc)
			return nil
		})
	} else {
		logger.Warn("No dataset source configured; serving an empty graph until a dataset is imported")
	}

	if fileSrc, ok := src.(*loader.FileSource); ok && cfg.Dataset.Watch {
		w := watcher.New(fileSrc.Path, func(ctx context.Context) { reload(ctx, svc) }).
			WithDebounce(cfg.Dataset.Debounce.Duration())
		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Dataset watcher stopped", "err", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		svc.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// reload loads the configured source; failures are reported through the
// load status, so only unexpected outcomes are logged here
func reload(ctx context.Context, svc *service.ExplorerService) {
	err := svc.Reload(ctx)
	switch {
	case err == nil, errors.Is(err, service.ErrSuperseded), errors.Is(err, service.ErrClosed):
	default:
		logger.Debug("Reload finished with a failed load", "err", err)
	}
}
