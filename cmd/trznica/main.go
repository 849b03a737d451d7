package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/trznica/internal/api"
	"github.com/erazemk/trznica/internal/category"
	"github.com/erazemk/trznica/internal/config"
	"github.com/erazemk/trznica/internal/db"
	"github.com/erazemk/trznica/internal/events"
	"github.com/erazemk/trznica/internal/formtoken"
	"github.com/erazemk/trznica/internal/listing"
	"github.com/erazemk/trznica/internal/metrics"
	"github.com/erazemk/trznica/internal/store"
	"github.com/erazemk/trznica/internal/web"
)

func main() {
	fs := flag.NewFlagSet("trznica", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dsn string
	fs.StringVar(&dsn, "db", "", "")
	fs.StringVar(&dsn, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: trznica [flags]

Flags:
  -c, -config <path>      YAML config file (default: $CONFIG_PATH, else environment only)
  -d, -db <dsn>           database DSN (default: trznica.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Flags override the config file and the environment.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if dsn != "" {
		cfg.DB.DSN = dsn
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}
	if logPath != "" {
		cfg.Log.File = logPath
	}

	closeLog := setupLogger(cfg.Log)
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Ensure schema exists (idempotent).
	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "driver", cfg.DB.Driver)

	st := store.New(database)

	// Form signing secret is generated on first run and kept in the database.
	secret, err := st.GetSigningSecret(ctx)
	if err != nil {
		return fmt.Errorf("loading signing secret: %w", err)
	}

	categories, err := category.Load()
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	m := metrics.New()

	opts := []listing.Option{listing.WithRecorder(m)}
	var broker api.BrokerStatus
	if cfg.AMQP.URL != "" {
		notifier, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, events.WithRecorder(m))
		if err != nil {
			return fmt.Errorf("connecting to message broker: %w", err)
		}
		defer notifier.Close()
		opts = append(opts, listing.WithNotifier(notifier))
		broker = notifier
		slog.Info("publishing events", "exchange", cfg.AMQP.Exchange)
	}

	svc := listing.NewService(categories, st, st,
		store.Objects{Store: st, ObjectURLs: store.ObjectURLs{BaseURL: cfg.HTTP.PublicURL}},
		listing.Config{
			Bucket:         cfg.Storage.Bucket,
			MaxPhotoBytes:  cfg.Storage.MaxPhotoBytes,
			PhotoRejection: listing.PhotoRejection(cfg.Listing.PhotoRejection),
			UploadFailure:  listing.UploadFailure(cfg.Listing.UploadFailure),
			RecentLimit:    cfg.Listing.RecentLimit,
		},
		opts...,
	)

	webRouter, err := web.NewRouter(svc, st, formtoken.NewIssuer(secret, formtoken.DefaultExpiry))
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	apiRouter := api.NewRouter(svc, st, broker)
	mux.Handle("/api/", apiRouter)
	mux.Handle("GET /healthz", apiRouter)
	mux.Handle("GET /metrics", m.Handler())
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.LoggingMiddleware(m)(mux),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped, closing database")
	return nil
}
