package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"student-aid-matcher/config"
	"student-aid-matcher/db"
	"student-aid-matcher/handlers"
	"student-aid-matcher/logger"
	"student-aid-matcher/service"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API used by the desktop front-end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := service.New(store, log, cfg.Session.PageSize)
	if mode := cfg.Log.Mode; mode == "prod" || mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.NewAPIHandler(svc, log), log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to run server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSessionStore connects to Redis when an address is configured and falls
// back to process memory otherwise.
func newSessionStore(ctx context.Context, cfg config.Config, log *logger.Logger) (db.SessionStore, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info("No Redis address configured, keeping sessions in memory", "ttl", cfg.Session.TTL)
		return db.NewMemoryStore(cfg.Session.TTL), func() {}, nil
	}
	client, err := db.InitializeRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Successfully connected to Redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("Error closing Redis client", "error", err)
		}
	}
	return db.NewRedisStore(client, cfg.Session.TTL, log), closeFn, nil
}
