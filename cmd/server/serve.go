package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/api"
	"github.com/jengzang/habitminer/internal/database"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is required to serve (set HABITMINER_AUTH_JWT_SECRET)")
			}
			gin.SetMode(cfg.Server.Mode)

			if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
				return fmt.Errorf("create db dir: %w", err)
			}
			if err := database.Init(database.Config{
				Path:         cfg.Database.Path,
				MaxOpenConns: cfg.Database.MaxOpenConns,
				BusyTimeout:  cfg.Database.BusyTimeoutMS,
			}, logger.Named("database")); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			namer, err := newNamer(cfg.Naming, false, logger)
			if err != nil {
				return err
			}

			router, err := api.SetupRouter(cfg, database.GetDB(), namer, logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      router,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
