package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/stylehub/internal/config"
	"github.com/Skotchmaster/stylehub/internal/httpserver"
	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/stylehub/internal/middleware/logging"
	"github.com/Skotchmaster/stylehub/internal/middleware/session"
	"github.com/Skotchmaster/stylehub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("storefront_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	initCtx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 30*time.Second)
	in, err := setup(initCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer in.Close(logger)

	catalogSvc := &service.CatalogService{Products: in.Products, Categories: in.Categories}
	recentSvc := &service.RecentService{Store: in.Store, Products: in.Products}

	deps := &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: catalogSvc, Recent: recentSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Store: in.Store, Products: in.Products, Publisher: in.Publisher}},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Store: in.Store, Products: in.Products, Publisher: in.Publisher}},
		RecentHandler:   &httpserver.RecentHTTP{Svc: recentSvc},
		Session: session.Config{
			Secret: cfg.SessionSecret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.CookieSecure,
		},
		Ready: in.Ready,
	}
	if cfg.CSRFEnabled {
		c := csrf.DefaultConfig()
		c.Secure = cfg.CookieSecure
		deps.CSRF = &c
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(loggingmw.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{echo.HeaderContentType, csrf.DefaultConfig().HeaderName},
			AllowCredentials: true,
		}))
	}

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "catalog", cfg.CatalogSource, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutting_down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	logger.Info("shutdown_complete")
	return nil
}
