package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog/app/config"
	"blog/app/logging"
	"blog/app/repositories"
	"blog/app/routes"
	"blog/app/views"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run the blog web server",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "listen address, overrides the config file"},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.LogLevel, cfg.Development)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return RunAppServer(ctx, cfg, logger.Sugar())
	},
}

// RunAppServer opens the database and serves the blog until ctx is done.
func RunAppServer(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	handler, closeDB, err := newHandler(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	log.Infow("starting blog service", "addr", ln.Addr().String(), "db", cfg.DBPath, "in_memory", cfg.InMemory)
	return serveHTTP(ctx, ln, handler, log)
}

func newHandler(cfg config.Config, log *zap.SugaredLogger) (http.Handler, func() error, error) {
	db, err := repositories.Open(repositories.Options{
		Path:     cfg.DBPath,
		InMemory: cfg.InMemory,
		Logger:   log,
	})
	if err != nil {
		return nil, nil, err
	}

	renderer, err := views.New(views.Options{SiteTitle: cfg.SiteTitle, Minify: cfg.MinifyHTML})
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	router, release := routes.SetupRoutes(db, renderer, log)
	closeAll := func() error {
		relErr := release()
		if err := db.Close(); err != nil {
			return err
		}
		return relErr
	}
	return router, closeAll, nil
}

// serveHTTP serves on ln until ctx is cancelled, then drains in-flight
// requests.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
