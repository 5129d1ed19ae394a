package fakebackend

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jotme/internal/fakebackend/config"
	"github.com/dmitrijs2005/jotme/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// App serves a Server over HTTP until interrupted.
type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	opts := []Option{
		WithLogger(logger),
		WithIdentity(c.UserName, c.UserEmail),
		WithSigningKey([]byte(c.SigningKey)),
	}
	if c.OpenAuth {
		opts = append(opts, WithOpenAuth())
	}
	return &App{config: c, logger: logger, server: New(opts...)}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:              app.config.Addr,
		Handler:           app.server.Router(app.config.Prefix),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "fake backend listening", "addr", app.config.Addr, "prefix", app.config.Prefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
