package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// backgroundWork is work that outlives the request that started it.
type backgroundWork interface {
	Wait(ctx context.Context) error
}

// App is the generation service: the HTTP server, its async generations and
// the optional prompt store pool.
type App struct {
	server          *http.Server
	background      backgroundWork
	db              *pgxpool.Pool
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// Run serves HTTP until SIGINT/SIGTERM or a server error, then shuts down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.closeDB()
		return err
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	return a.shutdown()
}

// shutdown stops accepting requests, lets running async generations deliver
// their callbacks, then closes the pool they may still read from.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully", zap.Duration("timeout", a.shutdownTimeout))

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		errs = append(errs, err)
	}

	if a.background != nil {
		a.logger.Info("Waiting for async generations")
		if err := a.background.Wait(ctx); err != nil {
			a.logger.Warn("Async generations did not finish before shutdown", zap.Error(err))
			errs = append(errs, err)
		}
	}

	a.closeDB()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.logger.Info("Application stopped gracefully")
	return nil
}

func (a *App) closeDB() {
	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
	}
}
