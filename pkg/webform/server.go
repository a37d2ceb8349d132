package webform

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultGrace is the shutdown grace period used when none is configured.
const DefaultGrace = 5 * time.Second

// Serve listens on addr until ctx is cancelled, then shuts down, waiting up
// to grace for in-flight requests.
func Serve(ctx context.Context, addr string, handler http.Handler, grace time.Duration, logger logrus.FieldLogger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("webform: listen %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, handler, grace, logger)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration, logger logrus.FieldLogger) error {
	if grace <= 0 {
		grace = DefaultGrace
	}
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.WithField("addr", ln.Addr().String()).Info("listening")

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("webform: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("webform: shutdown: %w", err)
	}
	return nil
}
