package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run starts the hub, the Redis subscriber and the HTTP listener, then
// blocks until a shutdown signal arrives. Teardown runs in dependency
// order: stop ingesting control events first, then drain the hub, then
// stop the listener.
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("map handlers: %w", err)
	}

	go srv.hubUC.Run()
	srv.logger.Info(ctx, "Hub started")

	if err := srv.subscriber.Start(); err != nil {
		return fmt.Errorf("start subscriber: %w", err)
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler: srv.gin,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	srv.logger.Infof(ctx, "HTTP server started on %s:%d", srv.host, srv.port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		srv.logger.Errorf(ctx, "HTTP server error: %v", err)
		return err
	case sig := <-sigCh:
		srv.logger.Infof(ctx, "Received signal %s, stopping", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.subscriber.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "Subscriber shutdown error: %v", err)
	}
	if err := srv.hubUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "Hub shutdown error: %v", err)
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}

	srv.logger.Info(ctx, "Service stopped")
	return nil
}
