// Package health runs the liveness endpoint every binary exposes. /ping is a
// plain liveness probe; /health also pings the backing stores.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Dependency is one named backing store whose connectivity the /health
// endpoint reports.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

// Run starts the health server in the background and shuts it down when ctx
// is cancelled.
func Run(ctx context.Context, addr string, service string, readHeaderTimeout time.Duration, deps ...Dependency) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlePing)
	mux.HandleFunc("/health", handleHealth(deps))

	if readHeaderTimeout <= 0 {
		slog.Error("read_header_timeout must be specified in config")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("Health server listening", "service", service, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Health server error", "service", service, "error", err)
		}
	}()
}

// AddrFor validates the configured port.
func AddrFor(port int) string {
	if port <= 0 {
		slog.Error("port must be greater than 0")
		os.Exit(1)
	}
	return fmt.Sprintf(":%d", port)
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

func handleHealth(deps []Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		report := make(map[string]string, len(deps))
		for _, dep := range deps {
			if err := dep.Check(ctx); err != nil {
				report[dep.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			report[dep.Name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
