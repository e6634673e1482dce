package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/inventory-service/internal/bootstrap"
	"github.com/baechuer/inventory-service/internal/logger"
)

// shutdownGrace bounds how long in-flight requests may run after a stop
// signal before the listener is closed hard.
const shutdownGrace = 15 * time.Second

// apiServer is the slice of *http.Server that run needs. Tests substitute a
// stub so the signal and crash paths can be driven without a real listener.
type apiServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type stdServer struct{ *http.Server }

func (s stdServer) Addr() string { return s.Server.Addr }

// buildFunc assembles the wired server plus the cleanup for its resources.
type buildFunc func() (apiServer, func(), error)

func run(build buildFunc, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("inventory service failed to start")
		return 1
	}
	defer cleanup()

	serveErr := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("inventory service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("stopping on signal")

	case err := <-serveErr:
		// Listener died on its own; exit non-zero so the orchestrator restarts us.
		lg.Error().Err(err).Msg("http listener exited")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown did not finish, closing")
		_ = srv.Close()
	}

	lg.Info().Msg("inventory service stopped")
	return 0
}

func buildServer() (apiServer, func(), error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, nil, err
	}
	return stdServer{srv}, cleanup, nil
}

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(run(buildServer, sigCh, zlog.Logger))
}
