package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type WeatherHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	shutdownTimeout time.Duration
	registerOnce    sync.Once
}

func NewWeatherHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration) *WeatherHttpServer {
	return &WeatherHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler returns the root handler, registering the routes on first use.
func (s *WeatherHttpServer) Handler() http.Handler {
	s.registerOnce.Do(s.router.RegisterRoutes)
	return s.muxRouter
}

// Start serves until ctx is done, then shuts down gracefully within the shutdown timeout.
func (s *WeatherHttpServer) Start(ctx context.Context) error {
	logger := log.With().Str("component", "http_server").Str("addr", s.addr).Logger()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exiting")
	return nil
}
