package http

import (
	"context"
	"dashboard/config"
	"dashboard/infras/kafka"
	"dashboard/infras/metrics"
	"dashboard/shared/constant"
	"dashboard/transport/http/middleware"
	"dashboard/transport/http/response"
	"dashboard/transport/http/router"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 10 * time.Second
	readinessTimeout  = 2 * time.Second
)

// Store is the database handle pinged for readiness and closed on shutdown.
type Store interface {
	Ping(ctx context.Context) error
	Close()
}

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	App      middleware.AppMiddleware
	Metrics  metrics.Metrics
	Store    Store
	Producer kafka.Client

	state   atomic.Int32
	once    sync.Once
	handler chi.Router
	server  *http.Server
}

func New(
	cfg *config.Config,
	r router.Router,
	app middleware.AppMiddleware,
	m metrics.Metrics,
	store Store,
	producer kafka.Client,
) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		App:      app,
		Metrics:  m,
		Store:    store,
		Producer: producer,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	h.setupGracefulShutdown()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// Handler exposes the routes without listening, for serverless runtimes and tests.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.handler
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.setState(ServerStateReady)
	})
}

func (h *HTTP) setupRoutes() {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(h.App.Tracing)
	h.setupCORS(r)

	r.Get("/healthz/liveness", h.liveness)
	r.Get("/healthz/readiness", h.readiness)

	if h.Config.App.Metrics.Enable && h.Metrics != nil {
		r.Handle("/metrics", h.Metrics.Handler())
	}

	basePath := h.Config.Server.BasePath
	if basePath == "" {
		basePath = "/"
	}

	r.Route(basePath, func(api chi.Router) {
		api.Use(h.rejectWhileShuttingDown)
		api.Use(h.App.RateLimit())

		h.Router.SetupRoutes(api)
	})

	h.handler = r
}

func (h *HTTP) setupCORS(r chi.Router) {
	corsConfig := h.Config.App.CORS
	if !corsConfig.Enable {
		return
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		ExposedHeaders:   []string{constant.ResponseHeaderTotalCount, constant.ResponseHeaderTotalPages, constant.RequestHeaderRequestID},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}))
}

func (h *HTTP) liveness(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, "OK")
}

func (h *HTTP) readiness(w http.ResponseWriter, r *http.Request) {
	switch h.State() {
	case ServerStateReady:
		if err := h.ping(r.Context()); err != nil {
			log.Warn().Err(err).Msg("Readiness check failed")

			response.WithUnhealthy(w)

			return
		}

		response.WithJSON(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) ping(ctx context.Context) error {
	if h.Store == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	return h.Store.Ping(ctx) //nolint:wrapcheck
}

// rejectWhileShuttingDown refuses new API work once the cleanup period has started.
func (h *HTTP) rejectWhileShuttingDown(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.State() == ServerStateInCleanupPeriod {
			response.WithPreparingShutdown(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(time.Second)

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// shutdown drains in-flight requests for at most timeout, then releases the
// producer and the database pools.
func (h *HTTP) shutdown(timeout time.Duration) {
	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := h.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server did not drain in time")
		}
	}

	if h.Producer != nil {
		if err := h.Producer.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka producer")
		}
	}

	if h.Store != nil {
		h.Store.Close()
	}
}
