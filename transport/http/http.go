package http

//nolint:revive
import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"hotel/config"
	_ "hotel/docs"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
	"hotel/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/run"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	Metrics    *middleware.Metrics

	state     atomic.Int32
	startedAt time.Time
	handler   http.Handler
	once      sync.Once
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware, metrics *middleware.Metrics) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
		Metrics:    metrics,
		startedAt:  time.Now(),
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve runs the API server, the metrics server and the signal handler until one of them stops.
func (h *HTTP) Serve() error {
	h.setup()

	g := &run.Group{}

	address := net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port)
	apiServer := &http.Server{Addr: address, Handler: h.handler, ReadHeaderTimeout: readHeaderTimeout}

	g.Add(func() error {
		log.Info().Str("address", address).Msg("Starting up HTTP server.")

		return listen(apiServer)
	}, func(error) {
		h.shutdownServer(apiServer)
	})

	if h.Config.Metrics.Enable && h.Metrics != nil {
		metricsAddress := net.JoinHostPort(h.Config.Server.Host, h.Config.Metrics.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", h.Metrics.Handler())

		metricsServer := &http.Server{Addr: metricsAddress, Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

		g.Add(func() error {
			log.Info().Str("address", metricsAddress).Msg("Starting up metrics server.")

			return listen(metricsServer)
		}, func(error) {
			if err := metricsServer.Close(); err != nil {
				log.Error().Err(err).Msg("failed to stop metrics server")
			}
		})
	}

	g.Add(h.gracefulShutdown())

	err := g.Run()

	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		log.Info().Msg("Cleaning up completed. Shutting down now.")

		return nil
	}

	return err
}

// Adaptor exposes the routes without starting a listener.
func (h *HTTP) Adaptor() http.Handler {
	h.setup()

	return h.handler
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		response.SetDebug(h.Config.IsDevelopment())

		h.handler = h.routes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		h.Middleware.Recover,
		middleware.Logger,
		h.Middleware.Tracing,
		h.Middleware.Metrics,
		h.Middleware.CORS(),
		h.Middleware.RateLimit(),
		h.Middleware.MaxBodyBytes(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WithRouteNotFound(w, r.URL.Path)
	})

	r.Get("/", h.root)
	r.Get("/health", h.health)

	if h.Config.App.SwaggerEnable {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.health)

		h.Router.SetupRoutes(api)
	})

	return r
}

func (h *HTTP) gracefulShutdown() (func() error, func(error)) {
	ctx, cancel := context.WithCancel(context.Background())

	return func() error {
			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(signals)

			select {
			case <-ctx.Done():
				return nil
			case sig := <-signals:
				h.respondToSignal(ctx)

				return run.SignalError{Signal: sig}
			}
		}, func(error) {
			cancel()
		}
}

// respondToSignal keeps serving while health reports 503 so load balancers can drain the instance.
func (h *HTTP) respondToSignal(ctx context.Context) {
	if h.Config.IsDevelopment() {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second):
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))
}

func (h *HTTP) shutdownServer(server *http.Server) {
	timeout := time.Duration(h.Config.Server.Shutdown.CleanupPeriodSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down HTTP server")
	}
}

func listen(server *http.Server) error {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err // nolint:wrapcheck
	}

	return nil
}
