package wire

import (
	"net/http"

	"club-booking/internal/adaptor"
	"club-booking/internal/audit"
	"club-booking/internal/data/repository"
	"club-booking/internal/usecase"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/middleware"
	"club-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface and the service layer behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router.
func Wiring(
	repo *repository.Repository,
	db database.PgxIface,
	config *utils.Config,
	auditSink audit.Sink,
	m *metrics.Metrics,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, db, config, auditSink, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, m, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router.
func setupRouter(handler *adaptor.Handler, m *metrics.Metrics, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	// Apply routes
	wireBooking(r, handler.Booking, logger)
	wirePool(r, handler.Pool, logger)
	wireTeam(r, handler.Team, logger)
	wireRollup(r, handler.Rollup, logger)
	wireCalendar(r, handler.Calendar)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint, backed by the private registry
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	return r
}
