package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gatherkit/server/internal/api/handlers"
	"github.com/gatherkit/server/internal/api/middleware"
	"github.com/gatherkit/server/internal/config"
	"github.com/gatherkit/server/internal/domain/events"
	"github.com/gatherkit/server/internal/domain/participants"
	"github.com/gatherkit/server/internal/metrics"
	"github.com/gatherkit/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires repositories, services, and handlers onto a ServeMux
// wrapped with the shared middleware chain.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	eventsService := events.NewService(repo.Events())
	participantsService := participants.NewService(repo.Participants())

	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	participantsHandler := handlers.NewParticipantsHandler(participantsService, cfg.Environment)
	healthChecker := handlers.NewHealthChecker(pool, cfg.Version, cfg.GitCommit)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", healthChecker.Readyz())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: http.HandlerFunc(eventsHandler.Create),
	}))
	mux.Handle("/api/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodPatch:  http.HandlerFunc(eventsHandler.Update),
		http.MethodDelete: http.HandlerFunc(eventsHandler.Delete),
	}))
	mux.Handle("/api/v1/participants", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(participantsHandler.List),
		http.MethodPost: http.HandlerFunc(participantsHandler.Create),
	}))
	mux.Handle("/api/v1/participants/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(participantsHandler.Get),
		http.MethodPatch:  http.HandlerFunc(participantsHandler.Update),
		http.MethodDelete: http.HandlerFunc(participantsHandler.Delete),
	}))

	var handler http.Handler = mux
	handler = middleware.PublicRequestSize()(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)

	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
