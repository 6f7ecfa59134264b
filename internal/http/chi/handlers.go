package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"github.com/hookledger/hookledger/exchange"
	"github.com/hookledger/hookledger/integration"
)

// Handlers sets up the ledger API routes
func Handlers(ctx context.Context, integrationService integration.UseCase, exchangeService exchange.UseCase) *chi.Mux {
	logger := httplog.NewLogger("hookledger-api", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		// Integration management
		r.Post("/integrations", postIntegration(integrationService).ServeHTTP)
		r.Get("/projects/{project_id}/integrations", getProjectIntegrations(integrationService).ServeHTTP)
		r.Get("/integrations/{integration_id}", getIntegration(integrationService).ServeHTTP)
		r.Put("/integrations/{integration_id}/provider_data", putProviderData(integrationService).ServeHTTP)
		r.Delete("/integrations/{integration_id}", deleteIntegration(integrationService).ServeHTTP)

		// Inbound webhook recording
		r.Post("/integrations/{integration_id}/events", postEvent(integrationService, exchangeService).ServeHTTP)
		r.Get("/integrations/{integration_id}/exchanges", getExchanges(integrationService, exchangeService).ServeHTTP)
	})

	return r
}
