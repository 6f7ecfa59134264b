package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hookledger/hookledger/integration"
)

/* HTTP layer DTOs for the integration API
 * Separate from domain entities to avoid leaking internal structure
 */

// integrationRequest is the payload for creating an integration
type integrationRequest struct {
	ProjectID    string         `json:"project_id"`
	Type         string         `json:"integration_type"`
	ProviderData map[string]any `json:"provider_data"`
}

// providerDataRequest is the payload for replacing provider data
type providerDataRequest struct {
	ProviderData map[string]any `json:"provider_data"`
}

// integrationResponse represents an integration in the API.
// CanSync is only rendered when the resolved variant has the capability.
type integrationResponse struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"project_id"`
	Type         string         `json:"integration_type"`
	ProviderData map[string]any `json:"provider_data"`
	CanSync      *bool          `json:"can_sync,omitempty"`
}

func newIntegrationResponse(rec integration.Record) integrationResponse {
	in := rec.Record()
	resp := integrationResponse{
		ID:           in.ID.String(),
		ProjectID:    in.ProjectID,
		Type:         in.Type.String(),
		ProviderData: in.ProviderData,
	}
	if syncer, ok := rec.(integration.Syncer); ok {
		canSync := syncer.CanSync()
		resp.CanSync = &canSync
	}
	return resp
}

// integrationID parses the integration_id URL parameter
func integrationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "integration_id"))
	if err != nil {
		http.Error(w, "invalid integration_id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// writeLookupError maps storage lookup errors to HTTP status codes
func writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, integration.ErrNotFound):
		http.Error(w, "integration not found", http.StatusNotFound)
	case errors.Is(err, integration.ErrAmbiguous):
		http.Error(w, "query matched multiple integrations", http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// postIntegration handles POST /v1/integrations
func postIntegration(integrationService integration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req integrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		in, err := integrationService.Create(r.Context(), req.ProjectID, integration.Type(req.Type), req.ProviderData)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newIntegrationResponse(integration.Resolve(in))); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getIntegration handles GET /v1/integrations/{integration_id}
func getIntegration(integrationService integration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := integrationID(w, r)
		if !ok {
			return
		}

		rec, err := integrationService.Fetch(r.Context(), integration.Query{ID: id})
		if err != nil {
			writeLookupError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newIntegrationResponse(rec)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getProjectIntegrations handles GET /v1/projects/{project_id}/integrations
func getProjectIntegrations(integrationService integration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "project_id")
		if projectID == "" {
			http.Error(w, "project_id is required", http.StatusBadRequest)
			return
		}

		list, err := integrationService.ListByProject(r.Context(), projectID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]integrationResponse, 0, len(list))
		for _, in := range list {
			responses = append(responses, newIntegrationResponse(integration.Resolve(in)))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// putProviderData handles PUT /v1/integrations/{integration_id}/provider_data
func putProviderData(integrationService integration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := integrationID(w, r)
		if !ok {
			return
		}

		var req providerDataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := integrationService.UpdateProviderData(r.Context(), id, req.ProviderData); err != nil {
			writeLookupError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// deleteIntegration handles DELETE /v1/integrations/{integration_id}
func deleteIntegration(integrationService integration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := integrationID(w, r)
		if !ok {
			return
		}

		if err := integrationService.Delete(r.Context(), id); err != nil {
			writeLookupError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
