package chi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hookledger/hookledger/exchange"
	"github.com/hookledger/hookledger/integration"
)

// eventResponse is the body returned (and recorded) for an inbound event
type eventResponse struct {
	Status string `json:"status"`
}

// exchangeResponse represents a recorded exchange in the API
type exchangeResponse struct {
	ID              string            `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	StatusCode      int               `json:"status_code"`
	Failed          bool              `json:"failed"`
	RequestHeaders  map[string]string `json:"request_headers"`
	RequestBody     string            `json:"request_body"`
	RequestIsJSON   bool              `json:"request_is_json"`
	ResponseHeaders map[string]string `json:"response_headers"`
	ResponseBody    string            `json:"response_body"`
	ResponseIsJSON  bool              `json:"response_is_json"`
}

func newExchangeResponse(ex exchange.Exchange) exchangeResponse {
	requestBody, requestIsJSON := ex.FormattedRequestBody()
	responseBody, responseIsJSON := ex.FormattedResponseBody()
	return exchangeResponse{
		ID:              ex.ID.String(),
		CreatedAt:       ex.CreatedAt,
		StatusCode:      ex.StatusCode,
		Failed:          ex.Failed(),
		RequestHeaders:  ex.RequestHeaders,
		RequestBody:     requestBody,
		RequestIsJSON:   requestIsJSON,
		ResponseHeaders: ex.ResponseHeaders,
		ResponseBody:    responseBody,
		ResponseIsJSON:  responseIsJSON,
	}
}

/* transportHeaders lowers net/http headers into the raw transport form the
 * exchange store consumes: upper snake case pairs with application HTTP
 * headers carrying the HTTP_ prefix.
 */
func transportHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 {
			continue
		}
		key := exchange.TransportHeaderPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		out[key] = values[0]
	}
	return out
}

// postEvent handles POST /v1/integrations/{integration_id}/events
// It records the provider's request together with the response we return.
func postEvent(integrationService integration.UseCase, exchangeService exchange.UseCase) http.Handler {
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

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		req := exchange.Request{
			TransportHeaders: transportHeaders(r.Header),
			ContentType:      r.Header.Get("Content-Type"),
			Body:             body,
		}
		resp := exchange.Response{
			StatusCode: http.StatusAccepted,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Payload:    eventResponse{Status: "accepted"},
		}

		ex, err := exchangeService.Record(r.Context(), req, resp, rec.Record().Owner(), nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Hookledger-Exchange", ex.ID.String())
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(eventResponse{Status: "accepted"}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getExchanges handles GET /v1/integrations/{integration_id}/exchanges
func getExchanges(integrationService integration.UseCase, exchangeService exchange.UseCase) http.Handler {
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

		exchanges, err := exchangeService.History(r.Context(), rec.Record().Owner())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]exchangeResponse, 0, len(exchanges))
		for _, ex := range exchanges {
			responses = append(responses, newExchangeResponse(ex))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responses); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
