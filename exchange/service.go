package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultRetentionLimit is the number of exchanges kept per owner.
const DefaultRetentionLimit = 10

// Request describes an inbound HTTP request in its rawest transport form.
type Request struct {
	// TransportHeaders are raw transport pairs, e.g. HTTP_X_GITHUB_EVENT.
	TransportHeaders map[string]string
	ContentType      string
	Body             []byte
}

// Response describes the response returned for the recorded request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	// Payload is the structured response value when the handler has one;
	// Body carries the raw bytes otherwise.
	Payload any
	Body    []byte
}

/* PayloadNormalizer derives a structured payload from a raw request.
 * It is a collaborator contract: implementations make a good effort to
 * produce a structured value and must not fail.
 */
type PayloadNormalizer func(req Request) any

// NormalizePayload is the default normalizer: JSON requests decode to their
// structured value, everything else passes through as a string.
func NormalizePayload(req Request) any {
	if strings.HasPrefix(req.ContentType, "application/json") {
		var v any
		if err := json.Unmarshal(req.Body, &v); err == nil {
			return v
		}
	}
	return string(req.Body)
}

// UseCase defines the business operations for exchange recording
type UseCase interface {
	Record(ctx context.Context, req Request, resp Response, owner Owner, payload any) (Exchange, error)
	History(ctx context.Context, owner Owner) ([]Exchange, error)
}

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */
type Service struct {
	Repo      Repository
	Normalize PayloadNormalizer
	Keep      int
}

// NewService creates a new exchange service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo:      repo,
		Normalize: NormalizePayload,
		Keep:      DefaultRetentionLimit,
	}
}

/* Record persists one request/response pair attached to owner.
 * When payload is nil the request payload comes from the normalizer instead.
 * Recording never fails because of payload shape; only owner validation and
 * storage errors surface.
 */
func (s *Service) Record(ctx context.Context, req Request, resp Response, owner Owner, payload any) (Exchange, error) {
	if err := owner.Validate(); err != nil {
		return Exchange{}, fmt.Errorf("validating owner: %w", err)
	}

	if payload == nil {
		payload = s.Normalize(req)
	}

	responseBody := ""
	if resp.Payload != nil {
		responseBody = EncodeBody(resp.Payload)
	} else {
		responseBody = EncodeRawBody(resp.Body)
	}

	responseHeaders := make(map[string]string, len(resp.Headers))
	for name, val := range resp.Headers {
		responseHeaders[name] = val
	}

	ex := Exchange{
		ID:              uuid.New(),
		Owner:           owner,
		CreatedAt:       time.Now().UTC(),
		RequestHeaders:  BuildRequestHeaders(req.TransportHeaders, req.ContentType),
		RequestBody:     EncodeBody(payload),
		ResponseHeaders: responseHeaders,
		ResponseBody:    responseBody,
		StatusCode:      resp.StatusCode,
	}

	if err := s.Repo.Store(ctx, ex, s.Keep); err != nil {
		return Exchange{}, fmt.Errorf("storing exchange: %w", err)
	}

	return ex, nil
}

// History returns the owner's retained exchanges, newest first.
func (s *Service) History(ctx context.Context, owner Owner) ([]Exchange, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("validating owner: %w", err)
	}

	exchanges, err := s.Repo.ListByOwner(ctx, owner, s.Keep)
	if err != nil {
		return nil, fmt.Errorf("listing exchanges: %w", err)
	}
	return exchanges, nil
}
