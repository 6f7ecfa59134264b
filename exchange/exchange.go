package exchange

import (
	"time"

	"github.com/google/uuid"
)

/* Exchange represents one recorded HTTP request/response pair
 * Uses value semantics as it represents data, not behavior
 */
type Exchange struct {
	ID              uuid.UUID
	Owner           Owner
	CreatedAt       time.Time
	RequestHeaders  map[string]string
	RequestBody     string
	ResponseHeaders map[string]string
	ResponseBody    string
	StatusCode      int
}

// Failed reports whether the exchange carried an error response.
// Anything that isn't a 2xx level status code counts as failed; the check is
// integer division, not a range test, so it holds for 4-digit codes too.
func (e Exchange) Failed() bool {
	return e.StatusCode/100 != 2
}

/* FormattedRequestBody returns the stored request body pretty printed when it
 * holds JSON, plus a flag telling a downstream highlighter whether it does.
 * Malformed bodies come back unchanged.
 */
func (e Exchange) FormattedRequestBody() (string, bool) {
	return FormatBody(e.RequestBody)
}

// FormattedResponseBody is the response-side counterpart of FormattedRequestBody.
func (e Exchange) FormattedResponseBody() (string, bool) {
	return FormatBody(e.ResponseBody)
}
