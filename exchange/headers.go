package exchange

import (
	"strings"
	"unicode"
)

/* Request header pipeline
 * Headers arrive in their rawest transport form: upper snake case pairs where
 * application HTTP headers carry the HTTP_ prefix. We strip the prefix,
 * normalize names to Title-Hyphen-Case and drop proxy-injected headers, which
 * must never be persisted. Response headers are copied verbatim.
 */

// TransportHeaderPrefix marks transport-level pairs that originated as
// application HTTP headers.
const TransportHeaderPrefix = "HTTP_"

/* NormalizeHeaderName converts a transport header segment like SOME_HEADER
 * into Some-Header. Title casing, not MIME canonical form: a letter following
 * any non-letter is uppercased, so X_HEADER_2X becomes X-Header-2X where the
 * MIME rules would give X-Header-2x.
 */
func NormalizeHeaderName(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	prevLetter := false
	for _, r := range strings.ReplaceAll(key, "_", "-") {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}

// isFilteredHeader matches X-Forwarded-* and X-Real-Ip case-insensitively.
func isFilteredHeader(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "x-forwarded-") || lower == "x-real-ip"
}

// BuildRequestHeaders selects the application HTTP headers out of raw
// transport pairs, normalizes their names, records the declared content type
// and removes proxy-injected headers.
func BuildRequestHeaders(transport map[string]string, contentType string) map[string]string {
	headers := make(map[string]string, len(transport)+1)
	for key, val := range transport {
		if !strings.HasPrefix(key, TransportHeaderPrefix) {
			continue
		}
		headers[NormalizeHeaderName(strings.TrimPrefix(key, TransportHeaderPrefix))] = val
	}
	headers["Content-Type"] = contentType
	for name := range headers {
		if isFilteredHeader(name) {
			delete(headers, name)
		}
	}
	return headers
}
