package exchange

import (
	"encoding/json"
	"fmt"
)

/* Body serialization rules
 * Recording never fails because of payload shape: values with no JSON
 * representation degrade to their plain string form. JSON object keys are
 * always stored sorted so stored bodies compare byte-for-byte.
 */

// EncodeBody serializes a payload to its canonical JSON string with object
// keys sorted. Non-serializable values fall back to their string form.
func EncodeBody(payload any) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprint(payload)
	}
	return string(b)
}

// EncodeRawBody canonicalizes raw body bytes: valid JSON is re-encoded with
// sorted keys, anything else is stored as-is.
func EncodeRawBody(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return EncodeBody(v)
}

// FormatBody pretty prints a stored body when it holds JSON, using 2-space
// indentation and sorted keys. It returns the rendering and true, or the
// input unchanged and false when the body does not parse.
func FormatBody(value string) (string, bool) {
	var v any
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return value, false
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return value, false
	}
	return string(out), true
}
