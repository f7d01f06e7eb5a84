// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// apiError is the JSON wire format for registry error responses. The errors
// object nests arbitrarily (field name -> message, list of messages, or a
// further object), so values are decoded generically.
type apiError struct {
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors"`
}

// FormatError renders a non-success registry response for the console.
// Structured payloads ({"message": ..., "errors": {...}}) are printed with
// the message first and each field error on an indented line below it; any
// other body is printed raw. An empty body reports the status code alone.
func FormatError(out Outcome) string {
	var payload apiError
	if err := json.Unmarshal(out.Body, &payload); err != nil || (payload.Message == "" && len(payload.Errors) == 0) {
		raw := strings.TrimSpace(string(out.Body))
		if raw == "" {
			return fmt.Sprintf("the registry responded with status %d", out.Status)
		}
		return fmt.Sprintf("the registry responded with status %d:\n%s", out.Status, raw)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "the registry responded with status %d", out.Status)
	if payload.Message != "" {
		msg.WriteString(": ")
		msg.WriteString(payload.Message)
	}
	writeErrorFields(&msg, "  ", payload.Errors)
	return msg.String()
}

// writeErrorFields appends one line per field error, sorted by field name so
// the rendering is stable. Nested objects indent one further level; lists
// repeat the field name once per entry.
func writeErrorFields(msg *strings.Builder, indent string, fields map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		switch val := fields[key].(type) {
		case map[string]any:
			fmt.Fprintf(msg, "\n%s%s:", indent, key)
			writeErrorFields(msg, indent+"  ", val)
		case []any:
			for _, item := range val {
				fmt.Fprintf(msg, "\n%s%s: %v", indent, key, item)
			}
		default:
			fmt.Fprintf(msg, "\n%s%s: %v", indent, key, val)
		}
	}
}
