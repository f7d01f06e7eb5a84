// SPDX-License-Identifier: MPL-2.0

package registry

import "net/http"

type (
	// Kind labels how a registry response should be handled.
	Kind int

	// Outcome is the classified result of a single registry call. It is
	// consumed immediately after the call returns to pick a user-facing
	// message and the process exit status; the response body is carried
	// through verbatim so failures can be rendered without re-reading the
	// response.
	Outcome struct {
		Kind   Kind
		Status int
		Body   []byte
	}
)

const (
	// Success covers every status in 200-299.
	Success Kind = iota

	// NotFound is exactly HTTP 404. Only the docs upload gives it dedicated
	// messaging (the package version is not published yet); every other call
	// site renders it like any other failure.
	NotFound

	// Failure covers every remaining status.
	Failure
)

// String returns the lowercase name of the kind for log output.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case NotFound:
		return "not-found"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Classify maps a registry response to an Outcome. The same rules apply to
// all four registry operations: 200-299 is Success, exactly 404 is NotFound,
// and anything else is Failure with the original status and body preserved.
func Classify(status int, body []byte) Outcome {
	out := Outcome{Status: status, Body: body}
	switch {
	case status >= 200 && status <= 299:
		out.Kind = Success
	case status == http.StatusNotFound:
		out.Kind = NotFound
	default:
		out.Kind = Failure
	}
	return out
}
