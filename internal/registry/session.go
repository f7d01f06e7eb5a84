// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"freight-cli/internal/progress"
)

// maxResponseBytes is the upper bound on registry response size (10 MB).
// Prevents unbounded memory consumption from malicious or malformed responses.
const maxResponseBytes = 10 << 20

type (
	// Session is an authenticated connection to the package registry. It is
	// constructed once at command start from configuration and environment,
	// passed by pointer into every flow that talks to the registry, and never
	// mutated afterwards.
	Session struct {
		httpClient *http.Client
		baseURL    string // API base URL without trailing slash
		apiKey     string // bearer token attached to every request
		userAgent  string // User-Agent header value
		logger     *log.Logger
	}

	// Option configures a Session during construction.
	Option func(*Session)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy
// configurations.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.httpClient = c
	}
}

// WithBaseURL overrides the registry base URL, e.g. for a private registry
// or a test server.
func WithBaseURL(base string) Option {
	return func(s *Session) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// WithAPIKey sets the API key sent as a bearer token with every request.
func WithAPIKey(key string) Option {
	return func(s *Session) {
		s.apiKey = key
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// WithLogger sets the logger used for request/response debug lines.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session with sensible defaults.
// Defaults: baseURL="https://registry.freightpkg.dev", userAgent="freight/dev",
// httpClient=http.DefaultClient, and a logger that discards everything.
func NewSession(opts ...Option) *Session {
	s := &Session{
		httpClient: http.DefaultClient,
		baseURL:    "https://registry.freightpkg.dev",
		userAgent:  "freight/dev",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Host returns the hostname of the registry base URL. Callers derive the
// package and documentation page URLs from it after a successful publish.
func (s *Session) Host() string {
	u, err := url.Parse(s.baseURL)
	if err != nil || u.Host == "" {
		return s.baseURL
	}
	return u.Host
}

// CreateRelease uploads a release tarball for the named package. When replace
// is true the registry is asked to overwrite an existing version, which it
// permits only inside the grace window. The sink observes upload progress.
func (s *Session) CreateRelease(ctx context.Context, name string, tarball []byte, replace bool, sink progress.Sink) (Outcome, error) {
	releaseURL := fmt.Sprintf("%s/api/packages/%s/releases", s.baseURL, url.PathEscape(name))
	if replace {
		releaseURL += "?replace=true"
	}

	out, err := s.upload(ctx, releaseURL, tarball, sink)
	if err != nil {
		return out, fmt.Errorf("creating release for %s: %w", name, err)
	}
	return out, nil
}

// DeleteRelease asks the registry to un-publish a released version.
func (s *Session) DeleteRelease(ctx context.Context, name, version string) (Outcome, error) {
	releaseURL := fmt.Sprintf("%s/api/packages/%s/releases/%s",
		s.baseURL, url.PathEscape(name), url.PathEscape(version))

	out, err := s.request(ctx, http.MethodDelete, releaseURL, http.NoBody)
	if err != nil {
		return out, fmt.Errorf("deleting release %s of %s: %w", version, name, err)
	}
	return out, nil
}

// CreateDocs uploads a documentation archive for a published version.
func (s *Session) CreateDocs(ctx context.Context, name, version string, archive []byte, sink progress.Sink) (Outcome, error) {
	docsURL := fmt.Sprintf("%s/api/packages/%s/releases/%s/docs",
		s.baseURL, url.PathEscape(name), url.PathEscape(version))

	out, err := s.upload(ctx, docsURL, archive, sink)
	if err != nil {
		return out, fmt.Errorf("creating docs for %s %s: %w", name, version, err)
	}
	return out, nil
}

// DeleteDocs removes the hosted documentation for a version.
func (s *Session) DeleteDocs(ctx context.Context, name, version string) (Outcome, error) {
	docsURL := fmt.Sprintf("%s/api/packages/%s/releases/%s/docs",
		s.baseURL, url.PathEscape(name), url.PathEscape(version))

	out, err := s.request(ctx, http.MethodDelete, docsURL, http.NoBody)
	if err != nil {
		return out, fmt.Errorf("deleting docs %s of %s: %w", version, name, err)
	}
	return out, nil
}

// upload POSTs a payload as application/octet-stream. The body is wrapped in
// a progress.Reader so the sink observes bytes as the transport consumes
// them; with progress disabled the caller passes progress.Discard and the
// transmitted bytes are identical.
func (s *Session) upload(ctx context.Context, requestURL string, payload []byte, sink progress.Sink) (Outcome, error) {
	body := progress.NewReader(bytes.NewReader(payload), int64(len(payload)), sink)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, body)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	// The counting reader hides the underlying *bytes.Reader from net/http,
	// so the length must be set explicitly to avoid chunked encoding.
	req.ContentLength = int64(len(payload))
	req.Header.Set("Content-Type", "application/octet-stream")

	return s.do(req)
}

// request creates and executes a bodiless or caller-supplied-body request.
func (s *Session) request(ctx context.Context, method, requestURL string, body io.Reader) (Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return Outcome{}, fmt.Errorf("creating request: %w", err)
	}
	return s.do(req)
}

// do attaches the common registry headers, executes the request, and reads
// the full response body so the result can be classified.
func (s *Session) do(req *http.Request) (Outcome, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	s.logger.Debug("registry request", "method", req.Method, "url", req.URL.String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Outcome{}, fmt.Errorf("reading response: %w", err)
	}

	out := Classify(resp.StatusCode, respBody)
	s.logger.Debug("registry response", "status", resp.StatusCode, "outcome", out.Kind)
	return out, nil
}
