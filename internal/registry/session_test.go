// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"freight-cli/internal/progress"
)

func TestCreateRelease(t *testing.T) {
	t.Parallel()

	tarball := []byte("fake-tarball-bytes")

	var (
		gotMethod      string
		gotPath        string
		gotQuery       string
		gotContentType string
		gotLength      int64
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		gotLength = r.ContentLength

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading body: %v", err)
		}
		gotBody = body

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	out, err := session.CreateRelease(context.Background(), "calcutron", tarball, false, progress.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Kind != Success {
		t.Errorf("got kind %v, want %v", out.Kind, Success)
	}
	if out.Status != http.StatusCreated {
		t.Errorf("got status %d, want %d", out.Status, http.StatusCreated)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("got method %q, want %q", gotMethod, http.MethodPost)
	}
	if gotPath != "/api/packages/calcutron/releases" {
		t.Errorf("got path %q, want %q", gotPath, "/api/packages/calcutron/releases")
	}
	if gotQuery != "" {
		t.Errorf("got query %q, want empty", gotQuery)
	}
	if gotContentType != "application/octet-stream" {
		t.Errorf("got Content-Type %q, want %q", gotContentType, "application/octet-stream")
	}
	// Content length must be declared up front, not chunked.
	if gotLength != int64(len(tarball)) {
		t.Errorf("got Content-Length %d, want %d", gotLength, len(tarball))
	}
	if !bytes.Equal(gotBody, tarball) {
		t.Errorf("got body %q, want %q", gotBody, tarball)
	}
}

func TestCreateRelease_Replace(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if _, err := io.Copy(io.Discard, r.Body); err != nil {
			t.Errorf("draining body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	_, err := session.CreateRelease(context.Background(), "calcutron", []byte("x"), true, progress.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "replace=true" {
		t.Errorf("got query %q, want %q", gotQuery, "replace=true")
	}
}

func TestCreateDocs(t *testing.T) {
	t.Parallel()

	archive := []byte("fake-docs-archive")

	var (
		gotMethod string
		gotPath   string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading body: %v", err)
		}
		gotBody = body

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	out, err := session.CreateDocs(context.Background(), "calcutron", "1.2.3", archive, progress.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Kind != Success {
		t.Errorf("got kind %v, want %v", out.Kind, Success)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("got method %q, want %q", gotMethod, http.MethodPost)
	}
	if gotPath != "/api/packages/calcutron/releases/1.2.3/docs" {
		t.Errorf("got path %q, want %q", gotPath, "/api/packages/calcutron/releases/1.2.3/docs")
	}
	if !bytes.Equal(gotBody, archive) {
		t.Errorf("got body %q, want %q", gotBody, archive)
	}
}

func TestDeleteRelease(t *testing.T) {
	t.Parallel()

	var (
		gotMethod string
		gotPath   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	out, err := session.DeleteRelease(context.Background(), "calcutron", "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Kind != Success {
		t.Errorf("got kind %v, want %v", out.Kind, Success)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("got method %q, want %q", gotMethod, http.MethodDelete)
	}
	if gotPath != "/api/packages/calcutron/releases/1.2.3" {
		t.Errorf("got path %q, want %q", gotPath, "/api/packages/calcutron/releases/1.2.3")
	}
}

func TestDeleteDocs_NotFound(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Page not found"}`)
	}))
	defer srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	out, err := session.DeleteDocs(context.Background(), "calcutron", "1.2.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/packages/calcutron/releases/1.2.3/docs" {
		t.Errorf("got path %q, want %q", gotPath, "/api/packages/calcutron/releases/1.2.3/docs")
	}
	if out.Kind != NotFound {
		t.Errorf("got kind %v, want %v", out.Kind, NotFound)
	}
	if want := `{"message":"Page not found"}`; string(out.Body) != want {
		t.Errorf("got body %q, want %q", out.Body, want)
	}
}

func TestSessionHeaders(t *testing.T) {
	t.Parallel()

	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	session := NewSession(
		WithBaseURL(srv.URL),
		WithAPIKey("fgt_test_key_12345"),
		WithUserAgent("freight/1.2.3"),
	)
	if _, err := session.DeleteRelease(context.Background(), "calcutron", "1.0.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotHeaders.Get("Authorization"); got != "Bearer fgt_test_key_12345" {
		t.Errorf("got Authorization header %q, want %q", got, "Bearer fgt_test_key_12345")
	}
	if got := gotHeaders.Get("User-Agent"); got != "freight/1.2.3" {
		t.Errorf("got User-Agent header %q, want %q", got, "freight/1.2.3")
	}
	if got := gotHeaders.Get("Accept"); got != "application/json" {
		t.Errorf("got Accept header %q, want %q", got, "application/json")
	}
}

func TestSessionHeaders_NoAPIKey(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	if _, err := session.DeleteRelease(context.Background(), "calcutron", "1.0.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("got Authorization header %q, want empty", gotAuth)
	}
}

func TestUploadProgress(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("freight"), 4096)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.Copy(io.Discard, r.Body); err != nil {
			t.Errorf("draining body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	type notification struct{ sent, total int64 }
	var notifications []notification
	sink := func(sent, total int64) {
		notifications = append(notifications, notification{sent, total})
	}

	session := NewSession(WithBaseURL(srv.URL))
	if _, err := session.CreateRelease(context.Background(), "calcutron", payload, false, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifications) == 0 {
		t.Fatal("expected progress notifications, got none")
	}

	total := int64(len(payload))
	var prev int64
	for i, n := range notifications {
		if n.total != total {
			t.Errorf("notification[%d]: got total %d, want %d", i, n.total, total)
		}
		if n.sent < prev {
			t.Errorf("notification[%d]: sent %d decreased from %d", i, n.sent, prev)
		}
		prev = n.sent
	}
	if last := notifications[len(notifications)-1]; last.sent != total {
		t.Errorf("final notification: got sent %d, want %d", last.sent, total)
	}
}

func TestUploadProgress_DisabledTransmitsSameBytes(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("freight"), 1024)

	var bodies [][]byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading body: %v", err)
		}
		bodies = append(bodies, body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	var count int
	counting := func(int64, int64) { count++ }

	session := NewSession(WithBaseURL(srv.URL))
	if _, err := session.CreateRelease(context.Background(), "calcutron", payload, false, counting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.CreateRelease(context.Background(), "calcutron", payload, false, progress.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count == 0 {
		t.Error("expected notifications on the counting upload, got none")
	}
	if len(bodies) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(bodies))
	}
	if !bytes.Equal(bodies[0], bodies[1]) {
		t.Error("progress-disabled upload transmitted different bytes than progress-enabled upload")
	}
}

func TestSession_TransportError(t *testing.T) {
	t.Parallel()

	// Point the session at a server that is no longer listening.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close()

	session := NewSession(WithBaseURL(srv.URL))
	_, err := session.DeleteRelease(context.Background(), "calcutron", "1.0.0")

	if err == nil {
		t.Fatal("expected transport error, got nil")
	}
}

func TestNewSession_Defaults(t *testing.T) {
	t.Parallel()

	session := NewSession()

	if session.baseURL != "https://registry.freightpkg.dev" {
		t.Errorf("got baseURL %q, want %q", session.baseURL, "https://registry.freightpkg.dev")
	}
	if session.userAgent != "freight/dev" {
		t.Errorf("got userAgent %q, want %q", session.userAgent, "freight/dev")
	}
	if session.apiKey != "" {
		t.Errorf("got non-empty API key %q, want empty", session.apiKey)
	}
}

func TestSessionHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "production registry",
			baseURL: "https://registry.freightpkg.dev",
			want:    "registry.freightpkg.dev",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "https://registry.freightpkg.dev/",
			want:    "registry.freightpkg.dev",
		},
		{
			name:    "test server with port",
			baseURL: "http://127.0.0.1:8080",
			want:    "127.0.0.1:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			session := NewSession(WithBaseURL(tt.baseURL))
			if got := session.Host(); got != tt.want {
				t.Errorf("got host %q, want %q", got, tt.want)
			}
		})
	}
}
