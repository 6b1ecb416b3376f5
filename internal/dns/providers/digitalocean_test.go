package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"nathanbeddoewebdev/wanddns/internal/dns/domain"

	"github.com/google/go-cmp/cmp"
)

// --- Test helpers ---

// newTestDigitalOceanProvider creates a DigitalOceanProvider pointed at the given test server.
func newTestDigitalOceanProvider(t *testing.T, serverURL string) *DigitalOceanProvider {
	t.Helper()
	p, err := NewDigitalOceanProvider("test-token")
	if err != nil {
		t.Fatalf("NewDigitalOceanProvider: %v", err)
	}
	p.baseURL = serverURL
	return p
}

// newJSONServer creates an httptest.Server that replies with status and body,
// and hands every request to inspect (if non-nil) before replying.
func newJSONServer(t *testing.T, status int, body any, inspect func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("failed to encode test response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func intPtr(v int) *int { return &v }

// --- Construction ---

func TestNewDigitalOceanProvider_InvalidCredential(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"newline inside", "abc\ndef"},
		{"control character", "abc\x00def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDigitalOceanProvider(tt.key)
			if !errors.Is(err, domain.ErrInvalidCredential) {
				t.Errorf("expected ErrInvalidCredential, got %v", err)
			}
		})
	}
}

// --- ListDomains ---

func TestListDomains_HappyPath(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotMethod string
	body := map[string]any{
		"domains": []any{
			map[string]any{"name": "example.com", "ttl": 1800, "zone_file": "$ORIGIN example.com."},
			map[string]any{"name": "Another.io", "ttl": nil, "zone_file": nil},
		},
	}
	srv := newJSONServer(t, http.StatusOK, body, func(r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
	})
	p := newTestDigitalOceanProvider(t, srv.URL)

	domains, err := p.ListDomains(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	zone := "$ORIGIN example.com."
	want := []domain.Domain{
		{Name: "example.com", TTL: intPtr(1800), ZoneFile: &zone},
		{Name: "Another.io"},
	}
	if diff := cmp.Diff(want, domains); diff != "" {
		t.Errorf("ListDomains mismatch (-want +got):\n%s", diff)
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method = %q, want GET", gotMethod)
	}
	if gotPath != "/domains" || gotQuery != "per_page=200" {
		t.Errorf("request = %s?%s, want /domains?per_page=200", gotPath, gotQuery)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
}

func TestListDomains_StatusClassification(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
		wantMsg string
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized, "Unable to authenticate you"},
		{http.StatusNotFound, domain.ErrNotFound, "The resource you requested could not be found."},
		{http.StatusTooManyRequests, domain.ErrRateLimited, "API rate limit exceeded."},
		{http.StatusInternalServerError, domain.ErrServerError, "Server was unable to give you a response."},
		{http.StatusTeapot, domain.ErrUnexpectedStatus, ""},
		{http.StatusForbidden, domain.ErrUnexpectedStatus, ""},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := newJSONServer(t, tt.status, map[string]any{"id": "x", "message": tt.wantMsg}, nil)
			p := newTestDigitalOceanProvider(t, srv.URL)

			_, err := p.ListDomains(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *domain.APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestListDomains_UndecodableBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	t.Cleanup(srv.Close)
	p := newTestDigitalOceanProvider(t, srv.URL)

	_, err := p.ListDomains(context.Background())
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestListDomains_ConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	p := newTestDigitalOceanProvider(t, url)

	_, err := p.ListDomains(context.Background())
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestListDomains_UndecodableErrorBodyKeepsStatusKind(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		wantErr error
	}{
		{http.StatusUnauthorized, "", domain.ErrUnauthorized},
		{http.StatusUnauthorized, "<html>Unauthorized</html>", domain.ErrUnauthorized},
		{http.StatusInternalServerError, "", domain.ErrServerError},
		{http.StatusTooManyRequests, "slow down", domain.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d %q", tt.status, tt.body), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)
			p := newTestDigitalOceanProvider(t, srv.URL)

			_, err := p.ListDomains(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if errors.Is(err, domain.ErrTransport) {
				t.Errorf("status error classified as transport: %v", err)
			}
			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *domain.APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Message != "" {
				t.Errorf("APIError = %+v, want status %d and no message", apiErr, tt.status)
			}
		})
	}
}

// --- ListRecords ---

func TestListRecords_HappyPath(t *testing.T) {
	var gotPath string
	body := map[string]any{
		"domain_records": []any{
			map[string]any{"id": 101, "type": "A", "name": "home", "data": "198.51.100.1", "ttl": 1800},
			map[string]any{"id": 102, "type": "MX", "name": "@", "data": "mail.example.com", "ttl": 3600, "priority": 10},
			map[string]any{"id": 103, "type": "CAA", "name": "@", "data": "letsencrypt.org", "ttl": 3600, "flags": 0, "tag": "issue"},
		},
	}
	srv := newJSONServer(t, http.StatusOK, body, func(r *http.Request) { gotPath = r.URL.Path })
	p := newTestDigitalOceanProvider(t, srv.URL)

	records, err := p.ListRecords(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/domains/example.com/records" {
		t.Errorf("path = %q, want /domains/example.com/records", gotPath)
	}

	tag := "issue"
	want := []domain.Record{
		{ID: 101, Type: domain.RecordTypeA, Name: "home", Data: "198.51.100.1", TTL: 1800},
		{ID: 102, Type: "MX", Name: "@", Data: "mail.example.com", TTL: 3600, Priority: intPtr(10)},
		{ID: 103, Type: "CAA", Name: "@", Data: "letsencrypt.org", TTL: 3600, Flags: intPtr(0), Tag: &tag},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("ListRecords mismatch (-want +got):\n%s", diff)
	}
}

func TestListRecords_NotFound(t *testing.T) {
	srv := newJSONServer(t, http.StatusNotFound, map[string]any{"id": "not_found", "message": "The resource you were accessing could not be found."}, nil)
	p := newTestDigitalOceanProvider(t, srv.URL)

	_, err := p.ListRecords(context.Background(), "notexist.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// --- UpdateRecord ---

func TestUpdateRecord_SendsOnlyTypeAndData(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	body := map[string]any{
		"domain_record": map[string]any{"id": 101, "type": "A", "name": "home", "data": "198.51.100.99", "ttl": 1800},
	}
	srv := newJSONServer(t, http.StatusOK, body, func(r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
	})
	p := newTestDigitalOceanProvider(t, srv.URL)

	rec, err := p.UpdateRecord(context.Background(), "example.com", 101, domain.UpdateRecordOpts{
		Type: domain.RecordTypeA,
		Data: "198.51.100.99",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/domains/example.com/records/101" {
		t.Errorf("path = %q, want /domains/example.com/records/101", gotPath)
	}
	wantBody := map[string]any{"type": "A", "data": "198.51.100.99"}
	if diff := cmp.Diff(wantBody, gotBody); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}

	want := &domain.Record{ID: 101, Type: domain.RecordTypeA, Name: "home", Data: "198.51.100.99", TTL: 1800}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("UpdateRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateRecord_RateLimited(t *testing.T) {
	srv := newJSONServer(t, http.StatusTooManyRequests, map[string]any{"id": "too_many_requests", "message": "API Rate limit exceeded."}, nil)
	p := newTestDigitalOceanProvider(t, srv.URL)

	_, err := p.UpdateRecord(context.Background(), "example.com", 7, domain.UpdateRecordOpts{Type: domain.RecordTypeA, Data: "203.0.113.5"})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}
