package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/wanddns/internal/dns/domain"

	"golang.org/x/net/http/httpguts"
)

const (
	digitalOceanBaseURL = "https://api.digitalocean.com/v2"
	digitalOceanTimeout = 30 * time.Second

	// digitalOceanDomainLimit is the page size used for ListDomains. Accounts
	// with more domains are not fully enumerated.
	digitalOceanDomainLimit = 200
)

// Compile-time check that DigitalOceanProvider satisfies domain.Provider.
var _ domain.Provider = (*DigitalOceanProvider)(nil)

// DigitalOceanProvider implements domain.Provider using the DigitalOcean API v2.
// It holds no state between calls and never retries on its own.
type DigitalOceanProvider struct {
	authHeader string
	baseURL    string
	client     *http.Client
}

// NewDigitalOceanProvider creates a DigitalOceanProvider for the given API key.
// It fails with domain.ErrInvalidCredential when the key cannot be sent as an
// Authorization header value.
func NewDigitalOceanProvider(apiKey string) (*DigitalOceanProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("digitalocean: %w: key is empty", domain.ErrInvalidCredential)
	}

	header := "Bearer " + apiKey
	if !httpguts.ValidHeaderFieldValue(header) {
		return nil, fmt.Errorf("digitalocean: %w", domain.ErrInvalidCredential)
	}

	return &DigitalOceanProvider{
		authHeader: header,
		baseURL:    digitalOceanBaseURL,
		client:     &http.Client{Timeout: digitalOceanTimeout},
	}, nil
}

// GetDisplayName returns the human-readable provider name.
func (p *DigitalOceanProvider) GetDisplayName() string {
	return "DigitalOcean"
}

// --- API request/response types ---

// doErrorBody is the body DigitalOcean returns alongside error status codes.
type doErrorBody struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type doListDomainsResponse struct {
	Domains []domain.Domain `json:"domains"`
}

type doListRecordsResponse struct {
	DomainRecords []domain.Record `json:"domain_records"`
}

type doUpdateRecordBody struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type doUpdateRecordResponse struct {
	DomainRecord domain.Record `json:"domain_record"`
}

// --- HTTP helpers ---

// statusKinds maps the status codes DigitalOcean documents to sentinels.
var statusKinds = map[int]error{
	http.StatusUnauthorized:        domain.ErrUnauthorized,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusTooManyRequests:     domain.ErrRateLimited,
	http.StatusInternalServerError: domain.ErrServerError,
}

// do sends a single request and decodes a 200 response into out.
func (p *DigitalOceanProvider) do(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("digitalocean: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("digitalocean: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", p.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("digitalocean: %w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("digitalocean: %w: failed to decode response: %w", domain.ErrTransport, err)
		}
		return nil
	}

	kind, known := statusKinds[resp.StatusCode]
	if !known {
		return &domain.APIError{StatusCode: resp.StatusCode, Kind: domain.ErrUnexpectedStatus}
	}

	// The status alone decides the category; the message is best-effort.
	var errBody doErrorBody
	_ = json.NewDecoder(resp.Body).Decode(&errBody)
	return &domain.APIError{StatusCode: resp.StatusCode, Message: errBody.Message, Kind: kind}
}

// --- Provider implementation ---

// ListDomains returns up to 200 domains in the account.
func (p *DigitalOceanProvider) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	var out doListDomainsResponse
	path := "/domains?per_page=" + strconv.Itoa(digitalOceanDomainLimit)
	if err := p.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	return out.Domains, nil
}

// ListRecords returns all DNS records for the given domain.
func (p *DigitalOceanProvider) ListRecords(ctx context.Context, domainName string) ([]domain.Record, error) {
	var out doListRecordsResponse
	path := "/domains/" + url.PathEscape(domainName) + "/records"
	if err := p.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list records for %q: %w", domainName, err)
	}
	return out.DomainRecords, nil
}

// UpdateRecord sends a PATCH carrying only type and data, leaving the rest
// of the record untouched, and returns the updated record.
func (p *DigitalOceanProvider) UpdateRecord(ctx context.Context, domainName string, id int, opts domain.UpdateRecordOpts) (*domain.Record, error) {
	body := doUpdateRecordBody{
		Type: string(opts.Type),
		Data: opts.Data,
	}

	var out doUpdateRecordResponse
	path := fmt.Sprintf("/domains/%s/records/%d", url.PathEscape(domainName), id)
	if err := p.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, fmt.Errorf("failed to update record %d for %q: %w", id, domainName, err)
	}
	return &out.DomainRecord, nil
}
