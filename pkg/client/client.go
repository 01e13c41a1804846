// Package client implements the HTTP client for the property book REST API.
// It exposes one method per searchable category: property listings, people
// search, transfer listings and the reference catalog universal search.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/oauth2"

	"github.com/toole-brendan/hrx-sub003/pkg/log"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for any non-2xx response from the server.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

// Client talks to a single property book API server.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Options configures a Client.
type Options struct {
	// Token is the bearer token used for authenticated endpoints.
	// Empty means unauthenticated requests.
	Token string
	// Timeout bounds each request. Zero means the 10s default.
	Timeout time.Duration
}

// New creates a client for the API at baseURL.
//
// Compression is handled explicitly: the transport's automatic gzip is
// disabled and responses are decoded based on Content-Encoding, so the
// Accept-Encoding header we send is honored verbatim by proxies.
func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty server URL")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	base := &http.Client{
		Transport: &http.Transport{DisableCompression: true},
	}

	httpClient := base
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, ts)
	}
	httpClient.Timeout = timeout

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  log.ForComponent("client"),
	}, nil
}

// Properties lists all property records visible to the caller.
func (c *Client) Properties(ctx context.Context) ([]Property, error) {
	var resp propertiesResponse
	if err := c.get(ctx, "/api/property", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching properties: %w", err)
	}
	return resp.Properties, nil
}

// SearchUsers runs the server-side people search.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	q := url.Values{"q": []string{query}}
	var resp usersResponse
	if err := c.get(ctx, "/api/users/search", q, &resp); err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	return resp.Users, nil
}

// Transfers lists transfers, optionally narrowed by status and direction.
func (c *Client) Transfers(ctx context.Context, filter TransferFilter) ([]Transfer, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Direction != "" {
		q.Set("direction", filter.Direction)
	}
	var resp transfersResponse
	if err := c.get(ctx, "/api/transfers", q, &resp); err != nil {
		return nil, fmt.Errorf("fetching transfers: %w", err)
	}
	return resp.Transfers, nil
}

// SearchCatalog runs the server-side universal search over the reference
// catalog (NSN, part numbers, nomenclature).
func (c *Client) SearchCatalog(ctx context.Context, query string, limit int) ([]CatalogItem, error) {
	q := url.Values{"q": []string{query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp catalogResponse
	if err := c.get(ctx, "/api/nsn/universal-search", q, &resp); err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	if !resp.Success && resp.Error != "" {
		return nil, fmt.Errorf("searching catalog: %s", resp.Error)
	}
	return resp.Data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	c.logger.Debugf("GET %s", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warnf("closing response body: %v", cerr)
		}
	}()

	var body io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("opening gzip reader: %w", err)
		}
		defer func() {
			if cerr := gz.Close(); cerr != nil {
				c.logger.Warnf("closing gzip reader: %v", cerr)
			}
		}()
		body = gz
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Keep error bodies short; servers return small JSON error objects.
		raw, _ := io.ReadAll(io.LimitReader(body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
