package target

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ipam-migrator/core/remote"

	"golang.org/x/time/rate"
)

// Collection paths under the target's /api root.
const (
	CollectionVRFs       = "ipam/vrfs"
	CollectionVLANGroups = "ipam/vlan-groups"
	CollectionVLANs      = "ipam/vlans"
	CollectionPrefixes   = "ipam/prefixes"
	CollectionAddresses  = "ipam/ip-addresses"
	CollectionSites      = "dcim/sites"
)

// Client is a mutable accessor over the target inventory. Every collection
// supports natural-key filtered lookup, create, and update; reads and writes
// both pass through the shared rate limiter.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// page is the target's standard paginated response envelope.
type page struct {
	Count   int      `json:"count"`
	Next    *string  `json:"next"`
	Results []Record `json:"results"`
}

// NewClient creates a Client from the configuration. limiter bounds the
// request rate; pass nil to disable rate limiting.
func NewClient(cfg Config, limiter *rate.Limiter) *Client {
	transport := &http.Transport{}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(timeout) * time.Second,
		},
		limiter: limiter,
	}
}

// Filter returns the records of a collection matching the given query
// parameters. A natural-key lookup that matches nothing returns an empty
// slice, not an error.
func (c *Client) Filter(ctx context.Context, collection string, params url.Values) ([]Record, error) {
	op := fmt.Sprintf("GET %s", collection)

	u := c.collectionURL(collection)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, status, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, remote.Classify(op, status, errBody(body, err), err)
	}

	var pg page
	if err := json.Unmarshal(body, &pg); err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return pg.Results, nil
}

// ListAll fetches every record of a collection, following pagination.
func (c *Client) ListAll(ctx context.Context, collection string) ([]Record, error) {
	op := fmt.Sprintf("GET %s", collection)

	var all []Record
	next := c.collectionURL(collection)
	for next != "" {
		body, status, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, remote.Classify(op, status, errBody(body, err), err)
		}

		var pg page
		if err := json.Unmarshal(body, &pg); err != nil {
			return nil, fmt.Errorf("%s: parsing response: %w", op, err)
		}
		all = append(all, pg.Results...)

		next = ""
		if pg.Next != nil && *pg.Next != "" {
			next = *pg.Next
			if strings.HasPrefix(next, "/") {
				next = c.baseURL + next
			}
		}
	}
	return all, nil
}

// Create inserts a new record into a collection and returns it.
func (c *Client) Create(ctx context.Context, collection string, payload map[string]any) (Record, error) {
	op := fmt.Sprintf("POST %s", collection)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling payload: %w", op, err)
	}

	body, status, err := c.do(ctx, http.MethodPost, c.collectionURL(collection), data)
	if err != nil {
		return nil, remote.Classify(op, status, errBody(body, err), err)
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return rec, nil
}

// Update applies a partial update to an existing record.
func (c *Client) Update(ctx context.Context, collection string, id int, payload map[string]any) (Record, error) {
	op := fmt.Sprintf("PATCH %s/%d", collection, id)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling payload: %w", op, err)
	}

	u := fmt.Sprintf("%s%d/", c.collectionURL(collection), id)
	body, status, err := c.do(ctx, http.MethodPatch, u, data)
	if err != nil {
		return nil, remote.Classify(op, status, errBody(body, err), err)
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return rec, nil
}

// do issues one rate-limited request and returns the raw body. A non-2xx
// status is reported as an error alongside the body so the caller can
// classify it.
func (c *Client) do(ctx context.Context, method, u string, payload []byte) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) collectionURL(collection string) string {
	return fmt.Sprintf("%s/api/%s/", c.baseURL, strings.Trim(collection, "/"))
}

func errBody(body []byte, err error) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" && err != nil {
		msg = err.Error()
	}
	return truncate(msg, 500)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
