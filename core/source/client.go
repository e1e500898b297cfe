package source

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ipam-migrator/core/remote"

	"golang.org/x/time/rate"
)

// Collection names exposed by the source inventory.
const (
	CollectionSections  = "sections"
	CollectionVRFs      = "vrfs"
	CollectionL2Domains = "l2domains"
	CollectionVLANs     = "vlans"
	CollectionSubnets   = "subnets"
	CollectionAddresses = "addresses"
)

// Client is a read-only accessor over the source inventory's collections.
// All requests pass through the shared rate limiter.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// envelope is the source API's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
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

// Fetch retrieves all records of one collection. If the deployment reports
// the collection as not found and required is false, an empty list is
// returned instead of an error; the same degradation applies to any failure
// on an optional collection except a cancelled context. Failures on required
// collections propagate as classified remote errors.
func (c *Client) Fetch(ctx context.Context, collection string, required bool) ([]Record, error) {
	records, err := c.fetch(ctx, collection)
	if err == nil {
		return records, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if !required {
		return []Record{}, nil
	}
	return nil, err
}

func (c *Client) fetch(ctx context.Context, collection string) ([]Record, error) {
	op := fmt.Sprintf("GET %s", collection)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	url := fmt.Sprintf("%s/%s/", c.baseURL, strings.Trim(collection, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, remote.Classify(op, 0, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remote.Classify(op, resp.StatusCode, err.Error(), err)
	}

	// 404 means the feature is disabled in this deployment; Fetch decides
	// whether that is tolerable.
	if resp.StatusCode == http.StatusNotFound {
		return nil, remote.Classify(op, resp.StatusCode, "collection not found", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remote.Classify(op, resp.StatusCode, string(body), nil)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", op, err)
	}
	if !env.Success {
		// The transport succeeded but the source itself rejected the
		// call; retrying cannot help.
		return nil, &remote.Error{
			Kind:    remote.KindSemantic,
			Op:      op,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("source error: %s", env.Message),
		}
	}

	var records []Record
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []Record{}, nil
	}
	if err := json.Unmarshal(env.Data, &records); err != nil {
		// Some endpoints return a single object instead of a list.
		return []Record{}, nil
	}
	return records, nil
}
