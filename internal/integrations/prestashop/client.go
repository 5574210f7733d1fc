// internal/integrations/prestashop/client.go
package prestashop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxResponseSize caps what we read from the webservice (10MB).
const maxResponseSize = 10 * 1024 * 1024

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "prestashop-mcp/1.0"
)

type Config struct {
	ShopURL   string        // https://shop.example.com
	APIKey    string        // webservice key, sent as basic auth user
	Languages Languages     // language ids every multilingual field is filled for
	Timeout   time.Duration // per request
}

// Observer gets one callback per finished HTTP round trip (status 0 on transport errors).
type Observer interface {
	ObserveRequest(method, resource string, status int, elapsed time.Duration)
}

type Option func(*Client)

func WithLogger(log zerolog.Logger) Option { return func(c *Client) { c.log = log } }

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithObserver(o Observer) Option { return func(c *Client) { c.obs = o } }

type Client struct {
	log  zerolog.Logger
	cfg  Config
	base *url.URL
	http *http.Client
	obs  Observer
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}
	if !strings.HasPrefix(cfg.ShopURL, "http://") && !strings.HasPrefix(cfg.ShopURL, "https://") {
		return nil, fmt.Errorf("%w: shop url must start with http:// or https://", ErrInvalidConfig)
	}
	base, err := url.Parse(strings.TrimRight(cfg.ShopURL, "/") + "/api/")
	if err != nil {
		return nil, fmt.Errorf("%w: shop url: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultLanguages
	}
	seen := make(map[int]bool, len(cfg.Languages))
	for _, id := range cfg.Languages {
		if id <= 0 || seen[id] {
			return nil, fmt.Errorf("%w: language id %d is invalid or repeated", ErrInvalidConfig, id)
		}
		seen[id] = true
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	c := &Client{log: zerolog.Nop(), cfg: cfg, base: base}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	return c, nil
}

func (c *Client) Languages() Languages { return c.cfg.Languages }

// Close releases pooled connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, resource string, q url.Values) (Record, error) {
	return c.do(ctx, http.MethodGet, resource, q, nil)
}

func (c *Client) post(ctx context.Context, resource string, doc Record) (Record, error) {
	return c.do(ctx, http.MethodPost, resource, nil, doc)
}

func (c *Client) put(ctx context.Context, resource string, doc Record) (Record, error) {
	return c.do(ctx, http.MethodPut, resource, nil, doc)
}

func (c *Client) delete(ctx context.Context, resource string) (Record, error) {
	return c.do(ctx, http.MethodDelete, resource, nil, nil)
}

func (c *Client) do(ctx context.Context, method, resource string, q url.Values, doc Record) (Record, error) {
	u := c.base.ResolveReference(&url.URL{Path: resource})
	query := url.Values{}
	for k, v := range q {
		query[k] = v
	}
	query.Set("output_format", "JSON")
	u.RawQuery = query.Encode()

	var body io.Reader
	var payload Payload
	if doc != nil && (method == http.MethodPost || method == http.MethodPut) {
		var err error
		payload, err = Encode(doc, RootElement)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, resource, err)
		}
		body = strings.NewReader(payload.Body)
		c.log.Debug().Str("method", method).Str("resource", resource).Str("xml", payload.Body).Msg("xml request")
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.SetBasicAuth(c.cfg.APIKey, "")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", payload.ContentType)
	}

	label := resourceLabel(resource)
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, label, 0, started)
		c.log.Error().Err(err).Str("method", method).Str("resource", resource).Msg("prestashop transport error")
		return nil, &APIError{Method: method, Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	c.observe(method, label, resp.StatusCode, started)
	if err != nil {
		return nil, &APIError{Method: method, Resource: resource, Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.Debug().
		Str("method", method).
		Str("resource", resource).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(started)).
		Msg("prestashop request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Method: method, Resource: resource, Status: resp.StatusCode, Body: string(raw)}
	}
	return c.parse(resp.Header.Get("Content-Type"), raw), nil
}

// parse never fails: anything that is neither JSON nor XML is handed back raw.
func (c *Client) parse(contentType string, raw []byte) Record {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Record{}
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err == nil {
			switch t := v.(type) {
			case map[string]any:
				return Record(t)
			case []any:
				// empty collections come back as [] instead of {"products": []}
				if len(t) == 0 {
					return Record{}
				}
				return Record{"items": t}
			}
		}
	}

	if trimmed[0] == '<' || strings.Contains(contentType, "xml") {
		if rec, err := Decode(bytes.NewReader(trimmed)); err == nil {
			return rec
		}
	}

	c.log.Warn().Str("body", truncate(string(trimmed), 200)).Msg("non-JSON response")
	return Record{"raw_response": string(raw)}
}

func (c *Client) observe(method, resource string, status int, started time.Time) {
	if c.obs != nil {
		c.obs.ObserveRequest(method, resource, status, time.Since(started))
	}
}

// resourceLabel keeps metric cardinality down: "products/42" -> "products".
func resourceLabel(resource string) string {
	if i := strings.IndexByte(resource, '/'); i >= 0 {
		return resource[:i]
	}
	return resource
}
