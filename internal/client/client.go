// Package client calls a running insight server.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-sod/insight/internal/carprice"
	"github.com/go-sod/insight/internal/httputil"
	"github.com/go-sod/insight/internal/iris"
	"github.com/go-sod/insight/internal/records"
	"github.com/go-sod/insight/internal/sales"
	"github.com/go-sod/insight/internal/spam"
	"github.com/goccy/go-json"
)

// StatusError is a non 2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Code, e.Body)
}

type Client struct {
	client *http.Client
}

func New(cfg httputil.HTTPClientConfig) (*Client, error) {
	c, err := httputil.NewClientFromConfig(cfg, false)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return &Client{client: c}, nil
}

func (c *Client) CarPrice(ctx context.Context, r CarPriceRequest) (*carprice.Estimate, error) {
	var out carprice.Estimate
	if err := c.postJSON(ctx, "/carprice", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Sales(ctx context.Context, r SalesRequest) (*sales.Estimate, error) {
	var out sales.Estimate
	if err := c.postJSON(ctx, "/sales", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Spam(ctx context.Context, r SpamRequest) (*spam.Verdict, error) {
	var out spam.Verdict
	if err := c.postJSON(ctx, "/spam", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Iris(ctx context.Context, r IrisRequest) (*IrisPrediction, error) {
	var out IrisPrediction
	if err := c.postJSON(ctx, "/iris", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IrisSummary(ctx context.Context) (*iris.Summary, error) {
	var out iris.Summary
	if err := c.do(ctx, http.MethodGet, "/iris", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard returns the summary, or nil and the server message when the
// selection is empty.
func (c *Client) Dashboard(ctx context.Context, q DashboardQuery) (*records.Summary, string, error) {
	v := url.Values{}
	for _, r := range q.Regions {
		v.Add("region", r)
	}
	if q.Start != "" {
		v.Set("start", q.Start)
	}
	if q.End != "" {
		v.Set("end", q.End)
	}
	path := "/unemployment"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, "", err
	}
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Message != "" {
		return nil, probe.Message, nil
	}
	var out records.Summary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, "", fmt.Errorf("decode dashboard: %w", err)
	}
	return &out, "", nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("unable marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("create new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", httputil.ContentTypeJSON)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error with sending request: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
