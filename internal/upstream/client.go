package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrTransport   = errors.New("upstream transport failure")
	ErrInvalidJSON = errors.New("upstream returned invalid JSON")
)

var upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "upstream_requests_total",
	Help: "Requests forwarded to the upstream file API.",
}, []string{"method", "status"})

// Response is what came back from the upstream, body fully read.
type Response struct {
	Status int
	Body   []byte
}

func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// JSON returns the body if it parses as JSON.
func (r Response) JSON() (json.RawMessage, error) {
	if !json.Valid(r.Body) {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(r.Body), nil
}

// Client talks to the fixed upstream base URL. It never retries and sets
// no timeout of its own: the caller's context bounds every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) URL(segments []string, params []QueryParam) string {
	return BuildURL(c.baseURL, segments, params)
}

func (c *Client) Get(ctx context.Context, segments []string, params []QueryParam) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(segments, params), nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// Post forwards body untouched, keeping the inbound content type so a
// multipart boundary survives the hop.
func (c *Client) Post(ctx context.Context, params []QueryParam, contentType string, body io.Reader, contentLength int64) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(nil, params), body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build POST request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if contentLength > 0 {
		req.ContentLength = contentLength
	}
	return c.do(req)
}

func (c *Client) Delete(ctx context.Context, segments []string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.URL(segments, nil), nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build DELETE request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return Response{}, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return Response{}, fmt.Errorf("%w: reading %s response: %v", ErrTransport, req.Method, err)
	}

	upstreamRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return Response{Status: resp.StatusCode, Body: body}, nil
}
