package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/scholara/portal/internal/errors"
)

// HeaderSource supplies the Authorization headers attached to every
// gateway request. *session.Store satisfies it; an empty map means the
// request goes out unauthenticated.
type HeaderSource interface {
	AuthHeaders() map[string]string
}

// Client translates domain operations into authenticated HTTP requests
// against the API gateway and normalizes the heterogeneous response
// envelopes the backend services return.
type Client struct {
	baseURL    string
	graphqlURL string
	httpClient *http.Client
	headers    HeaderSource
}

// ClientOption modifies a Client instance.
type ClientOption func(*Client)

// WithHTTPClient substitutes the transport. No client-side timeouts are
// configured by default; the transport's own defaults apply.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithGraphQLURL overrides the GraphQL endpoint, which otherwise sits
// at /graphql under the gateway base URL.
func WithGraphQLURL(graphqlURL string) ClientOption {
	return func(c *Client) {
		c.graphqlURL = graphqlURL
	}
}

func NewClient(baseURL string, headers HeaderSource, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		graphqlURL: strings.TrimRight(baseURL, "/") + "/graphql",
		httpClient: http.DefaultClient,
		headers:    headers,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// StatusError is a non-2xx gateway response. Message carries the most
// specific server-supplied field (error, then message, then detail) or
// a synthesized fallback when the body is unusable.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func newStatusError(status int, body []byte) *StatusError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	var message string
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Error != "":
			message = payload.Error
		case payload.Message != "":
			message = payload.Message
		case payload.Detail != "":
			message = payload.Detail
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &StatusError{Status: status, Message: message}
}

// request performs one gateway call and returns the raw body and HTTP
// status. A transport failure (no response at all) is returned as a
// wrapped error so callers can distinguish it from a rejection.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "[Client.request] marshal %s %s", method, path)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "[Client.request] build %s %s", method, path)
	}
	for key, value := range c.headers.AuthHeaders() {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "[Client.request] %s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrapf(err, "[Client.request] read %s %s", method, path)
	}
	return raw, resp.StatusCode, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// getJSON performs a GET and decodes a single record, rejecting
// non-2xx responses and undecodable bodies.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, status, err := c.request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return newStatusError(status, body)
	}
	return decodeInto(status, body, out)
}

// decodeInto decodes a 2xx body; an undecodable success body is
// surfaced the same way as an unusable rejection body.
func decodeInto(status int, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return newStatusError(status, nil)
	}
	return nil
}

// list performs a GET against a collection endpoint and tolerates both
// response shapes the backends use: a bare JSON array, or the
// paginated {count, next, previous, results} envelope. Callers always
// receive a plain ordered slice; zero matches is not an error.
func list[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	body, status, err := c.request(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	return normalizeList[T](status, body)
}

func normalizeList[T any](status int, body []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, newStatusError(status, nil)
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, newStatusError(status, nil)
	}
	if envelope.Results == nil {
		return []T{}, nil
	}
	return envelope.Results, nil
}
