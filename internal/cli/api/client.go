package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"AuthKit/internal/cli/repo"

	"go.uber.org/zap"
)

// Client sends JSON requests to a fixed origin.
type Client struct {
	origin string
	http   *http.Client
	tokens repo.TokenStore
	logger *zap.SugaredLogger
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger enables debug logging of outgoing requests.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(origin string, tokens repo.TokenStore, opts ...Option) *Client {
	c := &Client{
		origin: strings.TrimRight(origin, "/"),
		http:   http.DefaultClient,
		tokens: tokens,
		logger: zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Origin returns the base URL requests are sent to.
func (c *Client) Origin() string { return c.origin }

// Post sends body as JSON to origin+path. With requiresAuth the stored
// access token, if there is one, goes out as a bearer Authorization header.
// A missing token is not an error: the request is sent anonymously.
// Request failures are *Error; only an unencodable body or an invalid
// origin/path come back as plain errors, before anything is sent.
func (c *Client) Post(ctx context.Context, path string, body any, requiresAuth bool) (*Envelope, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, b, requiresAuth)
}

// Get fetches origin+path without a body; the response is handled as in Post.
func (c *Client) Get(ctx context.Context, path string, requiresAuth bool) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, requiresAuth)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, requiresAuth bool) (*Envelope, error) {
	url := c.origin + path
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requiresAuth && c.tokens != nil {
		token, err := c.tokens.Load()
		if err != nil {
			return nil, &Error{Kind: KindStore, Err: err}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debugw("request failed", "url", url, "error", err)
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}
	c.logger.Debugw("request",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	env, decErr := DecodeEnvelope(raw)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if decErr != nil {
		if ok {
			// тело не JSON: считаем ответ пустым объектом
			return emptyEnvelope(), nil
		}
		return nil, &Error{
			Kind:    KindMalformed,
			Status:  resp.StatusCode,
			Message: "{}",
			Raw:     string(raw),
		}
	}
	if !ok {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: env.ErrorMessage(), Raw: string(raw)}
	}
	return env, nil
}
