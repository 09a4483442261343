// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the Expert AI service.
//
// Every non-trivial operation of the application (chat generation,
// authentication, rate limiting, billing) is delegated to this REST API.
// The client attaches the stored session token as a raw Authorization
// header value (the service does not use a scheme prefix) and maps the
// documented error statuses onto typed errors (errors.go).
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the service API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient is the process-wide HTTP client with connection pooling.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// TokenSource supplies the session token for outbound requests. The token
// is read at request-construction time, so clearing it mid-flight only
// affects calls issued afterwards.
type TokenSource interface {
	Token() string
}

// Client is a client for the Expert AI service API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client against the given base URL. The token source
// may serve an empty token; unauthenticated requests then simply carry no
// Authorization value, and the service answers 401 where auth is required.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithBaseURL sets a custom base URL.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// setHeaders sets the required headers. The Authorization value is the raw
// stored token; the service does not expect a "Bearer" prefix.
func (c *Client) setHeaders(req *http.Request, authed bool) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "bluedash/0.1.0")

	if authed && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", token)
		}
	}
}

// logRequest logs an API request without exposing sensitive data: no
// headers (auth) and no body.
func logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only, never the response body.
func logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// do performs one request and returns the response body for 2xx statuses.
// Non-2xx statuses are mapped to the typed errors in errors.go; transport
// failures are wrapped in ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, reqBody any, authed bool) ([]byte, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		bodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, authed)

	logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	logResponse(resp, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapErrorResponse(resp.StatusCode, body)
	}
	return body, nil
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// apiErrorBody is the union of the error payload shapes the service sends.
// Generic failures use "error", auth endpoints use "message", and the 402
// email-capture gate sets "requiresAuth". 429 responses add quota details.
type apiErrorBody struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	RequiresAuth bool   `json:"requiresAuth"`

	Limit            int    `json:"limit"`
	PlanType         string `json:"planType"`
	ResetTime        string `json:"resetTime"`
	SuggestedUpgrade *struct {
		Plan  string `json:"plan"`
		Limit int    `json:"limit"`
	} `json:"suggestedUpgrade"`
}

// mapErrorResponse converts a non-2xx response into a typed error.
func mapErrorResponse(status int, body []byte) error {
	var payload apiErrorBody
	_ = json.Unmarshal(body, &payload) // best effort; an empty payload still maps

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}

	switch status {
	case http.StatusUnauthorized:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrAuthRequired, msg)
		}
		return ErrAuthRequired
	case http.StatusPaymentRequired:
		if payload.RequiresAuth {
			return ErrEmailCaptureRequired
		}
		return &APIError{Status: status, Message: msg}
	case http.StatusTooManyRequests:
		rle := &RateLimitError{
			Limit: payload.Limit,
			Plan:  payload.PlanType,
		}
		if t, err := time.Parse(time.RFC3339, payload.ResetTime); err == nil {
			rle.ResetTime = t
		}
		if payload.SuggestedUpgrade != nil {
			rle.SuggestedPlan = payload.SuggestedUpgrade.Plan
			rle.SuggestedLimit = payload.SuggestedUpgrade.Limit
		}
		return rle
	default:
		return &APIError{Status: status, Message: msg}
	}
}
