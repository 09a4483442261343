// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bluedash/bluedash-tui/internal/model"
)

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// authResponse is the success body of login and signup.
type authResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := map[string]string{"email": email, "password": password}
	body, err := c.do(ctx, http.MethodPost, "/v1/auth/login", req, false)
	if err != nil {
		return "", err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login succeeded but no token was returned")
	}
	return resp.Token, nil
}

// Signup registers an account and returns a session token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	body, err := c.do(ctx, http.MethodPost, "/v1/auth/signup", req, false)
	if err != nil {
		return "", err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse signup response: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("signup succeeded but no token was returned")
	}
	return resp.Token, nil
}

// ForgotPassword requests a password reset email. The server message, when
// present, is returned so the form can display it verbatim.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	req := map[string]string{"email": email}
	body, err := c.do(ctx, http.MethodPost, "/v1/auth/forgot-password", req, false)
	if err != nil {
		return "", err
	}

	var resp authResponse
	_ = json.Unmarshal(body, &resp)
	return resp.Message, nil
}

// ResetPassword sets a new password using an emailed reset token. The token
// travels in the path, not the Authorization header.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	req := map[string]string{"password": password}
	body, err := c.do(ctx, http.MethodPost, "/v1/auth/reset-password/"+url.PathEscape(resetToken), req, false)
	if err != nil {
		return "", err
	}

	var resp authResponse
	_ = json.Unmarshal(body, &resp)
	return resp.Message, nil
}

// CaptureEmail submits the free-tier name/email gate. No Authorization
// header: the gate exists precisely because there is no account yet.
func (c *Client) CaptureEmail(ctx context.Context, name, email string) error {
	req := map[string]string{"name": name, "email": email}
	_, err := c.do(ctx, http.MethodPost, "/auth/capture-email", req, false)
	return err
}

// =============================================================================
// USAGE / BILLING ENDPOINTS
// =============================================================================

// flexCount is an int that also accepts the JSON string "Unlimited", which
// the service sends for Premium accounts where a number is expected.
type flexCount int

func (f *flexCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexCount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("count is neither number nor string: %s", data)
	}
	if s == "Unlimited" {
		*f = flexCount(model.Unlimited)
		return nil
	}
	return fmt.Errorf("unrecognized count value %q", s)
}

// RateLimitInfo fetches the current usage snapshot.
func (c *Client) RateLimitInfo(ctx context.Context) (*model.UsageState, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/auth/rate-limit-info", nil, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success        bool      `json:"success"`
		PlanType       string    `json:"planType"`
		CurrentUsage   int       `json:"currentUsage"`
		Limit          flexCount `json:"limit"`
		Remaining      flexCount `json:"remaining"`
		ResetTime      string    `json:"resetTime"`
		BoostCredits   int       `json:"boostCredits"`
		WindowDuration string    `json:"windowDuration"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse usage info: %w", err)
	}
	// A 200 with success:false carries no usable numbers; treating it as
	// a snapshot would zero out the caller's last known state.
	if !resp.Success {
		return nil, fmt.Errorf("usage info request unsuccessful")
	}

	state := &model.UsageState{
		Plan:           model.ParsePlanType(resp.PlanType),
		CurrentUsage:   resp.CurrentUsage,
		Limit:          int(resp.Limit),
		Remaining:      int(resp.Remaining),
		BoostCredits:   resp.BoostCredits,
		WindowDuration: resp.WindowDuration,
	}
	if t, err := time.Parse(time.RFC3339, resp.ResetTime); err == nil {
		state.ResetTime = t
	}
	return state, nil
}

// Checkout starts a checkout session for a plan upgrade or a boost purchase
// and returns the URL to navigate to. A 2xx response without a session URL
// is ErrNoCheckoutURL.
func (c *Client) Checkout(ctx context.Context, plan string) (string, error) {
	req := map[string]string{"plan": plan}
	body, err := c.do(ctx, http.MethodPost, "/checkout", req, true)
	if err != nil {
		return "", err
	}

	var resp struct {
		Session struct {
			URL string `json:"url"`
		} `json:"session"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse checkout response: %w", err)
	}
	if resp.Session.URL == "" {
		return "", ErrNoCheckoutURL
	}
	return resp.Session.URL, nil
}
