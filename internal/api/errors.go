// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"time"
)

// Error variables for the remote service's documented failure modes. Every
// call site that issues a request translates its error into exactly one of
// these classes; nothing bubbles to the UI untyped.
var (
	// ErrAuthRequired indicates the token is missing, invalid, or expired
	// (HTTP 401). There is no automatic retry; the user must re-authenticate.
	ErrAuthRequired = errors.New("authentication required")

	// ErrEmailCaptureRequired indicates a free-tier user must submit
	// name/email before continuing (HTTP 402 with the capture flag set).
	ErrEmailCaptureRequired = errors.New("email capture required")

	// ErrRateLimited indicates the interaction quota is exhausted (HTTP 429).
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork indicates no response was received at all.
	ErrNetwork = errors.New("network unavailable")

	// ErrNoCheckoutURL indicates checkout succeeded but the response did
	// not carry a session URL to navigate to.
	ErrNoCheckoutURL = errors.New("no checkout URL returned")
)

// APIError represents a generic non-2xx response, carrying the
// server-supplied message when one was present.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}

// RateLimitError carries the quota details the service reports alongside a
// 429 so the upgrade prompt can describe the situation.
type RateLimitError struct {
	Limit          int
	Plan           string
	ResetTime      time.Time
	SuggestedPlan  string
	SuggestedLimit int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: used all %d interactions on the %s plan", e.Limit, e.Plan)
}

// Unwrap lets errors.Is(err, ErrRateLimited) match.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
