// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package usage tracks the remote interaction quota. The tracker is the
// sole writer of the UsageState it exposes: every refresh replaces the
// whole snapshot, and snapshots are sequence-numbered so a slow response
// can never overwrite a newer one.
package usage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bluedash/bluedash-tui/internal/model"
)

// PollInterval is the default period of the background usage poll.
const PollInterval = 60 * time.Second

// Fetcher retrieves the current usage snapshot from the service.
// *api.Client satisfies this.
type Fetcher interface {
	RateLimitInfo(ctx context.Context) (*model.UsageState, error)
}

// Tracker holds the last known usage snapshot and coordinates refreshes.
// Safe for concurrent use; refreshes run on whatever goroutine calls
// Refresh (a tea.Cmd in practice) while the UI reads State.
type Tracker struct {
	fetcher Fetcher
	limiter *rate.Limiter

	mu      sync.Mutex
	state   model.UsageState
	seq     uint64 // last issued refresh
	applied uint64 // newest refresh whose result has been applied
}

// NewTracker creates a tracker seeded with the pre-fetch default state.
// The limiter coalesces refreshes closer together than minInterval so a
// pre-send refresh racing the periodic poll does not double-fetch.
func NewTracker(fetcher Fetcher, minInterval time.Duration) *Tracker {
	if minInterval <= 0 {
		minInterval = 2 * time.Second
	}
	return &Tracker{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
		state:   model.DefaultUsageState(),
	}
}

// State returns the current snapshot.
func (t *Tracker) State() model.UsageState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Refresh fetches a fresh snapshot and applies it, returning the state
// afterwards. Calls arriving within the coalescing window return the
// current state without fetching. On fetch failure the numeric fields keep
// their last known values and only the error flag changes.
func (t *Tracker) Refresh(ctx context.Context) model.UsageState {
	if !t.limiter.Allow() {
		return t.State()
	}

	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	fresh, err := t.fetcher.RateLimitInfo(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	// A newer refresh already landed; this response is stale.
	if seq <= t.applied {
		return t.state
	}
	t.applied = seq

	if err != nil {
		t.state.Loading = false
		t.state.Err = err.Error()
		return t.state
	}

	next := *fresh
	next.Loading = false
	t.state = next
	return t.state
}

// ApplyRemaining updates the snapshot directly from the remaining count a
// chat response carried, without waiting for the next poll. It counts as
// the newest snapshot, so any poll already in flight is discarded on
// arrival rather than rolling the number back.
func (t *Tracker) ApplyRemaining(remaining int) model.UsageState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.IsUnlimited() {
		return t.state
	}

	t.seq++
	t.applied = t.seq

	t.state.Remaining = remaining
	if t.state.Limit > 0 {
		t.state.CurrentUsage = t.state.Limit - remaining
	}
	t.state.Loading = false
	t.state.Err = ""
	return t.state
}
