// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package usage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedash/bluedash-tui/internal/model"
)

// fakeFetcher returns queued responses in call order. Each call can be
// gated on a channel so tests control which response lands first.
type fakeFetcher struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     int
}

type fakeResponse struct {
	state *model.UsageState
	err   error
	gate  chan struct{} // if non-nil, the call blocks until closed
}

func (f *fakeFetcher) RateLimitInfo(ctx context.Context) (*model.UsageState, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	var resp fakeResponse
	if idx < len(f.responses) {
		resp = f.responses[idx]
	}
	f.mu.Unlock()

	if resp.gate != nil {
		<-resp.gate
	}
	if resp.state == nil && resp.err == nil {
		return nil, errors.New("unexpected call")
	}
	return resp.state, resp.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func proState(remaining int) *model.UsageState {
	return &model.UsageState{
		Plan:           model.PlanPro,
		CurrentUsage:   25 - remaining,
		Limit:          25,
		Remaining:      remaining,
		WindowDuration: "24 hours",
	}
}

func TestRefreshReplacesWholeSnapshot(t *testing.T) {
	f := &fakeFetcher{responses: []fakeResponse{{state: proState(22)}}}
	tr := NewTracker(f, time.Nanosecond)

	assert.True(t, tr.State().Loading)

	got := tr.Refresh(context.Background())
	assert.False(t, got.Loading)
	assert.Equal(t, model.PlanPro, got.Plan)
	assert.Equal(t, 22, got.Remaining)
	assert.Equal(t, 3, got.CurrentUsage)
	assert.Empty(t, got.Err)
}

func TestRefreshFailureKeepsLastKnownGood(t *testing.T) {
	f := &fakeFetcher{responses: []fakeResponse{
		{state: proState(22)},
		{err: errors.New("connection refused")},
	}}
	tr := NewTracker(f, time.Nanosecond)

	tr.Refresh(context.Background())
	got := tr.Refresh(context.Background())

	// Numbers survive; only the error flag changes.
	assert.Equal(t, 22, got.Remaining)
	assert.Equal(t, model.PlanPro, got.Plan)
	assert.Equal(t, "connection refused", got.Err)

	// A later success clears the error.
	f.mu.Lock()
	f.responses = append(f.responses, fakeResponse{state: proState(21)})
	f.mu.Unlock()
	got = tr.Refresh(context.Background())
	assert.Equal(t, 21, got.Remaining)
	assert.Empty(t, got.Err)
}

func TestStaleResponseDiscarded(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{responses: []fakeResponse{
		{state: proState(10), gate: gate}, // issued first, lands last
		{state: proState(3)},
	}}
	tr := NewTracker(f, time.Nanosecond)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tr.Refresh(context.Background())
	}()

	// Wait until the first refresh is in flight so its sequence number is
	// older than the second's.
	require.Eventually(t, func() bool { return f.callCount() == 1 },
		time.Second, time.Millisecond)

	tr.Refresh(context.Background())
	assert.Equal(t, 3, tr.State().Remaining)

	close(gate)
	wg.Wait()

	// The slow response carried remaining=10 but must not roll back.
	assert.Equal(t, 3, tr.State().Remaining)
}

func TestRefreshesCoalesced(t *testing.T) {
	f := &fakeFetcher{responses: []fakeResponse{{state: proState(22)}}}
	tr := NewTracker(f, time.Hour)

	tr.Refresh(context.Background())
	tr.Refresh(context.Background())
	tr.Refresh(context.Background())

	assert.Equal(t, 1, f.callCount())
	assert.Equal(t, 22, tr.State().Remaining)
}

func TestApplyRemaining(t *testing.T) {
	f := &fakeFetcher{responses: []fakeResponse{{state: proState(22)}}}
	tr := NewTracker(f, time.Nanosecond)
	tr.Refresh(context.Background())

	got := tr.ApplyRemaining(21)
	assert.Equal(t, 21, got.Remaining)
	assert.Equal(t, 4, got.CurrentUsage)
}

func TestApplyRemainingNoopForUnlimited(t *testing.T) {
	premium := &model.UsageState{
		Plan:      model.PlanPremium,
		Limit:     model.Unlimited,
		Remaining: model.Unlimited,
	}
	f := &fakeFetcher{responses: []fakeResponse{{state: premium}}}
	tr := NewTracker(f, time.Nanosecond)
	tr.Refresh(context.Background())

	got := tr.ApplyRemaining(7)
	assert.Equal(t, model.Unlimited, got.Remaining)
}

func TestApplyRemainingOutranksInFlightPoll(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{responses: []fakeResponse{
		{state: proState(22)},
		{state: proState(22), gate: gate}, // poll started before the send finished
	}}
	tr := NewTracker(f, time.Nanosecond)
	tr.Refresh(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tr.Refresh(context.Background())
	}()
	require.Eventually(t, func() bool { return f.callCount() == 2 },
		time.Second, time.Millisecond)

	tr.ApplyRemaining(21)
	close(gate)
	wg.Wait()

	assert.Equal(t, 21, tr.State().Remaining)
}
