// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedash/bluedash-tui/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestEmptyCache(t *testing.T) {
	c := openTestCache(t)
	_, err := c.LoadSummaries()
	assert.ErrorIs(t, err, ErrCacheEmpty)
	assert.True(t, c.SavedAt().IsZero())
}

func TestSaveAndLoadPreservesOrder(t *testing.T) {
	c := openTestCache(t)
	now := time.Now()
	in := []model.Summary{
		{ID: "c3", Title: "Newest", LastUpdated: now},
		{ID: "c1", Title: "Middle", LastUpdated: now.Add(-time.Hour)},
		{ID: "c2", Title: "Oldest", LastUpdated: now.Add(-2 * time.Hour)},
	}
	require.NoError(t, c.SaveSummaries(in))

	out, err := c.LoadSummaries()
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "c3", out[0].ID)
	assert.Equal(t, "c1", out[1].ID)
	assert.Equal(t, "c2", out[2].ID)
	assert.Equal(t, "Newest", out[0].Title)
	assert.WithinDuration(t, now, out[0].LastUpdated, time.Second)
	assert.False(t, c.SavedAt().IsZero())
}

func TestSaveReplacesWholeSnapshot(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.SaveSummaries([]model.Summary{
		{ID: "old-1", Title: "Gone", LastUpdated: time.Now()},
		{ID: "old-2", Title: "Also gone", LastUpdated: time.Now()},
	}))
	require.NoError(t, c.SaveSummaries([]model.Summary{
		{ID: "new-1", Title: "Kept", LastUpdated: time.Now()},
	}))

	out, err := c.LoadSummaries()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new-1", out[0].ID)
}

func TestTemporaryConversationsNotCached(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.SaveSummaries([]model.Summary{
		{ID: "temp-abc", Title: "Unsent", LastUpdated: time.Now()},
		{ID: "srv-1", Title: "Real", LastUpdated: time.Now()},
	}))

	out, err := c.LoadSummaries()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "srv-1", out[0].ID)
}

func TestSaveEmptyListClearsCache(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.SaveSummaries([]model.Summary{
		{ID: "c1", Title: "One", LastUpdated: time.Now()},
	}))
	require.NoError(t, c.SaveSummaries(nil))

	_, err := c.LoadSummaries()
	assert.ErrorIs(t, err, ErrCacheEmpty)
}

func TestCachePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	c1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, c1.SaveSummaries([]model.Summary{
		{ID: "c1", Title: "Sticky", LastUpdated: time.Now()},
	}))
	require.NoError(t, c1.Close())

	c2, err := Open(dir)
	require.NoError(t, err)
	defer c2.Close()

	out, err := c2.LoadSummaries()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Sticky", out[0].Title)
}
