// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutMode(t *testing.T) {
	th := NewTheme()

	th.SetSize(50, 24)
	assert.Equal(t, LayoutNarrow, th.GetLayoutMode())

	th.SetSize(80, 24)
	assert.Equal(t, LayoutMedium, th.GetLayoutMode())

	th.SetSize(140, 40)
	assert.Equal(t, LayoutWide, th.GetLayoutMode())
}

func TestQuotaStyleThresholds(t *testing.T) {
	th := NewTheme()

	assert.Equal(t, th.UsageCritical, th.QuotaStyle(0.05))
	assert.Equal(t, th.UsageCritical, th.QuotaStyle(0.10))
	assert.Equal(t, th.UsageLow, th.QuotaStyle(0.20))
	assert.Equal(t, th.UsageLow, th.QuotaStyle(0.25))
	assert.Equal(t, th.UsageHealthy, th.QuotaStyle(0.50))
	assert.Equal(t, th.UsageHealthy, th.QuotaStyle(1.0))
}
