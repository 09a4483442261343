// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedash/bluedash-tui/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticToken("tok-123"))
}

func TestAuthorizationHeaderIsRawToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"chats":[]}`))
	})

	_, err := c.RecentChats(context.Background())
	require.NoError(t, err)
	// The service expects the bare token, not "Bearer <token>".
	assert.Equal(t, "tok-123", got)
}

func TestUnauthenticatedEndpointsOmitAuthorization(t *testing.T) {
	var got string
	var hasHeader bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got, hasHeader = r.Header.Get("Authorization"), r.Header.Values("Authorization") != nil
		w.Write([]byte(`{"token":"fresh"}`))
	})

	token, err := c.Login(context.Background(), "a@b.c", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.False(t, hasHeader, "login must not send the stored token, got %q", got)
}

func TestRecentChats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chat/recent", r.URL.Path)
		w.Write([]byte(`{"chats":[
			{"id":"c1","title":"First","updatedAt":"2025-03-01T10:00:00Z"},
			{"id":"c2","title":"Second","updatedAt":"2025-02-28T09:00:00Z"}
		]}`))
	})

	chats, err := c.RecentChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "c1", chats[0].ID)
	assert.Equal(t, "First", chats[0].Title)
	assert.Equal(t, 2025, chats[0].LastUpdated.Year())
}

func TestGetChatMapsAssistantRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/c1", r.URL.Path)
		w.Write([]byte(`{"chat":{"messages":[
			{"role":"user","content":"hi"},
			{"role":"assistant","content":"hello"}
		]}}`))
	})

	msgs, err := c.GetChat(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, model.RoleAI, msgs[1].Role)
	assert.Equal(t, "hello", msgs[1].Content)
}

func TestCreateChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "first question", req["message"])
		w.Write([]byte(`{"chat":{"_id":"srv-9","messages":[
			{"role":"user","content":"first question"},
			{"role":"assistant","content":"an answer"}
		]}}`))
	})

	created, err := c.CreateChat(context.Background(), "first question")
	require.NoError(t, err)
	assert.Equal(t, "srv-9", created.ID)
	require.Len(t, created.Messages, 2)
	assert.Equal(t, model.RoleAI, created.Messages[1].Role)
}

func TestSendMessageInteractionsLeft(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/c1/message", r.URL.Path)
			w.Write([]byte(`{"response":"sure","interactionsLeft":3}`))
		})
		res, err := c.SendMessage(context.Background(), "c1", "more")
		require.NoError(t, err)
		assert.Equal(t, "sure", res.Response)
		assert.Equal(t, 3, res.InteractionsLeft)
	})

	t.Run("absent", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response":"sure"}`))
		})
		res, err := c.SendMessage(context.Background(), "c1", "more")
		require.NoError(t, err)
		assert.Equal(t, -1, res.InteractionsLeft)
	})

	t.Run("zero is reported", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response":"last one","interactionsLeft":0}`))
		})
		res, err := c.SendMessage(context.Background(), "c1", "more")
		require.NoError(t, err)
		assert.Equal(t, 0, res.InteractionsLeft)
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 maps to auth required",
			status: http.StatusUnauthorized,
			body:   `{"error":"token expired"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAuthRequired)
			},
		},
		{
			name:   "402 with capture flag",
			status: http.StatusPaymentRequired,
			body:   `{"error":"free limit","requiresAuth":true}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmailCaptureRequired)
			},
		},
		{
			name:   "402 without capture flag is generic",
			status: http.StatusPaymentRequired,
			body:   `{"error":"payment needed"}`,
			check: func(t *testing.T, err error) {
				assert.NotErrorIs(t, err, ErrEmailCaptureRequired)
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusPaymentRequired, apiErr.Status)
			},
		},
		{
			name:   "429 carries quota details",
			status: http.StatusTooManyRequests,
			body: `{"error":"limit reached","limit":25,"planType":"Pro",
				"resetTime":"2025-03-02T00:00:00Z",
				"suggestedUpgrade":{"plan":"ProPlus","limit":75}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrRateLimited)
				var rle *RateLimitError
				require.ErrorAs(t, err, &rle)
				assert.Equal(t, 25, rle.Limit)
				assert.Equal(t, "Pro", rle.Plan)
				assert.Equal(t, "ProPlus", rle.SuggestedPlan)
				assert.Equal(t, 75, rle.SuggestedLimit)
				assert.Equal(t, time.March, rle.ResetTime.Month())
			},
		},
		{
			name:   "500 is a generic api error",
			status: http.StatusInternalServerError,
			body:   `{"error":"boom"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "boom", apiErr.Message)
			},
		},
		{
			name:   "non-JSON body still maps",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadGateway, apiErr.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.SendMessage(context.Background(), "c1", "hi")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNetworkFailureIsErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, staticToken(""))
	_, err := c.RecentChats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestRateLimitInfo(t *testing.T) {
	t.Run("bounded plan", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/auth/rate-limit-info", r.URL.Path)
			w.Write([]byte(`{"success":true,"planType":"Pro","currentUsage":3,
				"limit":25,"remaining":22,"resetTime":"2025-03-02T00:00:00Z",
				"boostCredits":0,"windowDuration":"24 hours"}`))
		})
		u, err := c.RateLimitInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.PlanPro, u.Plan)
		assert.Equal(t, 3, u.CurrentUsage)
		assert.Equal(t, 25, u.Limit)
		assert.Equal(t, 22, u.Remaining)
		assert.Equal(t, "24 hours", u.WindowDuration)
		assert.False(t, u.ResetTime.IsZero())
	})

	t.Run("premium sends Unlimited strings", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"planType":"Premium","currentUsage":140,
				"limit":"Unlimited","remaining":"Unlimited","boostCredits":0,
				"windowDuration":"24 hours"}`))
		})
		u, err := c.RateLimitInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.PlanPremium, u.Plan)
		assert.Equal(t, model.Unlimited, u.Limit)
		assert.Equal(t, model.Unlimited, u.Remaining)
		assert.True(t, u.IsUnlimited())
	})

	t.Run("success false is an error", func(t *testing.T) {
		// A 200 with success:false must not come back as a zero-valued
		// snapshot, or the tracker would wipe its last known numbers.
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		})
		u, err := c.RateLimitInfo(context.Background())
		require.Error(t, err)
		assert.Nil(t, u)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("returns session url", func(t *testing.T) {
		// The wire value is the plan's display name, capitalized.
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ProPlus", req["plan"])
			w.Write([]byte(`{"session":{"url":"https://pay.example/s/abc"}}`))
		})
		url, err := c.Checkout(context.Background(), "ProPlus")
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example/s/abc", url)
	})

	t.Run("missing url", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"session":{}}`))
		})
		_, err := c.Checkout(context.Background(), "Pro")
		assert.True(t, errors.Is(err, ErrNoCheckoutURL))
	})
}

func TestResetPasswordTokenInPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/reset-password/rst-42", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"message":"Password updated"}`))
	})

	msg, err := c.ResetPassword(context.Background(), "rst-42", "newpassword")
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg)
}

func TestDeleteChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/chat/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.DeleteChat(context.Background(), "c1"))
}
