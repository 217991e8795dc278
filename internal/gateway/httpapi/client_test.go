package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchbook-app/matchbook-client/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zap.NewNop())
}

func TestCheckEmail(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/check-email", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "sam@example.com", body["email"])

			json.NewEncoder(w).Encode(map[string]bool{"exists": true})
		})

		exists, err := c.CheckEmail(context.Background(), "sam@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown email answered with 404", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		exists, err := c.CheckEmail(context.Background(), "new@example.com")
		require.NoError(t, err, "404 means no account, not a failure")
		assert.False(t, exists)
	})
}

func TestSignInRecordsBearerToken(t *testing.T) {
	var sawAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signin":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"token":   "opaque-token",
				"profile": domain.NewProfile("sam@example.com"),
			})
		case "/profiles/current":
			sawAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(domain.NewProfile("sam@example.com"))
		}
	})

	result, err := c.SignIn(context.Background(), "sam@example.com", "abc123", false)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", result.Token)
	require.NotNil(t, result.Profile)

	_, err = c.FetchCurrent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer opaque-token", sawAuth)
}

func TestClearCredentialsDropsBearerToken(t *testing.T) {
	var sawAuth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/signin":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"token":   "user-a-token",
				"profile": domain.NewProfile("sam@example.com"),
			})
		case "/profiles/current":
			sawAuth = append(sawAuth, r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(domain.NewProfile("sam@example.com"))
		}
	})

	_, err := c.SignIn(context.Background(), "sam@example.com", "abc123", false)
	require.NoError(t, err)

	_, err = c.FetchCurrent(context.Background())
	require.NoError(t, err)

	c.ClearCredentials()
	_, err = c.FetchCurrent(context.Background())
	require.NoError(t, err)

	require.Len(t, sawAuth, 2)
	assert.Equal(t, "Bearer user-a-token", sawAuth[0])
	assert.Empty(t, sawAuth[1], "signed-out calls must not carry the previous user's token")
}

func TestSignInFailureMapsToAuthRejected(t *testing.T) {
	t.Run("401 status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := c.SignIn(context.Background(), "sam@example.com", "wrong", false)
		assert.ErrorIs(t, err, domain.ErrAuthRejected)
	})

	t.Run("success=false body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "bad credentials"})
		})
		_, err := c.SignIn(context.Background(), "sam@example.com", "wrong", false)
		assert.ErrorIs(t, err, domain.ErrAuthRejected)
	})
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, domain.ErrProfileNotFound},
		{"forbidden", http.StatusForbidden, domain.ErrAuthRejected},
		{"conflict", http.StatusConflict, domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, err := c.FetchCurrent(context.Background())
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("5xx is a retryable network error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := c.FetchCurrent(context.Background())
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("transport failure is a retryable network error", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop())
		_, err := c.FetchCurrent(context.Background())
		assert.True(t, domain.IsRetryable(err))
	})
}

func TestUpdateProfileRequiresID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := c.UpdateProfile(context.Background(), domain.NewProfile("sam@example.com"))
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdatePersonalityPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/profiles/p1/personality", r.URL.Path)

		var body personalityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Someone curious", body.IdealPartner)
		assert.Equal(t, "High", body.Personality["energyLevel"])

		p := domain.NewProfile("sam@example.com")
		p.ID = "p1"
		p.Personality = body.Personality
		p.IdealPartner = body.IdealPartner
		json.NewEncoder(w).Encode(p)
	})

	stored, err := c.UpdatePersonality(context.Background(), "p1", map[string]string{"energyLevel": "High"}, "Someone curious")
	require.NoError(t, err)
	assert.Equal(t, "Someone curious", stored.IdealPartner)
}

func TestExpiredJWTFailsFast(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			// exp claim far in the past
			"token":   "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJleHAiOjF9.3Om0L2IDGTM9PitambMYMpVGyIWEgjs4M9nSIGL4Bu0",
			"profile": domain.NewProfile("sam@example.com"),
		})
	})

	_, err := c.SignIn(context.Background(), "sam@example.com", "abc123", false)
	require.NoError(t, err)

	_, err = c.FetchCurrent(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRejected)
	assert.Equal(t, 1, calls, "expired token never reaches the wire")
}
