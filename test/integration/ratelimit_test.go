package integration_test

import (
	"net/http"
	"testing"

	"startuphub_backend/internal/config"
	"startuphub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit checks that the login endpoint refuses the burst+1th
// attempt from one client with 429 and a RATE_LIMITED code.
func TestLoginRateLimit(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.LoginPerMinute = 3
	})

	body := map[string]interface{}{
		"email":    "whoever@test.com",
		"password": "irrelevant123",
	}

	for i := 0; i < 3; i++ {
		res, _ := ts.SendRequest(t, http.MethodPost, "/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, res.StatusCode,
			"attempt %d should pass the limiter", i+1)
	}

	res, responseBody := ts.SendRequest(t, http.MethodPost, "/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Contains(t, responseBody, "RATE_LIMITED")
}

// TestRateLimiters_AreIndependent checks that exhausting the login budget
// leaves the signup endpoint usable.
func TestRateLimiters_AreIndependent(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.LoginPerMinute = 1
	})

	body := map[string]interface{}{"email": "solo@test.com", "password": "irrelevant123"}
	res, _ := ts.SendRequest(t, http.MethodPost, "/auth/login", "", body)
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/signup", "",
		signupBody("still_open", "still_open@test.com"))
	assert.Equal(t, http.StatusCreated, res.StatusCode)
}
