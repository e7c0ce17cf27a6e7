package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"startuphub_backend/internal/models"
	"startuphub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_AcrossEntities(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Quantum Widgets")
	helpers.CreatePosition(t, ts.DB, startup.ID, "Quantum Engineer")
	helpers.CreateUser(t, ts.DB, "quantum_fan", "quantum_fan@test.com", "investor")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/search?q=quantum", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "search failed: %s", body)

	var result struct {
		Startups  []models.Startup  `json:"startups"`
		Positions []models.Position `json:"positions"`
		Users     []struct {
			Username string `json:"username"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Len(t, result.Startups, 1)
	assert.Len(t, result.Positions, 1)
	assert.Len(t, result.Users, 1)

	// Scoped search returns only the requested entity.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/search?q=quantum&type=startups", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Len(t, result.Startups, 1)
	assert.Empty(t, result.Positions)
	assert.Empty(t, result.Users)
}

func TestSearch_RequiresQuery(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestHealth_ReportsDatabase: the readiness probe pings the database through
// the request-scoped handle.
func TestHealth_ReportsDatabase(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"database":"up"`)
}

func TestPlatformStats(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Stat Shop")
	collab := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Stat Collab")
	helpers.CreatePosition(t, ts.DB, collab.ID, "Stat Role")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var stats struct {
		TotalUsers      int64 `json:"total_users"`
		VerifiedUsers   int64 `json:"verified_users"`
		TotalStartups   int64 `json:"total_startups"`
		Marketplace     int64 `json:"marketplace_startups"`
		Collaborations  int64 `json:"collaboration_startups"`
		ActivePositions int64 `json:"active_positions"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.VerifiedUsers)
	assert.Equal(t, int64(2), stats.TotalStartups)
	assert.Equal(t, int64(1), stats.Marketplace)
	assert.Equal(t, int64(1), stats.Collaborations)
	assert.Equal(t, int64(1), stats.ActivePositions)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	token, user := helpers.CreateAndLoginJobSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, user.Email)
	assert.Contains(t, body, user.Username)
	// The password hash never leaves the server.
	assert.NotContains(t, body, user.PasswordHash)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
