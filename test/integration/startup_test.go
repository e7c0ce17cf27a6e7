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

func TestStartupCreate_EntrepreneurOnly(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	entToken, _ := helpers.CreateAndLoginEntrepreneur(t, ts)
	invToken, _ := helpers.CreateAndLoginInvestor(t, ts)

	payload := map[string]interface{}{
		"title":        "Fintech Exchange",
		"description":  "A marketplace listing",
		"type":         "marketplace",
		"category":     "fintech",
		"asking_price": 50000,
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/startups", entToken, payload)
	require.Equal(t, http.StatusCreated, res.StatusCode, "create failed: %s", body)

	var created models.Startup
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "Fintech Exchange", created.Title)
	assert.Equal(t, models.StartupStatusActive, created.Status)
	// Without explicit tags the type becomes the default tag.
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "marketplace", created.Tags[0].Tag)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/startups", invToken, payload)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/startups", "", payload)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestStartupCreate_RequiresVerifiedEmail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	// An unverified entrepreneur never even gets a token: login itself is
	// gated. The verification requirement on the create action is covered by
	// the authz package tests.
	user := helpers.CreateUser(t, ts.DB, "unverified_f", "unverified_f@test.com", "entrepreneur")
	require.NoError(t, ts.DB.Model(user).Update("email_verified", false).Error)

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email": user.Email, "password": helpers.TestPassword,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, body, "USER_NOT_VERIFIED")
}

func TestStartupGet_CountsViews(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Viewed Startup")

	for i := 0; i < 3; i++ {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/startups/"+startup.ID, "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	var stored models.Startup
	require.NoError(t, ts.DB.First(&stored, "id = ?", startup.ID).Error)
	assert.Equal(t, int64(3), stored.Views)
}

func TestStartupGet_NotFound(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet,
		"/api/startups/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "NOT_FOUND")
}

func TestStartupUpdate_OwnerOnly(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	otherToken, _ := helpers.CreateAndLoginEntrepreneur(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Original Title")

	res, body := ts.SendRequest(t, http.MethodPut, "/api/startups/"+startup.ID, ownerToken,
		map[string]interface{}{"title": "Renamed Startup", "status": "sold"})
	require.Equal(t, http.StatusOK, res.StatusCode, "update failed: %s", body)
	assert.Contains(t, body, "Renamed Startup")

	var stored models.Startup
	require.NoError(t, ts.DB.First(&stored, "id = ?", startup.ID).Error)
	assert.Equal(t, models.StartupStatusSold, stored.Status)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/startups/"+startup.ID, otherToken,
		map[string]interface{}{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestMarketplaceAndCollaborationListings(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	m1 := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Alpha Shop")
	helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Beta Shop")
	helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Gamma Collab")

	// Archived listings never show up.
	archived := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Archived Shop")
	require.NoError(t, ts.DB.Model(archived).Update("status", models.StartupStatusArchived).Error)

	var listing struct {
		Startups []models.Startup `json:"startups"`
		Total    int64            `json:"total"`
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/marketplace", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	assert.Equal(t, int64(2), listing.Total)
	for _, s := range listing.Startups {
		assert.Equal(t, models.StartupTypeMarketplace, s.Type)
	}

	res, body = ts.SendRequest(t, http.MethodGet, "/api/collaborations", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	assert.Equal(t, int64(1), listing.Total)
	assert.Equal(t, "Gamma Collab", listing.Startups[0].Title)

	// Search narrows by title.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/marketplace?search=Alpha", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.Equal(t, int64(1), listing.Total)
	assert.Equal(t, m1.ID, listing.Startups[0].ID)

	// Pagination.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/marketplace?page=1&page_size=1", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	assert.Equal(t, int64(2), listing.Total)
	assert.Len(t, listing.Startups, 1)
}

func TestListOwnedStartups(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	_, other := helpers.CreateAndLoginEntrepreneur(t, ts)
	helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeMarketplace, "Mine")
	helpers.CreateStartup(t, ts.DB, other.ID, models.StartupTypeMarketplace, "Theirs")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/users/startups", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Mine")
	assert.NotContains(t, body, "Theirs")
}
