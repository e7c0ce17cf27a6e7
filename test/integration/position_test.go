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

func TestPositionCreate_OwnerOnly(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	otherToken, _ := helpers.CreateAndLoginEntrepreneur(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Team Builder")

	payload := map[string]interface{}{
		"title":        "Backend Engineer",
		"description":  "Build the API",
		"requirements": "Go, SQL",
	}

	res, body := ts.SendRequest(t, http.MethodPost,
		"/api/startups/"+startup.ID+"/positions", ownerToken, payload)
	require.Equal(t, http.StatusCreated, res.StatusCode, "create failed: %s", body)

	var created models.Position
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "Backend Engineer", created.Title)
	assert.True(t, created.IsActive)

	res, _ = ts.SendRequest(t, http.MethodPost,
		"/api/startups/"+startup.ID+"/positions", otherToken, payload)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestPositionOpenClose(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	otherToken, _ := helpers.CreateAndLoginEntrepreneur(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Closable")
	position := helpers.CreatePosition(t, ts.DB, startup.ID, "Designer")

	res, body := ts.SendRequest(t, http.MethodPatch,
		"/api/positions/"+position.ID+"/close", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "close failed: %s", body)

	var stored models.Position
	require.NoError(t, ts.DB.First(&stored, "id = ?", position.ID).Error)
	assert.False(t, stored.IsActive)

	// Closed positions drop out of the public listing.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/positions", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, body, "Designer")

	res, _ = ts.SendRequest(t, http.MethodPatch,
		"/api/positions/"+position.ID+"/open", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPatch,
		"/api/positions/"+position.ID+"/open", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, ts.DB.First(&stored, "id = ?", position.ID).Error)
	assert.True(t, stored.IsActive)
}

func TestApplicationFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	ownerToken, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	seekerToken, _ := helpers.CreateAndLoginJobSeeker(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Hiring Co")
	position := helpers.CreatePosition(t, ts.DB, startup.ID, "Growth Lead")

	apply := map[string]interface{}{
		"position_id":  position.ID,
		"cover_letter": "I want in.",
	}

	res, body := ts.SendRequest(t, http.MethodPost,
		"/api/collaborations/"+startup.ID+"/apply", seekerToken, apply)
	require.Equal(t, http.StatusCreated, res.StatusCode, "apply failed: %s", body)

	var application models.Application
	require.NoError(t, json.Unmarshal([]byte(body), &application))
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	// One application per position per user.
	res, body = ts.SendRequest(t, http.MethodPost,
		"/api/collaborations/"+startup.ID+"/apply", seekerToken, apply)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "Already applied")

	// The owner was notified.
	var count int64
	require.NoError(t, ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", owner.ID, "new_application").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The applicant sees it in their own list.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/users/applications", seekerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, application.ID)

	// The owner sees it on the startup; outsiders do not.
	res, _ = ts.SendRequest(t, http.MethodGet,
		"/api/startups/"+startup.ID+"/applications", ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodGet,
		"/api/startups/"+startup.ID+"/applications", seekerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Approval is owner-only and notifies the applicant.
	res, _ = ts.SendRequest(t, http.MethodPatch,
		"/api/applications/"+application.ID+"/approve", seekerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPatch,
		"/api/applications/"+application.ID+"/approve", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "approve failed: %s", body)
	assert.Contains(t, body, string(models.ApplicationStatusApproved))

	require.NoError(t, ts.DB.Model(&models.Notification{}).
		Where("type = ?", "application_status").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApply_ClosedPosition(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	seekerToken, _ := helpers.CreateAndLoginJobSeeker(t, ts)
	startup := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Not Hiring")
	position := helpers.CreatePosition(t, ts.DB, startup.ID, "Filled Role")
	require.NoError(t, ts.DB.Model(position).Update("is_active", false).Error)

	res, body := ts.SendRequest(t, http.MethodPost,
		"/api/collaborations/"+startup.ID+"/apply", seekerToken,
		map[string]interface{}{"position_id": position.ID})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "no longer accepting")
}

func TestApply_PositionOnDifferentStartup(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	_, owner := helpers.CreateAndLoginEntrepreneur(t, ts)
	seekerToken, _ := helpers.CreateAndLoginJobSeeker(t, ts)
	startupA := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Startup A")
	startupB := helpers.CreateStartup(t, ts.DB, owner.ID, models.StartupTypeCollaboration, "Startup B")
	position := helpers.CreatePosition(t, ts.DB, startupA.ID, "Misrouted Role")

	// The position belongs to A; applying through B is refused.
	res, _ := ts.SendRequest(t, http.MethodPost,
		"/api/collaborations/"+startupB.ID+"/apply", seekerToken,
		map[string]interface{}{"position_id": position.ID})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
