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

func TestConversationFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	aToken, _ := helpers.CreateAndLoginInvestor(t, ts)
	bToken, b := helpers.CreateAndLoginEntrepreneur(t, ts)
	outsiderToken, _ := helpers.CreateAndLoginJobSeeker(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/conversations", aToken,
		map[string]interface{}{
			"recipient_id": b.ID,
			"message":      "Hello there",
		})
	require.Equal(t, http.StatusCreated, res.StatusCode, "start failed: %s", body)

	var conversation models.Conversation
	require.NoError(t, json.Unmarshal([]byte(body), &conversation))
	require.NotEmpty(t, conversation.ID)

	// Both participants can read it.
	for _, token := range []string{aToken, bToken} {
		res, _ = ts.SendRequest(t, http.MethodGet,
			"/api/conversations/"+conversation.ID, token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	// Outsiders cannot.
	res, _ = ts.SendRequest(t, http.MethodGet,
		"/api/conversations/"+conversation.ID, outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = ts.SendRequest(t, http.MethodPost,
		"/api/conversations/"+conversation.ID+"/messages", outsiderToken,
		map[string]interface{}{"content": "let me in"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Reply and read back in order.
	res, _ = ts.SendRequest(t, http.MethodPost,
		"/api/conversations/"+conversation.ID+"/messages", bToken,
		map[string]interface{}{"content": "Hi, good to meet you"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodGet,
		"/api/conversations/"+conversation.ID+"/messages", aToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listing struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listing))
	require.Len(t, listing.Messages, 2)
	assert.Equal(t, "Hello there", listing.Messages[0].Content)
	assert.Equal(t, "Hi, good to meet you", listing.Messages[1].Content)
}

// TestStartConversation_Deduplicates checks that starting a conversation with
// the same person twice reuses the existing direct conversation.
func TestStartConversation_Deduplicates(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	aToken, _ := helpers.CreateAndLoginInvestor(t, ts)
	_, b := helpers.CreateAndLoginEntrepreneur(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/conversations", aToken,
		map[string]interface{}{"recipient_id": b.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode, "start failed: %s", body)
	var first models.Conversation
	require.NoError(t, json.Unmarshal([]byte(body), &first))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/conversations", aToken,
		map[string]interface{}{"recipient_id": b.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var second models.Conversation
	require.NoError(t, json.Unmarshal([]byte(body), &second))

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, ts.DB.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStartConversation_WithSelf(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	token, user := helpers.CreateAndLoginInvestor(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/conversations", token,
		map[string]interface{}{"recipient_id": user.ID})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestListConversations(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	aToken, _ := helpers.CreateAndLoginInvestor(t, ts)
	_, b := helpers.CreateAndLoginEntrepreneur(t, ts)
	cToken, _ := helpers.CreateAndLoginJobSeeker(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/conversations", aToken,
		map[string]interface{}{"recipient_id": b.ID, "message": "ping"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/conversations", aToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ping")

	// Uninvolved users see an empty list.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/conversations", cToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, body, "ping")
}
