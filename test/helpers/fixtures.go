package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"startuphub_backend/internal/auth"
	"startuphub_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestPassword is the raw password every fixture user gets.
const TestPassword = "super_password123"

// CreateUser inserts a verified, active user directly into the database.
func CreateUser(t *testing.T, db *gorm.DB, username, emailAddr string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	require.NoError(t, err)

	user := &models.User{
		Username:      username,
		Email:         emailAddr,
		PasswordHash:  hash,
		Role:          role,
		EmailVerified: true,
		IsActive:      true,
	}
	require.NoError(t, db.Create(user).Error, "failed to create fixture user %s", emailAddr)
	return user
}

// Login authenticates through the API and returns the token pair.
func Login(t *testing.T, ts *TestServer, emailAddr, password string) (access, refresh string) {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    emailAddr,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: %s", body)

	var response struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	require.NotEmpty(t, response.AccessToken)
	require.NotEmpty(t, response.RefreshToken)
	return response.AccessToken, response.RefreshToken
}

// CreateAndLoginUser creates a verified user with a unique email and logs it
// in, returning the access token and the user.
func CreateAndLoginUser(t *testing.T, ts *TestServer, role models.UserRole) (string, *models.User) {
	t.Helper()

	name := uniqueName(string(role))
	user := CreateUser(t, ts.DB, name, name+"@test.com", role)
	token, _ := Login(t, ts, user.Email, TestPassword)
	return token, user
}

func CreateAndLoginEntrepreneur(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()
	return CreateAndLoginUser(t, ts, models.UserRoleEntrepreneur)
}

func CreateAndLoginInvestor(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()
	return CreateAndLoginUser(t, ts, models.UserRoleInvestor)
}

func CreateAndLoginJobSeeker(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()
	return CreateAndLoginUser(t, ts, models.UserRoleJobSeeker)
}

// CreateStartup inserts an active startup owned by the given user.
func CreateStartup(t *testing.T, db *gorm.DB, ownerID string, startupType models.StartupType, title string) *models.Startup {
	t.Helper()

	startup := &models.Startup{
		OwnerID:     ownerID,
		Title:       title,
		Description: "Test description",
		Type:        startupType,
		Status:      models.StartupStatusActive,
	}
	require.NoError(t, db.Create(startup).Error, "failed to create fixture startup")
	return startup
}

// CreatePosition inserts an open position on the given startup.
func CreatePosition(t *testing.T, db *gorm.DB, startupID, title string) *models.Position {
	t.Helper()

	position := &models.Position{
		StartupID:   startupID,
		Title:       title,
		Description: "Test position",
		IsActive:    true,
	}
	require.NoError(t, db.Create(position).Error, "failed to create fixture position")
	return position
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}
