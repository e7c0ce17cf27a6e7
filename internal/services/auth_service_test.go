package services_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"startuphub_backend/database"
	"startuphub_backend/internal/auth"
	"startuphub_backend/internal/config"
	"startuphub_backend/internal/email"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// codeMailer records verification codes instead of sending them.
type codeMailer struct {
	mu    sync.Mutex
	codes map[string]string
	fail  bool
}

func (m *codeMailer) Send(e *email.Email) error { return nil }
func (m *codeMailer) SendTemplate(to []string, subject, name string, data email.TemplateData) error {
	return nil
}
func (m *codeMailer) SendVerificationCode(to, username, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	if m.codes == nil {
		m.codes = make(map[string]string)
	}
	m.codes[to] = code
	return nil
}
func (m *codeMailer) Validate() error { return nil }
func (m *codeMailer) Close() error    { return nil }

func (m *codeMailer) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

type authTestEnv struct {
	db       *gorm.DB
	service  services.AuthService
	tokens   *auth.TokenManager
	mailer   *codeMailer
	users    repositories.UserRepository
	sessions repositories.SessionRepository
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Auth.CodeTTLMinutes = 15

	tokens := auth.NewTokenManager("service-test-secret", 15*time.Minute, 7*24*time.Hour)
	mailer := &codeMailer{}
	users := repositories.NewUserRepository(db)
	sessions := repositories.NewSessionRepository(db)

	service := services.NewAuthService(
		users,
		repositories.NewVerificationCodeRepository(db),
		sessions,
		repositories.NewLegacySessionRepository(db),
		tokens,
		mailer,
		cfg,
	)

	return &authTestEnv{
		db:       db,
		service:  service,
		tokens:   tokens,
		mailer:   mailer,
		users:    users,
		sessions: sessions,
	}
}

func (env *authTestEnv) signupAndVerify(t *testing.T, emailAddr string) *dto.UserResponse {
	t.Helper()

	user, err := env.service.Signup(&dto.SignupRequest{
		Username: "u_" + uuid.NewString()[:8],
		Email:    emailAddr,
		Password: "long-enough-password",
		Role:     models.UserRoleEntrepreneur,
	})
	require.NoError(t, err)

	code := env.mailer.code(emailAddr)
	require.NotEmpty(t, code)
	require.NoError(t, env.service.VerifyEmail(emailAddr, code))
	return user
}

func TestSignup_CreatesUnverifiedAccount(t *testing.T) {
	env := newAuthTestEnv(t)

	user, err := env.service.Signup(&dto.SignupRequest{
		Username: "new_founder",
		Email:    "founder@example.com",
		Password: "long-enough-password",
		Role:     models.UserRoleEntrepreneur,
	})
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)

	// A six digit code went out.
	code := env.mailer.code("founder@example.com")
	assert.Len(t, code, 6)

	// The stored hash is not the raw password.
	stored, err := env.users.FindByEmail("founder@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "long-enough-password", stored.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("long-enough-password", stored.PasswordHash))
}

// TestSignup_MailFailureDoesNotFailSignup: dispatch problems are logged, the
// account still exists and a code can be re-requested later.
func TestSignup_MailFailureDoesNotFailSignup(t *testing.T) {
	env := newAuthTestEnv(t)
	env.mailer.fail = true

	_, err := env.service.Signup(&dto.SignupRequest{
		Username: "unlucky",
		Email:    "unlucky@example.com",
		Password: "long-enough-password",
		Role:     models.UserRoleInvestor,
	})
	require.NoError(t, err)

	// The explicit resend endpoint does surface the failure.
	err = env.service.SendVerificationCode("unlucky@example.com")
	assert.ErrorIs(t, err, apperrors.ErrCodeDispatchFailed)

	env.mailer.fail = false
	require.NoError(t, env.service.SendVerificationCode("unlucky@example.com"))
	assert.NotEmpty(t, env.mailer.code("unlucky@example.com"))
}

func TestLogin_IssuesTrackedSession(t *testing.T) {
	env := newAuthTestEnv(t)
	env.signupAndVerify(t, "tracked@example.com")

	response, err := env.service.Login(&dto.LoginRequest{
		Email:    "tracked@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	// The session row stores the hash of the refresh token, never the raw
	// value.
	session, err := env.sessions.FindByTokenHash(auth.HashToken(response.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, session.UserID)

	var count int64
	require.NoError(t, env.db.Model(&models.UserSession{}).
		Where("token_hash = ?", response.RefreshToken).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRefresh_DeletedSessionIsRevoked(t *testing.T) {
	env := newAuthTestEnv(t)
	env.signupAndVerify(t, "revoked@example.com")

	response, err := env.service.Login(&dto.LoginRequest{
		Email:    "revoked@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	// Refresh works while the session row lives.
	_, err = env.service.Refresh(response.RefreshToken)
	require.NoError(t, err)

	// A well-signed refresh token without its session row is treated as
	// revoked, not merely invalid.
	require.NoError(t, env.sessions.DeleteByTokenHash(auth.HashToken(response.RefreshToken)))
	_, err = env.service.Refresh(response.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestLogout_MovesRevocationCutoff(t *testing.T) {
	env := newAuthTestEnv(t)
	env.signupAndVerify(t, "cutoff@example.com")

	response, err := env.service.Login(&dto.LoginRequest{
		Email:    "cutoff@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	// Access token verifies before logout.
	_, err = env.service.VerifyAccess(response.AccessToken)
	require.NoError(t, err)

	// Revocation is second-granular; cross the boundary so the outstanding
	// token's iat provably predates the cutoff.
	waitForNextSecond()
	require.NoError(t, env.service.Logout(response.User.ID))

	// Outstanding access and refresh tokens both die.
	_, err = env.service.VerifyAccess(response.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	_, err = env.service.Refresh(response.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

// TestLogin_AfterLogoutIssuesLiveTokens: logging out and straight back in
// must yield a working token pair even when both happen inside the same
// wall-clock second as the revocation cutoff.
func TestLogin_AfterLogoutIssuesLiveTokens(t *testing.T) {
	env := newAuthTestEnv(t)
	env.signupAndVerify(t, "returning@example.com")

	first, err := env.service.Login(&dto.LoginRequest{
		Email:    "returning@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	require.NoError(t, env.service.Logout(first.User.ID))

	second, err := env.service.Login(&dto.LoginRequest{
		Email:    "returning@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	_, err = env.service.VerifyAccess(second.AccessToken)
	require.NoError(t, err)
	_, err = env.service.Refresh(second.RefreshToken)
	require.NoError(t, err)
}

// waitForNextSecond blocks until the wall clock enters a new second.
func waitForNextSecond() {
	time.Sleep(time.Until(time.Now().Truncate(time.Second).Add(time.Second)))
}

func TestVerifyAccess_DeactivatedUser(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.signupAndVerify(t, "gone@example.com")

	response, err := env.service.Login(&dto.LoginRequest{
		Email:    "gone@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = env.service.VerifyAccess(response.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyEmail_ExpiredCode(t *testing.T) {
	env := newAuthTestEnv(t)

	_, err := env.service.Signup(&dto.SignupRequest{
		Username: "late_verifier",
		Email:    "late@example.com",
		Password: "long-enough-password",
		Role:     models.UserRoleJobSeeker,
	})
	require.NoError(t, err)

	code := env.mailer.code("late@example.com")
	require.NotEmpty(t, code)

	// Age the code past its TTL.
	require.NoError(t, env.db.Model(&models.EmailVerificationCode{}).
		Where("code = ?", code).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err = env.service.VerifyEmail("late@example.com", code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
}

func TestVerifyEmail_UnknownUser(t *testing.T) {
	env := newAuthTestEnv(t)

	err := env.service.VerifyEmail("nobody@example.com", "123456")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestResolveLegacySession_Paths(t *testing.T) {
	env := newAuthTestEnv(t)
	user := env.signupAndVerify(t, "shim@example.com")

	record := &models.SessionRecord{
		SessionKey:    "legacy-key",
		UserID:        user.ID,
		AuthToken:     "legacy-auth-token",
		Authenticated: true,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, env.db.Create(record).Error)

	resolved, err := env.service.ResolveLegacySession("legacy-key", "")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	resolved, err = env.service.ResolveLegacySession("", "legacy-auth-token")
	require.NoError(t, err)
	require.NotNil(t, resolved)

	// No credentials, unknown credentials: anonymous, never an error.
	resolved, err = env.service.ResolveLegacySession("", "")
	require.NoError(t, err)
	assert.Nil(t, resolved)
	resolved, err = env.service.ResolveLegacySession("no-such-key", "")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
