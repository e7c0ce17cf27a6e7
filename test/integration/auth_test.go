package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"startuphub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(username, email string) map[string]interface{} {
	return map[string]interface{}{
		"username": username,
		"email":    email,
		"password": helpers.TestPassword,
		"role":     "entrepreneur",
	}
}

// TestSignupVerifyLoginFlow walks the whole onboarding path: signup issues no
// tokens, login is refused until the emailed code is redeemed.
func TestSignupVerifyLoginFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/signup", "",
		signupBody("founder_one", "founder1@test.com"))
	require.Equal(t, http.StatusCreated, res.StatusCode, "signup failed: %s", body)
	assert.Contains(t, body, `"email_verified":false`)
	assert.NotContains(t, body, "access_token")

	// Credentials are valid but the email is not confirmed yet.
	res, body = ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "founder1@test.com",
		"password": helpers.TestPassword,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, body, "USER_NOT_VERIFIED")

	code := ts.Mailer.LastCode("founder1@test.com")
	require.NotEmpty(t, code, "signup should have dispatched a verification code")
	require.Len(t, code, 6)

	res, body = ts.SendRequest(t, http.MethodPost, "/auth/verify", "", map[string]interface{}{
		"email": "founder1@test.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "verify failed: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "founder1@test.com",
		"password": helpers.TestPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login failed: %s", body)

	var login struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, "Bearer", login.TokenType)
	assert.Greater(t, login.ExpiresIn, int64(0))

	// Both token cookies are set for browser clients.
	cookies := map[string]bool{}
	for _, cookie := range res.Cookies() {
		cookies[cookie.Name] = true
	}
	assert.True(t, cookies["token"], "access token cookie missing")
	assert.True(t, cookies["refresh_token"], "refresh token cookie missing")

	// The access token works on a protected endpoint.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/users/profile", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "founder1@test.com")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/signup", "",
		signupBody("dup_user_a", "dup@test.com"))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/signup", "",
		signupBody("dup_user_b", "dup@test.com"))
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, body, "ALREADY_EXISTS")
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"weak password", map[string]interface{}{
			"username": "weak_pwd", "email": "weak@test.com",
			"password": "short", "role": "entrepreneur",
		}},
		{"bad role", map[string]interface{}{
			"username": "bad_role", "email": "badrole@test.com",
			"password": helpers.TestPassword, "role": "admin",
		}},
		{"bad email", map[string]interface{}{
			"username": "bad_email", "email": "not-an-email",
			"password": helpers.TestPassword, "role": "investor",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := ts.SendRequest(t, http.MethodPost, "/signup", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "login_user", "login@test.com", "entrepreneur")

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "wrong_password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "INVALID_CREDENTIALS")

	// Unknown accounts produce the same error, not a 404.
	res, body = ts.SendRequest(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "nobody@test.com",
		"password": helpers.TestPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "INVALID_CREDENTIALS")
}

// TestVerify_CodeIsOneShot checks that a redeemed code cannot be replayed.
func TestVerify_CodeIsOneShot(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/signup", "",
		signupBody("oneshot", "oneshot@test.com"))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	code := ts.Mailer.LastCode("oneshot@test.com")
	require.NotEmpty(t, code)

	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/verify", "", map[string]interface{}{
		"email": "oneshot@test.com", "code": code,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/verify", "", map[string]interface{}{
		"email": "oneshot@test.com", "code": code,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "VALIDATION_FAILED")
}

// TestSendCode_SupersedesPrior checks that requesting a fresh code kills the
// previous one.
func TestSendCode_SupersedesPrior(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/signup", "",
		signupBody("resend", "resend@test.com"))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	firstCode := ts.Mailer.LastCode("resend@test.com")
	require.NotEmpty(t, firstCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/send-verification-code", "",
		map[string]interface{}{"email": "resend@test.com"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	secondCode := ts.Mailer.LastCode("resend@test.com")
	require.Equal(t, 2, ts.Mailer.CodesSent("resend@test.com"))

	// The superseded code no longer redeems, even when it differs from the
	// new one by chance alone.
	if firstCode != secondCode {
		res, _ = ts.SendRequest(t, http.MethodPost, "/auth/verify", "", map[string]interface{}{
			"email": "resend@test.com", "code": firstCode,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	}

	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/verify", "", map[string]interface{}{
		"email": "resend@test.com", "code": secondCode,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Verified accounts cannot request further codes.
	res, body := ts.SendRequest(t, http.MethodPost, "/auth/send-verification-code", "",
		map[string]interface{}{"email": "resend@test.com"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "already verified")
}

func TestRefresh_Flow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "refresher", "refresh@test.com", "investor")
	access, refresh := helpers.Login(t, ts, user.Email, helpers.TestPassword)

	// Body-based refresh.
	res, body := ts.SendRequest(t, http.MethodPost, "/auth/refresh", "",
		map[string]interface{}{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, res.StatusCode, "refresh failed: %s", body)
	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	// Cookie-based refresh with an empty body.
	res, _ = ts.SendRequestWithCookies(t, http.MethodPost, "/auth/refresh",
		[]*http.Cookie{{Name: "refresh_token", Value: refresh}}, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// An access token is not a refresh token.
	res, body = ts.SendRequest(t, http.MethodPost, "/auth/refresh", "",
		map[string]interface{}{"refresh_token": access})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")

	// Garbage is refused outright.
	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/refresh", "",
		map[string]interface{}{"refresh_token": "not.a.token"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestLogout_RevokesEverything checks the three-part invalidation: tracked
// sessions are deleted, so the refresh token dies, and the revocation cutoff
// moves, so outstanding access tokens die too.
func TestLogout_RevokesEverything(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "leaver", "leaver@test.com", "job_seeker")
	access, refresh := helpers.Login(t, ts, user.Email, helpers.TestPassword)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/users/profile", access, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// The revocation cutoff is second-granular; cross the boundary so the
	// outstanding token's iat provably predates it.
	time.Sleep(time.Until(time.Now().Truncate(time.Second).Add(time.Second)))

	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/logout", access, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Cleared cookies come back with MaxAge < 0.
	for _, cookie := range res.Cookies() {
		if cookie.Name == "token" || cookie.Name == "refresh_token" {
			assert.Empty(t, cookie.Value)
		}
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/auth/refresh", "",
		map[string]interface{}{"refresh_token": refresh})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, body, "TOKEN_REVOKED")

	// The outstanding access token is dead as well: the identity resolver
	// treats it as anonymous.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile", access, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestRelogin_AfterLogout: logging out and signing straight back in yields a
// token pair that works immediately, even inside the same wall-clock second
// as the logout.
func TestRelogin_AfterLogout(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "returner", "returner@test.com", "investor")
	access, _ := helpers.Login(t, ts, user.Email, helpers.TestPassword)

	res, _ := ts.SendRequest(t, http.MethodPost, "/auth/logout", access, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	access2, refresh2 := helpers.Login(t, ts, user.Email, helpers.TestPassword)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile", access2, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/auth/refresh", "",
		map[string]interface{}{"refresh_token": refresh2})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestLogout_RequiresAuth(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestAccessCookie_ResolvesIdentity checks the browser path: the HttpOnly
// access cookie alone authenticates a request.
func TestAccessCookie_ResolvesIdentity(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	user := helpers.CreateUser(t, ts.DB, "cookie_user", "cookie@test.com", "investor")
	access, _ := helpers.Login(t, ts, user.Email, helpers.TestPassword)

	res, body := ts.SendRequestWithCookies(t, http.MethodGet, "/api/users/profile",
		[]*http.Cookie{{Name: "token", Value: access}}, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "cookie@test.com")
}
