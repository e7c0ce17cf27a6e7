package middleware

import (
	"strings"

	"startuphub_backend/internal/config"
	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/services"
	"startuphub_backend/pkg/apperrors"
	"startuphub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// legacySessionCookie is the cookie name the old web session layer sets.
const legacySessionCookie = "sessionid"

// accessTokenCookie is the cookie the login endpoint sets alongside the JSON
// token pair, for browser clients that cannot attach an Authorization header.
const accessTokenCookie = "token"

// IdentityStrategy is one way of turning a request into a user. Strategies
// never abort the request; a nil user means "not mine, try the next one".
type IdentityStrategy interface {
	Name() string
	Resolve(c *gin.Context) (*models.User, error)
}

// IdentityResolver runs its strategies in order and attaches the first
// resolved user to the request. Anonymous requests pass through untouched;
// the per-route guards decide what anonymity means.
type IdentityResolver struct {
	strategies []IdentityStrategy
}

// NewIdentityResolver builds the default strategy chain: bearer JWT first,
// then a pre-resolved context identity, then the legacy session store. The
// legacy strategy is dropped entirely when auth.legacy_sessions is off.
func NewIdentityResolver(authService services.AuthService, cfg *config.Config) *IdentityResolver {
	strategies := []IdentityStrategy{
		&bearerTokenStrategy{auth: authService},
		&contextIdentityStrategy{},
	}
	if cfg.Auth.LegacySessions {
		strategies = append(strategies, &legacySessionStrategy{auth: authService})
	}
	return &IdentityResolver{strategies: strategies}
}

// WithStrategies builds a resolver with an explicit chain. Used by tests and
// by deployments that front the service with a trusted gateway.
func WithStrategies(strategies ...IdentityStrategy) *IdentityResolver {
	return &IdentityResolver{strategies: strategies}
}

// Middleware resolves identity once per request. It never aborts.
func (r *IdentityResolver) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, strategy := range r.strategies {
			user, err := strategy.Resolve(c)
			if err != nil {
				logger.CtxWithError(c.Request.Context(),
					"identity strategy failed", err, "strategy", strategy.Name())
				continue
			}
			if user != nil {
				setCurrentUser(c, user)
				break
			}
		}
		c.Next()
	}
}

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(string(contextkeys.CurrentUserKey), user)
	ctx := logger.WithUserID(c.Request.Context(), user.ID)
	c.Request = c.Request.WithContext(ctx)
}

// CurrentUser returns the resolved user for this request, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(string(contextkeys.CurrentUserKey))
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// bearerTokenStrategy authenticates access tokens, from the Authorization
// header or the access-token cookie. Token errors (bad signature, expired,
// revoked) fall through silently so a stale token degrades to anonymous
// instead of failing public endpoints.
type bearerTokenStrategy struct {
	auth services.AuthService
}

func (s *bearerTokenStrategy) Name() string { return "bearer_token" }

func (s *bearerTokenStrategy) Resolve(c *gin.Context) (*models.User, error) {
	raw := bearerToken(c)
	if raw == "" {
		raw, _ = c.Cookie(accessTokenCookie)
	}
	if raw == "" {
		return nil, nil
	}
	user, err := s.auth.VerifyAccess(raw)
	if err != nil {
		return nil, nil
	}
	return user, nil
}

// contextIdentityStrategy picks up an identity attached to the request
// context by an earlier stage (tests, trusted gateway adapters).
type contextIdentityStrategy struct{}

func (s *contextIdentityStrategy) Name() string { return "request_context" }

func (s *contextIdentityStrategy) Resolve(c *gin.Context) (*models.User, error) {
	value := c.Request.Context().Value(contextkeys.CurrentUserKey)
	if value == nil {
		return nil, nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, nil
	}
	return user, nil
}

// legacySessionStrategy resolves the old server-side session store: the
// sessionid cookie, or a bearer value that matches a stored session auth
// token. Kept only for clients that have not migrated to JWTs.
type legacySessionStrategy struct {
	auth services.AuthService
}

func (s *legacySessionStrategy) Name() string { return "legacy_session" }

func (s *legacySessionStrategy) Resolve(c *gin.Context) (*models.User, error) {
	sessionKey, _ := c.Cookie(legacySessionCookie)
	authToken := bearerToken(c)
	if sessionKey == "" && authToken == "" {
		return nil, nil
	}
	return s.auth.ResolveLegacySession(sessionKey, authToken)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth aborts anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireVerified aborts requests from users without a confirmed email.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}
		if !user.EmailVerified {
			apperrors.HandleError(c, apperrors.ErrUserNotVerified)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole aborts requests from users outside the given roles.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient role for this action"))
		c.Abort()
	}
}
