package handlers

import (
	"net/http"

	"startuphub_backend/internal/config"
	"startuphub_backend/internal/services"
	"startuphub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// Cookie names kept for browser clients. Non-browser clients use the JSON
// payload and the Authorization header instead.
const (
	accessCookie  = "token"
	refreshCookie = "refresh_token"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRoutes mounts the auth endpoints. Signup, login and send-code are
// rate limited per client IP.
func (h *AuthHandler) RegisterRoutes(
	rg *gin.RouterGroup,
	signupLimiter, loginLimiter, sendCodeLimiter gin.HandlerFunc,
) {
	rg.POST("/signup", signupLimiter, h.Signup)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", loginLimiter, h.Login)
		auth.POST("/verify", h.VerifyEmail)
		auth.POST("/send-verification-code", sendCodeLimiter, h.SendVerificationCode)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// Signup godoc
// @Summary Register a new account
// @Description Creates an unverified account and emails a verification code. No tokens are issued until the email is confirmed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Signup payload"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError "Validation failed"
// @Failure 409 {object} apperrors.AppError "Email or username taken"
// @Failure 429 {object} apperrors.AppError "Rate limited"
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Authenticate with email and password
// @Description Returns a token pair and sets the token cookies. Accounts with unverified email are refused with a distinct error code.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.AppError "Invalid credentials"
// @Failure 403 {object} apperrors.AppError "Email not verified"
// @Failure 429 {object} apperrors.AppError "Rate limited"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, accessCookie, response.AccessToken, int(response.ExpiresIn))
	h.setTokenCookie(c, refreshCookie, response.RefreshToken,
		h.cfg.JWT.RefreshTTLDays*24*3600)

	c.JSON(http.StatusOK, response)
}

// VerifyEmail godoc
// @Summary Redeem an email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerifyEmailRequest true "Email and code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} apperrors.AppError "Invalid or expired code"
// @Failure 404 {object} apperrors.AppError "Unknown user"
// @Router /auth/verify [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.VerifyEmail(req.Email, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// SendVerificationCode godoc
// @Summary Send a fresh verification code
// @Description Supersedes any previously issued code. Dispatch failure is reported so the client can retry.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SendCodeRequest true "Email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} apperrors.AppError "Already verified"
// @Failure 404 {object} apperrors.AppError "Unknown user"
// @Failure 429 {object} apperrors.AppError "Rate limited"
// @Failure 500 {object} apperrors.AppError "Dispatch failed"
// @Router /auth/send-verification-code [post]
func (h *AuthHandler) SendVerificationCode(c *gin.Context) {
	var req dto.SendCodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.SendVerificationCode(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Description The refresh token is taken from the JSON body or, for browser clients, from the refresh_token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest false "Refresh token"
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} apperrors.AppError "Invalid, expired or revoked token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	// Body is optional; cookie clients send nothing.
	_ = c.ShouldBindJSON(&req)

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken, _ = c.Cookie(refreshCookie)
	}

	response, err := h.authService.Refresh(refreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, accessCookie, response.AccessToken, int(response.ExpiresIn))

	c.JSON(http.StatusOK, response)
}

// Logout godoc
// @Summary Invalidate every session of the current user
// @Description Deletes tracked refresh sessions, expires legacy sessions and revokes outstanding tokens, then clears the cookies.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperrors.AppError
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := h.RequireUser(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(user.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, accessCookie, "", -1)
	h.setTokenCookie(c, refreshCookie, "", -1)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "",
		h.cfg.Auth.CookieSecure, h.cfg.Auth.CookieHTTPOnly)
}
