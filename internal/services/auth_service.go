package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"startuphub_backend/internal/auth"
	"startuphub_backend/internal/config"
	"startuphub_backend/internal/email"
	"startuphub_backend/internal/logger"
	"startuphub_backend/internal/models"
	"startuphub_backend/internal/repositories"
	"startuphub_backend/internal/services/dto"
	"startuphub_backend/pkg/apperrors"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(emailAddr, code string) error
	SendVerificationCode(emailAddr string) error
	Refresh(refreshToken string) (*dto.RefreshResponse, error)
	Logout(userID string) error

	// VerifyAccess validates an access token end to end: signature, expiry,
	// type claim, account state and the revocation cutoff. Returns the
	// authenticated user.
	VerifyAccess(rawToken string) (*models.User, error)

	// ResolveLegacySession resolves a legacy session key or session-bound
	// auth token to an active user, or nil when nothing matches.
	ResolveLegacySession(sessionKey, authToken string) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	codeRepo      repositories.VerificationCodeRepository
	sessionRepo   repositories.SessionRepository
	legacyRepo    repositories.LegacySessionRepository
	tokens        *auth.TokenManager
	emailProvider email.Provider
	codeTTL       time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	codeRepo repositories.VerificationCodeRepository,
	sessionRepo repositories.SessionRepository,
	legacyRepo repositories.LegacySessionRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		codeRepo:      codeRepo,
		sessionRepo:   sessionRepo,
		legacyRepo:    legacyRepo,
		tokens:        tokens,
		emailProvider: emailProvider,
		codeTTL:       time.Duration(cfg.Auth.CodeTTLMinutes) * time.Minute,
	}
}

// Signup registers an unverified account and dispatches the first
// verification code. No tokens are issued until the email is confirmed.
func (s *AuthServiceImpl) Signup(req *dto.SignupRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if !models.ValidUserRole(req.Role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  passwordHash,
		Role:          req.Role,
		EmailVerified: false,
		IsActive:      true,
	}

	if err := s.userRepo.Create(user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, apperrors.ErrEmailAlreadyExists
		case errors.Is(err, repositories.ErrUsernameTaken):
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	// Dispatch failure does not fail signup; the client can re-request a
	// code through the dedicated endpoint.
	if err := s.issueAndSendCode(user); err != nil {
		logger.WithError(err).Warn("failed to send verification code after signup",
			"user_id", user.ID)
	}

	return dto.NewUserResponse(user), nil
}

// Login authenticates with email and password. Unverified accounts hold
// valid credentials but are refused with a distinct error until the email is
// confirmed.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	if !user.EmailVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	pair, err := s.tokens.GeneratePair(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.UserSession{
		UserID:    user.ID,
		TokenHash: auth.HashToken(pair.RefreshToken),
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User:         dto.NewUserResponse(user),
	}, nil
}

// VerifyEmail redeems a verification code. Fails closed: consumed, expired
// or mismatched codes all produce the same error.
func (s *AuthServiceImpl) VerifyEmail(emailAddr, code string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	record, err := s.codeRepo.FindLive(user.ID, code)
	if err != nil {
		if errors.Is(err, repositories.ErrCodeNotFound) {
			return apperrors.ErrInvalidCode
		}
		return apperrors.InternalError(err)
	}

	if err := s.codeRepo.Consume(record.ID); err != nil {
		if errors.Is(err, repositories.ErrCodeNotFound) {
			// Lost the race against a concurrent redeem.
			return apperrors.ErrInvalidCode
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.SetEmailVerified(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// SendVerificationCode issues a fresh code, superseding any live one, and
// dispatches it. Dispatch failure is surfaced so the client can retry.
func (s *AuthServiceImpl) SendVerificationCode(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.EmailVerified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.issueAndSendCode(user); err != nil {
		return apperrors.ErrCodeDispatchFailed.WithError(err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new access token. The token must
// parse, match a live tracked session, and postdate the revocation cutoff.
// Refresh tokens are not rotated.
func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if _, err := s.sessionRepo.FindByTokenHash(auth.HashToken(refreshToken)); err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrTokenRevoked
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.checkTokenUser(claims)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Logout invalidates every session the user has: tracked refresh sessions
// are deleted, legacy session rows expired, and the revocation cutoff moves
// to now so outstanding tokens die with them.
func (s *AuthServiceImpl) Logout(userID string) error {
	if err := s.sessionRepo.DeleteByUserID(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.legacyRepo.ExpireByUserID(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.BumpTokensValidFrom(userID, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) VerifyAccess(rawToken string) (*models.User, error) {
	claims, err := s.tokens.Parse(rawToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return s.checkTokenUser(claims)
}

func (s *AuthServiceImpl) ResolveLegacySession(sessionKey, authToken string) (*models.User, error) {
	var record *models.SessionRecord
	var err error

	switch {
	case sessionKey != "":
		record, err = s.legacyRepo.FindByKey(sessionKey)
	case authToken != "":
		record, err = s.legacyRepo.FindByAuthToken(authToken)
	default:
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, repositories.ErrLegacySessionNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	if !record.Authenticated || record.UserID == "" {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(record.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}

// checkTokenUser loads the token's user and applies the account-state and
// revocation checks shared by the verify and refresh paths.
func (s *AuthServiceImpl) checkTokenUser(claims *auth.Claims) (*models.User, error) {
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.IssuedAt != nil && user.TokenIssuedBeforeCutoff(claims.IssuedAt.Time) {
		return nil, apperrors.ErrTokenRevoked
	}
	return user, nil
}

func (s *AuthServiceImpl) issueAndSendCode(user *models.User) error {
	code, err := generateVerificationCode()
	if err != nil {
		return err
	}

	record := &models.EmailVerificationCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.codeRepo.Create(record); err != nil {
		return err
	}

	if s.emailProvider == nil {
		return errors.New("email provider is not configured")
	}
	return s.emailProvider.SendVerificationCode(user.Email, user.Username, code)
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return apperrors.ErrTokenExpired
	case errors.Is(err, auth.ErrTokenRevoked):
		return apperrors.ErrTokenRevoked
	default:
		return apperrors.ErrInvalidToken
	}
}

// generateVerificationCode produces a uniform 6-digit code from crypto/rand.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
