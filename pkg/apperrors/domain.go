package apperrors

import "net/http"

// Domain-level sentinel errors. Services return these; handlers pass them to
// HandleError unchanged.

// --- auth domain ---
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrUserNotVerified    = New(CodeUserNotVerified, "auth", "Email not verified", http.StatusForbidden)
	ErrUserInactive       = New(CodeForbidden, "auth", "Account is deactivated", http.StatusForbidden)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already exists", http.StatusConflict)
	ErrUsernameTaken      = New(CodeAlreadyExists, "auth", "Username already taken", http.StatusConflict)
	ErrWeakPassword       = New(CodeValidationFailed, "auth", "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeValidationFailed, "auth", "Invalid user role", http.StatusBadRequest)
	ErrAlreadyVerified    = New(CodeValidationFailed, "auth", "Email is already verified", http.StatusBadRequest)
	ErrInvalidCode        = New(CodeValidationFailed, "auth", "Invalid or expired verification code", http.StatusBadRequest)
	ErrCodeDispatchFailed = New(CodeExternalServiceError, "auth", "Failed to send verification code, please retry", http.StatusInternalServerError)

	// Token errors map to 401 for clients; the distinct codes let a client
	// decide between refresh (TOKEN_EXPIRED) and full re-login (TOKEN_REVOKED).
	ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = New(CodeTokenExpired, "auth", "Token has expired", http.StatusUnauthorized)
	ErrTokenRevoked = New(CodeTokenRevoked, "auth", "Token has been revoked", http.StatusUnauthorized)
)

// --- rate limiting ---
var ErrRateLimited = New(CodeRateLimited, "ratelimit", "Too many requests, please try again later", http.StatusTooManyRequests)

// --- user domain ---
var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

// --- startup domain ---
var (
	ErrStartupNotFound = New(CodeNotFound, "startup", "Startup not found", http.StatusNotFound)
	ErrNotStartupOwner = New(CodeForbidden, "startup", "Only the startup owner may perform this action", http.StatusForbidden)
)

// --- position domain ---
var ErrPositionNotFound = New(CodeNotFound, "position", "Position not found", http.StatusNotFound)

// --- application domain ---
var (
	ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)
	ErrAlreadyApplied      = New(CodeConflict, "application", "Already applied for this position", http.StatusConflict)
	ErrPositionClosed      = New(CodeConflict, "application", "Position is no longer accepting applications", http.StatusConflict)
)

// --- notification domain ---
var ErrNotificationNotFound = New(CodeNotFound, "notification", "Notification not found", http.StatusNotFound)

// --- messaging domain ---
var (
	ErrConversationNotFound = New(CodeNotFound, "messaging", "Conversation not found", http.StatusNotFound)
	ErrNotParticipant       = New(CodeForbidden, "messaging", "Not a participant of this conversation", http.StatusForbidden)
)

// --- upload domain ---
var (
	ErrFileTooLarge    = New(CodeValidationFailed, "upload", "File exceeds the maximum allowed size", http.StatusBadRequest)
	ErrFileTypeBlocked = New(CodeValidationFailed, "upload", "File type is not allowed", http.StatusBadRequest)
	ErrUploadNotFound  = New(CodeNotFound, "upload", "File not found", http.StatusNotFound)
)
