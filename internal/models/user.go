package models

import "time"

type User struct {
	BaseModel
	Username      string   `gorm:"uniqueIndex;not null" json:"username"`
	Email         string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string   `gorm:"not null" json:"-"`
	Role          UserRole `gorm:"type:varchar(20);not null" json:"role"`
	EmailVerified bool     `gorm:"default:false" json:"email_verified"`
	IsActive      bool     `gorm:"default:true" json:"is_active"`

	// TokensValidFrom is the monotonic revocation cutoff: tokens issued
	// before this instant are rejected. Only ever moves forward.
	TokensValidFrom *time.Time `json:"-"`

	// Relations
	VerificationCodes []EmailVerificationCode `gorm:"foreignKey:UserID" json:"-"`
	Sessions          []UserSession           `gorm:"foreignKey:UserID" json:"-"`
	Startups          []Startup               `gorm:"foreignKey:OwnerID" json:"-"`
}

// TokenIssuedBeforeCutoff reports whether a token issued at iat predates the
// user's revocation cutoff. JWT iat carries whole seconds, so the cutoff is
// compared at the same precision; otherwise a token minted in the same second
// as a logout would be rejected for its entire lifetime.
func (u *User) TokenIssuedBeforeCutoff(iat time.Time) bool {
	return u.TokensValidFrom != nil && iat.Before(u.TokensValidFrom.Truncate(time.Second))
}

// EmailVerificationCode is a short-lived one-shot code mailed to the user.
// At most one live (unconsumed, unexpired) code per user is honored.
type EmailVerificationCode struct {
	BaseModel
	UserID     string     `gorm:"not null;index"`
	Code       string     `gorm:"not null"`
	ExpiresAt  time.Time  `gorm:"not null"`
	ConsumedAt *time.Time `gorm:"index"`
}

// Live reports whether the code can still be redeemed.
func (c *EmailVerificationCode) Live(now time.Time) bool {
	return c.ConsumedAt == nil && now.Before(c.ExpiresAt)
}

// UserSession tracks an issued refresh token so sessions are enumerable and
// revocable. Only a hash of the token is stored.
type UserSession struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	TokenHash string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// SessionRecord is the legacy server-side session row kept for callers that
// still authenticate with a session cookie or a session-bound auth token.
// Owned by the legacy web session layer; the auth core only reads it and may
// invalidate rows.
type SessionRecord struct {
	BaseModel
	SessionKey    string    `gorm:"uniqueIndex;not null"`
	UserID        string    `gorm:"not null;index"`
	AuthToken     string    `gorm:"index"`
	Authenticated bool      `gorm:"default:false"`
	ExpiresAt     time.Time `gorm:"not null"`
}
