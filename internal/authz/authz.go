// Package authz holds the declarative action policy table. Handlers and
// services ask the Gate instead of inlining role and ownership checks.
package authz

import (
	"startuphub_backend/internal/models"
	"startuphub_backend/pkg/apperrors"
)

// Action names a protected operation.
type Action string

const (
	ActionStartupCreate      Action = "startup.create"
	ActionStartupUpdate      Action = "startup.update"
	ActionStartupViewOwned   Action = "startup.view_owned"
	ActionPositionCreate     Action = "position.create"
	ActionPositionUpdate     Action = "position.update"
	ActionPositionOpen       Action = "position.open"
	ActionPositionClose      Action = "position.close"
	ActionApplicationApply   Action = "application.apply"
	ActionApplicationList    Action = "application.list"
	ActionApplicationDecide  Action = "application.decide"
	ActionInterestExpress    Action = "interest.express"
	ActionInterestList       Action = "interest.list"
	ActionFavoriteManage     Action = "favorite.manage"
	ActionConversationAccess Action = "conversation.access"
	ActionMessageSend        Action = "message.send"
	ActionNotificationRead   Action = "notification.read"
	ActionProfileView        Action = "profile.view"
	ActionUploadCreate       Action = "upload.create"
)

// Policy declares what an action requires. Zero values mean "any
// authenticated user".
type Policy struct {
	// Roles allowed to perform the action; empty means any role.
	Roles []models.UserRole

	// RequireVerified refuses users without a confirmed email.
	RequireVerified bool

	// RequireOwner compares the caller against the resource owner passed to
	// Authorize.
	RequireOwner bool
}

var policies = map[Action]Policy{
	ActionStartupCreate:      {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireVerified: true},
	ActionStartupUpdate:      {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionStartupViewOwned:   {Roles: []models.UserRole{models.UserRoleEntrepreneur}},
	ActionPositionCreate:     {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionPositionUpdate:     {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionPositionOpen:       {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionPositionClose:      {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionApplicationApply:   {RequireVerified: true},
	ActionApplicationList:    {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionApplicationDecide:  {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionInterestExpress:    {RequireVerified: true},
	ActionInterestList:       {Roles: []models.UserRole{models.UserRoleEntrepreneur}, RequireOwner: true},
	ActionFavoriteManage:     {},
	ActionConversationAccess: {},
	ActionMessageSend:        {RequireVerified: true},
	ActionNotificationRead:   {RequireOwner: true},
	ActionProfileView:        {},
	ActionUploadCreate:       {},
}

// Gate evaluates the policy table.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// Authorize checks user against the action's policy. ownerID is the id of the
// resource owner for ownership-gated actions; pass "" when the action has no
// resource.
func (g *Gate) Authorize(user *models.User, action Action, ownerID string) error {
	if user == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if !user.IsActive {
		return apperrors.ErrUserInactive
	}

	policy, ok := policies[action]
	if !ok {
		// Unknown actions are refused rather than silently allowed.
		return apperrors.NewForbiddenError("Action not permitted")
	}

	if len(policy.Roles) > 0 && !roleAllowed(user.Role, policy.Roles) {
		return apperrors.NewForbiddenError("Insufficient role for this action")
	}
	if policy.RequireVerified && !user.EmailVerified {
		return apperrors.ErrUserNotVerified
	}
	if policy.RequireOwner && user.ID != ownerID {
		return apperrors.NewForbiddenError("You do not own this resource")
	}

	return nil
}

func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
