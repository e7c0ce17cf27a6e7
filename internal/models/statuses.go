package models

type UserRole string
type StartupType string
type StartupStatus string
type ApplicationStatus string

const (
	UserRoleEntrepreneur UserRole = "entrepreneur"
	UserRoleInvestor     UserRole = "investor"
	UserRoleJobSeeker    UserRole = "job_seeker"

	StartupTypeMarketplace   StartupType = "marketplace"
	StartupTypeCollaboration StartupType = "collaboration"

	StartupStatusActive   StartupStatus = "active"
	StartupStatusSold     StartupStatus = "sold"
	StartupStatusArchived StartupStatus = "archived"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ValidUserRole reports whether the given role is one the platform accepts at
// signup.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleEntrepreneur, UserRoleInvestor, UserRoleJobSeeker:
		return true
	}
	return false
}
