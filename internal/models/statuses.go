package models

type UserRole string
type UserStatus string
type BookingStatus string
type DisputeStatus string
type BadgeRequestStatus string

const (
	UserRoleTourist UserRole = "tourist"
	UserRoleGuide   UserRole = "guide"
	UserRoleAdmin   UserRole = "admin"

	// Historic synonym for guide, still accepted at every boundary.
	UserRoleLocal UserRole = "local"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"

	DisputeStatusOpen       DisputeStatus = "open"
	DisputeStatusInProgress DisputeStatus = "in_progress"
	DisputeStatusResolved   DisputeStatus = "resolved"

	BadgeRequestStatusPending  BadgeRequestStatus = "pending"
	BadgeRequestStatusApproved BadgeRequestStatus = "approved"
	BadgeRequestStatusRejected BadgeRequestStatus = "rejected"
)

// NormalizeRole collapses role synonyms to their canonical form.
// "local" and "guide" are the same audience everywhere in the system.
func NormalizeRole(role UserRole) UserRole {
	if role == UserRoleLocal {
		return UserRoleGuide
	}
	return role
}

// ExpandRole returns every stored spelling of a logical role. Audience
// queries must use this set, not the canonical value alone, because old
// rows may still carry the synonym.
func ExpandRole(role UserRole) []UserRole {
	if NormalizeRole(role) == UserRoleGuide {
		return []UserRole{UserRoleGuide, UserRoleLocal}
	}
	return []UserRole{role}
}

// ValidRole reports whether the role is one the platform knows about.
func ValidRole(role UserRole) bool {
	switch NormalizeRole(role) {
	case UserRoleTourist, UserRoleGuide, UserRoleAdmin:
		return true
	}
	return false
}
