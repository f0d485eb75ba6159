package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Role         UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	AvatarURL    string     `json:"avatar_url,omitempty"`

	Tours []Tour `gorm:"foreignKey:ProviderID" json:"-"`
}

// Blocked reports whether the account must fail authorization for all
// protected operations regardless of role.
func (u *User) Blocked() bool {
	return u.Status == UserStatusSuspended || u.Status == UserStatusBanned
}
