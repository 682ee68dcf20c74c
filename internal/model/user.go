package model

import "strings"

// swagger:model User
type User struct {
	BaseModel
	Username  string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	Password  string `gorm:"size:128;not null" json:"-"`
	IsStaff   bool   `gorm:"default:false" json:"is_staff"`

	Profile *UserProfile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Skills  []UserSkill  `gorm:"constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName falls back to the username when both name fields are empty.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}
