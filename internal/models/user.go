package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type User struct {
	ID           string        `gorm:"primaryKey"`
	Name         string        `gorm:"not null"`
	Email        string        `gorm:"uniqueIndex;not null"`
	PasswordHash string        `gorm:"not null"`
	Role         Role          `gorm:"not null;default:member"`
	Destinations []Destination `gorm:"many2many:user_destinations"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AccessibleDestinationIDs returns the ids of the destinations explicitly granted to the user.
func (u *User) AccessibleDestinationIDs() []string {
	ids := make([]string, 0, len(u.Destinations))
	for _, d := range u.Destinations {
		ids = append(ids, d.ID)
	}
	return ids
}
