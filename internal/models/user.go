package models

import "time"

// Role names carried in tokens and checked by the role middleware.
const (
	RoleUser      = "ROLE_USER"
	RoleModerator = "ROLE_MODERATOR"
	RoleAdmin     = "ROLE_ADMIN"
)

// Role is a named permission set assigned to users.
type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

// User represents a user in the system.
// Favorites and queue live in their own relations, see Favorite and QueueEntry.
type User struct {
	ID           uint `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string  `gorm:"size:20;uniqueIndex;not null"`
	Email        string  `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:120;not null"`
	Roles        []*Role `gorm:"many2many:user_roles;"`
}

// RoleNames returns the names of the user's roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r != nil {
			names = append(names, r.Name)
		}
	}
	return names
}

// HasRole reports whether the user holds the named role.
// Moderators implicitly hold the user role, admins hold both.
func HasRole(roles []string, required string) bool {
	for _, r := range roles {
		if r == required || r == RoleAdmin {
			return true
		}
		if r == RoleModerator && required == RoleUser {
			return true
		}
	}
	return false
}
