package usertypes

import "time"

// DiscordID identifies a user by their Discord account.
type DiscordID string

// UserRole is a user's permission level.
type UserRole string

const (
	UserRoleRattler UserRole = "RATTLER"
	UserRoleEditor  UserRole = "EDITOR"
	UserRoleAdmin   UserRole = "ADMIN"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleRattler, UserRoleEditor, UserRoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether r can only be granted by an admin.
func (r UserRole) Privileged() bool {
	return r == UserRoleAdmin || r == UserRoleEditor
}

// User is a registered club member.
type User struct {
	DiscordID DiscordID `json:"discord_id"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	TagNumber *int      `json:"tag_number,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput registers a user. An empty role means RATTLER.
type CreateUserInput struct {
	DiscordID DiscordID `json:"discord_id"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role,omitempty"`
	TagNumber *int      `json:"tag_number,omitempty"`
}

// UpdateUserInput changes a user. Nil fields are left unchanged.
type UpdateUserInput struct {
	DiscordID DiscordID `json:"discord_id"`
	Name      *string   `json:"name,omitempty"`
	Role      *UserRole `json:"role,omitempty"`
	TagNumber *int      `json:"tag_number,omitempty"`
}
