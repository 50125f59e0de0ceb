package userdb

import (
	"context"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence.
type Repository interface {
	GetUserByDiscordID(ctx context.Context, db bun.IDB, discordID usertypes.DiscordID) (*User, error)
	// CreateUser returns ErrUserExists when the Discord ID is taken.
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
	UpdateUser(ctx context.Context, db bun.IDB, user *User) error
}
