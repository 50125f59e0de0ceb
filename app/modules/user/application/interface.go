package userservice

import (
	"context"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
)

// UserResult is a user or a domain failure.
type UserResult = results.OperationResult[*usertypes.User, error]

// Service manages user records.
type Service interface {
	GetUser(ctx context.Context, discordID usertypes.DiscordID) (UserResult, error)
	CreateUser(ctx context.Context, input usertypes.CreateUserInput) (UserResult, error)
	// UpdateUser applies a merge update. A requester below ADMIN cannot grant
	// ADMIN or EDITOR.
	UpdateUser(ctx context.Context, input usertypes.UpdateUserInput, requesterRole usertypes.UserRole) (UserResult, error)
	// GetUserTag returns nil when the user is unknown or has no tag.
	GetUserTag(ctx context.Context, discordID usertypes.DiscordID) (*int, error)
}
