package roundadapters

import (
	"context"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
)

// TagSource is the part of the user service that knows tag numbers.
type TagSource interface {
	GetUserTag(ctx context.Context, discordID usertypes.DiscordID) (*int, error)
}

// UserTagLookup resolves a round member's tag number through the user module.
type UserTagLookup struct {
	users TagSource
}

// NewUserTagLookup constructs a new adapter.
func NewUserTagLookup(users TagSource) *UserTagLookup {
	return &UserTagLookup{users: users}
}

// GetUserTag returns nil when the member is unknown or untagged.
func (a *UserTagLookup) GetUserTag(ctx context.Context, memberID roundtypes.MemberID) (*int, error) {
	return a.users.GetUserTag(ctx, usertypes.DiscordID(memberID))
}
