package userservice

import (
	"context"
	"errors"
	"fmt"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	userdb "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
)

// GetUser retrieves a user by Discord ID.
func (s *UserService) GetUser(ctx context.Context, discordID usertypes.DiscordID) (UserResult, error) {
	return withTelemetry(s, ctx, "GetUser", discordID, func(ctx context.Context) (UserResult, error) {
		user, err := s.repo.GetUserByDiscordID(ctx, s.readDB(), discordID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return userFailure(ErrUserNotFound)
			}
			return UserResult{}, fmt.Errorf("failed to get user: %w", err)
		}
		return userSuccess(user.ToDomain())
	})
}

// GetUserTag returns the user's tag number, or nil for an unknown user.
func (s *UserService) GetUserTag(ctx context.Context, discordID usertypes.DiscordID) (*int, error) {
	result, err := s.GetUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user tag: %w", err)
	}

	tag := results.Map(result, func(u *usertypes.User) *int { return u.TagNumber })
	if !tag.IsSuccess() {
		return nil, nil
	}
	return *tag.Success, nil
}
