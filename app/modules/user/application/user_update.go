package userservice

import (
	"context"
	"errors"
	"fmt"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	userdb "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// UpdateUser validates the input, checks the role-escalation guard and merges
// the provided fields into the stored user.
func (s *UserService) UpdateUser(ctx context.Context, input usertypes.UpdateUserInput, requesterRole usertypes.UserRole) (UserResult, error) {
	return withTelemetry(s, ctx, "UpdateUser", input.DiscordID, func(ctx context.Context) (UserResult, error) {
		if err := s.validator.ValidateUpdate(input); err != nil {
			return userFailure(err)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UserResult, error) {
			user, err := s.repo.GetUserByDiscordID(ctx, db, input.DiscordID)
			if err != nil {
				if errors.Is(err, userdb.ErrNotFound) {
					return userFailure(ErrUserNotFound)
				}
				return UserResult{}, fmt.Errorf("failed to get user: %w", err)
			}

			if !canAssignRole(input.Role, requesterRole) {
				return userFailure(ErrUnauthorizedRoleChange)
			}

			if input.Name != nil {
				user.Name = *input.Name
			}
			if input.Role != nil {
				user.Role = *input.Role
			}
			if input.TagNumber != nil {
				tag := *input.TagNumber
				user.TagNumber = &tag
			}

			if err := s.repo.UpdateUser(ctx, db, user); err != nil {
				if errors.Is(err, userdb.ErrNotFound) {
					return userFailure(ErrUserNotFound)
				}
				return UserResult{}, fmt.Errorf("failed to update user: %w", err)
			}
			return userSuccess(user.ToDomain())
		})
	})
}

// canAssignRole reports whether requesterRole may set target. Only ADMIN may
// grant ADMIN or EDITOR; a nil target leaves the role alone.
func canAssignRole(target *usertypes.UserRole, requesterRole usertypes.UserRole) bool {
	if target == nil || !target.Privileged() {
		return true
	}
	return requesterRole == usertypes.UserRoleAdmin
}
