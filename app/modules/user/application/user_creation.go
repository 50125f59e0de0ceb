package userservice

import (
	"context"
	"errors"
	"fmt"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	userdb "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// CreateUser validates and registers a user.
func (s *UserService) CreateUser(ctx context.Context, input usertypes.CreateUserInput) (UserResult, error) {
	return withTelemetry(s, ctx, "CreateUser", input.DiscordID, func(ctx context.Context) (UserResult, error) {
		if err := s.validator.ValidateCreate(input); err != nil {
			return userFailure(err)
		}

		role := input.Role
		if role == "" {
			role = usertypes.UserRoleRattler
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UserResult, error) {
			user := &userdb.User{
				DiscordID: input.DiscordID,
				Name:      input.Name,
				Role:      role,
				TagNumber: input.TagNumber,
			}
			if err := s.repo.CreateUser(ctx, db, user); err != nil {
				if errors.Is(err, userdb.ErrUserExists) {
					return userFailure(ErrUserAlreadyExists)
				}
				return UserResult{}, fmt.Errorf("failed to create user: %w", err)
			}
			return userSuccess(user.ToDomain())
		})
	})
}
