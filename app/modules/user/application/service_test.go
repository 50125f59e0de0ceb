package userservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	userdb "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-rounds/internal/observability/metrics"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newDiscordID() usertypes.DiscordID {
	return usertypes.DiscordID(gofakeit.Numerify("1#################"))
}

func rolePtr(r usertypes.UserRole) *usertypes.UserRole { return &r }

func intPtr(i int) *int { return &i }

func newService(repo *FakeUserRepo) *UserService {
	return NewUserService(repo, slog.Default(), metrics.NewNoop(), nil, nil)
}

func TestGetUser(t *testing.T) {
	existing := &userdb.User{DiscordID: newDiscordID(), Name: gofakeit.Name(), Role: usertypes.UserRoleRattler, TagNumber: intPtr(12)}

	tests := []struct {
		name        string
		setupRepo   func(*FakeUserRepo)
		discordID   usertypes.DiscordID
		wantFailure error
		wantErr     bool
	}{
		{name: "found", discordID: existing.DiscordID},
		{name: "not found", discordID: newDiscordID(), wantFailure: ErrUserNotFound},
		{
			name:      "database error",
			discordID: existing.DiscordID,
			setupRepo: func(f *FakeUserRepo) {
				f.GetUserByDiscordIDFunc = func(ctx context.Context, db bun.IDB, discordID usertypes.DiscordID) (*userdb.User, error) {
					return nil, errors.New("connection refused")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeUserRepo(existing)
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			result, err := newService(repo).GetUser(context.Background(), tt.discordID)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantFailure != nil {
				require.True(t, result.IsFailure())
				assert.ErrorIs(t, *result.Failure, tt.wantFailure)
				return
			}
			require.True(t, result.IsSuccess())
			assert.Equal(t, existing.Name, (*result.Success).Name)
			assert.Equal(t, 12, *(*result.Success).TagNumber)
		})
	}
}

func TestCreateUser(t *testing.T) {
	taken := &userdb.User{DiscordID: newDiscordID(), Role: usertypes.UserRoleRattler}

	tests := []struct {
		name        string
		input       usertypes.CreateUserInput
		wantFailure error
		wantRole    usertypes.UserRole
	}{
		{
			name:     "defaults role to RATTLER",
			input:    usertypes.CreateUserInput{DiscordID: newDiscordID(), Name: gofakeit.Name()},
			wantRole: usertypes.UserRoleRattler,
		},
		{
			name:     "keeps requested role",
			input:    usertypes.CreateUserInput{DiscordID: newDiscordID(), Role: usertypes.UserRoleRattler, TagNumber: intPtr(3)},
			wantRole: usertypes.UserRoleRattler,
		},
		{
			name:        "duplicate discord id",
			input:       usertypes.CreateUserInput{DiscordID: taken.DiscordID},
			wantFailure: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeUserRepo(taken)

			result, err := newService(repo).CreateUser(context.Background(), tt.input)
			require.NoError(t, err)

			if tt.wantFailure != nil {
				require.True(t, result.IsFailure())
				assert.ErrorIs(t, *result.Failure, tt.wantFailure)
				return
			}
			require.True(t, result.IsSuccess())
			assert.Equal(t, tt.wantRole, (*result.Success).Role)
		})
	}

	t.Run("validation failure skips the store", func(t *testing.T) {
		repo := NewFakeUserRepo()
		result, err := newService(repo).CreateUser(context.Background(), usertypes.CreateUserInput{
			DiscordID: "abc",
			Role:      "OWNER",
			TagNumber: intPtr(-1),
		})
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		var vErr *ValidationError
		require.ErrorAs(t, *result.Failure, &vErr)
		assert.Len(t, vErr.Problems, 3)
		assert.Empty(t, repo.Trace())
	})
}

func TestUpdateUser_RoleEscalationGuard(t *testing.T) {
	tests := []struct {
		name          string
		requesterRole usertypes.UserRole
		targetRole    *usertypes.UserRole
		wantFailure   error
	}{
		{name: "admin grants admin", requesterRole: usertypes.UserRoleAdmin, targetRole: rolePtr(usertypes.UserRoleAdmin)},
		{name: "admin grants editor", requesterRole: usertypes.UserRoleAdmin, targetRole: rolePtr(usertypes.UserRoleEditor)},
		{name: "editor cannot grant admin", requesterRole: usertypes.UserRoleEditor, targetRole: rolePtr(usertypes.UserRoleAdmin), wantFailure: ErrUnauthorizedRoleChange},
		{name: "editor cannot grant editor", requesterRole: usertypes.UserRoleEditor, targetRole: rolePtr(usertypes.UserRoleEditor), wantFailure: ErrUnauthorizedRoleChange},
		{name: "rattler cannot grant admin", requesterRole: usertypes.UserRoleRattler, targetRole: rolePtr(usertypes.UserRoleAdmin), wantFailure: ErrUnauthorizedRoleChange},
		{name: "rattler may set rattler", requesterRole: usertypes.UserRoleRattler, targetRole: rolePtr(usertypes.UserRoleRattler)},
		{name: "no role change", requesterRole: usertypes.UserRoleRattler, targetRole: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := &userdb.User{DiscordID: newDiscordID(), Name: "Old", Role: usertypes.UserRoleRattler}
			repo := NewFakeUserRepo(existing)

			result, err := newService(repo).UpdateUser(context.Background(), usertypes.UpdateUserInput{
				DiscordID: existing.DiscordID,
				Name:      func() *string { s := "New"; return &s }(),
				Role:      tt.targetRole,
			}, tt.requesterRole)
			require.NoError(t, err)

			if tt.wantFailure != nil {
				require.True(t, result.IsFailure())
				assert.ErrorIs(t, *result.Failure, tt.wantFailure)
				assert.NotContains(t, repo.Trace(), "UpdateUser")
				return
			}

			require.True(t, result.IsSuccess())
			assert.Equal(t, "New", (*result.Success).Name)
			if tt.targetRole != nil {
				assert.Equal(t, *tt.targetRole, (*result.Success).Role)
			} else {
				assert.Equal(t, usertypes.UserRoleRattler, (*result.Success).Role)
			}
		})
	}
}

func TestUpdateUser_Failures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		result, err := newService(NewFakeUserRepo()).UpdateUser(context.Background(), usertypes.UpdateUserInput{DiscordID: newDiscordID()}, usertypes.UserRoleAdmin)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.ErrorIs(t, *result.Failure, ErrUserNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		result, err := newService(NewFakeUserRepo()).UpdateUser(context.Background(), usertypes.UpdateUserInput{DiscordID: ""}, usertypes.UserRoleAdmin)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		var vErr *ValidationError
		assert.ErrorAs(t, *result.Failure, &vErr)
	})

	t.Run("store error", func(t *testing.T) {
		existing := &userdb.User{DiscordID: newDiscordID(), Role: usertypes.UserRoleRattler}
		repo := NewFakeUserRepo(existing)
		repo.UpdateUserFunc = func(ctx context.Context, db bun.IDB, user *userdb.User) error {
			return errors.New("deadlock detected")
		}
		_, err := newService(repo).UpdateUser(context.Background(), usertypes.UpdateUserInput{DiscordID: existing.DiscordID, TagNumber: intPtr(5)}, usertypes.UserRoleAdmin)
		assert.Error(t, err)
	})
}

func TestGetUserTag(t *testing.T) {
	tagged := &userdb.User{DiscordID: newDiscordID(), TagNumber: intPtr(9)}
	svc := newService(NewFakeUserRepo(tagged))

	tag, err := svc.GetUserTag(context.Background(), tagged.DiscordID)
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, 9, *tag)

	tag, err = svc.GetUserTag(context.Background(), newDiscordID())
	require.NoError(t, err)
	assert.Nil(t, tag)

	untagged := &userdb.User{DiscordID: newDiscordID()}
	tag, err = newService(NewFakeUserRepo(untagged)).GetUserTag(context.Background(), untagged.DiscordID)
	require.NoError(t, err)
	assert.Nil(t, tag)

	broken := NewFakeUserRepo()
	broken.GetUserByDiscordIDFunc = func(context.Context, bun.IDB, usertypes.DiscordID) (*userdb.User, error) {
		return nil, errors.New("connection reset")
	}
	_, err = newService(broken).GetUserTag(context.Background(), newDiscordID())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
