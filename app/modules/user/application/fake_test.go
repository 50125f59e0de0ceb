package userservice

import (
	"context"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	userdb "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string
	users map[usertypes.DiscordID]*userdb.User

	GetUserByDiscordIDFunc func(ctx context.Context, db bun.IDB, discordID usertypes.DiscordID) (*userdb.User, error)
	CreateUserFunc         func(ctx context.Context, db bun.IDB, user *userdb.User) error
	UpdateUserFunc         func(ctx context.Context, db bun.IDB, user *userdb.User) error
}

func NewFakeUserRepo(users ...*userdb.User) *FakeUserRepo {
	f := &FakeUserRepo{trace: []string{}, users: map[usertypes.DiscordID]*userdb.User{}}
	for _, u := range users {
		copied := *u
		f.users[u.DiscordID] = &copied
	}
	return f
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) GetUserByDiscordID(ctx context.Context, db bun.IDB, discordID usertypes.DiscordID) (*userdb.User, error) {
	f.record("GetUserByDiscordID")
	if f.GetUserByDiscordIDFunc != nil {
		return f.GetUserByDiscordIDFunc(ctx, db, discordID)
	}
	u, ok := f.users[discordID]
	if !ok {
		return nil, userdb.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *FakeUserRepo) CreateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	if _, ok := f.users[user.DiscordID]; ok {
		return userdb.ErrUserExists
	}
	copied := *user
	f.users[user.DiscordID] = &copied
	return nil
}

func (f *FakeUserRepo) UpdateUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("UpdateUser")
	if f.UpdateUserFunc != nil {
		return f.UpdateUserFunc(ctx, db, user)
	}
	if _, ok := f.users[user.DiscordID]; !ok {
		return userdb.ErrNotFound
	}
	copied := *user
	f.users[user.DiscordID] = &copied
	return nil
}

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ userdb.Repository = (*FakeUserRepo)(nil)
