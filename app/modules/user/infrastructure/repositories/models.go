package userdb

import (
	"time"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted form of a user.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64               `bun:"id,pk,autoincrement"`
	UUID      uuid.UUID           `bun:"uuid,type:uuid,notnull,unique"`
	DiscordID usertypes.DiscordID `bun:"discord_id,notnull,unique"`
	Name      string              `bun:"name,notnull"`
	Role      usertypes.UserRole  `bun:"role,notnull"`
	TagNumber *int                `bun:"tag_number"`
	CreatedAt time.Time           `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time           `bun:",nullzero,notnull,default:current_timestamp"`
}

func (u *User) ToDomain() *usertypes.User {
	return &usertypes.User{
		DiscordID: u.DiscordID,
		Name:      u.Name,
		Role:      u.Role,
		TagNumber: u.TagNumber,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
