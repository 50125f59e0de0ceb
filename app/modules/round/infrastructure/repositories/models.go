package rounddb

import (
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/uptrace/bun"
)

// Round is the persisted form of a round. Participants and scores live in
// JSONB columns on the same row so every mutation is a single-row UPDATE.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID           roundtypes.RoundID       `bun:"id,pk,autoincrement"`
	Title        string                   `bun:"title,notnull"`
	Location     string                   `bun:"location,notnull"`
	EventType    *string                  `bun:"event_type"`
	Date         string                   `bun:"date,notnull"`
	Time         string                   `bun:"time,notnull"`
	Finalized    bool                     `bun:"finalized,notnull"`
	CreatorID    roundtypes.MemberID      `bun:"creator_id,notnull"`
	State        roundtypes.RoundState    `bun:"state,notnull"`
	Participants []roundtypes.Participant `bun:"participants,type:jsonb,notnull"`
	Scores       []roundtypes.Score       `bun:"scores,type:jsonb,notnull"`
	CreatedAt    time.Time                `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time                `bun:",nullzero,notnull,default:current_timestamp"`
}

// ToDomain converts the row into the domain type. Collections are never nil.
func (r *Round) ToDomain() *roundtypes.Round {
	participants := make([]roundtypes.Participant, len(r.Participants))
	copy(participants, r.Participants)
	scores := make([]roundtypes.Score, len(r.Scores))
	copy(scores, r.Scores)

	return &roundtypes.Round{
		ID:           r.ID,
		Title:        r.Title,
		Location:     r.Location,
		EventType:    r.EventType,
		Date:         r.Date,
		Time:         r.Time,
		Finalized:    r.Finalized,
		CreatorID:    r.CreatorID,
		State:        r.State,
		Participants: participants,
		Scores:       scores,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
