package roundtypes

import (
	"strconv"
	"time"
)

// RoundID is the store-assigned identifier of a round.
type RoundID int64

func (id RoundID) String() string { return strconv.FormatInt(int64(id), 10) }

// MemberID is the stable external (Discord) identifier of a member.
type MemberID string

// Round is a scheduled event with its participants and scores.
type Round struct {
	ID           RoundID       `json:"id"`
	Title        string        `json:"title"`
	Location     string        `json:"location"`
	EventType    *string       `json:"event_type,omitempty"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Finalized    bool          `json:"finalized"`
	CreatorID    MemberID      `json:"creator_id"`
	State        RoundState    `json:"state"`
	Participants []Participant `json:"participants"`
	Scores       []Score       `json:"scores"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsUpcoming checks if the round is in the upcoming state.
func (r *Round) IsUpcoming() bool {
	return r.State == RoundStateUpcoming
}

// IsInProgress checks if the round is in the in-progress state.
func (r *Round) IsInProgress() bool {
	return r.State == RoundStateInProgress
}

// FindParticipant returns the index of memberID in Participants, or -1.
func (r *Round) FindParticipant(memberID MemberID) int {
	for i, p := range r.Participants {
		if p.MemberID == memberID {
			return i
		}
	}
	return -1
}

// HasScore reports whether memberID already submitted a score.
func (r *Round) HasScore(memberID MemberID) bool {
	for _, s := range r.Scores {
		if s.MemberID == memberID {
			return true
		}
	}
	return false
}

// Response represents the possible responses for a participant.
type Response string

// Define the possible response values as constants.
const (
	ResponseAccept    Response = "ACCEPT"
	ResponseTentative Response = "TENTATIVE"
	ResponseDecline   Response = "DECLINE"
)

// Valid reports whether r is one of the known responses.
func (r Response) Valid() bool {
	switch r {
	case ResponseAccept, ResponseTentative, ResponseDecline:
		return true
	}
	return false
}

// RoundState represents the state of a round.
type RoundState string

// Enum constants for RoundState
const (
	RoundStateUpcoming   RoundState = "UPCOMING"
	RoundStateInProgress RoundState = "IN_PROGRESS"
	RoundStateFinalized  RoundState = "FINALIZED"
)

// Participant represents a member enrolled in a round.
type Participant struct {
	MemberID  MemberID `json:"member_id"`
	Response  Response `json:"response"`
	TagNumber *int     `json:"tag_number,omitempty"`
}

// Score is a member's submitted score for a round.
type Score struct {
	MemberID  MemberID `json:"member_id"`
	Score     int      `json:"score"`
	TagNumber *int     `json:"tag_number,omitempty"`
}

// CreateRoundInput holds the fields needed to schedule a round.
type CreateRoundInput struct {
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	EventType *string  `json:"event_type,omitempty"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	CreatorID MemberID `json:"creator_id"`
}

// EditRoundInput holds optional overrides for a round's descriptive fields.
// Nil fields are left unchanged.
type EditRoundInput struct {
	Title     *string `json:"title,omitempty"`
	Location  *string `json:"location,omitempty"`
	EventType *string `json:"event_type,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
}

// JoinRoundInput enrolls a member in a round.
type JoinRoundInput struct {
	RoundID   RoundID  `json:"round_id"`
	MemberID  MemberID `json:"member_id"`
	Response  Response `json:"response"`
	TagNumber *int     `json:"tag_number,omitempty"`
}

// SubmitScoreInput records a member's score.
type SubmitScoreInput struct {
	RoundID   RoundID  `json:"round_id"`
	MemberID  MemberID `json:"member_id"`
	Score     int      `json:"score"`
	TagNumber *int     `json:"tag_number,omitempty"`
}

// UpdateResponseInput changes an existing participant's response.
type UpdateResponseInput struct {
	RoundID  RoundID  `json:"round_id"`
	MemberID MemberID `json:"member_id"`
	Response Response `json:"response"`
}
