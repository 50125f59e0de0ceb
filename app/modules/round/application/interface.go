package roundservice

import (
	"context"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
)

// RoundResult is the outcome of a round mutation: the updated round or a domain failure.
type RoundResult = results.OperationResult[*roundtypes.Round, error]

// DeleteResult is the outcome of a delete.
type DeleteResult = results.OperationResult[bool, error]

// Service is the round lifecycle engine plus its read facade.
type Service interface {
	CreateRound(ctx context.Context, input roundtypes.CreateRoundInput) (RoundResult, error)
	JoinRound(ctx context.Context, input roundtypes.JoinRoundInput) (RoundResult, error)
	SubmitScore(ctx context.Context, input roundtypes.SubmitScoreInput) (RoundResult, error)
	UpdateParticipantResponse(ctx context.Context, input roundtypes.UpdateResponseInput) (RoundResult, error)
	StartRound(ctx context.Context, roundID roundtypes.RoundID) (RoundResult, error)
	FinalizeAndProcessScores(ctx context.Context, roundID roundtypes.RoundID) (RoundResult, error)
	EditRound(ctx context.Context, roundID roundtypes.RoundID, input roundtypes.EditRoundInput) (RoundResult, error)
	DeleteRound(ctx context.Context, roundID roundtypes.RoundID, requesterID roundtypes.MemberID) (DeleteResult, error)

	// ListRounds returns a page of rounds. limit <= 0 means 10, limit is capped
	// at 100 and a negative offset is treated as 0.
	ListRounds(ctx context.Context, limit, offset int) ([]*roundtypes.Round, error)

	// GetRound returns nil, nil when the round does not exist.
	GetRound(ctx context.Context, roundID roundtypes.RoundID) (*roundtypes.Round, error)
}
