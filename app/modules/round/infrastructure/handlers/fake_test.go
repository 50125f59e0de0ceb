package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/application"
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	roundqueue "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/queue"
	scoreservice "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/application"
	scoretypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/domain/types"
	"github.com/Black-And-White-Club/frolf-rounds/pkg/results"
)

// FakeRoundService implements roundservice.Service with per-method overrides.
type FakeRoundService struct {
	trace []string

	CreateRoundFunc               func(ctx context.Context, input roundtypes.CreateRoundInput) (roundservice.RoundResult, error)
	JoinRoundFunc                 func(ctx context.Context, input roundtypes.JoinRoundInput) (roundservice.RoundResult, error)
	SubmitScoreFunc               func(ctx context.Context, input roundtypes.SubmitScoreInput) (roundservice.RoundResult, error)
	UpdateParticipantResponseFunc func(ctx context.Context, input roundtypes.UpdateResponseInput) (roundservice.RoundResult, error)
	StartRoundFunc                func(ctx context.Context, roundID roundtypes.RoundID) (roundservice.RoundResult, error)
	FinalizeAndProcessScoresFunc  func(ctx context.Context, roundID roundtypes.RoundID) (roundservice.RoundResult, error)
	EditRoundFunc                 func(ctx context.Context, roundID roundtypes.RoundID, input roundtypes.EditRoundInput) (roundservice.RoundResult, error)
	DeleteRoundFunc               func(ctx context.Context, roundID roundtypes.RoundID, requesterID roundtypes.MemberID) (roundservice.DeleteResult, error)
	ListRoundsFunc                func(ctx context.Context, limit, offset int) ([]*roundtypes.Round, error)
	GetRoundFunc                  func(ctx context.Context, roundID roundtypes.RoundID) (*roundtypes.Round, error)
}

func (f *FakeRoundService) record(step string) { f.trace = append(f.trace, step) }

// Trace returns the methods called, in order.
func (f *FakeRoundService) Trace() []string { return f.trace }

func emptyResult() (roundservice.RoundResult, error) {
	return roundservice.RoundResult{}, nil
}

func (f *FakeRoundService) CreateRound(ctx context.Context, input roundtypes.CreateRoundInput) (roundservice.RoundResult, error) {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, input)
	}
	return emptyResult()
}

func (f *FakeRoundService) JoinRound(ctx context.Context, input roundtypes.JoinRoundInput) (roundservice.RoundResult, error) {
	f.record("JoinRound")
	if f.JoinRoundFunc != nil {
		return f.JoinRoundFunc(ctx, input)
	}
	return emptyResult()
}

func (f *FakeRoundService) SubmitScore(ctx context.Context, input roundtypes.SubmitScoreInput) (roundservice.RoundResult, error) {
	f.record("SubmitScore")
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, input)
	}
	return emptyResult()
}

func (f *FakeRoundService) UpdateParticipantResponse(ctx context.Context, input roundtypes.UpdateResponseInput) (roundservice.RoundResult, error) {
	f.record("UpdateParticipantResponse")
	if f.UpdateParticipantResponseFunc != nil {
		return f.UpdateParticipantResponseFunc(ctx, input)
	}
	return emptyResult()
}

func (f *FakeRoundService) StartRound(ctx context.Context, roundID roundtypes.RoundID) (roundservice.RoundResult, error) {
	f.record("StartRound")
	if f.StartRoundFunc != nil {
		return f.StartRoundFunc(ctx, roundID)
	}
	return emptyResult()
}

func (f *FakeRoundService) FinalizeAndProcessScores(ctx context.Context, roundID roundtypes.RoundID) (roundservice.RoundResult, error) {
	f.record("FinalizeAndProcessScores")
	if f.FinalizeAndProcessScoresFunc != nil {
		return f.FinalizeAndProcessScoresFunc(ctx, roundID)
	}
	return emptyResult()
}

func (f *FakeRoundService) EditRound(ctx context.Context, roundID roundtypes.RoundID, input roundtypes.EditRoundInput) (roundservice.RoundResult, error) {
	f.record("EditRound")
	if f.EditRoundFunc != nil {
		return f.EditRoundFunc(ctx, roundID, input)
	}
	return emptyResult()
}

func (f *FakeRoundService) DeleteRound(ctx context.Context, roundID roundtypes.RoundID, requesterID roundtypes.MemberID) (roundservice.DeleteResult, error) {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, roundID, requesterID)
	}
	return roundservice.DeleteResult{}, nil
}

func (f *FakeRoundService) ListRounds(ctx context.Context, limit, offset int) ([]*roundtypes.Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (f *FakeRoundService) GetRound(ctx context.Context, roundID roundtypes.RoundID) (*roundtypes.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID)
	}
	return nil, nil
}

var _ roundservice.Service = (*FakeRoundService)(nil)

// FakeStandings implements scoreservice.Service.
type FakeStandings struct {
	GetRoundStandingsFunc func(ctx context.Context, roundID roundtypes.RoundID) (scoreservice.StandingsResult, error)
}

func (f *FakeStandings) ProcessRoundScores(context.Context, roundtypes.RoundID, []roundtypes.Score) error {
	return nil
}

func (f *FakeStandings) GetRoundStandings(ctx context.Context, roundID roundtypes.RoundID) (scoreservice.StandingsResult, error) {
	if f.GetRoundStandingsFunc != nil {
		return f.GetRoundStandingsFunc(ctx, roundID)
	}
	return results.FailureResult[*scoretypes.RoundStandings, error](scoreservice.ErrStandingsNotFound), nil
}

var _ scoreservice.Service = (*FakeStandings)(nil)

// FakeTagLookup returns a fixed tag.
type FakeTagLookup struct {
	Tag   *int
	Err   error
	Calls []roundtypes.MemberID
}

func (f *FakeTagLookup) GetUserTag(_ context.Context, memberID roundtypes.MemberID) (*int, error) {
	f.Calls = append(f.Calls, memberID)
	return f.Tag, f.Err
}

// FakeJobLister returns a fixed job list.
type FakeJobLister struct {
	Jobs  []roundqueue.JobInfo
	Err   error
	Calls []roundtypes.RoundID
}

func (f *FakeJobLister) GetScheduledJobs(_ context.Context, roundID roundtypes.RoundID) ([]roundqueue.JobInfo, error) {
	f.Calls = append(f.Calls, roundID)
	return f.Jobs, f.Err
}

var _ JobLister = (*FakeJobLister)(nil)
