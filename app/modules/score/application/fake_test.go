package scoreservice

import (
	"context"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	scoredb "github.com/Black-And-White-Club/frolf-rounds/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

type FakeScoreRepo struct {
	trace  []string
	stored map[roundtypes.RoundID]*scoredb.RoundScores

	UpsertRoundScoresFunc func(ctx context.Context, db bun.IDB, scores *scoredb.RoundScores) error
	GetRoundScoresFunc    func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*scoredb.RoundScores, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{trace: []string{}, stored: map[roundtypes.RoundID]*scoredb.RoundScores{}}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepo) UpsertRoundScores(ctx context.Context, db bun.IDB, scores *scoredb.RoundScores) error {
	f.record("UpsertRoundScores")
	if f.UpsertRoundScoresFunc != nil {
		return f.UpsertRoundScoresFunc(ctx, db, scores)
	}
	f.stored[scores.RoundID] = scores
	return nil
}

func (f *FakeScoreRepo) GetRoundScores(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*scoredb.RoundScores, error) {
	f.record("GetRoundScores")
	if f.GetRoundScoresFunc != nil {
		return f.GetRoundScoresFunc(ctx, db, roundID)
	}
	if s, ok := f.stored[roundID]; ok {
		return s, nil
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scoredb.Repository = (*FakeScoreRepo)(nil)
