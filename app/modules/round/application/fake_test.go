package roundservice

import (
	"context"
	"sync"
	"time"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
	roundutil "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Round Repo
// ------------------------

// FakeRoundRepo keeps rounds in memory. Any XFunc field overrides the
// in-memory behavior of that method.
type FakeRoundRepo struct {
	mu     sync.Mutex
	trace  []string
	rounds map[roundtypes.RoundID]*rounddb.Round
	nextID roundtypes.RoundID

	GetRoundFunc           func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*rounddb.Round, error)
	GetRoundForUpdateFunc  func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*rounddb.Round, error)
	CreateRoundFunc        func(ctx context.Context, db bun.IDB, round *rounddb.Round) error
	UpdateParticipantsFunc func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, participants []roundtypes.Participant) error
	UpdateScoresFunc       func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, scores []roundtypes.Score) error
	UpdateStateFunc        func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, state roundtypes.RoundState, finalized bool) error
	UpdateRoundFunc        func(ctx context.Context, db bun.IDB, round *rounddb.Round) error
	DeleteRoundFunc        func(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) error
	ListRoundsFunc         func(ctx context.Context, db bun.IDB, limit, offset int) ([]*rounddb.Round, error)
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{
		trace:  []string{},
		rounds: map[roundtypes.RoundID]*rounddb.Round{},
		nextID: 1,
	}
}

func (f *FakeRoundRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Seed stores a copy of the round as if it had been inserted.
func (f *FakeRoundRepo) Seed(round *rounddb.Round) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if round.ID == 0 {
		round.ID = f.nextID
	}
	if round.ID >= f.nextID {
		f.nextID = round.ID + 1
	}
	f.rounds[round.ID] = cloneRound(round)
}

// Stored returns a copy of the stored round, or nil.
func (f *FakeRoundRepo) Stored(id roundtypes.RoundID) *rounddb.Round {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rounds[id]
	if !ok {
		return nil
	}
	return cloneRound(r)
}

func cloneRound(r *rounddb.Round) *rounddb.Round {
	c := *r
	c.Participants = append([]roundtypes.Participant{}, r.Participants...)
	c.Scores = append([]roundtypes.Score{}, r.Scores...)
	return &c
}

// --- Repository Interface Implementation ---

func (f *FakeRoundRepo) GetRound(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*rounddb.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, db, roundID)
	}
	return f.load(roundID)
}

func (f *FakeRoundRepo) GetRoundForUpdate(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) (*rounddb.Round, error) {
	f.record("GetRoundForUpdate")
	if f.GetRoundForUpdateFunc != nil {
		return f.GetRoundForUpdateFunc(ctx, db, roundID)
	}
	return f.load(roundID)
}

func (f *FakeRoundRepo) load(roundID roundtypes.RoundID) (*rounddb.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rounds[roundID]
	if !ok {
		return nil, rounddb.ErrNotFound
	}
	return cloneRound(r), nil
}

func (f *FakeRoundRepo) CreateRound(ctx context.Context, db bun.IDB, round *rounddb.Round) error {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, db, round)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	round.ID = f.nextID
	f.nextID++
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	round.CreatedAt, round.UpdatedAt = now, now
	f.rounds[round.ID] = cloneRound(round)
	return nil
}

func (f *FakeRoundRepo) mutate(roundID roundtypes.RoundID, fn func(r *rounddb.Round)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rounds[roundID]
	if !ok {
		return rounddb.ErrNotFound
	}
	fn(r)
	return nil
}

func (f *FakeRoundRepo) UpdateParticipants(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, participants []roundtypes.Participant) error {
	f.record("UpdateParticipants")
	if f.UpdateParticipantsFunc != nil {
		return f.UpdateParticipantsFunc(ctx, db, roundID, participants)
	}
	return f.mutate(roundID, func(r *rounddb.Round) {
		r.Participants = append([]roundtypes.Participant{}, participants...)
	})
}

func (f *FakeRoundRepo) UpdateScores(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, scores []roundtypes.Score) error {
	f.record("UpdateScores")
	if f.UpdateScoresFunc != nil {
		return f.UpdateScoresFunc(ctx, db, roundID, scores)
	}
	return f.mutate(roundID, func(r *rounddb.Round) {
		r.Scores = append([]roundtypes.Score{}, scores...)
	})
}

func (f *FakeRoundRepo) UpdateState(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID, state roundtypes.RoundState, finalized bool) error {
	f.record("UpdateState")
	if f.UpdateStateFunc != nil {
		return f.UpdateStateFunc(ctx, db, roundID, state, finalized)
	}
	return f.mutate(roundID, func(r *rounddb.Round) {
		r.State = state
		r.Finalized = finalized
	})
}

func (f *FakeRoundRepo) UpdateRound(ctx context.Context, db bun.IDB, round *rounddb.Round) error {
	f.record("UpdateRound")
	if f.UpdateRoundFunc != nil {
		return f.UpdateRoundFunc(ctx, db, round)
	}
	return f.mutate(round.ID, func(r *rounddb.Round) {
		r.Title = round.Title
		r.Location = round.Location
		r.EventType = round.EventType
		r.Date = round.Date
		r.Time = round.Time
	})
}

func (f *FakeRoundRepo) DeleteRound(ctx context.Context, db bun.IDB, roundID roundtypes.RoundID) error {
	f.record("DeleteRound")
	if f.DeleteRoundFunc != nil {
		return f.DeleteRoundFunc(ctx, db, roundID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rounds[roundID]; !ok {
		return rounddb.ErrNotFound
	}
	delete(f.rounds, roundID)
	return nil
}

func (f *FakeRoundRepo) ListRounds(ctx context.Context, db bun.IDB, limit, offset int) ([]*rounddb.Round, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, db, limit, offset)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*rounddb.Round{}
	for id := roundtypes.RoundID(1); id < f.nextID; id++ {
		if r, ok := f.rounds[id]; ok {
			out = append(out, cloneRound(r))
		}
	}
	if offset >= len(out) {
		return []*rounddb.Round{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Accessors for assertions ---

func (f *FakeRoundRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Score Processor
// ------------------------

type processCall struct {
	RoundID roundtypes.RoundID
	Scores  []roundtypes.Score
}

type FakeScoreProcessor struct {
	mu    sync.Mutex
	calls []processCall
	Err   error

	// Mutate, when set, runs against the received slice after it is recorded.
	Mutate func(scores []roundtypes.Score)
}

func (f *FakeScoreProcessor) ProcessRoundScores(ctx context.Context, roundID roundtypes.RoundID, scores []roundtypes.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recorded := make([]roundtypes.Score, len(scores))
	copy(recorded, scores)
	f.calls = append(f.calls, processCall{RoundID: roundID, Scores: recorded})
	if f.Mutate != nil {
		f.Mutate(scores)
	}
	return f.Err
}

func (f *FakeScoreProcessor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Received returns the arguments of every call, in order.
func (f *FakeScoreProcessor) Received() []processCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]processCall, len(f.calls))
	copy(out, f.calls)
	return out
}

var _ ScoreProcessor = (*FakeScoreProcessor)(nil)

// ------------------------
// Fake Start Scheduler
// ------------------------

type scheduledStart struct {
	RoundID roundtypes.RoundID
	StartAt time.Time
}

type FakeStartScheduler struct {
	Scheduled   []scheduledStart
	Cancelled   []roundtypes.RoundID
	ScheduleErr error
}

func (f *FakeStartScheduler) ScheduleRoundStart(ctx context.Context, roundID roundtypes.RoundID, startAt time.Time) error {
	if f.ScheduleErr != nil {
		return f.ScheduleErr
	}
	f.Scheduled = append(f.Scheduled, scheduledStart{RoundID: roundID, StartAt: startAt})
	return nil
}

func (f *FakeStartScheduler) CancelRoundJobs(ctx context.Context, roundID roundtypes.RoundID) error {
	f.Cancelled = append(f.Cancelled, roundID)
	return nil
}

var _ StartScheduler = (*FakeStartScheduler)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu     sync.Mutex
	topics []string
	Err    error
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	for range messages {
		f.topics = append(f.topics, topic)
	}
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.topics))
	copy(out, f.topics)
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)

// fixedClock pins "now" for start scheduling.
func fixedClock(t time.Time) roundutil.Clock {
	return roundutil.NewAnchorClock(t)
}
