package roundservice

import (
	"context"
	"errors"
	"fmt"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	rounddb "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/infrastructure/repositories"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// GetRound returns the round, or nil when it does not exist.
func (s *RoundService) GetRound(ctx context.Context, roundID roundtypes.RoundID) (*roundtypes.Round, error) {
	round, err := s.repo.GetRound(ctx, s.readDB(), roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round.ToDomain(), nil
}

// ListRounds returns a page of rounds ordered by ID.
func (s *RoundService) ListRounds(ctx context.Context, limit, offset int) ([]*roundtypes.Round, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := s.repo.ListRounds(ctx, s.readDB(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]*roundtypes.Round, 0, len(rows))
	for _, row := range rows {
		rounds = append(rounds, row.ToDomain())
	}
	return rounds, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
