package roundqueue

import (
	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
)

const (
	// QueueName is the River queue dedicated to round jobs.
	QueueName = "round"

	roundStartKind = "round_start"
)

// RoundStartJob starts a round at its scheduled time.
type RoundStartJob struct {
	RoundID roundtypes.RoundID `json:"round_id"`
}

// Kind returns the job type identifier for River
func (RoundStartJob) Kind() string { return roundStartKind }

// JobInfo describes a queued round job as served by GET /rounds/{roundID}/jobs.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
