package scoreservice

import "errors"

// ErrStandingsNotFound indicates the round has not been processed.
var ErrStandingsNotFound = errors.New("standings not found for round")
