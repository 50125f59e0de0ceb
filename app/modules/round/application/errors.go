package roundservice

import (
	"errors"
	"strings"
)

// Failure kinds. Every domain failure returned in an OperationResult wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	// ErrNotFound indicates the round or participant does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates the round's state does not allow the operation.
	ErrInvalidState = errors.New("invalid round state")

	// ErrConflict indicates the member already has an entry in the collection.
	ErrConflict = errors.New("conflict")

	// ErrRoundAlreadyFinalized indicates the round is terminal.
	ErrRoundAlreadyFinalized = errors.New("Round has already been finalized")

	// ErrForbidden indicates the requester may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates the request itself is malformed.
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError is a failure with a user-facing message and a kind.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Kind }

func newDomainError(kind error, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// Specific failures.
var (
	ErrInvalidResponse          = newDomainError(ErrInvalidInput, "Invalid response value")
	ErrMemberIDRequired         = newDomainError(ErrInvalidInput, "Member ID is required")
	ErrRoundNotFound            = newDomainError(ErrNotFound, "Round not found")
	ErrParticipantNotFound      = newDomainError(ErrNotFound, "Participant not found")
	ErrJoinRequiresUpcoming     = newDomainError(ErrInvalidState, "You can only join rounds that are upcoming")
	ErrScoreRequiresInProgress  = newDomainError(ErrInvalidState, "Scores can only be submitted for rounds that are in progress")
	ErrStartRequiresUpcoming    = newDomainError(ErrInvalidState, "Only upcoming rounds can be started")
	ErrParticipantAlreadyJoined = newDomainError(ErrConflict, "Participant already joined the round")
	ErrScoreAlreadySubmitted    = newDomainError(ErrConflict, "Score for this participant already exists")
	ErrNotRoundCreator          = newDomainError(ErrForbidden, "Only the creator can delete the round")
)

// errNoScoreProcessor is returned when a round is finalized without a score
// processor configured.
var errNoScoreProcessor = errors.New("score processor is not configured")

// NewValidationError reports every problem found in a round input.
func NewValidationError(problems []string) *DomainError {
	return newDomainError(ErrInvalidInput, "invalid round input: "+strings.Join(problems, "; "))
}
