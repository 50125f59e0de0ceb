package roundutil

import (
	"strings"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
)

// RoundValidator defines the interface for round validation.
type RoundValidator interface {
	ValidateRoundInput(input roundtypes.CreateRoundInput) []string
	ValidateEditInput(input roundtypes.EditRoundInput) []string
}

// RoundValidatorImpl is the concrete implementation of the RoundValidator interface.
type RoundValidatorImpl struct{}

// NewRoundValidator creates a new instance of RoundValidatorImpl.
func NewRoundValidator() RoundValidator {
	return &RoundValidatorImpl{}
}

// ValidateRoundInput checks that the fields a round cannot exist without are present.
func (v *RoundValidatorImpl) ValidateRoundInput(input roundtypes.CreateRoundInput) []string {
	var errs []string

	if strings.TrimSpace(input.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}

	if strings.TrimSpace(input.Date) == "" {
		errs = append(errs, "date cannot be empty")
	}

	if strings.TrimSpace(input.Time) == "" {
		errs = append(errs, "time cannot be empty")
	}

	if strings.TrimSpace(string(input.CreatorID)) == "" {
		errs = append(errs, "creator ID cannot be empty")
	}

	return errs
}

// ValidateEditInput rejects overrides that would blank a required field.
func (v *RoundValidatorImpl) ValidateEditInput(input roundtypes.EditRoundInput) []string {
	var errs []string

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}

	if input.Date != nil && strings.TrimSpace(*input.Date) == "" {
		errs = append(errs, "date cannot be empty")
	}

	if input.Time != nil && strings.TrimSpace(*input.Time) == "" {
		errs = append(errs, "time cannot be empty")
	}

	return errs
}
