package userservice

import (
	"fmt"
	"unicode/utf8"

	usertypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/user/domain/types"
)

const maxNameLength = 64

// Validator checks user inputs before they reach the store.
type Validator interface {
	ValidateCreate(input usertypes.CreateUserInput) error
	ValidateUpdate(input usertypes.UpdateUserInput) error
}

type validator struct{}

// NewValidator returns the default Validator.
func NewValidator() Validator { return validator{} }

func (validator) ValidateCreate(input usertypes.CreateUserInput) error {
	var problems []string
	problems = appendDiscordIDProblems(problems, input.DiscordID)
	problems = appendNameProblems(problems, input.Name)
	if input.Role != "" && !input.Role.Valid() {
		problems = append(problems, fmt.Sprintf("invalid role %q", input.Role))
	}
	if input.TagNumber != nil && *input.TagNumber < 0 {
		problems = append(problems, "tag number cannot be negative")
	}
	return asValidationError(problems)
}

func (validator) ValidateUpdate(input usertypes.UpdateUserInput) error {
	var problems []string
	problems = appendDiscordIDProblems(problems, input.DiscordID)
	if input.Name != nil {
		problems = appendNameProblems(problems, *input.Name)
	}
	if input.Role != nil && !input.Role.Valid() {
		problems = append(problems, fmt.Sprintf("invalid role %q", *input.Role))
	}
	if input.TagNumber != nil && *input.TagNumber < 0 {
		problems = append(problems, "tag number cannot be negative")
	}
	return asValidationError(problems)
}

// Discord snowflakes are 17 to 20 decimal digits.
func appendDiscordIDProblems(problems []string, id usertypes.DiscordID) []string {
	if id == "" {
		return append(problems, "Discord ID cannot be empty")
	}
	if len(id) < 17 || len(id) > 20 {
		return append(problems, "Discord ID must be 17 to 20 digits")
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return append(problems, "Discord ID must contain only digits")
		}
	}
	return problems
}

func appendNameProblems(problems []string, name string) []string {
	if utf8.RuneCountInString(name) > maxNameLength {
		return append(problems, fmt.Sprintf("name cannot exceed %d characters", maxNameLength))
	}
	return problems
}

func asValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
