package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// ValidationError rejects an operation before anything is mutated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	}

	return errs
}

// ValidateLeadPatch checks the patch against the stage set. Absent fields are
// not validated.
func ValidateLeadPatch(patch LeadPatch, stages entity.Stages) []ValidationError {
	var errs []ValidationError

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs = append(errs, ValidationError{"name", "name cannot be empty"})
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		errs = append(errs, ValidationError{"email", "email cannot be empty"})
	}
	if patch.Status != nil {
		if _, ok := stages.Lookup(*patch.Status); !ok {
			errs = append(errs, ValidationError{"status", "invalid status"})
		}
	}

	return errs
}

func isImportable(rec entity.ImportRecord) bool {
	return strings.TrimSpace(rec.Name) != "" && strings.TrimSpace(rec.Email) != ""
}
