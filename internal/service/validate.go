package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"rentflow-backend/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs schema validation on an input DTO and folds every
// violation into one ValidationFailed error, so callers see all problems
// at once and no side effect happens on malformed input.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError([]string{err.Error()})
	}

	violations := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		violations = append(violations, fmt.Sprintf("%s: failed %q constraint", ve.Field(), ve.Tag()))
	}
	return domain.NewValidationError(violations)
}

// tenantGuard is the shared lookup → existence → tenant-check helper.
// The repository already reports missing rows as NotFound; this adds the
// cross-tenant AccessDenied distinction every service applies identically.
func tenantGuard(entityTenantID, tenantID int32, entity string, id any) error {
	if entityTenantID != tenantID {
		return domain.NewAccessDeniedError(entity, id)
	}
	return nil
}
