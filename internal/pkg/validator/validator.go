// Package validator wraps go-playground/validator.
package validator

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fabrictools/adf-migrate/internal/pkg/utils/errors"
)

type Validator interface {
	Validate(ctx context.Context, value any) error
}

type wrapper struct {
	validator *validator.Validate
}

func New() Validator {
	return &wrapper{validator: validator.New()}
}

func (w *wrapper) Validate(ctx context.Context, value any) error {
	if err := w.validator.StructCtx(ctx, value); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			errs := errors.NewMultiError()
			for _, fieldErr := range validationErrs {
				errs.Append(errors.Errorf(
					`"%s" failed on the "%s" rule`,
					fieldPath(fieldErr.Namespace()), fieldErr.Tag(),
				))
			}
			return errs.ErrorOrNil()
		}
		return err
	}
	return nil
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(namespace string) string {
	if index := strings.IndexByte(namespace, '.'); index >= 0 {
		return namespace[index+1:]
	}
	return namespace
}
