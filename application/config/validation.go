package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their file names ("diagnostics.level"), not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks c against its validation rules. Every violated rule
// yields one *errors.ConfigError; several are joined.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &rberrors.ConfigError{Err: err}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &rberrors.ConfigError{Field: fieldPath(fe), Err: ruleError(fe)})
	}
	return errors.Join(errs...)
}

// fieldPath drops the struct name from "Config.diagnostics.level".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func ruleError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.New("value is required")
	case "oneof":
		return fmt.Errorf("%v is not one of [%s]", fe.Value(), fe.Param())
	case "gte":
		return fmt.Errorf("%v must be at least %s", fe.Value(), fe.Param())
	case "max":
		return fmt.Errorf("must be at most %s characters", fe.Param())
	default:
		return fmt.Errorf("failed %q rule", fe.Tag())
	}
}
