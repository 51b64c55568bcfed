package storage

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/entity/finance"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/customerr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		logger.Fatal("cannot register notblank validation", zap.Error(err))
	}
	// dates are validated through their ISO form, empty when unset
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(finance.Date)
		if !ok || d.IsZero() {
			return ""
		}
		return d.String()
	}, finance.Date{})
	return v
}

func validateRecord(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &customerr.ValidationError{Field: fieldErrs[0].Field(), Reason: fieldErrs[0].Tag()}
	}
	return errors.Wrap(err, "validate record")
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return &customerr.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	if year < 1 {
		return &customerr.ValidationError{Field: "year", Reason: "must be positive"}
	}
	return nil
}
