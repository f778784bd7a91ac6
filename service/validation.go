package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"credit-limit/domain"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// checkFinite rejects income that cannot be expressed as a currency amount.
// It runs in every mode; the range rules only run in strict mode.
func checkFinite(input domain.ApplicantInput) error {
	if math.IsNaN(input.MonthlyIncome) || math.IsInf(input.MonthlyIncome, 0) {
		return &ValidationError{Fields: map[string]string{
			"monthly_income": "must be a finite number",
		}}
	}
	return nil
}

func validateStrict(v *validator.Validate, input domain.ApplicantInput) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "gte":
			fields[e.Field()] = fmt.Sprintf("must be at least %s", e.Param())
		case "lte":
			fields[e.Field()] = fmt.Sprintf("must be at most %s", e.Param())
		default:
			fields[e.Field()] = "invalid value"
		}
	}
	return &ValidationError{Fields: fields}
}
