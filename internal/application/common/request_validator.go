package common

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RequestValidator validates query and command structs using validation tags.
//
// Decimal fields are exposed to the validator as float64, so numeric rules
// such as "gt=0" work on shopspring decimals.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator with the decimal type registered
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return &RequestValidator{validate: v}
}

// Validate validates a request struct
func (v *RequestValidator) Validate(request interface{}) error {
	if err := v.validate.Struct(request); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
					e.Field(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("invalid request: %s", strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}
