package service

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	customError "github.com/segyhp/microfinance-engine/pkg/errors"
)

// newValidator returns a validator that sees decimal.Decimal fields as
// float64, so numeric tags such as gt=0 apply to money.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (s *PortfolioService) validate(request interface{}) error {
	if err := s.validator.Struct(request); err != nil {
		return customError.WrapValidation("request failed validation", err)
	}
	return nil
}
