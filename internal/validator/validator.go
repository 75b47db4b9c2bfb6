// Package validator registers the custom rules used by gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/itimpact/spendx/internal/models"
)

var investmentTypes = func() map[string]bool {
	m := make(map[string]bool, len(models.InvestmentTypes))
	for _, t := range models.InvestmentTypes {
		m[t] = true
	}
	return m
}()

// Register installs the rules on gin's default validator.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the rules on v.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("investment_type", validateInvestmentType)
}

// decimalValue lets numeric tags such as gte=0 apply to decimal.Decimal fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	return investmentTypes[fl.Field().String()]
}
