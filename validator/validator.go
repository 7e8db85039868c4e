package validator

import (
	"reflect"
	"strings"

	play "github.com/go-playground/validator/v10"

	"github.com/vortex-fintech/people/cpf"
	errs "github.com/vortex-fintech/people/errors"
)

var v *play.Validate

func init() {
	v = play.New()
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("cpf", validateCPF); err != nil {
		panic(err)
	}
}

// Check validates a struct and returns an errors.ErrorResponse with one
// violation per failed field, or nil.
func Check(i any) error {
	err := v.Struct(i)
	if err == nil {
		return nil
	}
	if ves, ok := err.(play.ValidationErrors); ok {
		return errs.FromPlayground(ves, tagMap)
	}
	return errs.InvalidArgument().WithReason("validation_failed")
}

// Var validates a single value against tag, e.g. Var("529.982.247-25", "cpf").
func Var(field any, tag string) bool {
	return v.Var(field, tag) == nil
}

func validateCPF(fl play.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	_, err := cpf.Parse(f.String())
	return err == nil
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}
