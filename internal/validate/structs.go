package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateInput checks a typed input value against its struct tags.
func (v *Validator) ValidateInput(in model.BusinessInputData) error {
	return v.checkStruct(&in)
}

// ValidateSettings checks settings, including any benchmark overrides.
func (v *Validator) ValidateSettings(s model.AppSettings) error {
	return v.checkStruct(&s)
}

// ValidateOverrides checks a partial benchmark set.
func (v *Validator) ValidateOverrides(o *model.BenchmarkOverrides) error {
	if o == nil {
		return nil
	}
	return v.checkStruct(o)
}

func (v *Validator) checkStruct(s any) error {
	err := v.structs.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return eris.Wrap(err, "validate: check struct")
	}

	var c collector
	for _, fe := range verrs {
		c.add(fieldPath(fe.Namespace()), tagMessage(fe))
	}
	return c.err()
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
