// internal/integrations/args.go
package integrations

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Args wraps the JSON-decoded arguments of one call. Handlers Bind them into a
// struct tagged with mapstructure names and validate rules.
type Args struct {
	raw map[string]any
}

func NewArgs(raw map[string]any) *Args {
	if raw == nil {
		raw = map[string]any{}
	}
	return &Args{raw: raw}
}

// Has reports whether the argument was supplied with a non-null value.
func (a *Args) Has(name string) bool {
	v, ok := a.raw[name]
	return ok && v != nil
}

// Bind decodes the arguments into out and runs its validate tags. Weak typing lets
// ids arrive as numbers or strings; integer fields refuse fractional numbers.
func (a *Args) Bind(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(wholeNumbers),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(a.raw); err != nil {
		return invalidArgs("%v", err)
	}
	if reflect.Indirect(reflect.ValueOf(out)).Kind() != reflect.Struct {
		return nil
	}
	return validationError(validate.Struct(out))
}

var validate = newValidator()

// newValidator reports fields under their argument names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return invalidArgs("%v", err)
	}
	fe := ve[0]
	if fe.Tag() == "required" {
		return invalidArgs("missing required argument: %s", fe.Field())
	}
	return invalidArgs("%s failed %q check", fe.Field(), fe.Tag())
}

func wholeNumbers(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if f, ok := data.(float64); ok && f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}
