package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/valeriaulyamaeva/pocket-ledger/models"
)

// Violation is one failed constraint on one request field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// Register configures gin's validator: field names are reported by their
// JSON name, Amount fields are validated as numbers and the money tag
// bounds them to what the money columns hold.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(amountValue, Amount{})
		_ = v.RegisterValidation("money", isMoney)
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// fieldTypeError is a JSON field of the wrong type together with whatever
// the validator found in the rest of the body.
type fieldTypeError struct {
	typeErr *json.UnmarshalTypeError
	rest    error
}

func (e *fieldTypeError) Error() string { return e.typeErr.Error() }

func (e *fieldTypeError) Unwrap() error { return e.typeErr }

// BindJSON decodes the request body into obj and validates it. An empty
// body is validated as an empty object so that each missing field is
// reported. A field of the wrong JSON type does not stop the remaining
// fields from being validated.
func BindJSON(c *gin.Context, obj any) error {
	Register()
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &fieldTypeError{typeErr: typeErr, rest: binding.Validator.ValidateStruct(obj)}
	}
	return err
}

// Violations turns a bind error into the list of violated fields.
func Violations(err error) []Violation {
	var fte *fieldTypeError
	if errors.As(err, &fte) {
		out := []Violation{{Field: fte.typeErr.Field, Message: "must be " + jsonKind(fte.typeErr.Type)}}
		if fte.rest == nil {
			return out
		}
		for _, v := range Violations(fte.rest) {
			if v.Field != fte.typeErr.Field {
				out = append(out, v)
			}
		}
		return out
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Violation, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, Violation{Field: fe.Field(), Message: message(fe)})
		}
		return out
	}
	return []Violation{{Field: "body", Message: "must be a valid JSON object"}}
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func message(fe validator.FieldError) string {
	nan := false
	zero := false
	if f, ok := fe.Value().(float64); ok {
		nan = math.IsNaN(f)
		zero = f == 0
	}

	switch fe.Tag() {
	case "required":
		if zero {
			return "must be greater than 0"
		}
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		if nan {
			return "must be a number"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		if nan {
			return "must be a number"
		}
		return "must be at least " + fe.Param()
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "money":
		return fmt.Sprintf("must have at most %d decimal places and be less than %s", models.MoneyScale, models.MaxMoney)
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
