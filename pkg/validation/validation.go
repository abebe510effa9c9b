// Package validation plugs request-level constraints into gin's binding
// engine and renders every failure as a list of field-level errors.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"email-sorter/pkg/jsontext"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StructuredTag is the validation tag for JSON-text fields.
const StructuredTag = "structured"

// Source tells the client which part of the request a field came from.
type Source string

const (
	Body  Source = "body"
	Query Source = "query"
	Path  Source = "path"
)

// FieldError is one entry of a 422 response.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom tags and json field naming on gin's default
// validator. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(fieldName)
		registerErr = v.RegisterValidation(StructuredTag, func(fl validator.FieldLevel) bool {
			return jsontext.IsValid(fl.Field().String())
		})
	})
	return registerErr
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Translate converts a binding or validation error into field errors.
func Translate(err error, src Source) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fromFieldError(fe, src))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{string(src)}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []FieldError{{
			Loc:  loc,
			Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type.String()),
			Type: "type_error",
		}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []FieldError{{
			Loc:  []string{string(src)},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	}

	return []FieldError{{
		Loc:  []string{string(src)},
		Msg:  err.Error(),
		Type: "value_error",
	}}
}

func fromFieldError(fe validator.FieldError, src Source) FieldError {
	loc := []string{string(src), fe.Field()}
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "Field required", Type: "missing"}
	case "min":
		if isString {
			return FieldError{Loc: loc, Msg: fmt.Sprintf("String should have at least %s characters", fe.Param()), Type: "string_too_short"}
		}
		return FieldError{Loc: loc, Msg: fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), Type: "greater_than_equal"}
	case "max":
		if isString {
			return FieldError{Loc: loc, Msg: fmt.Sprintf("String should have at most %s characters", fe.Param()), Type: "string_too_long"}
		}
		return FieldError{Loc: loc, Msg: fmt.Sprintf("Input should be less than or equal to %s", fe.Param()), Type: "less_than_equal"}
	case StructuredTag:
		msg := "Value error, Must be valid JSON string"
		if reason := structuredReason(fe.Value()); reason != "" {
			msg += ": " + reason
		}
		return FieldError{Loc: loc, Msg: msg, Type: "value_error"}
	case "oneof":
		options := strings.Join(strings.Fields(fe.Param()), "', '")
		return FieldError{Loc: loc, Msg: fmt.Sprintf("Input should be '%s'", options), Type: "enum"}
	default:
		return FieldError{Loc: loc, Msg: fmt.Sprintf("failed on the '%s' rule", fe.Tag()), Type: "value_error"}
	}
}

func structuredReason(v interface{}) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case *string:
		if val == nil {
			return ""
		}
		s = *val
	default:
		return ""
	}
	if err := jsontext.Validate(s); err != nil {
		return err.Error()
	}
	return ""
}

// Abort ends the request with 422 and the given field errors.
func Abort(c *gin.Context, errs []FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
}

// BindJSON decodes and validates the request body into obj. Fields named in
// nonNull may be omitted but not sent as null. On failure it writes the 422
// response and returns false.
func BindJSON(c *gin.Context, obj interface{}, nonNull ...string) bool {
	body, err := c.GetRawData()
	if err != nil {
		Abort(c, Translate(err, Body))
		return false
	}

	errs := nullFields(body, obj, nonNull)
	if err := binding.JSON.BindBody(body, obj); err != nil {
		errs = append(errs, Translate(err, Body)...)
	}
	if len(errs) > 0 {
		Abort(c, errs)
		return false
	}
	return true
}

// nullFields reports each of names that body sets to an explicit null.
// Bodies that are not JSON objects are left to the decoder.
func nullFields(body []byte, obj interface{}, names []string) []FieldError {
	if len(names) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil
	}

	var errs []FieldError
	for _, name := range names {
		raw, ok := fields[name]
		if !ok || string(raw) != "null" {
			continue
		}
		errs = append(errs, nullError(name, fieldKind(obj, name)))
	}
	return errs
}

func nullError(name string, kind reflect.Kind) FieldError {
	loc := []string{string(Body), name}
	switch kind {
	case reflect.Bool:
		return FieldError{Loc: loc, Msg: "Input should be a valid boolean", Type: "bool_type"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldError{Loc: loc, Msg: "Input should be a valid integer", Type: "int_type"}
	case reflect.String:
		return FieldError{Loc: loc, Msg: "Input should be a valid string", Type: "string_type"}
	default:
		return FieldError{Loc: loc, Msg: "Input should not be null", Type: "value_error"}
	}
}

// fieldKind finds the struct field of obj carrying the given json name and
// returns its kind with pointers removed.
func fieldKind(obj interface{}, name string) reflect.Kind {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.Invalid
	}
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if fieldName(fld) != name {
			continue
		}
		ft := fld.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		return ft.Kind()
	}
	return reflect.Invalid
}
