package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps request fields (by their JSON name) to a message
// suitable for showing next to the field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records msg for field unless the field already has a message.
func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
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

var fieldLabels = map[string]string{
	"totalSeats": "Total seats",
	"userId":     "User",
	"q":          "Search",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// checkStruct runs the struct tags of v and collects failures into ve.
func checkStruct(v any, ve *ValidationError) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}
	for _, fe := range fieldErrs {
		ve.add(fe.Field(), fieldMessage(fe))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	l := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return l + " is required"
	case "email":
		return l + " is not a valid email address"
	case "gte":
		if fe.Param() == "0" {
			return l + " cannot be negative"
		}
		return fmt.Sprintf("%s must be at least %s", l, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", l, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", l, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return l + " is invalid"
	}
}
