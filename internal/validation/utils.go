package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/deppfellow/vaccine-tracker/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path params, query params and the JSON body into
// payload, then validates it.
//
// Sources are bound in that order for every method, so a JSON body field
// overrides the same query parameter. Both failures come back as a 400
// *errs.HTTPError; a value of the wrong type and validation failures carry
// one FieldError per offending field.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		return err
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bind runs echo's binders one source at a time. echo.Context.Bind skips
// the query string for POST and PUT and reports failures without the
// offending field.
func bind(c echo.Context, payload any) error {
	binder := &echo.DefaultBinder{}

	if err := binder.BindPathParams(c, payload); err != nil {
		params := make(map[string][]string, len(c.ParamNames()))
		for i, name := range c.ParamNames() {
			if i < len(c.ParamValues()) {
				params[name] = []string{c.ParamValues()[i]}
			}
		}
		return paramBindError(err, params)
	}

	if err := binder.BindQueryParams(c, payload); err != nil {
		return paramBindError(err, c.QueryParams())
	}

	if err := binder.BindBody(c, payload); err != nil {
		return bodyBindError(err)
	}

	return nil
}

// paramBindError reports which path or query parameter failed to parse.
// echo only keeps the strconv error, so the field is found by its value.
func paramBindError(err error, values map[string][]string) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if field := fieldWithValue(values, numErr.Num); field != "" {
			return invalidFieldError(field, "integer")
		}
	}

	return errs.NewBadRequestError("Invalid request parameters", true, nil, nil, nil)
}

func bodyBindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return invalidFieldError(typeErr.Field, kindOf(typeErr.Type))
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnsupportedMediaType {
		return errs.NewBadRequestError("Request body must be JSON", true, nil, nil, nil)
	}

	return errs.NewBadRequestError("Malformed JSON body", true, nil, nil, nil)
}

func invalidFieldError(field, kind string) error {
	return errs.NewBadRequestError(
		fmt.Sprintf("invalid value for %s", field),
		true,
		nil,
		[]errs.FieldError{{Field: field, Error: "must be a valid " + kind}},
		nil,
	)
}

func fieldWithValue(values map[string][]string, value string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, v := range values[name] {
			if v == value {
				return name
			}
		}
	}
	return ""
}

// kindOf names the JSON type a field expects.
func kindOf(t reflect.Type) string {
	if t == nil {
		return "value"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	default:
		return "value"
	}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), []errs.FieldError{}
	}

	for _, err := range validationErrors {
		field := toSnakeCase(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// toSnakeCase maps Go field names onto their JSON keys (PatientID -> patient_id).
func toSnakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)

	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteString(strings.ToLower(string(r)))
	}

	return b.String()
}
