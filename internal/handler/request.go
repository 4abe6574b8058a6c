package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/mood-lantern/internal/apperror"
)

// maxBodyBytes caps request bodies. The largest legitimate body is a
// check-in with a handful of answers.
const maxBodyBytes = 64 << 10

// validate is shared by all handlers; validator caches struct metadata, so
// one instance for the process is the intended use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names ("answers[0].choice"), which is what
	// the client actually sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// decodeJSON reads a single JSON object from the body into dst and runs
// struct validation on it. Unknown fields are rejected so that a typo such
// as "choise" fails loudly instead of silently scoring as zero.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("", "request body must not be empty")
		case errors.As(err, &maxErr):
			return apperror.ValidationFailed("", fmt.Sprintf("request body must be at most %d bytes", maxErr.Limit))
		default:
			return apperror.ValidationFailed("", "invalid JSON body: "+err.Error())
		}
	}
	if dec.More() {
		return apperror.ValidationFailed("", "request body must contain a single JSON object")
	}

	return validateStruct(dst)
}

// validateStruct runs the `validate` tags on v and converts the first
// failure into an apperror.ValidationFailed naming the offending field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.ValidationFailed("", err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	// Drop the root struct name: "checkInRequest.answers[0].choice".
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return apperror.ValidationFailed(field, field+" "+describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
