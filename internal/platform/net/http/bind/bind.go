// Package bind decodes JSON request bodies and validates them with
// go-playground/validator, reporting failures as project errors
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "caserelay/internal/platform/errors"
)

// MaxBody caps a decoded request body
const MaxBody = 1 << 20

var (
	once  sync.Once
	v     *validator.Validate
	trans ut.Translator
)

// short messages, keyed by tag; {0} is the json field name, {1} the tag param
var messages = map[string]string{
	"required": "{0} is required",
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"oneof":    "{0} must be one of: {1}",
	"datetime": "{0} must match {1}",
}

func setup() {
	loc := en.New()
	trans, _ = ut.New(loc, loc).GetTranslator("en")

	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	_ = entrans.RegisterDefaultTranslations(v, trans)

	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field(), fe.Param())
				return msg
			},
		)
	}
}

// Validator returns the shared validator; fields are named by their json tag
func Validator() *validator.Validate {
	once.Do(setup)
	return v
}

// Struct validates s and returns the first failing field as a validation error
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "cannot validate value")
	}
	field, msg := FieldMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// FieldMessage returns the first failing field and its translated message
func FieldMessage(err error) (field, message string) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		Validator()
		return ve[0].Field(), ve[0].Translate(trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

// ParseJSON decodes exactly one JSON value into T and validates it.
// Unknown fields and trailing data are json errors. An empty body is
// accepted for GET and DELETE and rejected otherwise
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero T
	if r.Body == nil {
		return emptyBody[T](r.Method)
	}
	defer r.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBody+1))
	if err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "cannot read body")
	}
	if len(raw) > MaxBody {
		return zero, perr.JSONErrf("body exceeds %d bytes", MaxBody)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return emptyBody[T](r.Method)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if isStruct[T]() {
		if err := Struct(dst); err != nil {
			return zero, err
		}
	}
	return dst, nil
}

func emptyBody[T any](method string) (T, error) {
	var zero T
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return zero, nil
	}
	return zero, perr.JSONErrf("empty body")
}

func isStruct[T any]() bool {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
