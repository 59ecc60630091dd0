package action

import (
	"html"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// NewValidator returns a validator reporting fields by their JSON names
func NewValidator() *validator.Validate {
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

func fieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(e),
			Code:    strings.ToUpper(e.Tag()),
			Message: ValidationMessage(e),
		})
	}
	return out
}

// fieldPath drops the root struct name and embedded struct names from the
// namespace, leaving the JSON path of the field.
func fieldPath(e validator.FieldError) string {
	parts := strings.Split(e.Namespace(), ".")
	if len(parts) < 2 {
		return e.Field()
	}
	out := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return e.Field()
	}
	return strings.Join(out, ".")
}

// ValidationMessage renders a human-readable message for a failed rule
func ValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if", "required_with":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "uuid", "uuid4":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "url", "http_url":
		return "Invalid URL format"
	case "numeric":
		return "Must be numeric"
	case "iso3166_1_alpha2":
		return "Must be a two-letter country code"
	case "hexcolor":
		return "Must be a hex color such as #1A2B3C"
	default:
		return "Invalid value"
	}
}

// Sanitizer cleans string fields before validation. Fields tagged
// `sanitize:"text"` lose their markup, fields tagged `sanitize:"-"` are left
// as sent and every other string is trimmed.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer that keeps text only
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text returns v with every tag removed. Entities are decoded so that
// "Durand & Fils" is stored as typed.
func (s *Sanitizer) Text(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

// Struct sanitizes the tagged fields of the struct ptr points to, in place.
// Nested structs are walked; anything that is not a struct pointer is ignored.
func (s *Sanitizer) Struct(ptr any) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return
	}
	s.walk(v.Elem())
}

func (s *Sanitizer) walk(v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		mode := sf.Tag.Get("sanitize")
		if mode == "-" {
			continue
		}
		switch {
		case field.Kind() == reflect.String:
			field.SetString(s.clean(mode, field.String()))
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(s.clean(mode, field.Elem().String()))
		case field.Kind() == reflect.Struct:
			s.walk(field)
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.Struct:
			s.walk(field.Elem())
		}
	}
}

func (s *Sanitizer) clean(mode, v string) string {
	if mode == "text" {
		return s.Text(v)
	}
	return strings.TrimSpace(v)
}
