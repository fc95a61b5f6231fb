// Package validation registers the domain's custom binding rules on
// go-playground/validator and turns its errors into caller-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hostel-drishti/backend/internal/model"
)

var contactNumberRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,18}[0-9]$`)

// rules custom tags available to binding:"..."
var rules = map[string]validator.Func{
	"role":               validRole,
	"weekday":            validWeekday,
	"complaint_category": validCategory,
	"complaint_status":   validStatus,
	"contact_number":     validContactNumber,
}

// Register adds the custom rules to v and reports fields by their json or
// form name
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterGin installs the rules on gin's default binding engine
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return Register(v)
}

// New standalone validator that reads the same binding:"..." tags as gin,
// with the custom rules registered
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ── rules ──

func validRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}

func validWeekday(fl validator.FieldLevel) bool {
	return model.IsWeekday(fl.Field().String())
}

func validCategory(fl validator.FieldLevel) bool {
	return model.ComplaintCategory(fl.Field().String()).Valid()
}

func validStatus(fl validator.FieldLevel) bool {
	return model.ComplaintStatus(fl.Field().String()).Valid()
}

func validContactNumber(fl validator.FieldLevel) bool {
	return contactNumberRegex.MatchString(fl.Field().String())
}

// ── messages ──

// FormatErrors field name -> message for every failed rule
func FormatErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}

	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "email":
			out[field] = "Please provide a valid email"
		case "min":
			if isString(e) {
				out[field] = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
			} else {
				out[field] = fmt.Sprintf("%s must be at least %s", field, e.Param())
			}
		case "max":
			if isString(e) {
				out[field] = fmt.Sprintf("%s cannot be more than %s characters", field, e.Param())
			} else {
				out[field] = fmt.Sprintf("%s must be at most %s", field, e.Param())
			}
		case "uuid":
			out[field] = fmt.Sprintf("%s must be a valid id", field)
		case "latitude", "longitude":
			out[field] = fmt.Sprintf("%s is out of range", field)
		case "role":
			out[field] = fmt.Sprintf("role must be one of %s", joinRoles())
		case "weekday":
			out[field] = fmt.Sprintf("%s must be a weekday name (Monday..Sunday)", field)
		case "complaint_category":
			out[field] = fmt.Sprintf("%s must be one of %s", field, joinCategories())
		case "complaint_status":
			out[field] = fmt.Sprintf("%s must be Open, Resolved or Dismissed", field)
		case "contact_number":
			out[field] = "Please provide a valid contact number"
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return out
}

// Message single-line message for a binding error. Errors that are not
// validator errors (malformed JSON, wrong types) get a generic message.
func Message(err error) string {
	fields := FormatErrors(err)
	if len(fields) == 0 {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(fields))
	for _, m := range fields {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func isString(e validator.FieldError) bool {
	return e.Kind() == reflect.String
}

func joinRoles() string {
	names := make([]string, 0, len(model.Roles))
	for _, r := range model.Roles {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func joinCategories() string {
	names := make([]string, 0, len(model.ComplaintCategories))
	for _, c := range model.ComplaintCategories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
