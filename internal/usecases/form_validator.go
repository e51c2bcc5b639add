package usecases

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"veab-goa.backend/internal/domain/entities"
)

// ValidationError lists every rule a submitted form broke.
type ValidationError struct {
	Fields []entities.FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// fieldMessages maps "<path without indices>.<tag>" to a user facing message.
type fieldMessages map[string]string

var (
	validateOnce sync.Once
	validate     *validator.Validate
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return IsValidSlug(fl.Field().String())
		})
	})
	return validate
}

// checkForm runs the struct tags of form and converts failures to
// violations with JSON style paths such as socials.0.url.
func checkForm(form any, messages fieldMessages) *ValidationError {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: []entities.FieldViolation{{Field: "form", Message: err.Error()}}}
	}

	out := &ValidationError{}
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		generic := indexPattern.ReplaceAllString(path, "")
		path = indexPattern.ReplaceAllString(path, ".$1")

		msg, ok := messages[generic+"."+fe.Tag()]
		if !ok {
			msg = defaultMessage(fe)
		}
		out.Fields = append(out.Fields, entities.FieldViolation{Field: path, Message: msg})
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "Must be at least " + fe.Param() + " characters."
	case "url":
		return "Must be a valid URL."
	case "email":
		return "Please enter a valid email address."
	case "required":
		return "Is required."
	default:
		return "Is invalid."
	}
}
