package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/msomdec/lamenar/internal/service"
)

// newValidator returns a validator that reports fields by their JSON names and
// understands the workemail tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("workemail", validateWorkEmail)

	return v
}

// validateWorkEmail rejects addresses hosted by consumer mail providers.
// Malformed addresses pass; the email tag reports them.
func validateWorkEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return true
	}
	return !service.IsPersonalEmailDomain(email[at+1:])
}

// validationMessage flattens validator errors into a single client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "workemail":
		email, _ := fe.Value().(string)
		if _, err := service.CheckWorkEmail(email); err != nil {
			return err.Error()
		}
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}
