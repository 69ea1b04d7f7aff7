package validate

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"chemcatalog/internal/apperr"
)

var (
	reUsername   = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,50}$`)
	rePhone      = regexp.MustCompile(`^\+?[0-9 ()-]{5,20}$`)
	reSettingKey = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report JSON field names, not Go ones
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return reUsername.MatchString(fl.Field().String())
	})
	_ = val.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String())
	})
	_ = val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = val.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		return ImageRef(fl.Field().String())
	})
	return val
}

// Struct validates s by its `validate` tags and returns an apperr
// validation error with a readable message.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return apperr.Validation(strings.Join(msgs, "; "))
	}
	return apperr.Validation("invalid input")
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", f)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, fe.Param())
	case "username":
		return fmt.Sprintf("%s must be 3-50 letters, digits, '_', '.' or '-'", f)
	case "strongpw":
		return fmt.Sprintf("%s must be 8-72 characters with upper and lower case letters and a digit", f)
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", f)
	case "imageref":
		return fmt.Sprintf("%s must be an http(s) URL or a site path", f)
	default:
		return fmt.Sprintf("%s is invalid", f)
	}
}

// ID parses a positive numeric resource identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// SettingKey validates a settings key.
func SettingKey(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSettingKey.MatchString(s)
}

// ImageRef accepts absolute http(s) URLs and site-relative paths.
func ImageRef(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 500 {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return !strings.HasPrefix(s, "//") && !strings.Contains(s, "..")
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Password enforces the account password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
