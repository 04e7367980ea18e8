// Package form validates the four HTML forms of the application.
//
// Each field is checked by an ordered list of pure rules; the first rule that
// fails decides the field's error and the remaining rules are skipped.  A form
// is accepted only when every field passes.
package form

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Default messages.
const (
	MsgRequired = "This field is required."
	MsgDecimal  = "Not a valid decimal value."
	MsgInteger  = "Not a valid integer value."
)

// Rule checks one value.  It returns ok=false and a reason on failure.
type Rule func(value string) (reason string, ok bool)

// FieldError names the field that failed and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

// Check runs rules against value in order and stops at the first failure.
// It returns nil when every rule passes.
func Check(field, value string, rules ...Rule) *FieldError {
	for _, rule := range rules {
		if reason, ok := rule(value); !ok {
			return &FieldError{Field: field, Reason: reason}
		}
	}
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Required rejects empty and whitespace-only values.
func Required(msg string) Rule {
	if msg == "" {
		msg = MsgRequired
	}
	return func(v string) (string, bool) {
		return msg, strings.TrimSpace(v) != ""
	}
}

// Email rejects values that are not a single email address.
func Email(msg string) Rule {
	return func(v string) (string, bool) {
		return msg, getValidator().Var(strings.TrimSpace(v), "required,email") == nil
	}
}

// MinLength rejects values shorter than n characters.
func MinLength(n int, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Field must be at least %d characters long.", n)
	}
	return func(v string) (string, bool) {
		return msg, utf8.RuneCountInString(v) >= n
	}
}

// Decimal requires a number within [min, max].
func Decimal(min, max float64, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Number must be between %g and %g.", min, max)
	}
	return func(v string) (string, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return MsgDecimal, false
		}
		return msg, f >= min && f <= max
	}
}

// Integer requires a whole number within [min, max].
func Integer(min, max int, msg string) Rule {
	if msg == "" {
		msg = fmt.Sprintf("Number must be between %d and %d.", min, max)
	}
	return func(v string) (string, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return MsgInteger, false
		}
		return msg, n >= min && n <= max
	}
}
