package validator

import (
	"regexp"
	"slices"
	"strings"
)

// EmailRX is a sanity-check pattern for email addresses, not a full RFC 5322
// implementation.
var EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Validator collects field-keyed validation failures.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no check has failed so far.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records a failure for key unless one is already present.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check records message under key when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Message flattens the collected failures into a single user-visible string.
func (v *Validator) Message() string {
	parts := make([]string, 0, len(v.Errors))
	for key, msg := range v.Errors {
		parts = append(parts, key+": "+msg)
	}
	slices.Sort(parts)
	return strings.Join(parts, "; ")
}

// Matches reports whether value matches the given pattern.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// PermittedValue reports whether value is one of the permitted values.
func PermittedValue[T comparable](value T, permitted ...T) bool {
	return slices.Contains(permitted, value)
}
