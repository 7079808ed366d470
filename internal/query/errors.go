package query

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid clause of a request.
type FieldError struct {
	Field    string `json:"field"`
	Operator string `json:"operator,omitempty"`
	Value    string `json:"value,omitempty"`
	Message  string `json:"message"`
}

// ValidationErrors is the accumulated set of invalid clauses. Compilation
// never fails fast, so a single response can enumerate every problem.
type ValidationErrors []FieldError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// AsValidationErrors extracts ValidationErrors from an error if present.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	verrs, ok := err.(ValidationErrors)
	return verrs, ok
}
