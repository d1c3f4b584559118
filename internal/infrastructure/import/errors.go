package csvimport

import "fmt"

// RowError describes why a single row could not be imported
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// NewRowError builds a RowError for a column of a line
func NewRowError(line int, column, message string) RowError {
	return RowError{Line: line, Column: column, Message: message}
}

// ErrorList collects row errors up to a cap so a huge broken file
// cannot produce an unbounded response
type ErrorList struct {
	errors []RowError
	max    int
	total  int
}

// NewErrorList creates an ErrorList keeping at most max errors
func NewErrorList(max int) *ErrorList {
	if max <= 0 {
		max = 100
	}
	return &ErrorList{max: max}
}

// Add records an error, dropping it if the cap is reached
func (l *ErrorList) Add(err RowError) {
	l.total++
	if len(l.errors) < l.max {
		l.errors = append(l.errors, err)
	}
}

// Errors returns the kept errors
func (l *ErrorList) Errors() []RowError {
	return l.errors
}

// Total returns the number of errors recorded, including dropped ones
func (l *ErrorList) Total() int {
	return l.total
}

// HasErrors reports whether any error was recorded
func (l *ErrorList) HasErrors() bool {
	return l.total > 0
}

// Truncated reports whether errors were dropped at the cap
func (l *ErrorList) Truncated() bool {
	return l.total > len(l.errors)
}
