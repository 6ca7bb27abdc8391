package syntax

import "fmt"

// Error is a lexing or parsing failure with the span it occurred at.
type Error struct {
	Message string
	Span    Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Span, e.Message)
}
