package syntax

import (
	"fmt"
	"strings"
)

// Span is a region of source text. Locations are 1-based for lines and
// columns; Index is the byte offset.
type Span struct {
	Path   string
	Start  Location
	End    Location
	Source string
}

type Location struct {
	Line   int
	Column int
	Index  int
}

func JoinSpans(left Span, right Span, source string) Span {
	return Span{
		Path:   left.Path,
		Start:  left.Start,
		End:    right.End,
		Source: source[left.Start.Index:max(right.End.Index, left.Start.Index)],
	}
}

func CompareSpans(left Span, right Span) int {
	if left.Path != right.Path {
		return strings.Compare(left.Path, right.Path)
	}

	if left.Start.Index != right.Start.Index {
		return left.Start.Index - right.Start.Index
	}

	return left.End.Index - right.End.Index
}

// Contains reports whether the byte offset falls inside the span.
func (span Span) Contains(index int) bool {
	return span.Start.Index <= index && index < max(span.End.Index, span.Start.Index+1)
}

func (span Span) String() string {
	return fmt.Sprintf("%s:%d:%d", span.Path, span.Start.Line, span.Start.Column)
}
