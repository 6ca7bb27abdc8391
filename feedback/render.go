package feedback

import (
	"bytes"
	"fmt"

	"concord/colors"
	"concord/syntax"
	"concord/unify"
)

// Render accumulates one human-readable diagnostic.
type Render struct {
	buf bytes.Buffer
}

func NewRender() *Render {
	return &Render{}
}

func (render *Render) WriteString(s string) {
	fmt.Fprintf(&render.buf, "%s", s)
}

func (render *Render) WriteBreak() {
	fmt.Fprintf(&render.buf, "\n\n")
}

func (render *Render) WriteCode(code string) {
	fmt.Fprintf(&render.buf, "%s", colors.Code(code))
}

func (render *Render) WriteDesignation(d unify.Designation) {
	fmt.Fprintf(&render.buf, "%s", colors.Code(d.String()))
}

func (render *Render) WriteList(items []func(), separator string, limit int) {
	if len(items) > 2 {
		for i, item := range items {
			if limit > 0 && i >= limit {
				remaining := len(items) - limit

				var trailing string
				if remaining == 1 {
					trailing = "other"
				} else {
					trailing = "others"
				}

				fmt.Fprintf(&render.buf, ", %s %d %s", separator, remaining, trailing)
				break
			}

			if i > 0 && i == len(items)-1 {
				fmt.Fprintf(&render.buf, ", %s ", separator)
			} else if i > 0 {
				fmt.Fprintf(&render.buf, ", ")
			}

			item()
		}
	} else if len(items) == 2 {
		items[0]()
		fmt.Fprintf(&render.buf, " %s ", separator)
		items[1]()
	} else if len(items) == 1 {
		items[0]()
	}
}

func (render *Render) String() string {
	return render.buf.String()
}

func (render *Render) writeDesignationList(items []unify.Designation, separator string, limit int) {
	fs := make([]func(), 0, len(items))
	for _, item := range items {
		fs = append(fs, func() {
			render.WriteDesignation(item)
		})
	}

	render.WriteList(fs, separator, limit)
}

// RenderTypeError renders one unification failure the way a compiler would
// report it.
func RenderTypeError(err *unify.Error) string {
	render := NewRender()

	switch err.Kind {
	case unify.KnownNotEqual:
		render.WriteDesignation(err.Left)
		render.WriteString(" and ")
		render.WriteDesignation(err.Right)
		render.WriteString(" are " + colors.Conflict("different types") + ".")
	case unify.NotEqual:
		render.WriteDesignation(err.Left)
		render.WriteString(" " + colors.Conflict("does not match") + " ")
		render.WriteDesignation(err.Right)
		render.WriteString(".")
	case unify.ArityNotEqual:
		render.WriteDesignation(err.Left)
		render.WriteString(" and ")
		render.WriteDesignation(err.Right)
		render.WriteString(" take " + colors.Conflict("different numbers of arguments") + ".")
	case unify.UnboundRestriction:
		render.WriteString("Missing information for ")
		render.WriteDesignation(err.Left)
		render.WriteString(".")
		render.WriteBreak()
		render.WriteString("Try annotating the expression with ")
		render.WriteCode(":: Type")
		render.WriteString(" to pin this down.")
	case unify.RecursionBinding:
		render.WriteDesignation(err.Left)
		render.WriteString(" occurs inside ")
		render.WriteDesignation(err.Right)
		render.WriteString(", so the type would be " + colors.Conflict("infinite") + ".")
	case unify.NoOverload:
		render.WriteString("No overload matches these arguments. Tried ")
		render.writeDesignationList(err.Candidates, "and", 3)
		render.WriteString(".")
	case unify.MultipleOverloads:
		render.WriteString("More than one overload produces ")
		render.WriteDesignation(err.Right)
		render.WriteString(": ")
		render.writeDesignationList(err.Candidates, "and", 3)
		render.WriteString(". This is " + colors.Conflict("ambiguous") + "; annotate the arguments to pick one.")
	case unify.MultipleImplicits:
		render.WriteString("More than one implicit conversion produces ")
		render.WriteDesignation(err.Right)
		render.WriteString(": ")
		render.writeDesignationList(err.Candidates, "and", 3)
		render.WriteString(". This is " + colors.Conflict("ambiguous") + "; convert explicitly instead.")
	case unify.TooManyPossibleTypes:
		render.WriteString("This expression could be ")
		render.writeDesignationList(err.Candidates, "or", 3)
		render.WriteString(".")
		render.WriteBreak()
		render.WriteString("Annotate it with ")
		render.WriteCode(":: Type")
		render.WriteString(" to pick one.")
	default:
		render.WriteString(err.Error())
	}

	return render.String()
}

// RenderSyntaxError renders a lexing or parsing failure.
func RenderSyntaxError(err *syntax.Error) string {
	render := NewRender()

	render.WriteString(err.Message)

	if err.Span.Source != "" {
		render.WriteString(" " + colors.Extra("found "+colors.Code(err.Span.Source)))
	}

	return render.String()
}
