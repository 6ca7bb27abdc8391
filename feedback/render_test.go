package feedback_test

import (
	"testing"

	"concord/colors"
	"concord/feedback"
	"concord/types"
	"concord/unify"
)

func render(f func() string) string {
	var s string
	colors.WithoutColor(func() {
		s = f()
	})

	return s
}

func TestWriteList(t *testing.T) {
	item := func(r *feedback.Render, s string) func() {
		return func() { r.WriteString(s) }
	}

	cases := []struct {
		name     string
		items    []string
		limit    int
		expected string
	}{
		{"single", []string{"a"}, 0, "a"},
		{"pair", []string{"a", "b"}, 0, "a or b"},
		{"three", []string{"a", "b", "c"}, 0, "a, b, or c"},
		{"limited", []string{"a", "b", "c", "d", "e"}, 2, "a, b, or 3 others"},
		{"limited to one extra", []string{"a", "b", "c", "d"}, 3, "a, b, c, or 1 other"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := feedback.NewRender()

			fs := make([]func(), len(c.items))
			for i, s := range c.items {
				fs[i] = item(r, s)
			}

			var got string
			colors.WithoutColor(func() {
				r.WriteList(fs, "or", c.limit)
				got = r.String()
			})

			if got != c.expected {
				t.Fatalf("expected %q, got %q", c.expected, got)
			}
		})
	}
}

func TestRenderTypeErrorMentionsBothSides(t *testing.T) {
	intType := unify.NewKnown(types.NewNamed("Int", 0))
	floatType := unify.NewKnown(types.NewNamed("Float", 0))

	_, err := unify.Unify(intType, floatType, unify.NewUnifier())
	if err == nil {
		t.Fatal("expected an error")
	}

	message := render(func() string {
		return feedback.RenderTypeError(err)
	})

	if message != "`Int` and `Float` are different types." {
		t.Fatalf("unexpected message: %q", message)
	}
}

func TestRenderTypeErrorSuggestsAnnotation(t *testing.T) {
	intType := unify.NewKnown(types.NewNamed("Int", 0))
	floatType := unify.NewKnown(types.NewNamed("Float", 0))

	message := render(func() string {
		return feedback.RenderTypeError(unify.ErrTooManyPossibleTypes([]unify.Designation{intType, floatType}))
	})

	if message != "This expression could be `Int` or `Float`.\n\nAnnotate it with `:: Type` to pick one." {
		t.Fatalf("unexpected message: %q", message)
	}
}
