package syntax

import (
	"fmt"
	"strings"
)

type Parser struct {
	Path   string
	Source string
	tokens []*Token
	index  int
}

func NewParser(path string, source string) (*Parser, *Error) {
	tokens, err := Tokenize(path, source)
	if err != nil {
		return nil, err
	}

	return &Parser{Path: path, Source: source, tokens: tokens}, nil
}

// Parse parses a whole program: annotation lines, one expression, and an
// optional trailing `:: Type` demanding the expression's result type.
func Parse(path string, source string) (*Program, *Error) {
	parser, err := NewParser(path, source)
	if err != nil {
		return nil, err
	}

	program := &Program{}

	parser.skipLineBreaks()

	// A line `name :: Type` is an annotation unless it is the last thing in
	// the file, in which case it is the final expression with a demanded
	// type.
	for parser.peekKind("Name") && parser.peekKindAt(1, "AnnotateOperator") {
		mark := parser.index
		spanned := parser.Spanned()

		name, _ := parser.expect("Name")
		parser.expect("AnnotateOperator")

		ty, err := parser.parseType()
		if err != nil {
			return nil, err
		}

		if !parser.peekKind("LineBreak") && !parser.atEnd() {
			return nil, parser.errorHere("Expected a line break after this annotation")
		}

		parser.skipLineBreaks()

		if parser.atEnd() {
			// This was the expression after all.
			parser.backtrack(mark)
			break
		}

		program.Annotations = append(program.Annotations, Annotation{
			Name: name.Value,
			Type: ty,
			span: spanned(),
		})
	}

	expression, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}

	program.Expression = expression

	if parser.peekKind("AnnotateOperator") {
		parser.next()

		demand, err := parser.parseType()
		if err != nil {
			return nil, err
		}

		program.Demand = demand
	}

	parser.skipLineBreaks()

	if !parser.atEnd() {
		return nil, parser.errorHere("Expected the end of the file")
	}

	return program, nil
}

var comparisonOperators = map[string]string{
	"LessThanOperator":           "<",
	"LessThanOrEqualOperator":    "<=",
	"GreaterThanOperator":        ">",
	"GreaterThanOrEqualOperator": ">=",
	"EqualOperator":              "==",
	"NotEqualOperator":           "/=",
}

var additiveOperators = map[string]string{
	"AddOperator":      "+",
	"SubtractOperator": "-",
}

var multiplicativeOperators = map[string]string{
	"MultiplyOperator":  "*",
	"DivideOperator":    "/",
	"RemainderOperator": "%",
}

func (parser *Parser) parseExpression() (Expr, *Error) {
	return parser.parseBinary(comparisonOperators, func() (Expr, *Error) {
		return parser.parseBinary(additiveOperators, func() (Expr, *Error) {
			return parser.parseBinary(multiplicativeOperators, parser.parsePower)
		})
	})
}

func (parser *Parser) parseBinary(operators map[string]string, operand func() (Expr, *Error)) (Expr, *Error) {
	spanned := parser.Spanned()

	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		token := parser.peek()
		if token == nil {
			return left, nil
		}

		operator, ok := operators[token.Kind]
		if !ok {
			return left, nil
		}

		parser.next()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{
			Operator: operator,
			Left:     left,
			Right:    right,
			span:     spanned(),
		}
	}
}

func (parser *Parser) parsePower() (Expr, *Error) {
	spanned := parser.Spanned()

	left, err := parser.parseUnary()
	if err != nil {
		return nil, err
	}

	if !parser.peekKind("PowerOperator") {
		return left, nil
	}

	parser.next()

	// `^` is right-associative.
	right, err := parser.parsePower()
	if err != nil {
		return nil, err
	}

	return &BinaryExpr{
		Operator: "^",
		Left:     left,
		Right:    right,
		span:     spanned(),
	}, nil
}

func (parser *Parser) parseUnary() (Expr, *Error) {
	if parser.peekKind("SubtractOperator") {
		spanned := parser.Spanned()
		parser.next()

		operand, err := parser.parseUnary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{
			Operator: "-",
			Operand:  operand,
			span:     spanned(),
		}, nil
	}

	return parser.parseAtom()
}

func (parser *Parser) parseAtom() (Expr, *Error) {
	spanned := parser.Spanned()

	token := parser.peek()
	if token == nil {
		return nil, parser.errorHere("Expected an expression")
	}

	switch token.Kind {
	case "Number":
		parser.next()

		return &NumberExpr{
			Value:     token.Value,
			IsInteger: !strings.Contains(token.Value, "."),
			span:      spanned(),
		}, nil
	case "String":
		parser.next()

		return &StringExpr{
			Value: token.Value,
			span:  spanned(),
		}, nil
	case "Name":
		parser.next()

		if !parser.peekKind("LeftParenthesis") {
			return &NameExpr{
				Name: token.Value,
				span: spanned(),
			}, nil
		}

		parser.next()

		var args []Expr
		for !parser.peekKind("RightParenthesis") {
			if len(args) > 0 {
				if _, err := parser.expect("CollectionOperator"); err != nil {
					return nil, err
				}
			}

			arg, err := parser.parseExpression()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		parser.next()

		return &CallExpr{
			Name:     token.Value,
			NameSpan: token.Span,
			Args:     args,
			span:     spanned(),
		}, nil
	case "LeftParenthesis":
		parser.next()

		expression, err := parser.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := parser.expect("RightParenthesis"); err != nil {
			return nil, err
		}

		return expression, nil
	case "LeftBracket":
		parser.next()

		var elements []Expr
		for !parser.peekKind("RightBracket") {
			if len(elements) > 0 {
				if _, err := parser.expect("CollectionOperator"); err != nil {
					return nil, err
				}
			}

			element, err := parser.parseExpression()
			if err != nil {
				return nil, err
			}

			elements = append(elements, element)
		}

		parser.next()

		return &ArrayExpr{
			Elements: elements,
			span:     spanned(),
		}, nil
	default:
		return nil, parser.errorHere("Expected an expression")
	}
}

func (parser *Parser) parseType() (TypeExpr, *Error) {
	spanned := parser.Spanned()

	if parser.peekKind("TypeName") {
		name := parser.next()

		var args []TypeExpr
		for parser.peekAnyKind("TypeName", "Name", "LeftBracket", "LeftParenthesis") {
			arg, err := parser.parseTypeAtom()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		return &NamedTypeExpr{
			Name: name.Value,
			Args: args,
			span: spanned(),
		}, nil
	}

	return parser.parseTypeAtom()
}

func (parser *Parser) parseTypeAtom() (TypeExpr, *Error) {
	spanned := parser.Spanned()

	token := parser.peek()
	if token == nil {
		return nil, parser.errorHere("Expected a type")
	}

	switch token.Kind {
	case "TypeName":
		parser.next()

		return &NamedTypeExpr{
			Name: token.Value,
			span: spanned(),
		}, nil
	case "Name":
		parser.next()

		return &NamedTypeExpr{
			Name:       token.Value,
			IsVariable: true,
			span:       spanned(),
		}, nil
	case "LeftBracket":
		parser.next()

		element, err := parser.parseType()
		if err != nil {
			return nil, err
		}

		if _, err := parser.expect("RightBracket"); err != nil {
			return nil, err
		}

		return &ArrayTypeExpr{
			Element: element,
			span:    spanned(),
		}, nil
	case "LeftParenthesis":
		parser.next()

		ty, err := parser.parseType()
		if err != nil {
			return nil, err
		}

		if _, err := parser.expect("RightParenthesis"); err != nil {
			return nil, err
		}

		return ty, nil
	default:
		return nil, parser.errorHere("Expected a type")
	}
}

func (parser *Parser) peek() *Token {
	if parser.index >= len(parser.tokens) {
		return nil
	}

	return parser.tokens[parser.index]
}

func (parser *Parser) peekKind(kind string) bool {
	token := parser.peek()
	return token != nil && token.Kind == kind
}

func (parser *Parser) peekKindAt(offset int, kind string) bool {
	if parser.index+offset >= len(parser.tokens) {
		return false
	}

	return parser.tokens[parser.index+offset].Kind == kind
}

func (parser *Parser) peekAnyKind(kinds ...string) bool {
	for _, kind := range kinds {
		if parser.peekKind(kind) {
			return true
		}
	}

	return false
}

func (parser *Parser) next() *Token {
	token := parser.peek()
	if token != nil {
		parser.index++
	}

	return token
}

func (parser *Parser) expect(kind string) (*Token, *Error) {
	token := parser.peek()
	if token == nil {
		return nil, &Error{
			Message: fmt.Sprintf("Expected %s", tokenNames[kind]),
			Span:    parser.eofSpan(),
		}
	}

	if token.Kind != kind {
		return nil, &Error{
			Message: fmt.Sprintf("Expected %s, but found %s", tokenNames[kind], tokenNames[token.Kind]),
			Span:    token.Span,
		}
	}

	parser.index++

	return token, nil
}

func (parser *Parser) skipLineBreaks() {
	for parser.peekKind("LineBreak") {
		parser.next()
	}
}

func (parser *Parser) atEnd() bool {
	return parser.index >= len(parser.tokens)
}

func (parser *Parser) backtrack(index int) {
	parser.index = index
}

func (parser *Parser) errorHere(message string) *Error {
	span := parser.eofSpan()
	if token := parser.peek(); token != nil {
		span = token.Span
	}

	return &Error{
		Message: message,
		Span:    span,
	}
}

// Spanned captures the current position and returns a function producing the
// span from there to the most recently consumed token.
func (parser *Parser) Spanned() func() Span {
	index := parser.index

	return func() Span {
		start := parser.eofSpan()
		if index < len(parser.tokens) {
			start = parser.tokens[index].Span
		}

		end := parser.eofSpan()
		if parser.index > 0 {
			end = parser.tokens[parser.index-1].Span
		}

		return JoinSpans(start, end, parser.Source)
	}
}

func (parser *Parser) eofSpan() Span {
	location := Location{
		Line:   1,
		Column: 1,
		Index:  len(parser.Source),
	}

	if len(parser.tokens) > 0 {
		location = parser.tokens[len(parser.tokens)-1].Span.End
	}

	return Span{
		Path:  parser.Path,
		Start: location,
		End:   location,
	}
}
