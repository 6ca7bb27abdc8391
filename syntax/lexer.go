package syntax

import (
	lex "github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type Token struct {
	Kind  string
	Value string
	Span  Span
}

type tokenRule struct {
	kind    string
	pattern string
	name    string
	skip    bool
	trim    func(s string) string
}

var rules = []tokenRule{
	{kind: "Space", pattern: `[ \t\r]+`, name: "", skip: true},
	{kind: "Comment", pattern: `--[^\n]*`, name: "", skip: true},
	{kind: "LineBreak", pattern: `\n+`, name: "a line break"},
	{kind: "AnnotateOperator", pattern: `::`, name: "`::`"},
	{kind: "LessThanOrEqualOperator", pattern: `<=`, name: "`<=`"},
	{kind: "GreaterThanOrEqualOperator", pattern: `>=`, name: "`>=`"},
	{kind: "NotEqualOperator", pattern: `/=`, name: "`/=`"},
	{kind: "EqualOperator", pattern: `==`, name: "`==`"},
	{kind: "PowerOperator", pattern: `\^`, name: "`^`"},
	{kind: "MultiplyOperator", pattern: `\*`, name: "`*`"},
	{kind: "DivideOperator", pattern: `/`, name: "`/`"},
	{kind: "RemainderOperator", pattern: `%`, name: "`%`"},
	{kind: "AddOperator", pattern: `\+`, name: "`+`"},
	{kind: "SubtractOperator", pattern: `-`, name: "`-`"},
	{kind: "LessThanOperator", pattern: `<`, name: "`<`"},
	{kind: "GreaterThanOperator", pattern: `>`, name: "`>`"},
	{kind: "LeftParenthesis", pattern: `\(`, name: "`(`"},
	{kind: "RightParenthesis", pattern: `\)`, name: "`)`"},
	{kind: "LeftBracket", pattern: `\[`, name: "`[`"},
	{kind: "RightBracket", pattern: `\]`, name: "`]`"},
	{kind: "CollectionOperator", pattern: `,`, name: "`,`"},
	{kind: "Number", pattern: `[0-9]+(\.[0-9]+)?`, name: "a number"},
	{kind: "String", pattern: `"[^"]*"`, name: "a string", trim: func(s string) string { return s[1 : len(s)-1] }},
	{kind: "TypeName", pattern: `[A-Z][A-Za-z0-9_]*`, name: "a type name"},
	{kind: "Name", pattern: `[a-z_][A-Za-z0-9_]*`, name: "a name"},
}

var lexer *lex.Lexer

var tokenIds = make(map[string]int, len(rules))
var tokenKinds = make([]string, 0, len(rules))
var tokenNames = make(map[string]string, len(rules))

func token(name string, trim func(s string) string) lex.Action {
	return func(s *lex.Scanner, m *machines.Match) (any, error) {
		tokenString := string(m.Bytes)
		if trim != nil {
			tokenString = trim(tokenString)
		}

		return s.Token(tokenIds[name], tokenString, m), nil
	}
}

func skip(*lex.Scanner, *machines.Match) (any, error) {
	return nil, nil
}

func init() {
	lexer = lex.NewLexer()

	for _, rule := range rules {
		f := skip
		if !rule.skip {
			tokenIds[rule.kind] = len(tokenIds)
			tokenKinds = append(tokenKinds, rule.kind)
			f = token(rule.kind, rule.trim)
		}

		lexer.Add([]byte(rule.pattern), f)
		tokenNames[rule.kind] = rule.name
	}

	err := lexer.CompileNFA()
	if err != nil {
		panic(err)
	}
}

func Tokenize(path string, source string) ([]*Token, *Error) {
	scanner, err := lexer.Scanner([]byte(source))
	if err != nil {
		panic(err)
	}

	var tokens []*Token
	for token, err, eof := scanner.Next(); !eof; token, err, eof = scanner.Next() {
		if err != nil {
			if unconsumed, ok := err.(*machines.UnconsumedInput); ok {
				return nil, &Error{
					Message: "Unrecognized character",
					Span: Span{
						Path: path,
						Start: Location{
							Index:  unconsumed.StartTC,
							Line:   unconsumed.StartLine,
							Column: unconsumed.StartColumn,
						},
						End: Location{
							Index:  unconsumed.FailTC,
							Line:   unconsumed.FailLine,
							Column: unconsumed.FailColumn,
						},
						Source: source[unconsumed.StartTC:max(unconsumed.FailTC, unconsumed.StartTC)],
					},
				}
			}

			panic(err)
		}

		token := token.(*lex.Token)
		startIndex := token.TC
		endIndex := scanner.TC

		span := Span{
			Path: path,
			Start: Location{
				Index:  startIndex,
				Line:   token.StartLine,
				Column: token.StartColumn,
			},
			End: Location{
				Index:  endIndex,
				Line:   token.EndLine,
				Column: token.EndColumn,
			},
			Source: source[startIndex:endIndex],
		}

		tokens = append(tokens, &Token{
			Kind:  tokenKinds[token.Type],
			Value: token.Value.(string),
			Span:  span,
		})
	}

	return tokens, nil
}
