package main

import (
	"fmt"
	"os"
	"path/filepath"

	"concord/colors"
	"concord/driver"
	"concord/lsp"
	"concord/syntax"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type Context struct{}

type CheckCmd struct {
	Expression string   `short:"e" help:"Check an inline expression instead of files."`
	Expect     string   `help:"Fail unless the program's type renders as this."`
	NoColor    bool     `help:"Disable colored output."`
	Paths      []string `arg:"" name:"path" type:"path" optional:""`
}

func (cmd *CheckCmd) Run(ctx *Context) error {
	if cmd.NoColor {
		color.NoColor = true
	}

	if cmd.Expression != "" {
		return cmd.check("<expression>", cmd.Expression)
	}

	if len(cmd.Paths) == 0 {
		return fmt.Errorf("provide a path or an expression with -e")
	}

	for _, path := range cmd.Paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		err = cmd.check(filepath.Base(path), string(source))
		if err != nil {
			return err
		}
	}

	return nil
}

func (cmd *CheckCmd) check(path string, source string) error {
	result := driver.Check(path, source)
	result.Write(os.Stdout)

	if result.Failed() {
		return fmt.Errorf("check failed with %d problem(s)", len(result.Diagnostics))
	}

	if cmd.Expect != "" && result.Root.String() != cmd.Expect {
		return fmt.Errorf("expected %s, found %s", cmd.Expect, result.Root)
	}

	fmt.Println(colors.Success(result.Root.String()))

	return nil
}

type TokensCmd struct {
	Path string `arg:"" type:"path" required:""`
}

func (cmd *TokensCmd) Run(ctx *Context) error {
	source, err := os.ReadFile(cmd.Path)
	if err != nil {
		return err
	}

	tokens, syntaxError := syntax.Tokenize(filepath.Base(cmd.Path), string(source))
	if syntaxError != nil {
		return fmt.Errorf("%s: %s", syntaxError.Span, syntaxError.Message)
	}

	for _, token := range tokens {
		fmt.Printf("%s %s %s\n", token.Span, token.Kind, colors.Code(token.Value))
	}

	return nil
}

type LspCmd struct {
	Stdio bool `required:""`
}

func (cmd *LspCmd) Run(ctx *Context) error {
	return lsp.Run()
}

var cli struct {
	Verbose int `short:"v" type:"counter" help:"Increase log verbosity."`

	Check  CheckCmd  `cmd:"" default:"withargs" help:"Type-check programs and print the type of every expression."`
	Tokens TokensCmd `cmd:"" help:"Print the token stream of a file."`
	Lsp    LspCmd    `cmd:"" help:"Run the language server."`
}

func main() {
	godotenv.Load()

	ctx := kong.Parse(&cli)
	commonlog.Configure(cli.Verbose, nil)

	err := ctx.Run(&Context{})
	ctx.FatalIfErrorf(err)
}
