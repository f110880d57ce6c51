package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/langdef"
	"github.com/ava12/jtree/parser"
	"github.com/ava12/jtree/tree"
)

type command struct {
	usage   string
	grammar bool // requires -g
	file    bool // requires document file argument
	run     func(en *env, name string) (int, error)
}

var commands = map[string]*command{
	"check":    {"list document errors", true, true, cmdCheck},
	"compile":  {"compile document to target format", true, true, cmdCompile},
	"syntax":   {"replace document lines with their word types", true, true, cmdSyntax},
	"types":    {"prefix document lines with node types", true, true, cmdTypes},
	"usage":    {"list document lines by keyword", true, true, cmdUsage},
	"repl":     {"edit document interactively", true, false, cmdRepl},
	"expand":   {"expand condensed tree (first word is id, second is parent id)", false, true, cmdExpand},
	"json":     {"convert tree to JSON", false, true, cmdJSON},
	"yaml":     {"convert tree to YAML", false, true, cmdYAML},
	"fromjson": {"convert JSON to tree", false, true, cmdFromJSON},
	"fromyaml": {"convert YAML to tree", false, true, cmdFromYAML},
	"outline":  {"draw tree outline", false, true, cmdOutline},
}

var (
	errColor  = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
	hintColor = color.New(color.FgCyan)
)

type env struct {
	cfg    config
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
	parser *parser.Parser
}

func printError(w io.Writer, e error) {
	_, _ = errColor.Fprintln(w, e.Error())
}

func (en *env) loadParser() error {
	if en.cfg.Grammar == "" {
		return fmt.Errorf("%w: grammar file is not defined", errUsage)
	}

	src, e := os.ReadFile(en.cfg.Grammar)
	if e != nil {
		return e
	}

	var g *grammar.Grammar
	if en.cfg.Condensed {
		g, e = langdef.ParseCondensed(en.cfg.Grammar, string(src))
	} else {
		g, e = langdef.ParseBytes(en.cfg.Grammar, src)
	}
	if e != nil {
		return e
	}
	en.log.Debug("grammar loaded",
		zap.String("file", en.cfg.Grammar),
		zap.String("grammar", g.Name),
		zap.Int("definitions", len(g.Definitions)),
	)

	en.parser, e = parser.New(g, nil)
	return e
}

func (en *env) program(name string) (*parser.Program, error) {
	src, e := os.ReadFile(name)
	if e != nil {
		return nil, e
	}
	return en.parser.ParseString(name, documentText(src)), nil
}

func (en *env) readTree(name string) (*tree.Node, error) {
	src, e := os.ReadFile(name)
	if e != nil {
		return nil, e
	}
	return tree.Parse(documentText(src)), nil
}

// documentText strips the final line terminator of file content.
func documentText(src []byte) string {
	return strings.TrimSuffix(strings.TrimSuffix(string(src), "\n"), "\r")
}

func (en *env) target() string {
	if en.cfg.Target != "" {
		return en.cfg.Target
	}
	return en.parser.Grammar().TargetExtension()
}

func (en *env) write(text string) error {
	text = strings.TrimSuffix(text, "\n")
	if en.cfg.Output == "" {
		_, e := fmt.Fprintln(en.stdout, text)
		return e
	}

	e := os.WriteFile(en.cfg.Output, []byte(text+"\n"), 0o666)
	if e == nil {
		en.log.Info("output written", zap.String("file", en.cfg.Output), zap.Int("bytes", len(text)+1))
	}
	return e
}

func cmdCheck(en *env, name string) (int, error) {
	prog, e := en.program(name)
	if e != nil {
		return exitFailure, e
	}

	es := prog.Errors()
	for _, ee := range es {
		printError(en.stderr, ee)
	}
	if len(es) > 0 {
		en.log.Debug("document is invalid", zap.String("file", name), zap.Int("errors", len(es)))
		return exitInvalid, nil
	}

	_, e = okColor.Fprintf(en.stdout, "%s: ok\n", name)
	return exitOK, e
}

func cmdCompile(en *env, name string) (int, error) {
	prog, e := en.program(name)
	if e != nil {
		return exitFailure, e
	}

	target := en.target()
	en.log.Debug("compiling", zap.String("file", name), zap.String("target", target))
	text, e := prog.Compile(target)
	if e != nil {
		var je *jtree.Error
		if errors.As(e, &je) {
			printError(en.stderr, je)
			return exitInvalid, nil
		}
		return exitFailure, e
	}
	en.log.Info("compiled", zap.String("program", prog.Grammar().CompiledProgramName(name)), zap.String("target", target))
	return exitOK, en.write(text)
}

func cmdSyntax(en *env, name string) (int, error) {
	prog, e := en.program(name)
	if e != nil {
		return exitFailure, e
	}
	return exitOK, en.write(prog.InPlaceSyntaxTree())
}

func cmdTypes(en *env, name string) (int, error) {
	prog, e := en.program(name)
	if e != nil {
		return exitFailure, e
	}
	return exitOK, en.write(prog.InPlaceSyntaxTreeWithNodeTypes())
}

func cmdUsage(en *env, name string) (int, error) {
	prog, e := en.program(name)
	if e != nil {
		return exitFailure, e
	}
	return exitOK, en.write(prog.KeywordUsage(name).String())
}

func cmdExpand(en *env, name string) (int, error) {
	src, e := en.readTree(name)
	if e != nil {
		return exitFailure, e
	}
	text, e := src.Expanded(1, 2)
	if e != nil {
		return exitInvalid, e
	}
	return exitOK, en.write(text)
}

func cmdJSON(en *env, name string) (int, error) {
	src, e := en.readTree(name)
	if e != nil {
		return exitFailure, e
	}
	text, e := src.ToJSON()
	if e != nil {
		return exitFailure, e
	}
	return exitOK, en.write(text)
}

func cmdYAML(en *env, name string) (int, error) {
	src, e := en.readTree(name)
	if e != nil {
		return exitFailure, e
	}
	text, e := src.ToYAML()
	if e != nil {
		return exitFailure, e
	}
	return exitOK, en.write(text)
}

func cmdFromJSON(en *env, name string) (int, error) {
	src, e := os.ReadFile(name)
	if e != nil {
		return exitFailure, e
	}
	n, e := tree.FromJSON(string(src))
	if e != nil {
		return exitInvalid, e
	}
	return exitOK, en.write(n.String())
}

func cmdFromYAML(en *env, name string) (int, error) {
	src, e := os.ReadFile(name)
	if e != nil {
		return exitFailure, e
	}
	n, e := tree.FromYAML(string(src))
	if e != nil {
		return exitInvalid, e
	}
	return exitOK, en.write(n.String())
}

func cmdOutline(en *env, name string) (int, error) {
	src, e := en.readTree(name)
	if e != nil {
		return exitFailure, e
	}
	return exitOK, en.write(src.ToOutline())
}
