// Package parser binds grammar definitions to runtime node constructors and builds typed program trees.
//
// Each document line becomes a tree.Node whose type is a runtime Node created by the constructor
// assigned to the line definition. Runtime nodes validate their words against the definition columns
// and compile themselves to target formats.
package parser

import (
	"strings"

	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/tree"
)

// Factory creates a new runtime node. Custom nodes embed one of the built-in node types.
type Factory func() Node

// Constructors maps constructor names (see grammar.Constructor.Key) to factories.
type Constructors map[string]Factory

var builtins = Constructors{
	grammar.ErrorNode:       func() Node { return &ErrorNode{} },
	grammar.TerminalNode:    func() Node { return &TerminalNode{} },
	grammar.NonTerminalNode: func() Node { return &NonTerminalNode{} },
	grammar.AnyNode:         func() Node { return &AnyNode{} },
}

// Parser creates programs for a single grammar. It is immutable and may be shared by any number of programs.
type Parser struct {
	g         *grammar.Grammar
	factories Constructors
}

// New creates a parser for grammar g. cs contains custom constructors, they take precedence over built-in ones.
// Returns error if any definition refers to unregistered constructor.
func New(g *grammar.Grammar, cs Constructors) (*Parser, error) {
	p := &Parser{g: g, factories: make(Constructors, len(builtins)+len(cs))}
	for name, f := range builtins {
		p.factories[name] = f
	}
	for name, f := range cs {
		p.factories[name] = f
	}

	for _, d := range g.Definitions {
		if p.factories[d.ConstructorName()] == nil {
			return nil, invalidConstructorPathError(g, d)
		}
	}
	return p, nil
}

// Grammar returns the parser grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// ParseString parses document text. Document errors do not stop parsing, see Program.Errors.
func (p *Parser) ParseString(name, text string) *Program {
	prog := &Program{name: name, parser: p}
	tree.ParseWith(tree.DefaultNotation, prog, text)
	return prog
}

// ParseBytes parses document content.
func (p *Parser) ParseBytes(name string, content []byte) *Program {
	return p.ParseString(name, string(content))
}

func (p *Parser) childNode(parent *grammar.Definition, line string) Node {
	d := parent.DefinitionByName(lineKeyword(line))
	return p.factories[d.ConstructorName()]()
}

func lineKeyword(line string) string {
	kw, _, _ := strings.Cut(line, tree.DefaultNotation.Word)
	return kw
}
