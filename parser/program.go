package parser

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/tree"
)

// Program is the root of a parsed document.
type Program struct {
	*tree.Node
	name   string
	parser *Parser
	syntax *syntaxCache
}

type syntaxCache struct {
	version int64
	lines   []*tree.Node
}

func (p *Program) Bind(n *tree.Node) {
	p.Node = n
}

func (p *Program) ChildType(line string) tree.Type {
	return p.parser.childNode(p.Grammar().Root, line)
}

// CloneType makes the clone of the program a program of the same grammar.
func (p *Program) CloneType() tree.Type {
	return &Program{name: p.name, parser: p.parser}
}

// Name returns the document name used in error messages.
func (p *Program) Name() string {
	return p.name
}

func (p *Program) Grammar() *grammar.Grammar {
	return p.parser.g
}

func (p *Program) Parser() *Parser {
	return p.parser
}

// Definition returns the root definition of the grammar.
func (p *Program) Definition() *grammar.Definition {
	return p.parser.g.Root
}

// Errors returns errors of all program nodes in document order.
func (p *Program) Errors() []*jtree.Error {
	res := containerErrors(p.name, p.Node, p.Definition())
	for _, n := range p.TopDownArray() {
		if rn, is := n.Type().(Node); is {
			res = append(res, rn.Errors()...)
		}
	}
	return res
}

// Compile compiles top-level nodes joining the results with newlines.
func (p *Program) Compile(target string) (string, error) {
	return compileChildren(p.Node, target)
}

// InPlaceSyntaxTree returns document where each line is replaced with its syntax (see Node.LineSyntax).
func (p *Program) InPlaceSyntaxTree() string {
	return p.mapLines(func(n *tree.Node, rn Node) string {
		return n.Indentation() + rn.LineSyntax()
	})
}

// InPlaceSyntaxTreeWithNodeTypes is the same as InPlaceSyntaxTree, each line prefixed with runtime type name.
func (p *Program) InPlaceSyntaxTreeWithNodeTypes() string {
	return p.mapLines(func(n *tree.Node, rn Node) string {
		return typeName(rn) + " " + n.Indentation() + rn.LineSyntax()
	})
}

// TreeWithNodeTypes returns document lines prefixed with runtime type names.
func (p *Program) TreeWithNodeTypes() string {
	return p.mapLines(func(n *tree.Node, rn Node) string {
		return typeName(rn) + " " + n.Indentation() + n.Line()
	})
}

func (p *Program) mapLines(fn func(n *tree.Node, rn Node) string) string {
	nodes := p.TopDownArray()
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if rn, is := n.Type().(Node); is {
			lines = append(lines, fn(n, rn))
		}
	}
	return strings.Join(lines, "\n")
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// WordTypeAtPosition returns column type of a word (or "keyword") at given 1-based line and word numbers.
// Returns empty string for nonexistent position.
func (p *Program) WordTypeAtPosition(line, word int) string {
	version := p.Version()
	if p.syntax == nil || p.syntax.version != version {
		syntax := tree.Parse(p.InPlaceSyntaxTree())
		p.syntax = &syntaxCache{version: version, lines: syntax.TopDownArray()}
	}

	if line < 1 || line > len(p.syntax.lines) || word < 1 {
		return ""
	}
	return p.syntax.lines[line-1].Word(word - 1)
}

// KeywordUsage returns a tree with a node per keyword definition listing program lines using the keyword.
// Each usage line is "<path>-<line index> <line words>".
func (p *Program) KeywordUsage(path string) *tree.Node {
	usage := tree.New("", nil)
	for _, d := range p.Grammar().KeywordDefinitions() {
		usage.AppendLine(strings.Join(append([]string{d.ID, "line-id", "keyword"}, d.Columns...), " "))
	}

	for i, n := range p.TopDownArray() {
		rn, is := n.Type().(Node)
		if !is {
			continue
		}
		stats := usage.NodeByColumn(0, rn.Definition().ID)
		if stats != nil {
			stats.AppendLine(path + "-" + strconv.Itoa(i) + " " + n.Line())
		}
	}
	return usage
}
