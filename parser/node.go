package parser

import (
	"sort"
	"strings"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/tree"
)

// Node is the runtime type of a program line.
// Node is valid only while its line belongs to a program tree.
type Node interface {
	tree.Type
	tree.Binder
	// Tree returns the document node.
	Tree() *tree.Node
	// Program returns the program containing the node.
	Program() *Program
	// Definition returns grammar definition assigned to the node keyword path.
	Definition() *grammar.Definition
	// Cells returns words following the keyword matched against definition columns.
	Cells() []*Cell
	// ParsedWords returns values of present cells.
	ParsedWords() []any
	// Errors returns node errors, nil if the node is valid. Errors of child nodes are not included.
	Errors() []*jtree.Error
	// Compile translates the node and its descendants to target format.
	Compile(target string) (string, error)
	// LineSyntax returns "keyword" followed by column types of the node cells.
	LineSyntax() string
}

// BaseNode implements behavior common to all built-in node types.
type BaseNode struct {
	n *tree.Node
}

func (b *BaseNode) Bind(n *tree.Node) {
	b.n = n
}

func (b *BaseNode) Tree() *tree.Node {
	return b.n
}

func (b *BaseNode) Program() *Program {
	p, _ := b.n.Root().Type().(*Program)
	return p
}

func (b *BaseNode) Definition() *grammar.Definition {
	g := b.Program().Grammar()
	if b.n.Keyword() == "" && b.n.Parent().IsRoot() {
		// empty path denotes the root definition itself
		return g.Root.DefinitionByName("")
	}
	return g.DefinitionByKeywordPath(b.n.KeywordPath())
}

func (b *BaseNode) ChildType(line string) tree.Type {
	return b.Program().parser.childNode(b.Definition(), line)
}

func (b *BaseNode) parentDefinition() *grammar.Definition {
	if pn, is := b.n.Parent().Type().(Node); is {
		return pn.Definition()
	}
	return b.Program().Grammar().Root
}

func (b *BaseNode) Cells() []*Cell {
	return buildCells(b.Program(), b.n, b.Definition())
}

func (b *BaseNode) ParsedWords() []any {
	var res []any
	for _, c := range b.Cells() {
		if c.Present {
			res = append(res, c.Value())
		}
	}
	return res
}

func (b *BaseNode) Errors() []*jtree.Error {
	var res []*jtree.Error
	for _, c := range b.Cells() {
		if e := c.Error(); e != nil {
			res = append(res, e)
		}
	}
	return res
}

func (b *BaseNode) LineSyntax() string {
	parts := []string{"keyword"}
	for _, c := range b.Cells() {
		if c.Type == "" {
			parts = append(parts, "extraWord")
		} else {
			parts = append(parts, c.Type)
		}
	}
	return strings.Join(parts, " ")
}

// LineHints returns short description of the node syntax: "keyword: column types".
func (b *BaseNode) LineHints() string {
	d := b.Definition()
	res := d.ID + ":"
	columns := d.Columns
	catchAll := d.CatchAllColumnType()
	if catchAll != "" {
		columns = columns[:len(columns)-1]
	}
	if len(columns) > 0 {
		res += " " + strings.Join(columns, " ")
	}
	if catchAll != "" {
		res += " " + catchAll + "..."
	}
	return res
}

// Compile substitutes the compiler template or returns the node line as is.
func (b *BaseNode) Compile(target string) (string, error) {
	c, e := b.compiler(target)
	if e != nil {
		return "", e
	}
	return b.compiledIndentation(c) + b.compiledLine(c), nil
}

func (b *BaseNode) compiler(target string) (*grammar.Compiler, error) {
	c, has := b.Definition().Compiler(target)
	if !has {
		return nil, missingCompilerError(b.Program().name, b.n, target)
	}
	return c, nil
}

func (b *BaseNode) compiledIndentation(c *grammar.Compiler) string {
	if c.HasIndent {
		return strings.Repeat(c.IndentCharacter, b.n.Depth()-1)
	}
	return b.n.Indentation()
}

func (b *BaseNode) compiledLine(c *grammar.Compiler) string {
	if !c.HasSub {
		return b.n.Line()
	}

	params := make(map[string][]string)
	for _, cell := range b.Cells() {
		word := cell.Word
		if !cell.Present {
			d, has := cell.def.DefaultFor(cell.TypeID())
			if !has {
				continue
			}
			word = d
		}
		params[cell.TypeID()] = append(params[cell.TypeID()], word)
	}
	return c.Format(params)
}

// TerminalNode is a node with no typed children.
type TerminalNode struct {
	BaseNode
}

// NonTerminalNode is a node which definition has @keywords.
type NonTerminalNode struct {
	BaseNode
}

// Errors returns cell errors and violations of @single and @required constraints among node children.
func (nt *NonTerminalNode) Errors() []*jtree.Error {
	res := nt.BaseNode.Errors()
	return append(res, containerErrors(nt.Program().name, nt.n, nt.Definition())...)
}

// Compile compiles node line followed by compiled children wrapped in @openChildren and @closeChildren.
func (nt *NonTerminalNode) Compile(target string) (string, error) {
	c, e := nt.compiler(target)
	if e != nil {
		return "", e
	}

	children, e := compileChildren(nt.n, target)
	if e != nil {
		return "", e
	}

	indent := nt.compiledIndentation(c)
	return indent + nt.compiledLine(c) + c.OpenChildren + "\n" + children + "\n" + indent + c.CloseChildren, nil
}

func compileChildren(n *tree.Node, target string) (string, error) {
	lines := make([]string, 0, n.Len())
	for _, c := range n.Children() {
		rn, is := c.Type().(Node)
		if !is {
			lines = append(lines, c.String())
			continue
		}
		line, e := rn.Compile(target)
		if e != nil {
			return "", e
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func containerErrors(name string, n *tree.Node, d *grammar.Definition) []*jtree.Error {
	var res []*jtree.Error
	allowed := d.RunTimeKeywordMap()
	seen := make(map[string]bool)
	for _, c := range n.Children() {
		kw := c.Keyword()
		if cd := allowed[kw]; cd != nil && cd.Single {
			if seen[kw] {
				res = append(res, nodeTypeUsedMultipleTimesError(name, c))
			}
			seen[kw] = true
		}
	}

	var missing []string
	for kw, cd := range allowed {
		if cd.Required && !n.Has(kw) {
			missing = append(missing, kw)
		}
	}
	sort.Strings(missing)
	for _, kw := range missing {
		res = append(res, missingRequiredKeywordError(name, n, kw))
	}
	return res
}

// ErrorNode is assigned to lines with keywords not allowed in their scope.
// Its children are AnyNodes.
type ErrorNode struct {
	BaseNode
}

func (en *ErrorNode) ChildType(string) tree.Type {
	return &AnyNode{}
}

func (en *ErrorNode) Cells() []*Cell {
	return nil
}

func (en *ErrorNode) ParsedWords() []any {
	return wordValues(en.n)
}

// Errors returns invalid keyword error with the closest allowed keyword suggested.
func (en *ErrorNode) Errors() []*jtree.Error {
	suggestion := en.parentDefinition().Suggest(en.n.Keyword())
	return []*jtree.Error{invalidKeywordError(en.Program().name, en.n, suggestion)}
}

func (en *ErrorNode) Compile(string) (string, error) {
	return "", invalidKeywordCompileError(en.Program().name, en.n)
}

func (en *ErrorNode) LineSyntax() string {
	return repeatWord("error", len(en.n.Words()))
}

// AnyNode accepts any line and any children.
type AnyNode struct {
	BaseNode
}

func (an *AnyNode) ChildType(string) tree.Type {
	return &AnyNode{}
}

func (an *AnyNode) Cells() []*Cell {
	return nil
}

func (an *AnyNode) ParsedWords() []any {
	return wordValues(an.n)
}

func (an *AnyNode) Errors() []*jtree.Error {
	return nil
}

// Compile returns node text.
func (an *AnyNode) Compile(string) (string, error) {
	indent := an.n.Indentation()
	return indent + strings.ReplaceAll(an.n.String(), "\n", "\n"+indent), nil
}

func (an *AnyNode) LineSyntax() string {
	return repeatWord("any", len(an.n.Words()))
}

func wordValues(n *tree.Node) []any {
	ws := n.WordsFrom(1)
	res := make([]any, len(ws))
	for i, w := range ws {
		res[i] = w
	}
	return res
}

func repeatWord(word string, count int) string {
	ws := make([]string, count)
	for i := range ws {
		ws[i] = word
	}
	return strings.Join(ws, " ")
}
