package langdef

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/tree"
)

type parseResult struct {
	name      string
	src       *tree.Node
	root      *grammar.Definition
	defs      []*grammar.Definition
	defIndex  map[string]*grammar.Definition
	wordTypes []*grammar.WordType
	wtIndex   map[string]bool
}

// ParseString parses grammar description and returns a grammar on success.
// Returns nil and jtree.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(name, tree.ParseWith(tree.DefaultNotation, fileKind, content))
}

// ParseBytes parses grammar description and returns a grammar on success.
// Returns nil and jtree.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return ParseString(name, string(content))
}

// ParseCondensed parses grammar description where each @keyword definition
// inherits lines of its parent chain (see tree.Node.Expanded).
// Each @group line of an @abstract definition declares @keyword definitions extending it.
// Returns nil and jtree.Error on error.
func ParseCondensed(name, content string) (*grammar.Grammar, error) {
	src := tree.Parse(content)
	expandGroups(src)
	for _, c := range src.Children() {
		if _, e := c.Graph(1, 2); e != nil {
			return nil, graphError(name, c, e)
		}
	}

	expanded, e := src.Expanded(1, 2)
	if e != nil {
		return nil, e
	}
	return ParseString(name, dropInherited(src, expanded))
}

// ownDirectives are not inherited by descendant definitions.
var ownDirectives = []string{grammar.AbstractKeyword, grammar.GroupKeyword}

func expandGroups(src *tree.Node) {
	var lines []string
	for _, c := range src.Children() {
		if c.Keyword() != grammar.AbstractKeyword || c.Word(1) == "" {
			continue
		}
		for _, g := range c.Children() {
			if g.Keyword() != grammar.GroupKeyword {
				continue
			}
			for _, id := range nonEmpty(g.WordsFrom(1)) {
				lines = append(lines, grammar.KeywordKeyword+" "+id+" "+c.Word(1))
			}
		}
	}
	for _, l := range lines {
		src.AppendLine(l)
	}
}

func dropInherited(src *tree.Node, expanded string) string {
	res := tree.Parse(expanded)
	own := src.Children()
	for i, c := range res.Children() {
		if i >= len(own) {
			break
		}
		for _, k := range ownDirectives {
			if !own[i].Has(k) {
				c.Delete(k)
			}
		}
	}
	return res.String()
}

// Parse builds grammar from parsed description using default notation.
// Returns nil and jtree.Error on error.
func Parse(name string, src *tree.Node) (*grammar.Grammar, error) {
	if kindOf(src) != fileKind {
		src = tree.ParseWith(tree.DefaultNotation, fileKind, src.String())
	}

	result := &parseResult{
		name:     name,
		src:      src,
		defIndex: make(map[string]*grammar.Definition),
		wtIndex:  make(map[string]bool),
	}

	e := checkDirectives(result, nil)
	e = collectDefinitions(result, e)
	e = resolveParents(result, e)
	e = findRecursions(result, e)

	return buildGrammar(result, e)
}

func graphError(name string, n *tree.Node, e error) error {
	je, valid := e.(*jtree.Error)
	if !valid {
		return e
	}

	switch je.Code {
	case tree.GraphParentError:
		return unknownParentError(name, n)
	case tree.GraphLoopError:
		return recursionError(name, n, []string{n.Word(1), n.Word(2)})
	}
	return e
}

func checkDirectives(r *parseResult, e error) error {
	if e != nil {
		return e
	}

	tree.Walk(r.src, tree.WalkLtr, func(n *tree.Node) (bool, bool) {
		if e != nil {
			return false, false
		}
		switch kindOf(n) {
		case unknownKind:
			e = unknownDirectiveError(r.name, n)
			return false, false
		case listKind, textKind:
			return false, true
		}
		return true, true
	})
	return e
}

func collectDefinitions(r *parseResult, e error) error {
	if e != nil {
		return e
	}

	for _, n := range r.src.Children() {
		switch kindOf(n) {
		case definitionKind:
			e = r.addDefinition(n)
		case wordTypeKind:
			e = r.addWordType(n)
		}
		if e != nil {
			return e
		}
	}
	return nil
}

func (r *parseResult) addDefinition(n *tree.Node) error {
	id := n.Word(1)
	if id == "" {
		return missingIDError(r.name, n)
	}

	d := &grammar.Definition{ID: id, Node: n}
	switch n.Keyword() {
	case grammar.GrammarKeyword:
		if r.root != nil {
			return defGrammarError(r.name, n)
		}
		r.root = d
	default:
		if r.defIndex[id] != nil {
			return defDefinitionError(r.name, n)
		}
		d.Parent = n.Word(2)
		d.Abstract = (n.Keyword() == grammar.AbstractKeyword)
		r.defIndex[id] = d
		r.defs = append(r.defs, d)
	}

	for _, c := range n.Children() {
		if e := r.applyDirective(d, c); e != nil {
			return e
		}
	}
	return nil
}

func (r *parseResult) applyDirective(d *grammar.Definition, n *tree.Node) error {
	content, _ := n.Content()
	switch n.Keyword() {
	case grammar.ColumnsKeyword:
		d.Columns = append([]string(nil), n.WordsFrom(1)...)
	case grammar.KeywordsKeyword:
		d.NonTerminal = true
		d.Keywords = append(d.Keywords, nonEmpty(n.WordsFrom(1))...)
		for _, c := range n.Children() {
			d.Keywords = append(d.Keywords, nonEmpty(c.Words())...)
		}
	case grammar.CatchAllKeywordKeyword:
		d.CatchAllKeyword = n.Word(1)
	case grammar.ConstantsKeyword:
		d.Constants = pairs(n)
	case grammar.DefaultsKeyword:
		d.Defaults = pairs(n)
	case grammar.CompilerKeyword:
		d.Compilers = append(d.Compilers, buildCompiler(n))
	case grammar.DescriptionKeyword:
		d.Description = strings.Join(append([]string{content}, n.Lines()...), "\n")
		d.Description = strings.TrimSpace(d.Description)
	case grammar.FrequencyKeyword:
		f, e := strconv.ParseFloat(n.Word(1), 64)
		if e != nil {
			return frequencyError(r.name, n)
		}
		d.Frequency = f
	case grammar.ConstructorKeyword:
		if n.Word(2) == "" {
			return constructorError(r.name, n)
		}
		d.Constructor = &grammar.Constructor{Lang: n.Word(1), Name: n.Word(2), Module: n.Word(3)}
	case grammar.AbstractKeyword:
		d.Abstract = true
	case grammar.SingleKeyword:
		d.Single = true
	case grammar.RequiredKeyword:
		d.Required = true
	}
	return nil
}

func nonEmpty(words []string) []string {
	var res []string
	for _, w := range words {
		if w != "" {
			res = append(res, w)
		}
	}
	return res
}

func pairs(n *tree.Node) map[string]string {
	res := make(map[string]string, n.Len())
	for _, c := range n.Children() {
		if c.Keyword() == "" {
			continue
		}
		res[c.Keyword()], _ = c.Content()
	}
	return res
}

func buildCompiler(n *tree.Node) *grammar.Compiler {
	c := &grammar.Compiler{Target: n.Word(1)}
	for _, d := range n.Children() {
		content, _ := d.Content()
		switch d.Keyword() {
		case grammar.SubKeyword:
			c.Sub, c.HasSub = content, true
		case grammar.ListDelimiterKeyword:
			c.ListDelimiter = content
		case grammar.IndentCharacterKeyword:
			c.IndentCharacter, c.HasIndent = content, true
		case grammar.OpenChildrenKeyword:
			c.OpenChildren = content
		case grammar.CloseChildrenKeyword:
			c.CloseChildren = content
		}
	}
	return c
}

func (r *parseResult) addWordType(n *tree.Node) error {
	id := n.Word(1)
	if id == "" {
		return missingIDError(r.name, n)
	}
	if r.wtIndex[id] {
		return defWordTypeError(r.name, n)
	}

	wt := &grammar.WordType{ID: id, Node: n}
	for _, c := range n.Children() {
		content, _ := c.Content()
		switch c.Keyword() {
		case grammar.RegexKeyword:
			re, e := regexp.Compile(content)
			if e != nil {
				return regexpError(r.name, c, e)
			}
			wt.Tests = append(wt.Tests, grammar.RegexTest{Re: re})
		case grammar.EnumKeyword:
			wt.Tests = append(wt.Tests, grammar.NewEnumTest(c.WordsFrom(1)...))
		case grammar.KeywordTableKeyword:
			col, e := strconv.Atoi(c.Word(2))
			if e != nil || col < 0 {
				return columnError(r.name, c)
			}
			wt.Tests = append(wt.Tests, grammar.NewKeywordTableTest(c.Word(1), col))
		case grammar.ParseWithKeyword:
			name := c.Word(-1)
			parse := grammar.ParseFuncs[name]
			if parse == nil {
				return parseFunctionError(r.name, c)
			}
			wt.ParseName, wt.Parse = name, parse
		}
	}

	r.wtIndex[id] = true
	r.wordTypes = append(r.wordTypes, wt)
	return nil
}

func resolveParents(r *parseResult, e error) error {
	if e != nil {
		return e
	}

	for _, d := range r.defs {
		if d.Parent != "" && r.defIndex[d.Parent] == nil {
			return unknownParentError(r.name, d.Node)
		}
	}
	return nil
}

func findRecursions(r *parseResult, e error) error {
	if e != nil {
		return e
	}

	for _, d := range r.defs {
		chain := []string{d.ID}
		seen := map[string]bool{d.ID: true}
		for p := r.defIndex[d.Parent]; p != nil; p = r.defIndex[p.Parent] {
			chain = append(chain, p.ID)
			if seen[p.ID] {
				return recursionError(r.name, d.Node, chain)
			}
			seen[p.ID] = true
		}
	}
	return nil
}

func buildGrammar(r *parseResult, e error) (*grammar.Grammar, error) {
	if e != nil {
		return nil, e
	}

	return grammar.New(r.name, r.src, r.root, r.defs, r.wordTypes), nil
}
