package grammar

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ava12/jtree/tree"
)

// Definition describes a keyword of the language or the grammar root.
type Definition struct {
	// ID is the keyword, the grammar id for root definition.
	ID string
	// Parent is the id of the definition this one extends or empty string.
	Parent string
	// Abstract definitions are never matched by keywords, they only group other definitions.
	Abstract bool
	// Columns contains word type ids of words following the keyword, the last one may end with "*".
	Columns []string
	// Keywords is the whitelist of child keywords (or their ancestors' keywords).
	Keywords []string
	// NonTerminal is set if the definition has @keywords.
	NonTerminal bool
	// CatchAllKeyword is the id of the definition used for unknown child keywords.
	CatchAllKeyword string
	Constants       map[string]string
	Defaults        map[string]string
	Compilers       []*Compiler
	Description     string
	Frequency       float64
	// Constructor refers to the registered runtime node constructor or is nil.
	Constructor *Constructor
	// Single keyword may appear at most once among siblings.
	Single bool
	// Required keyword must appear in each container that admits it.
	Required bool
	// Node is the source definition node.
	Node *tree.Node

	grammar      *Grammar
	isRoot       bool
	implicitRoot bool
	chain        map[string]bool
	keywordMap   map[string]*Definition
}

// Constructor refers to a runtime node constructor by name.
type Constructor struct {
	Lang   string
	Name   string
	Module string
}

// Key returns the name used to look up the constructor in registry: "name" or "name.module".
func (c *Constructor) Key() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Name + "." + c.Module
}

// Compiler describes translation of a definition to a target format.
type Compiler struct {
	Target string
	// Sub is the line template, {type} placeholders take the next word of given type,
	// {type*} placeholders take all remaining words of the type joined with ListDelimiter.
	Sub             string
	HasSub          bool
	ListDelimiter   string
	IndentCharacter string
	HasIndent       bool
	OpenChildren    string
	CloseChildren   string
}

var subRe = regexp.MustCompile(`\{([^}]+)\}`)

// Format fills Sub template with words grouped by their types, consuming words of list.
// Missing words give empty strings.
func (c *Compiler) Format(words map[string][]string) string {
	delim := c.ListDelimiter
	if delim == "" {
		delim = " "
	}
	return subRe.ReplaceAllStringFunc(c.Sub, func(m string) string {
		typ := m[1 : len(m)-1]
		isList := strings.HasSuffix(typ, "*")
		typ = strings.TrimSuffix(typ, "*")
		ws := words[typ]
		if len(ws) == 0 {
			return ""
		}
		if isList {
			return strings.Join(ws, delim)
		}
		words[typ] = ws[1:]
		return ws[0]
	})
}

// Grammar returns the grammar the definition belongs to.
func (d *Definition) Grammar() *Grammar {
	return d.grammar
}

// IsRoot reports if this is the root definition.
func (d *Definition) IsRoot() bool {
	return d.isRoot
}

func (d *Definition) String() string {
	if d.isRoot {
		return GrammarKeyword + " " + d.ID
	}
	return d.ID
}

// IsNonTerminal reports if runtime nodes of the definition may have typed children.
func (d *Definition) IsNonTerminal() bool {
	return d.NonTerminal
}

// Chain returns set of ids of the definition and all its ancestors.
func (d *Definition) Chain() map[string]bool {
	if d.chain == nil {
		chain := map[string]bool{d.ID: true}
		seen := map[*Definition]bool{d: true}
		for p := d.ParentDefinition(); p != nil && !seen[p]; p = p.ParentDefinition() {
			seen[p] = true
			chain[p.ID] = true
		}
		d.chain = chain
	}
	return d.chain
}

// ParentDefinition returns definition this one extends or nil.
func (d *Definition) ParentDefinition() *Definition {
	if d.Parent == "" || d.grammar == nil {
		return nil
	}
	return d.grammar.byID[d.Parent]
}

// Ancestors returns ids of definitions this one extends, the nearest first.
func (d *Definition) Ancestors() []string {
	var res []string
	seen := map[*Definition]bool{d: true}
	for p := d.ParentDefinition(); p != nil && !seen[p]; p = p.ParentDefinition() {
		seen[p] = true
		res = append(res, p.ID)
	}
	return res
}

// IsA reports if the definition or any of its ancestors is listed in keywords.
func (d *Definition) IsA(keywords []string) bool {
	chain := d.Chain()
	for _, kw := range keywords {
		if chain[kw] {
			return true
		}
	}
	return false
}

// RunTimeKeywordMap returns concrete definitions allowed as children.
// The root definition without @keywords allows all concrete definitions.
func (d *Definition) RunTimeKeywordMap() map[string]*Definition {
	if d.keywordMap != nil {
		return d.keywordMap
	}

	m := make(map[string]*Definition)
	if d.grammar != nil {
		allowAll := d.isRoot && len(d.Keywords) == 0
		for _, def := range d.grammar.Definitions {
			if !def.Abstract && (allowAll || def.IsA(d.Keywords)) {
				m[def.ID] = def
			}
		}
	}
	d.keywordMap = m
	return m
}

// RunTimeKeywordNames returns sorted keywords allowed as children.
func (d *Definition) RunTimeKeywordNames() []string {
	m := d.RunTimeKeywordMap()
	res := make([]string, 0, len(m))
	for kw := range m {
		res = append(res, kw)
	}
	sort.Strings(res)
	return res
}

// TopKeywords returns allowed child keywords, the most frequent first.
func (d *Definition) TopKeywords() []string {
	m := d.RunTimeKeywordMap()
	defs := make([]*Definition, 0, len(m))
	for _, def := range m {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Frequency != defs[j].Frequency {
			return defs[i].Frequency > defs[j].Frequency
		}
		return defs[i].ID < defs[j].ID
	})
	res := make([]string, len(defs))
	for i, def := range defs {
		res[i] = def.ID
	}
	return res
}

// CatchAllDefinition returns definition for unknown child keywords: the definition catch-all,
// the root catch-all, or the error definition.
func (d *Definition) CatchAllDefinition() *Definition {
	if d.grammar == nil {
		return nil
	}
	g := d.grammar
	if d == g.errorDef {
		return d
	}

	if d.CatchAllKeyword != "" {
		if c := g.byID[d.CatchAllKeyword]; c != nil && !c.Abstract {
			return c
		}
	}
	if !d.isRoot {
		return g.Root.CatchAllDefinition()
	}
	return g.errorDef
}

// DefinitionByName returns allowed child definition for keyword or the catch-all definition.
func (d *Definition) DefinitionByName(keyword string) *Definition {
	if def := d.RunTimeKeywordMap()[keyword]; def != nil {
		return def
	}
	return d.CatchAllDefinition()
}

// Compiler returns compiler for given target.
func (d *Definition) Compiler(target string) (*Compiler, bool) {
	for _, c := range d.Compilers {
		if c.Target == target {
			return c, true
		}
	}
	return nil, false
}

// TargetExtension returns target of the first compiler or empty string.
func (d *Definition) TargetExtension() string {
	if len(d.Compilers) == 0 {
		return ""
	}
	return d.Compilers[0].Target
}

// ColumnTypes returns word type ids of the columns, the list marker of the last one removed.
func (d *Definition) ColumnTypes() []string {
	res := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		res[i] = strings.TrimSuffix(c, "*")
	}
	return res
}

// CatchAllColumnType returns word type id of extra words or empty string if extra words are not allowed.
func (d *Definition) CatchAllColumnType() string {
	if len(d.Columns) == 0 {
		return ""
	}
	last := d.Columns[len(d.Columns)-1]
	if !strings.HasSuffix(last, "*") {
		return ""
	}
	return strings.TrimSuffix(last, "*")
}

// ConstructorName returns registry key of the runtime node constructor.
func (d *Definition) ConstructorName() string {
	if d.Constructor != nil {
		return d.Constructor.Key()
	}
	if d.NonTerminal {
		return NonTerminalNode
	}
	return TerminalNode
}

// ConstantsObject returns a copy of the definition constants.
func (d *Definition) ConstantsObject() map[string]string {
	res := make(map[string]string, len(d.Constants))
	for k, v := range d.Constants {
		res[k] = v
	}
	return res
}

// DefaultFor returns default value of named column.
func (d *Definition) DefaultFor(name string) (string, bool) {
	v, has := d.Defaults[name]
	return v, has
}

// AutocompleteWords returns allowed child keywords and extra words containing (but not equal to) input,
// the closest ones first.
func (d *Definition) AutocompleteWords(input string, extra ...string) []string {
	seen := make(map[string]bool)
	var res []string
	for _, w := range append(d.RunTimeKeywordNames(), extra...) {
		for _, word := range strings.Fields(w) {
			if seen[word] || word == input || !strings.Contains(word, input) {
				continue
			}
			seen[word] = true
			res = append(res, word)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return fuzzy.LevenshteinDistance(input, res[i]) < fuzzy.LevenshteinDistance(input, res[j])
	})
	return res
}

// Suggest returns the allowed child keyword closest to given one or empty string.
func (d *Definition) Suggest(keyword string) string {
	if keyword == "" {
		return ""
	}

	candidates := d.RunTimeKeywordNames()
	ranks := fuzzy.RankFindFold(keyword, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", len(keyword)/3+1
	for _, c := range candidates {
		dist := fuzzy.LevenshteinDistance(strings.ToLower(keyword), strings.ToLower(c))
		if dist <= bestDistance && (best == "" || dist < bestDistance) {
			best, bestDistance = c, dist
		}
	}
	return best
}
