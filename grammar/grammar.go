// Package grammar defines the structure produced by langdef: word types, keyword definitions,
// and the grammar binding them together.
//
// Grammar is immutable after construction, derived data (keyword chains, runtime keyword maps,
// keyword path lookups) is computed on demand and cached for the grammar lifetime.
package grammar

import (
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/ava12/jtree/tree"
)

// Top-level keywords of grammar descriptions.
const (
	GrammarKeyword  = "@grammar"
	WordTypeKeyword = "@wordType"
	KeywordKeyword  = "@keyword"
	AbstractKeyword = "@abstract"
)

// Keywords used inside definitions.
const (
	ColumnsKeyword         = "@columns"
	KeywordsKeyword        = "@keywords"
	CatchAllKeywordKeyword = "@catchAllKeyword"
	ConstantsKeyword       = "@constants"
	CompilerKeyword        = "@compiler"
	DescriptionKeyword     = "@description"
	FrequencyKeyword       = "@frequency"
	ConstructorKeyword     = "@constructor"
	DefaultsKeyword        = "@defaults"
	SingleKeyword          = "@single"
	RequiredKeyword        = "@required"
	GroupKeyword           = "@group"
)

// Keywords used inside compiler blocks.
const (
	SubKeyword             = "@sub"
	ListDelimiterKeyword   = "@listDelimiter"
	IndentCharacterKeyword = "@indentCharacter"
	OpenChildrenKeyword    = "@openChildren"
	CloseChildrenKeyword   = "@closeChildren"
)

// Keywords used inside word type definitions.
const (
	RegexKeyword        = "@regex"
	EnumKeyword         = "@enum"
	KeywordTableKeyword = "@keywordTable"
	ParseWithKeyword    = "@parseWith"
)

// Built-in node constructor names.
const (
	ErrorNode       = "ErrorNode"
	TerminalNode    = "TerminalNode"
	NonTerminalNode = "NonTerminalNode"
	AnyNode         = "AnyNode"
)

// ErrorDefinitionID is the id of the definition assigned to lines with unknown keywords.
const ErrorDefinitionID = "@error"

// Grammar is the compiled grammar description.
type Grammar struct {
	// Name is the grammar source name.
	Name string
	// Root is the @grammar definition, it is synthesized if the description has none.
	Root *Definition
	// Definitions contains @keyword and @abstract definitions in source order.
	Definitions []*Definition
	// WordTypes contains user-defined word types.
	WordTypes map[string]*WordType
	// Source is the parsed grammar description.
	Source *tree.Node

	byID     map[string]*Definition
	errorDef *Definition
	paths    *cache.Cache
}

// New creates grammar from definitions. root may be nil.
// Definitions must have unique ids and their inheritance chains must be resolvable and acyclic.
func New(name string, source *tree.Node, root *Definition, defs []*Definition, wordTypes []*WordType) *Grammar {
	g := &Grammar{
		Name:        name,
		Root:        root,
		Definitions: defs,
		WordTypes:   make(map[string]*WordType, len(wordTypes)),
		Source:      source,
		byID:        make(map[string]*Definition, len(defs)),
		paths:       cache.New(cache.NoExpiration, 0),
	}
	if g.Root == nil {
		g.Root = &Definition{implicitRoot: true}
	}
	g.Root.grammar = g
	g.Root.isRoot = true

	for _, wt := range wordTypes {
		g.WordTypes[wt.ID] = wt
	}
	for _, d := range defs {
		d.grammar = g
		g.byID[d.ID] = d
	}
	g.errorDef = &Definition{ID: ErrorDefinitionID, Constructor: &Constructor{Name: ErrorNode}, grammar: g}
	return g
}

// Definition returns definition (including abstract one) with given id or nil.
func (g *Grammar) Definition(id string) *Definition {
	return g.byID[id]
}

// KeywordDefinitions returns non-abstract definitions in source order.
func (g *Grammar) KeywordDefinitions() []*Definition {
	res := make([]*Definition, 0, len(g.Definitions))
	for _, d := range g.Definitions {
		if !d.Abstract {
			res = append(res, d)
		}
	}
	return res
}

// ErrorDefinition returns the definition of lines with unknown keywords.
func (g *Grammar) ErrorDefinition() *Definition {
	return g.errorDef
}

// WordType returns user-defined or built-in word type, nil if there is no such type.
func (g *Grammar) WordType(id string) *WordType {
	if wt := g.WordTypes[id]; wt != nil {
		return wt
	}
	return builtinWordTypes[id]
}

// ExtensionName returns the grammar id (the first word after @grammar).
func (g *Grammar) ExtensionName() string {
	return g.Root.ID
}

// TargetExtension returns the target of the first compiler of the root definition.
func (g *Grammar) TargetExtension() string {
	return g.Root.TargetExtension()
}

// CompiledProgramName replaces grammar extension in file path with the target extension.
func (g *Grammar) CompiledProgramName(path string) string {
	ext := g.ExtensionName()
	if ext == "" {
		return path
	}
	return strings.Replace(path, "."+ext, "."+g.TargetExtension(), 1)
}

// DefinitionByKeywordPath resolves definition of a document line by keywords of its stack.
// At each step the keyword is looked up in the runtime keyword map of the previous definition,
// unknown keywords resolve to the catch-all definition. Empty path gives the root definition.
func (g *Grammar) DefinitionByKeywordPath(path string) *Definition {
	if path == "" {
		return g.Root
	}
	if d, found := g.paths.Get(path); found {
		return d.(*Definition)
	}

	subject := g.Root
	for _, kw := range strings.Split(path, " ") {
		next := subject.RunTimeKeywordMap()[kw]
		if next == nil {
			next = subject.CatchAllDefinition()
		}
		subject = next
	}
	g.paths.Set(path, subject, cache.NoExpiration)
	return subject
}
