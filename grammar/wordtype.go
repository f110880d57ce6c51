package grammar

import (
	"regexp"
	"strconv"

	"github.com/ava12/jtree/tree"
)

// WordTest checks a single word. doc is the root of the document containing the word.
type WordTest interface {
	Valid(word string, doc *tree.Node) bool
}

// ParseFunc converts a word to a value.
type ParseFunc func(word string) any

// WordType is a named set of word tests with an optional value parser.
type WordType struct {
	ID    string
	Tests []WordTest
	// ParseName is the name of the parse function, empty for identity.
	ParseName string
	Parse     ParseFunc
	// Node is the source definition node, nil for built-in types.
	Node *tree.Node
}

// IsValid reports if the word passes all tests.
func (wt *WordType) IsValid(word string, doc *tree.Node) bool {
	for _, t := range wt.Tests {
		if !t.Valid(word, doc) {
			return false
		}
	}
	return true
}

// ParseWord converts word to value using the parse function, returns the word itself if there is none.
func (wt *WordType) ParseWord(word string) any {
	if wt.Parse == nil {
		return word
	}
	return wt.Parse(word)
}

// RegexTest matches the word against unanchored regular expression.
type RegexTest struct {
	Re *regexp.Regexp
}

func (t RegexTest) Valid(word string, _ *tree.Node) bool {
	return t.Re.MatchString(word)
}

// EnumTest accepts listed words.
type EnumTest struct {
	Values map[string]bool
}

func NewEnumTest(values ...string) EnumTest {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return EnumTest{m}
}

func (t EnumTest) Valid(word string, _ *tree.Node) bool {
	return t.Values[word]
}

// FuncTest accepts words for which the function returns true.
type FuncTest func(word string) bool

func (t FuncTest) Valid(word string, _ *tree.Node) bool {
	return t(word)
}

// KeywordTableTest accepts words found at Column position of document top-level lines
// having Keyword as the first word. The table is rebuilt when the document changes.
type KeywordTableTest struct {
	Keyword string
	Column  int
	cache   *keywordTable
}

type keywordTable struct {
	doc     *tree.Node
	version int64
	words   map[string]bool
}

func NewKeywordTableTest(keyword string, column int) *KeywordTableTest {
	return &KeywordTableTest{Keyword: keyword, Column: column, cache: &keywordTable{}}
}

func (t *KeywordTableTest) Valid(word string, doc *tree.Node) bool {
	if doc == nil {
		return false
	}

	c := t.cache
	version := doc.Version()
	if c.words == nil || c.doc != doc || c.version != version {
		c.words = make(map[string]bool)
		for _, n := range doc.FindNodes(t.Keyword) {
			if t.Column < len(n.Words()) {
				c.words[n.Word(t.Column)] = true
			}
		}
		c.doc = doc
		c.version = version
	}
	return c.words[word]
}

// ParseInt parses leading decimal integer, returns the word unchanged if there is none.
func ParseInt(word string) any {
	end := 0
	if end < len(word) && (word[end] == '-' || word[end] == '+') {
		end++
	}
	for end < len(word) && word[end] >= '0' && word[end] <= '9' {
		end++
	}
	v, e := strconv.Atoi(word[:end])
	if e != nil {
		return word
	}
	return v
}

// ParseFloat parses floating point number, returns the word unchanged on failure.
func ParseFloat(word string) any {
	v, e := strconv.ParseFloat(word, 64)
	if e != nil {
		return word
	}
	return v
}

// ParseFuncs contains parse functions available to @parseWith.
var ParseFuncs = map[string]ParseFunc{
	"parseInt":   ParseInt,
	"parseFloat": ParseFloat,
}

var intRe = regexp.MustCompile(`^-?\d+$`)

var builtinWordTypes = map[string]*WordType{
	"any": {ID: "any"},
	"int": {ID: "int", Tests: []WordTest{RegexTest{intRe}}, ParseName: "parseInt", Parse: ParseInt},
	"float": {ID: "float", ParseName: "parseFloat", Parse: ParseFloat, Tests: []WordTest{FuncTest(func(w string) bool {
		_, e := strconv.ParseFloat(w, 64)
		return e == nil
	})}},
	"bit":  {ID: "bit", Tests: []WordTest{NewEnumTest("0", "1")}},
	"bool": {ID: "bool", Tests: []WordTest{NewEnumTest("true", "false")}},
}

// BuiltinWordType returns built-in word type: any, int, float, bit, or bool.
func BuiltinWordType(id string) *WordType {
	return builtinWordTypes[id]
}
