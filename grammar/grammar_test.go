package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/langdef"
	"github.com/ava12/jtree/tree"
)

const scriptGrammar = `@grammar script
 @keywords statement
 @catchAllKeyword comment
 @compiler py
@abstract statement
@keyword print statement
 @columns any*
 @frequency 0.9
@keyword block statement
 @keywords statement
 @frequency 0.1
@keyword comment
 @catchAllKeyword comment
@keyword hidden`

func loadGrammar(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, e := langdef.ParseString("test.grammar", src)
	require.NoError(t, e)
	return g
}

func TestRunTimeKeywords(t *testing.T) {
	g := loadGrammar(t, scriptGrammar)
	assert.Equal(t, []string{"block", "print"}, g.Root.RunTimeKeywordNames())
	assert.Equal(t, []string{"block", "print"}, g.Definition("block").RunTimeKeywordNames())
	assert.Empty(t, g.Definition("print").RunTimeKeywordNames())
	assert.Equal(t, []string{"print", "block"}, g.Root.TopKeywords())
	assert.Len(t, g.KeywordDefinitions(), 4)
}

func TestImplicitRoot(t *testing.T) {
	g := loadGrammar(t, "@keyword a\n@abstract b\n@keyword c b")
	assert.Equal(t, []string{"a", "c"}, g.Root.RunTimeKeywordNames())
	assert.Equal(t, "", g.ExtensionName())
	assert.Equal(t, "doc.txt", g.CompiledProgramName("doc.txt"))
}

func TestDefinitionByKeywordPath(t *testing.T) {
	g := loadGrammar(t, scriptGrammar)
	samples := []struct {
		path, id string
	}{
		{"", "script"},
		{"print", "print"},
		{"block print", "print"},
		{"block block print", "print"},
		{"block foo", "comment"},
		{"foo", "comment"},
		{"foo bar", "comment"},
		{"hidden", "comment"},
		{"print foo", "comment"},
	}
	for _, s := range samples {
		d := g.DefinitionByKeywordPath(s.path)
		require.NotNil(t, d, s.path)
		assert.Equal(t, s.id, d.ID, s.path)
	}
	assert.Same(t, g.DefinitionByKeywordPath("block print"), g.DefinitionByKeywordPath("block print"))
	assert.True(t, g.DefinitionByKeywordPath("").IsRoot())
}

func TestErrorDefinition(t *testing.T) {
	g := loadGrammar(t, "@keyword a\n @keywords a")
	e := g.DefinitionByKeywordPath("x")
	assert.Same(t, g.ErrorDefinition(), e)
	assert.Equal(t, grammar.ErrorDefinitionID, e.ID)
	assert.Equal(t, grammar.ErrorNode, e.ConstructorName())
	assert.Same(t, e, g.DefinitionByKeywordPath("x y"))
	assert.Same(t, e, g.DefinitionByKeywordPath("a b"))
	assert.Equal(t, "a", g.DefinitionByKeywordPath("a a").ID)
}

func TestCatchAllSkipsAbstract(t *testing.T) {
	g := loadGrammar(t, "@grammar g\n @catchAllKeyword base\n@abstract base\n@keyword a\n @catchAllKeyword missing")
	assert.Same(t, g.ErrorDefinition(), g.Root.CatchAllDefinition())
	assert.Same(t, g.ErrorDefinition(), g.Definition("a").CatchAllDefinition())
	assert.Equal(t, "a", g.Root.DefinitionByName("a").ID)
}

func TestInheritance(t *testing.T) {
	g := loadGrammar(t, scriptGrammar)
	block := g.Definition("block")
	assert.Equal(t, []string{"statement"}, block.Ancestors())
	assert.True(t, block.IsA([]string{"statement"}))
	assert.False(t, block.IsA([]string{"comment"}))
	assert.Equal(t, map[string]bool{"block": true, "statement": true}, block.Chain())
	assert.Same(t, g.Definition("statement"), block.ParentDefinition())
	assert.Nil(t, g.Definition("comment").ParentDefinition())
	assert.True(t, block.IsNonTerminal())
	assert.False(t, g.Definition("print").IsNonTerminal())
}

func TestColumns(t *testing.T) {
	g := loadGrammar(t, "@keyword add\n @columns int int*\n@keyword fixed\n @columns int")
	add := g.Definition("add")
	assert.Equal(t, []string{"int", "int"}, add.ColumnTypes())
	assert.Equal(t, "int", add.CatchAllColumnType())
	assert.Equal(t, "", g.Definition("fixed").CatchAllColumnType())
}

func TestSuggest(t *testing.T) {
	g := loadGrammar(t, scriptGrammar)
	assert.Equal(t, "print", g.Root.Suggest("prnt"))
	assert.Equal(t, "block", g.Root.Suggest("blok"))
	assert.Equal(t, "block", g.Root.Suggest("blocks"))
	assert.Equal(t, "", g.Root.Suggest("xyz"))
	assert.Equal(t, "", g.Root.Suggest(""))
}

func TestAutocompleteWords(t *testing.T) {
	g := loadGrammar(t, scriptGrammar)
	assert.Equal(t, []string{"block", "print"}, g.Root.AutocompleteWords(""))
	assert.Equal(t, []string{"print"}, g.Root.AutocompleteWords("in"))
	assert.Equal(t, []string{"print", "paint"}, g.Root.AutocompleteWords("p", "paint", "print"))
	assert.Nil(t, g.Root.AutocompleteWords("print"))
}

func TestCompilerFormat(t *testing.T) {
	c := &grammar.Compiler{Sub: "{int} + {int*} = {any}{float}", ListDelimiter: ", "}
	words := map[string][]string{"int": {"1", "2", "3"}, "any": {"x"}}
	assert.Equal(t, "1 + 2, 3 = x", c.Format(words))

	c = &grammar.Compiler{Sub: "[{any*}]"}
	assert.Equal(t, "[a b]", c.Format(map[string][]string{"any": {"a", "b"}}))
}

func TestCompiledProgramName(t *testing.T) {
	g := loadGrammar(t, scriptGrammar)
	assert.Equal(t, "script", g.ExtensionName())
	assert.Equal(t, "py", g.TargetExtension())
	assert.Equal(t, "dir/main.py", g.CompiledProgramName("dir/main.script"))
}

func TestBuiltinWordTypes(t *testing.T) {
	g := loadGrammar(t, "@wordType bit\n @enum on off")
	samples := []struct {
		typ, word string
		valid     bool
	}{
		{"any", "", true},
		{"int", "12", true},
		{"int", "-3", true},
		{"int", "1.2", false},
		{"float", "1e3", true},
		{"float", "x", false},
		{"bool", "true", true},
		{"bool", "yes", false},
		{"bit", "on", true},
		{"bit", "1", false},
	}
	for _, s := range samples {
		wt := g.WordType(s.typ)
		require.NotNil(t, wt, s.typ)
		assert.Equal(t, s.valid, wt.IsValid(s.word, nil), s.typ+" "+s.word)
	}
	assert.Nil(t, g.WordType("missing"))
	assert.Equal(t, "1", grammar.BuiltinWordType("bit").ParseWord("1"))
}

func TestParseFuncs(t *testing.T) {
	assert.Equal(t, -12, grammar.ParseInt("-12abc"))
	assert.Equal(t, "abc", grammar.ParseInt("abc"))
	assert.Equal(t, 1.5, grammar.ParseFloat("1.5"))
	assert.Equal(t, "x", grammar.ParseFloat("x"))
	assert.Equal(t, 7, grammar.BuiltinWordType("int").ParseWord("7"))
}

func TestKeywordTable(t *testing.T) {
	doc := tree.Parse("def x\ndef y\nuse x")
	kt := grammar.NewKeywordTableTest("def", 1)
	assert.True(t, kt.Valid("x", doc))
	assert.False(t, kt.Valid("z", doc))
	assert.False(t, kt.Valid("x", nil))

	doc.AppendLine("def z")
	assert.True(t, kt.Valid("z", doc))
	doc.NodeAt(0).SetLine("def w")
	assert.False(t, kt.Valid("x", doc))
	assert.True(t, kt.Valid("w", doc))
}

func TestConstantsObject(t *testing.T) {
	g := loadGrammar(t, "@keyword a\n @constants\n  pi 3.14\n  name A B")
	c := g.Definition("a").ConstantsObject()
	assert.Equal(t, map[string]string{"pi": "3.14", "name": "A B"}, c)
	c["pi"] = "3"
	assert.Equal(t, "3.14", g.Definition("a").Constants["pi"])
}
