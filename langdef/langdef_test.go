package langdef

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/internal/test"
	"github.com/ava12/jtree/tree"
)

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		errPrefix := "input #" + strconv.Itoa(index)
		_, e := ParseString("string", src)

		if code == 0 {
			if e != nil {
				t.Error(errPrefix + ": unexpected error: " + e.Error())
			}
			continue
		}

		if e == nil {
			t.Error(errPrefix + ": error expected, got success")
			continue
		}

		je, is := e.(*jtree.Error)
		if !is {
			t.Error(errPrefix + ": jtree.Error expected, got \"" + e.Error() + "\"")
			continue
		}

		if je.Code != code {
			t.Error(errPrefix + ": expected error code " + strconv.Itoa(code) + ", got " + strconv.Itoa(je.Code) + ": " + je.Message)
		}
	}
}

func TestValidGrammars(t *testing.T) {
	samples := []string{
		"",
		"\n\n",
		"@grammar g",
		"@grammar g\n @keywords a\n@keyword a\n @columns int*",
		"@keyword a\n @keywords\n  b c\n@keyword b a\n@abstract c",
		"@wordType w\n @regex ^w\n @enum wa wb\n @parseWith js parseInt",
		"@wordType ref\n @keywordTable def 1\n@keyword def\n @columns any",
		"@keyword a\n @description first\n  second\n  @third\n @constants\n  x 1\n  @y 2",
		"@keyword a\n @compiler js\n  @sub {int}\n  @listDelimiter ,\n  @openChildren {\n  @closeChildren }",
	}
	checkErrorCode(t, samples, 0)
}

func TestUnknownDirective(t *testing.T) {
	samples := []string{
		"foo",
		"@keyword a\n @foo",
		"@wordType w\n @columns int",
		"@keyword a\n @compiler js\n  @bogus x",
		"@keyword a\n @single\n  @child",
	}
	checkErrorCode(t, samples, UnknownDirectiveError)
}

func TestMissingID(t *testing.T) {
	samples := []string{
		"@keyword",
		"@abstract",
		"@wordType",
		"@grammar",
	}
	checkErrorCode(t, samples, MissingIDError)
}

func TestDuplicates(t *testing.T) {
	checkErrorCode(t, []string{"@grammar a\n@grammar b"}, GrammarDefinedError)
	checkErrorCode(t, []string{"@keyword a\n@keyword a", "@abstract a\n@keyword a"}, DefinitionDefinedError)
	checkErrorCode(t, []string{"@wordType w\n@wordType w"}, WordTypeDefinedError)
}

func TestInheritanceErrors(t *testing.T) {
	checkErrorCode(t, []string{"@keyword a b", "@keyword a\n@keyword b c"}, UnknownParentError)
	checkErrorCode(t, []string{"@keyword a a", "@keyword a b\n@keyword b a", "@abstract a c\n@abstract b a\n@keyword c b"}, RecursionError)
}

func TestDirectiveValues(t *testing.T) {
	checkErrorCode(t, []string{"@wordType w\n @regex (", "@wordType w\n @regex [a-"}, WrongRegexpError)
	checkErrorCode(t, []string{"@wordType w\n @keywordTable foo x", "@wordType w\n @keywordTable foo -1", "@wordType w\n @keywordTable foo"}, WrongColumnError)
	checkErrorCode(t, []string{"@wordType w\n @parseWith js parseBool", "@wordType w\n @parseWith"}, UnknownParseFunctionError)
	checkErrorCode(t, []string{"@keyword a\n @frequency often", "@keyword a\n @frequency"}, WrongFrequencyError)
	checkErrorCode(t, []string{"@keyword a\n @constructor go", "@keyword a\n @constructor"}, WrongConstructorError)
}

func TestErrorPosition(t *testing.T) {
	_, e := ParseString("g", "@keyword a\n @columns int\n @frequency x")
	test.ExpectErrorCode(t, WrongFrequencyError, e)
	je := e.(*jtree.Error)
	test.ExpectInt(t, 3, je.Line)
	test.ExpectString(t, "g", je.SourceName)
	test.ExpectString(t, `number expected, got "x" in g at line 3`, je.Message)
}

func TestDefinitionFields(t *testing.T) {
	src := `@grammar calc
 @keywords op
 @catchAllKeyword comment
 @compiler js
  @openChildren [
@abstract op
 @frequency 0.5
@keyword add op
 @columns int int*
 @description Adds
  numbers
 @constants
  sign +
 @defaults
  int 0
 @compiler js
  @sub {int*}
  @listDelimiter  +
  @indentCharacter
 @constructor go Adder math
 @single
 @required
@keyword comment
 @keywords
  op comment
 @catchAllKeyword comment`

	g, e := ParseString("calc.grammar", src)
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.ExpectString(t, "calc", g.Root.ID)
	test.ExpectString(t, "calc.grammar", g.Name)
	test.ExpectInt(t, 3, len(g.Definitions))
	test.ExpectString(t, "js", g.TargetExtension())

	op := g.Definition("op")
	test.ExpectBool(t, true, op.Abstract)
	test.Expect(t, op.Frequency == 0.5, 0.5, op.Frequency)

	add := g.Definition("add")
	test.ExpectBool(t, false, add.Abstract)
	test.ExpectBool(t, false, add.IsNonTerminal())
	test.ExpectString(t, "op", add.Parent)
	test.ExpectInt(t, 2, len(add.Columns))
	test.ExpectString(t, "int*", add.Columns[1])
	test.ExpectString(t, "Adds\nnumbers", add.Description)
	test.ExpectString(t, "+", add.Constants["sign"])
	test.ExpectString(t, "0", add.Defaults["int"])
	test.ExpectString(t, "Adder.math", add.ConstructorName())
	test.ExpectBool(t, true, add.Single)
	test.ExpectBool(t, true, add.Required)

	c, has := add.Compiler("js")
	test.ExpectBool(t, true, has)
	test.ExpectString(t, "{int*}", c.Sub)
	test.ExpectString(t, " +", c.ListDelimiter)
	test.ExpectBool(t, true, c.HasIndent)
	test.ExpectString(t, "", c.IndentCharacter)

	comment := g.Definition("comment")
	test.ExpectBool(t, true, comment.IsNonTerminal())
	test.ExpectInt(t, 2, len(comment.Keywords))
	test.ExpectString(t, "NonTerminalNode", comment.ConstructorName())
	test.ExpectString(t, "comment", g.Root.CatchAllDefinition().ID)
}

func TestWordTypes(t *testing.T) {
	src := "@wordType color\n @enum red green\n@wordType count\n @regex ^\\d\n @parseWith parseInt"
	g, e := ParseString("", src)
	test.Assert(t, e == nil, "unexpected error: %v", e)

	color := g.WordType("color")
	test.ExpectBool(t, true, color.IsValid("red", nil))
	test.ExpectBool(t, false, color.IsValid("blue", nil))

	count := g.WordType("count")
	test.ExpectBool(t, true, count.IsValid("12px", nil))
	test.ExpectBool(t, false, count.IsValid("px", nil))
	test.Expect(t, count.ParseWord("12px") == 12, 12, count.ParseWord("12px"))
	test.ExpectString(t, "parseInt", count.ParseName)
}

func TestParseTree(t *testing.T) {
	g, e := Parse("plain", tree.Parse("@grammar g\n@keyword a"))
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.ExpectString(t, "g", g.ExtensionName())
	test.Assert(t, g.Definition("a") != nil, "definition a expected")
}

func TestParseCondensed(t *testing.T) {
	src := `@keyword base
 @columns int
 @frequency 0.5
@keyword child base
 @description child
@keyword grandchild child
 @columns float`

	g, e := ParseCondensed("condensed", src)
	test.Assert(t, e == nil, "unexpected error: %v", e)

	child := g.Definition("child")
	test.ExpectString(t, "base", child.Parent)
	test.ExpectInt(t, 1, len(child.Columns))
	test.ExpectString(t, "int", child.Columns[0])
	test.Expect(t, child.Frequency == 0.5, 0.5, child.Frequency)
	test.ExpectString(t, "child", child.Description)

	grandchild := g.Definition("grandchild")
	test.ExpectString(t, "float", grandchild.Columns[0])
	test.ExpectString(t, "child", grandchild.Description)
}

func TestCondensedErrors(t *testing.T) {
	_, e := ParseCondensed("c", "@keyword a\n@keyword b c")
	test.ExpectErrorCode(t, UnknownParentError, e)
	test.ExpectInt(t, 2, e.(*jtree.Error).Line)

	_, e = ParseCondensed("c", "@keyword a b\n@keyword b a")
	test.ExpectErrorCode(t, RecursionError, e)
}

func TestCondensedGroups(t *testing.T) {
	src := `@abstract op
 @columns int int
 @group add sub
@keyword mul op`

	g, e := ParseCondensed("groups", src)
	test.Assert(t, e == nil, "unexpected error: %v", e)

	for _, id := range []string{"add", "sub", "mul"} {
		d := g.Definition(id)
		test.Assert(t, d != nil, "definition %s expected", id)
		test.ExpectString(t, "op", d.Parent)
		test.Assert(t, !d.Abstract, "%s must not be abstract", id)
		test.ExpectInt(t, 2, len(d.Columns))
	}
	test.Assert(t, g.Definition("op").Abstract, "op must be abstract")
	test.ExpectString(t, "add mul sub", strings.Join(g.Root.RunTimeKeywordNames(), " "))
}

func TestCondensedAbstractFlag(t *testing.T) {
	src := `@keyword base
 @abstract
 @columns int
@keyword child base`

	g, e := ParseCondensed("flags", src)
	test.Assert(t, e == nil, "unexpected error: %v", e)
	test.Assert(t, g.Definition("base").Abstract, "base must be abstract")

	child := g.Definition("child")
	test.Assert(t, !child.Abstract, "child must not be abstract")
	test.ExpectInt(t, 1, len(child.Columns))
	test.ExpectString(t, "child", strings.Join(g.Root.RunTimeKeywordNames(), " "))
}

func TestCondensedSameKeywordParent(t *testing.T) {
	src := `@wordType number
 @regex ^[0-9]+$
@keyword number
 @columns int
@keyword big number`

	g, e := ParseCondensed("parents", src)
	test.Assert(t, e == nil, "unexpected error: %v", e)

	big := g.Definition("big")
	test.ExpectString(t, "number", big.Parent)
	test.ExpectInt(t, 1, len(big.Columns))
	test.ExpectString(t, "int", big.Columns[0])
	test.Assert(t, g.WordType("number") != nil, "word type number expected")
}
