package langdef

import (
	"strings"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/internal/pos"
	"github.com/ava12/jtree/tree"
)

const (
	UnknownDirectiveError = jtree.GrammarErrors + iota
	MissingIDError
	GrammarDefinedError
	DefinitionDefinedError
	WordTypeDefinedError
	UnknownParentError
	RecursionError
	WrongRegexpError
	WrongColumnError
	UnknownParseFunctionError
	WrongFrequencyError
	WrongConstructorError
)

func unknownDirectiveError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), UnknownDirectiveError, "unknownDirectiveError",
		"unknown directive %q", n.Keyword())
}

func missingIDError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), MissingIDError, "missingIdError",
		"%s requires an id", n.Keyword())
}

func defGrammarError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), GrammarDefinedError, "grammarDefinedError",
		"@grammar already defined")
}

func defDefinitionError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), DefinitionDefinedError, "definitionDefinedError",
		"keyword %q already defined", n.Word(1))
}

func defWordTypeError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), WordTypeDefinedError, "wordTypeDefinedError",
		"word type %q already defined", n.Word(1))
}

func unknownParentError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), UnknownParentError, "unknownParentError",
		"%q tried to extend %q but %q not found", n.Word(1), n.Word(2), n.Word(2))
}

func recursionError(name string, n *tree.Node, chain []string) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), RecursionError, "recursionError",
		"inheritance cycle: %s", strings.Join(chain, " -> "))
}

func regexpError(name string, n *tree.Node, e error) *jtree.Error {
	re, _ := n.Content()
	return jtree.FormatErrorPos(pos.Of(name, n, 0), WrongRegexpError, "wrongRegexpError",
		"incorrect RegExp %q (%s)", re, e.Error())
}

func columnError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), WrongColumnError, "wrongColumnError",
		"column index expected, got %q", n.Word(2))
}

func parseFunctionError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), UnknownParseFunctionError, "unknownParseFunctionError",
		"unknown parse function %q", n.Word(-1))
}

func frequencyError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), WrongFrequencyError, "wrongFrequencyError",
		"number expected, got %q", n.Word(1))
}

func constructorError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), WrongConstructorError, "wrongConstructorError",
		"constructor name expected")
}
