package parser

import (
	"github.com/ava12/jtree"
	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/internal/pos"
	"github.com/ava12/jtree/tree"
)

const InvalidConstructorPathError = jtree.GrammarErrors + 50

const (
	InvalidKeywordError = jtree.DocumentErrors + iota
	UnfilledColumnError
	ExtraWordError
	GrammarDefinitionError
	InvalidWordError
	NodeTypeUsedMultipleTimesError
	MissingRequiredKeywordError
)

const (
	MissingCompilerError = jtree.CompileErrors + iota
	InvalidKeywordCompileError
)

func invalidConstructorPathError(g *grammar.Grammar, d *grammar.Definition) *jtree.Error {
	msg := "no constructor %q registered for keyword %q"
	if d.Node == nil {
		return jtree.FormatError(InvalidConstructorPathError, "invalidConstructorPathError", msg, d.ConstructorName(), d.ID)
	}
	return jtree.FormatErrorPos(pos.Of(g.Name, d.Node, 0), InvalidConstructorPathError, "invalidConstructorPathError",
		msg, d.ConstructorName(), d.ID)
}

func invalidKeywordError(name string, n *tree.Node, suggestion string) *jtree.Error {
	msg := "invalid keyword %q"
	params := []any{n.Keyword()}
	if suggestion != "" {
		msg += " (did you mean %q?)"
		params = append(params, suggestion)
	}
	return jtree.FormatErrorPos(pos.Of(name, n, 0), InvalidKeywordError, "invalidKeywordError", msg, params...)
}

func unfilledColumnError(name string, c *Cell) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, c.node, c.Index), UnfilledColumnError, "unfilledColumnError",
		"missing %q column in %q", c.Type, c.node.Line())
}

func extraWordError(name string, c *Cell) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, c.node, c.Index), ExtraWordError, "extraWordError",
		"extra word %q in %q", c.Word, c.node.Line())
}

func grammarDefinitionError(name string, c *Cell, g *grammar.Grammar) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, c.node, c.Index), GrammarDefinitionError, "grammarDefinitionError",
		"no column type %q in grammar %q", c.TypeID(), g.ExtensionName())
}

func invalidWordError(name string, c *Cell) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, c.node, c.Index), InvalidWordError, "invalidWordError",
		"%q does not fit in %q column", c.Word, c.Type)
}

func nodeTypeUsedMultipleTimesError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), NodeTypeUsedMultipleTimesError, "nodeTypeUsedMultipleTimesError",
		"keyword %q used more than once", n.Keyword())
}

func missingRequiredKeywordError(name string, n *tree.Node, keyword string) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), MissingRequiredKeywordError, "missingRequiredKeywordError",
		"missing required keyword %q", keyword)
}

func missingCompilerError(name string, n *tree.Node, target string) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), MissingCompilerError, "missingCompilerError",
		"no compiler for target %q for line %q", target, n.Line())
}

func invalidKeywordCompileError(name string, n *tree.Node) *jtree.Error {
	return jtree.FormatErrorPos(pos.Of(name, n, 0), InvalidKeywordCompileError, "invalidKeywordCompileError",
		"cannot compile invalid keyword %q", n.Keyword())
}
