package langdef

import (
	"strings"

	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/tree"
)

// kind is the bootstrap node type of grammar descriptions.
type kind int

const (
	unknownKind kind = iota
	blankKind
	fileKind
	definitionKind
	wordTypeKind
	compilerKind
	listKind
	textKind
	flagKind
	valueKind
)

var definitionDirectives = map[string]kind{
	grammar.ColumnsKeyword:         valueKind,
	grammar.KeywordsKeyword:        listKind,
	grammar.CatchAllKeywordKeyword: valueKind,
	grammar.ConstantsKeyword:       listKind,
	grammar.DefaultsKeyword:        listKind,
	grammar.CompilerKeyword:        compilerKind,
	grammar.DescriptionKeyword:     textKind,
	grammar.FrequencyKeyword:       valueKind,
	grammar.ConstructorKeyword:     valueKind,
	grammar.AbstractKeyword:        flagKind,
	grammar.SingleKeyword:          flagKind,
	grammar.RequiredKeyword:        flagKind,
	grammar.GroupKeyword:           valueKind,
}

var directives = map[kind]map[string]kind{
	fileKind: {
		grammar.GrammarKeyword:  definitionKind,
		grammar.KeywordKeyword:  definitionKind,
		grammar.AbstractKeyword: definitionKind,
		grammar.WordTypeKeyword: wordTypeKind,
	},
	definitionKind: definitionDirectives,
	wordTypeKind: {
		grammar.RegexKeyword:        valueKind,
		grammar.EnumKeyword:         valueKind,
		grammar.KeywordTableKeyword: valueKind,
		grammar.ParseWithKeyword:    valueKind,
		grammar.DescriptionKeyword:  textKind,
	},
	compilerKind: {
		grammar.SubKeyword:             valueKind,
		grammar.ListDelimiterKeyword:   valueKind,
		grammar.IndentCharacterKeyword: valueKind,
		grammar.OpenChildrenKeyword:    valueKind,
		grammar.CloseChildrenKeyword:   valueKind,
	},
}

// ChildType selects child kind by the line keyword. List and text lines accept any children.
func (k kind) ChildType(line string) tree.Type {
	switch k {
	case listKind, textKind:
		return k
	}
	if strings.TrimSpace(line) == "" {
		return blankKind
	}

	keyword, _, _ := strings.Cut(line, " ")
	if ck, found := directives[k][keyword]; found {
		return ck
	}
	return unknownKind
}

func kindOf(n *tree.Node) kind {
	k, _ := n.Type().(kind)
	return k
}
