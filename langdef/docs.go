// Package langdef converts textual grammar description to grammar.Grammar structure.
//
// Grammar is described in tree notation itself. Top-level lines are:
//
//	@grammar <id>                    # the root definition, at most one
//	@wordType <id>                   # word type definition
//	@keyword <id> [<parent id>]      # keyword definition, optionally extending another one
//	@abstract <id> [<parent id>]     # definition that is never matched directly
//
// Keyword, abstract, and root definitions may contain:
//
//	@columns <type>... [<type>*]     # word types of the words following the keyword
//	@keywords <id>...                # allowed child keywords, may be listed as child lines too
//	@catchAllKeyword <id>            # definition used for unknown child keywords
//	@constants                       # child lines are "<name> <value>" pairs
//	@defaults                        # child lines are "<column name> <value>" pairs
//	@compiler <target>               # compiler block, see below
//	@description <text>
//	@frequency <float>               # used to order autocomplete suggestions
//	@constructor <lang> <name> [<module>] # registered runtime node constructor
//	@abstract                        # marks @keyword as abstract
//	@single                          # keyword may appear at most once among siblings
//	@required                        # keyword must be present in each container admitting it
//	@group <id>...                   # condensed @abstract only: declares "@keyword <id> <abstract id>" lines
//
// Compiler block may contain:
//
//	@sub <template>                  # {type} takes the next word of the type, {type*} takes the rest
//	@listDelimiter <string>          # used to join {type*} words, single space by default
//	@indentCharacter <string>        # replaces each step of source indentation
//	@openChildren <string>           # appended to compiled line of a node with children
//	@closeChildren <string>          # placed on a separate line after compiled children
//
// Word type definition may contain:
//
//	@regex <regexp>                  # unanchored regular expression
//	@enum <word>...
//	@keywordTable <keyword> <column> # words at given column of top-level lines with given keyword
//	@parseWith [<lang>] parseInt|parseFloat
//
// Built-in word types are any, int, float, bit, and bool. Blank lines are ignored.
// Any other line is an error.
//
// In condensed descriptions definitions do not repeat inherited lines:
// each @keyword gets lines of its parent chain merged before its own ones (see tree.Node.Expanded).
// @abstract and @group lines are not inherited. A parent is looked up among top-level lines
// by the second word, a line with the same keyword as the child is preferred.
package langdef
