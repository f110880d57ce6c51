/*
Package jtree is a toolkit for tree notation: an indentation-delimited document format
and a grammar engine compiling declarative grammar descriptions into parsers, validators,
and compilers for line-oriented languages.

Consists of subpackages:
  - cmd/jtree: console utility checking, compiling, and converting documents;
  - grammar: defines word types, keyword definitions, and the grammar structure;
  - langdef: converts grammar description (written in tree notation) to grammar structure;
  - parser: binds grammar to node constructors and builds typed program trees;
  - tree: lossless document model with navigation, mutation, and conversion functions.

Typical usage is:

1. Describe the language with @grammar, @wordType, and @keyword definitions.

2. Parse grammar description using langdef subpackage.

3. Register custom node constructors, if any, and create a parser for the grammar.

4. Parse documents, collect their errors, and compile them to the target format.
*/
package jtree

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	TreeErrors     = 1   // used by tree
	GrammarErrors  = 101 // used by langdef, grammar, and parser constructors registry
	DocumentErrors = 201 // used by parser when validating documents
	CompileErrors  = 301 // used by parser when compiling documents
)

// Error is the error type used by jtree subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Kind contains short error kind name, e.g. "invalidWordError".
	Kind string

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source document or 0.
	Line int

	// Col contains column (word) number in source line or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error.
type SourcePos interface {
	// SourceName returns source document name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, kind, msg, name string, line, col int) *Error {
	if name != "" && line != 0 {
		if col != 0 {
			msg += fmt.Sprintf(" in %s at line %d column %d", name, line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d", name, line)
		}
	}
	return &Error{code, kind, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	te, valid := target.(*Error)
	return valid && te.Code == e.Code
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, kind, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, kind, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, kind, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, kind, msg, pos.SourceName(), pos.Line(), pos.Col())
}
