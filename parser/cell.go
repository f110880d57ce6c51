package parser

import (
	"strings"

	"github.com/ava12/jtree"
	"github.com/ava12/jtree/grammar"
	"github.com/ava12/jtree/tree"
)

// Cell is a single word following the node keyword together with its declared column type.
type Cell struct {
	// Word is empty if the cell is not present.
	Word    string
	Present bool
	// Type is the declared column type, it ends with "*" for list columns and is empty for extra words.
	Type string
	// Index is 1-based position among words after the keyword.
	Index int

	node *tree.Node
	def  *grammar.Definition
	prog *Program
}

// IsOptional reports if the cell belongs to a list column.
func (c *Cell) IsOptional() bool {
	return strings.HasSuffix(c.Type, "*")
}

// TypeID returns column type id without list marker.
func (c *Cell) TypeID() string {
	return strings.TrimSuffix(c.Type, "*")
}

// WordType returns word type of the column or nil.
func (c *Cell) WordType() *grammar.WordType {
	if c.Type == "" {
		return nil
	}
	return c.prog.Grammar().WordType(c.TypeID())
}

// Value returns parsed word. Absent cell gives the column default value, if any, or nil.
func (c *Cell) Value() any {
	word := c.Word
	if !c.Present {
		d, has := c.def.DefaultFor(c.TypeID())
		if !has {
			return nil
		}
		word = d
	}

	wt := c.WordType()
	if wt == nil {
		return word
	}
	return wt.ParseWord(word)
}

// Error validates the cell, returns nil for valid cell.
func (c *Cell) Error() *jtree.Error {
	name := c.prog.name
	switch {
	case !c.Present && c.IsOptional():
		return nil
	case !c.Present:
		return unfilledColumnError(name, c)
	case c.Type == "":
		return extraWordError(name, c)
	}

	wt := c.WordType()
	if wt == nil {
		return grammarDefinitionError(name, c, c.prog.Grammar())
	}
	if !wt.IsValid(c.Word, c.prog.Node) {
		return invalidWordError(name, c)
	}
	return nil
}

func buildCells(prog *Program, n *tree.Node, d *grammar.Definition) []*Cell {
	words := n.WordsFrom(1)
	catchAll := d.CatchAllColumnType()
	l := len(words)
	if len(d.Columns) > l {
		l = len(d.Columns)
	}

	res := make([]*Cell, l)
	for i := range res {
		c := &Cell{Index: i + 1, node: n, def: d, prog: prog}
		if i < len(words) {
			c.Word, c.Present = words[i], true
		}
		switch {
		case i < len(d.Columns):
			c.Type = d.Columns[i]
		case catchAll != "":
			c.Type = catchAll + "*"
		}
		res[i] = c
	}
	return res
}
