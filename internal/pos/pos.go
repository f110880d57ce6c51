// Package pos converts tree node locations to error positions.
package pos

import (
	"github.com/ava12/jtree/tree"
)

// Pos implements jtree.SourcePos.
type Pos struct {
	Name   string
	LineNo int
	ColNo  int
}

func (p Pos) SourceName() string {
	return p.Name
}

func (p Pos) Line() int {
	return p.LineNo
}

func (p Pos) Col() int {
	return p.ColNo
}

// Of returns position of the node line in document with given name.
func Of(name string, n *tree.Node, col int) Pos {
	_, y := n.Point()
	return Pos{name, y, col}
}
