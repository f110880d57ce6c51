package tree

import (
	"github.com/ava12/jtree"
)

const (
	GraphParentError = jtree.TreeErrors + iota
	GraphLoopError
	WrongJSONError
	WrongYAMLError
)

func graphParentError(n *Node, id string) *jtree.Error {
	return jtree.FormatError(GraphParentError, "graphParentError",
		"%q tried to extend %q but %q not found", n.Line(), id, id)
}

func graphLoopError(n *Node, id string) *jtree.Error {
	return jtree.FormatError(GraphLoopError, "graphLoopError",
		"%q extends %q which leads back to itself", n.Line(), id)
}

func wrongJSONError(e error) *jtree.Error {
	return jtree.FormatError(WrongJSONError, "wrongJSONError", "cannot convert JSON to tree: %s", e.Error())
}

func wrongYAMLError(e error) *jtree.Error {
	return jtree.FormatError(WrongYAMLError, "wrongYAMLError", "cannot convert YAML to tree: %s", e.Error())
}
