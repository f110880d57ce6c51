package tree

import (
	"testing"

	. "github.com/ava12/jtree/internal/test"
)

const walkSample = "a\n b\n  c\n b\nd\n b 1"

func TestWalk(t *testing.T) {
	root := Parse(walkSample)
	var visited []*Node
	Walk(root, WalkRtl, func(n *Node) (bool, bool) {
		visited = append(visited, n)
		return true, true
	})
	expectLines(t, []string{"", "d", "b 1", "a", "b", "b", "c"}, visited)

	visited = nil
	Walk(root, WalkLtr, func(n *Node) (bool, bool) {
		visited = append(visited, n)
		return n.Keyword() != "a", true
	})
	expectLines(t, []string{"", "a", "d", "b 1"}, visited)

	visited = nil
	Walk(root, WalkLtr, func(n *Node) (bool, bool) {
		visited = append(visited, n)
		return true, n.Keyword() != "b"
	})
	expectLines(t, []string{"", "a", "b", "c", "d", "b 1"}, visited)
}

func TestSelector(t *testing.T) {
	root := Parse(walkSample)
	bs := NewSelector().Search(IsA("b"), false).Apply(root)
	ExpectInt(t, 3, len(bs))

	parents := NewSelector().Search(IsA("b"), false).Extract(Ancestors(0)).Apply(root)
	expectLines(t, []string{"a", "d"}, parents)

	leaves := NewSelector().Search(IsAll(IsA("b"), IsTerminal), true).Apply(root)
	expectLines(t, []string{"b", "b 1"}, leaves)

	withWords := NewSelector().Search(HasWords("b", "1"), true).Apply(root)
	expectLines(t, []string{"b 1"}, withWords)

	firstChildren := NewSelector().Extract(NthChildren(0, -1)).Filter(IsNot(IsA("d"))).Apply(root)
	expectLines(t, []string{"a"}, firstChildren)

	next := NewSelector().Extract(NthChildren(0)).Extract(NthSiblings(1, 2)).Apply(root)
	expectLines(t, []string{"d"}, next)

	either := NewSelector().Extract(Any(NthChildren(5), NthChildren(1))).Extract(All(NthChildren(0), Ancestors(0))).Apply(root)
	expectLines(t, []string{"b 1", ""}, either)
	ExpectBool(t, true, IsAny(IsA("x"), IsA("a"))(root.NodeAt(0)))
}
