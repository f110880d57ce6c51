package tree

import (
	"strings"
)

// Graph returns inheritance chain of the node, the most distant ancestor first and the node itself last.
// Siblings are linked by words: parentCol word of a node refers to the sibling having the same idCol word.
// Empty or missing parentCol word ends the chain.
// If several siblings have the same id, the one with the same keyword as the child is preferred.
func (n *Node) Graph(idCol, parentCol int) ([]*Node, error) {
	return n.graph(
		func(p *Node, c *Node, id string) *Node {
			var first *Node
			for _, s := range p.children {
				if !s.HasWord(idCol, id) {
					continue
				}
				if s.Keyword() == c.Keyword() {
					return s
				}
				if first == nil {
					first = s
				}
			}
			return first
		},
		func(c *Node) string { return c.Word(parentCol) },
	)
}

// GraphByKey returns inheritance chain where the parent id is the content of key child
// and siblings are identified by their keywords.
func (n *Node) GraphByKey(key string) ([]*Node, error) {
	return n.graph(
		func(p *Node, _ *Node, id string) *Node { return p.NodeByColumn(0, id) },
		func(c *Node) string {
			content, _ := c.FindContent(key)
			return content
		},
	)
}

func (n *Node) graph(byID func(p, c *Node, id string) *Node, parentID func(c *Node) string) ([]*Node, error) {
	chain := []*Node{n}
	seen := map[*Node]bool{n: true}
	for c := n; ; {
		id := parentID(c)
		if id == "" || c.parent == nil {
			break
		}

		p := byID(c.parent, c, id)
		if p == nil {
			return nil, graphParentError(c, id)
		}
		if seen[p] {
			return nil, graphLoopError(n, id)
		}

		seen[p] = true
		chain = append(chain, p)
		c = p
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Expanded serializes children after merging each child with its inheritance chain (see Graph).
// Children of ancestors are merged first, so the node own children win.
func (n *Node) Expanded(idCol, parentCol int) (string, error) {
	nt := n.st.notation
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		chain, e := c.Graph(idCol, parentCol)
		if e != nil {
			return "", e
		}

		merged := newRoot(nt, "", nil)
		for _, a := range chain {
			merged.Extend(a)
		}
		holder := newRoot(nt, "", nil)
		parts[i] = holder.insertChild(c.line, merged.ChildrenString(), -1).String()
	}
	return strings.Join(parts, nt.Line), nil
}

// InheritanceTree builds a tree of child keywords nested according to their second words (parent ids).
// Parents must precede their descendants.
func (n *Node) InheritanceTree() *Node {
	word := n.st.notation.Word
	paths := make(map[string]string)
	res := newRoot(n.st.notation, "", nil)
	for _, c := range n.children {
		key := c.Word(0)
		path := key
		if pp, has := paths[c.Word(1)]; has {
			path = pp + word + key
		}
		paths[key] = path
		res.TouchNode(path)
	}
	return res
}
