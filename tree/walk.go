package tree

// Ancestor returns ancestor of given level (0 is the parent) or nil.
func Ancestor(n *Node, level int) *Node {
	for n != nil && level >= 0 {
		n = n.parent
		level--
	}
	return n
}

// NthSibling returns sibling at given offset, negative offset means older sibling. Does not wrap.
func NthSibling(n *Node, offset int) *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent.nodeAtStrict(n.Index() + offset)
}

func (n *Node) nodeAtStrict(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NodeVisitor is called for each visited node.
// Returning false walkChildren skips node descendants, returning false walkSiblings skips the rest of siblings.
type NodeVisitor func(n *Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits the node and its descendants in depth-first order.
func Walk(n *Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n *Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	l := len(n.children)
	for i := 0; i < l && vc; i++ {
		j := i
		if rtl {
			j = l - 1 - i
		}
		vc = visitNode(n.children[j], v, rtl)
	}
	return vs
}

type NodeFilter func(n *Node) bool
type NodeExtractor func(n *Node) []*Node

type NodeSelector func(n *Node) []*Node

// Selector is a chain of node selectors applied to each input node in turn.
type Selector struct {
	selectors []NodeSelector
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply returns nodes selected from input nodes, each node is returned once.
func (s *Selector) Apply(input ...*Node) []*Node {
	res := make([]*Node, 0)
	index := make(map[*Node]bool)
	hasTransformers := (len(s.selectors) > 0)

	for i, n := range input {
		if n == nil {
			continue
		}

		var ns []*Node
		if hasTransformers {
			ns = selectNodes(input[i:i+1], s.selectors)
		} else {
			ns = input[i : i+1]
		}

		for _, tn := range ns {
			if !index[tn] {
				index[tn] = true
				res = append(res, tn)
			}
		}
	}

	return res
}

func selectNodes(ns []*Node, nss []NodeSelector) []*Node {
	res := make([]*Node, 0)
	s := nss[0]
	nss = nss[1:]
	goDeeper := (len(nss) > 0)
	for _, n := range ns {
		if goDeeper {
			res = append(res, selectNodes(s(n), nss)...)
		} else {
			res = append(res, s(n)...)
		}
	}
	return res
}

func (s *Selector) Use(ns NodeSelector) *Selector {
	if ns != nil {
		s.selectors = append(s.selectors, ns)
	}
	return s
}

func (s *Selector) Filter(nf NodeFilter) *Selector {
	return s.Use(func(n *Node) []*Node {
		if nf(n) {
			return []*Node{n}
		}
		return nil
	})
}

func (s *Selector) Extract(ne NodeExtractor) *Selector {
	return s.Use(func(n *Node) []*Node {
		return ne(n)
	})
}

// Search selects matching descendants of the node (not the node itself).
// Descendants of matching nodes are searched only if deepSearch is set.
func (s *Selector) Search(nf NodeFilter, deepSearch bool) *Selector {
	return s.Use(func(n *Node) []*Node {
		res := make([]*Node, 0)
		visitNode(n, func(nn *Node) (vc, vs bool) {
			if nn != n && nf(nn) {
				res = append(res, nn)
				return deepSearch, true
			}
			return true, true
		}, false)
		return res
	})
}

func IsNot(f NodeFilter) NodeFilter {
	return func(n *Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}

func IsAll(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if !f(n) {
				return false
			}
		}
		return true
	}
}

// IsA matches nodes with any of given keywords.
func IsA(keywords ...string) NodeFilter {
	return func(n *Node) bool {
		kw := n.Keyword()
		for _, k := range keywords {
			if kw == k {
				return true
			}
		}
		return false
	}
}

// HasWords matches nodes which lines start with given words.
func HasWords(words ...string) NodeFilter {
	return func(n *Node) bool {
		return n.hasColumns(words)
	}
}

// IsTerminal matches nodes without children.
func IsTerminal(n *Node) bool {
	return len(n.children) == 0
}

func Any(nss ...NodeExtractor) NodeExtractor {
	return func(n *Node) (res []*Node) {
		for _, ns := range nss {
			res = ns(n)
			if len(res) > 0 {
				break
			}
		}
		return
	}
}

func All(nss ...NodeExtractor) NodeExtractor {
	return func(n *Node) (res []*Node) {
		for _, ns := range nss {
			res = append(res, ns(n)...)
		}
		return
	}
}

func Ancestors(levels ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range levels {
			nn := Ancestor(n, i)
			if nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

// NthChildren extracts children at given indexes, negative index counts from the end.
func NthChildren(indexes ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range indexes {
			nn := n.NodeAt(i)
			if nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthSiblings(offsets ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range offsets {
			nn := NthSibling(n, i)
			if nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}
