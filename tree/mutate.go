package tree

import (
	"sort"
	"strconv"
	"strings"
)

// SetLine replaces node line. Does nothing if the line is unchanged.
func (n *Node) SetLine(line string) {
	if line == n.line {
		return
	}

	if n.parent != nil {
		n.parent.index = nil
	}
	n.line = line
	n.words = nil
	n.touch()
}

func (n *Node) setWords(ws []string) {
	n.SetLine(strings.Join(ws, n.st.notation.Word))
}

// SetWord replaces nth word of the line, negative index counts from the end.
// The line is padded with empty words if needed.
func (n *Node) SetWord(index int, word string) {
	ws := append([]string(nil), n.Words()...)
	if index < 0 {
		index += len(ws)
		if index < 0 {
			return
		}
	}
	for len(ws) <= index {
		ws = append(ws, "")
	}
	ws[index] = word
	n.setWords(ws)
}

// InsertWord inserts word at given position, negative index counts from the end.
func (n *Node) InsertWord(index int, word string) {
	ws := n.Words()
	if index < 0 {
		index += len(ws)
		if index < 0 {
			index = 0
		}
	}
	if index > len(ws) {
		index = len(ws)
	}
	res := make([]string, 0, len(ws)+1)
	res = append(res, ws[:index]...)
	res = append(res, word)
	res = append(res, ws[index:]...)
	n.setWords(res)
}

// DeleteWord removes word at given position.
func (n *Node) DeleteWord(index int) {
	ws := n.Words()
	if index < 0 {
		index += len(ws)
	}
	if index < 0 || index >= len(ws) {
		return
	}
	res := make([]string, 0, len(ws)-1)
	res = append(res, ws[:index]...)
	n.setWords(append(res, ws[index+1:]...))
}

// SetKeyword replaces the first word of the line.
func (n *Node) SetKeyword(keyword string) {
	n.SetWord(0, keyword)
}

// SetContent replaces words following the keyword.
// Content containing line delimiter is treated as content followed by child lines.
func (n *Node) SetContent(content string) {
	if strings.Contains(content, n.st.notation.Line) {
		n.SetContentWithChildren(content)
		return
	}

	if old, has := n.Content(); has && old == content {
		return
	}
	n.SetLine(n.Keyword() + n.st.notation.Word + content)
}

// ClearContent leaves only the keyword in the line.
func (n *Node) ClearContent() {
	n.SetLine(n.Keyword())
}

// SetContentWithChildren sets content from the first line of the text and replaces children
// with the remaining lines. Empty text clears both content and children.
func (n *Node) SetContentWithChildren(text string) {
	n.SetChildren("")
	if text == "" {
		n.ClearContent()
		return
	}

	content, children, _ := strings.Cut(text, n.st.notation.Line)
	n.SetContent(content)
	n.parseText(children)
}

// SetChildren replaces all children with the nodes parsed from text.
func (n *Node) SetChildren(text string) {
	if len(n.children) > 0 {
		n.children = nil
		n.touchChildren()
	}
	n.parseText(text)
}

// SetFromText sets node line from the first line of the text and children from the remaining lines.
func (n *Node) SetFromText(text string) {
	if n.String() == text {
		return
	}

	line, children, _ := strings.Cut(text, n.st.notation.Line)
	n.SetLine(line)
	n.SetChildren(children)
}

// AppendLine adds a new last child.
func (n *Node) AppendLine(line string) *Node {
	return n.insertChild(line, "", -1)
}

// AppendLineAndChildren adds a new last child with its children parsed from text.
func (n *Node) AppendLineAndChildren(line, children string) *Node {
	return n.insertChild(line, children, -1)
}

// InsertLine inserts a new child at given position, negative index counts from the end.
func (n *Node) InsertLine(line string, index int) *Node {
	return n.InsertLineAndChildren(line, "", index)
}

// InsertLineAndChildren inserts a new child with children parsed from text.
// Negative index counts from the end, -1 inserts before the last child.
func (n *Node) InsertLineAndChildren(line, children string, index int) *Node {
	if index < 0 {
		index--
	}
	return n.insertChild(line, children, index)
}

// PrependLine inserts a new first child.
func (n *Node) PrependLine(line string) *Node {
	return n.insertChild(line, "", 0)
}

// PushContentAndChildren appends a child which keyword is the least unused number
// not less than the number of children.
func (n *Node) PushContentAndChildren(content, children string) *Node {
	i := len(n.children)
	for n.Has(strconv.Itoa(i)) {
		i++
	}
	line := strconv.Itoa(i)
	if content != "" {
		line += n.st.notation.Word + content
	}
	return n.insertChild(line, children, -1)
}

// Concat appends copies of the children of other node.
func (n *Node) Concat(other *Node) []*Node {
	res := make([]*Node, 0, len(other.children))
	for _, c := range other.children {
		res = append(res, n.insertChild(c.line, c.ChildrenString(), -1))
	}
	return res
}

// CopyTo inserts a copy of the node to dst at given position, index out of range appends.
func (n *Node) CopyTo(dst *Node, index int) *Node {
	if index < 0 || index > len(dst.children) {
		index = -1
	}
	return dst.insertChild(n.line, n.ChildrenString(), index)
}

// Duplicate inserts a copy of the node right after it.
func (n *Node) Duplicate() *Node {
	if n.parent == nil {
		return nil
	}
	return n.CopyTo(n.parent, n.Index()+1)
}

// Clone returns a copy of the node as a root of a new tree.
func (n *Node) Clone() *Node {
	var t Type = Plain{}
	if c, is := n.typ.(Cloner); is {
		t = c.CloneType()
	}
	res := newRoot(n.st.notation, n.line, t)
	res.parseText(n.ChildrenString())
	return res
}

// Destroy removes the node from its parent. Does nothing for root node.
func (n *Node) Destroy() {
	if n.parent != nil {
		n.parent.deleteAt(n.Index())
	}
}

func (n *Node) deleteAt(indexes ...int) {
	if len(indexes) == 0 {
		return
	}

	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		drop[i] = true
	}
	res := n.children[:0]
	for i, c := range n.children {
		if drop[i] {
			c.parent = nil
		} else {
			res = append(res, c)
		}
	}
	for i := len(res); i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = res
	n.touchChildren()
}

// Delete removes all nodes matching keyword path and returns the number of removed nodes.
// Only the last word of the path may match several nodes.
func (n *Node) Delete(path string) int {
	target := n
	word := n.st.notation.Word
	if i := strings.LastIndex(path, word); i >= 0 {
		target = n.Node(path[:i])
		path = path[i+len(word):]
	}
	if target == nil {
		return 0
	}

	var indexes []int
	for i, c := range target.children {
		if c.Keyword() == path {
			indexes = append(indexes, i)
		}
	}
	target.deleteAt(indexes...)
	return len(indexes)
}

// Reverse reverses the order of children.
func (n *Node) Reverse() {
	cs := n.children
	for i, j := 0, len(cs)-1; i < j; i, j = i+1, j-1 {
		cs[i], cs[j] = cs[j], cs[i]
	}
	n.touchChildren()
}

// Shift removes the first child and returns it as a top-level node of a new tree.
// Returns nil if there are no children.
func (n *Node) Shift() *Node {
	if len(n.children) == 0 {
		return nil
	}

	first := n.children[0]
	n.deleteAt(0)
	var t Type = Plain{}
	if c, is := n.Root().typ.(Cloner); is {
		t = c.CloneType()
	}
	return first.CopyTo(newRoot(n.st.notation, "", t), 0)
}

// Sort sorts children using less function, equal nodes keep their order.
func (n *Node) Sort(less func(a, b *Node) bool) {
	sort.SliceStable(n.children, func(i, j int) bool {
		return less(n.children[i], n.children[j])
	})
	n.touchChildren()
}

// SortBy sorts children by the contents found using given keyword paths.
func (n *Node) SortBy(paths ...string) {
	n.Sort(func(a, b *Node) bool {
		for _, p := range paths {
			av, _ := a.FindContent(p)
			bv, _ := b.FindContent(p)
			if av != bv {
				return av < bv
			}
		}
		return false
	})
}

// Invert reverses the order of words in the line.
func (n *Node) Invert() {
	ws := n.Words()
	res := make([]string, len(ws))
	for i, w := range ws {
		res[len(ws)-1-i] = w
	}
	n.setWords(res)
}

// Rename changes keyword of the first child with old keyword.
func (n *Node) Rename(old, keyword string) {
	i := n.IndexOf(old)
	if i >= 0 {
		n.children[i].SetKeyword(keyword)
	}
}

// RenameAll changes keyword of all children with old keyword.
func (n *Node) RenameAll(old, keyword string) {
	for _, c := range n.FindNodes(old) {
		c.SetKeyword(keyword)
	}
}

// Remap changes keywords of children using old keyword to new keyword map.
func (n *Node) Remap(keywords map[string]string) {
	for _, c := range n.children {
		if kw, has := keywords[c.Keyword()]; has {
			c.SetKeyword(kw)
		}
	}
}

// TouchNode returns descendant found using keyword path creating missing nodes.
func (n *Node) TouchNode(path string) *Node {
	for _, kw := range strings.Split(path, n.st.notation.Word) {
		nn := n.Node(kw)
		if nn == nil {
			nn = n.AppendLine(kw)
		}
		n = nn
	}
	return n
}

// Extend merges children of other node into this node by keyword.
// Content of each merged node replaces the existing one, missing content clears it.
func (n *Node) Extend(other *Node) {
	for _, c := range other.children {
		target := n.TouchNode(c.Keyword())
		if content, has := c.Content(); has {
			target.SetContent(content)
		} else {
			target.ClearContent()
		}
		if len(c.children) > 0 {
			target.Extend(c)
		}
	}
}

// ExtendString merges nodes parsed from text into this node.
func (n *Node) ExtendString(text string) {
	n.Extend(ParseWith(n.st.notation, nil, text))
}

// ReplaceNode replaces the node with nodes parsed from the result of fn applied to serialized node.
func (n *Node) ReplaceNode(fn func(text string) string) []*Node {
	p := n.parent
	if p == nil {
		return nil
	}

	index := n.Index()
	parsed := ParseWith(n.st.notation, nil, fn(n.String()))
	res := make([]*Node, 0, len(parsed.children))
	for i, c := range parsed.children {
		res = append(res, p.insertChild(c.line, c.ChildrenString(), index+i))
	}
	n.Destroy()
	return res
}

// MacroExpand replaces macro usages with macro bodies in a copy of the tree.
// Macro definition line is "<defKeyword> <name> <param>...", usage line is "<useKeyword> <name> <value>...".
// Each parameter occurrence in the definition body is replaced with respective value.
func (n *Node) MacroExpand(defKeyword, useKeyword string) *Node {
	res := n.Clone()
	defs := res.FindNodes(defKeyword)
	uses := res.FindNodes(useKeyword)
	for _, def := range defs {
		name := def.Word(1)
		params := def.WordsFrom(2)
		body := def.ChildrenString()
		for _, use := range uses {
			if use.parent == nil || !use.HasWord(1, name) {
				continue
			}

			values := use.WordsFrom(2)
			use.ReplaceNode(func(string) string {
				text := body
				for i, p := range params {
					v := ""
					if i < len(values) {
						v = values[i]
					}
					text = strings.ReplaceAll(text, p, v)
				}
				return text
			})
		}
		def.Destroy()
	}
	return res
}

// Multiply returns a copy of a where each leaf node gets children of b.
func Multiply(a, b *Node) *Node {
	res := a.Clone()
	for _, c := range res.children {
		if len(c.children) > 0 {
			c.SetChildren(Multiply(c, b).ChildrenString())
		} else {
			c.SetChildren(b.ChildrenString())
		}
	}
	return res
}
