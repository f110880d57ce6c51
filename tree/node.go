// Package tree implements lossless indentation-delimited document model.
//
// Each line of a document becomes a Node, lines indented one step deeper than the line above
// become its children. Any node can be serialized back to text, parsing and serializing
// an arbitrary text returns the same text.
package tree

import (
	"regexp"
	"strings"

	"github.com/ava12/jtree/internal/queue"
)

// Notation defines delimiters used to split text into lines and words and to indent child lines.
type Notation struct {
	Word   string
	Line   string
	Indent string
}

// DefaultNotation uses single space as word delimiter and indentation, and newline as line delimiter.
var DefaultNotation = Notation{Word: " ", Line: "\n", Indent: " "}

// Type defines node behavior. Type of the parent node selects the type of each new child.
// The same Type value may be returned for many children unless it implements Binder.
type Type interface {
	// ChildType returns type of the child node that is about to be created for given line.
	ChildType(line string) Type
}

// Binder is implemented by types holding a reference to their node.
// Bind is called once, after the node is attached to its parent and before its children are added.
type Binder interface {
	Bind(n *Node)
}

// Cloner is implemented by root types that survive cloning.
type Cloner interface {
	CloneType() Type
}

// Plain is the default node type, all its children are plain nodes too.
type Plain struct{}

// ChildType always returns Plain.
func (Plain) ChildType(string) Type {
	return Plain{}
}

// state is shared by all nodes of a single tree.
type state struct {
	notation Notation
	clock    int64
	uids     int64

	lineRoot  *Node
	lineClock int64
	lines     map[*Node]int
}

// lineOf returns 1-based line number of the node in the tree of root.
// Numbers of all lines are computed at once and kept until the tree changes.
func (s *state) lineOf(root, n *Node) int {
	if s.lines == nil || s.lineRoot != root || s.lineClock != s.clock {
		s.lines = make(map[*Node]int)
		for i, c := range root.TopDownArray() {
			s.lines[c] = i + 1
		}
		s.lineRoot, s.lineClock = root, s.clock
	}
	return s.lines[n]
}

func (s *state) tick() int64 {
	s.clock++
	return s.clock
}

// Node is a single line of a document with its indented child lines.
// A root node has no parent and its line is not serialized.
type Node struct {
	line     string
	words    []string
	children []*Node
	parent   *Node
	typ      Type
	st       *state
	uid      int64
	mtime    int64
	cmtime   int64
	index    map[string]int
}

// New creates an empty root node of given type using default notation, nil t means Plain.
func New(line string, t Type) *Node {
	return newRoot(DefaultNotation, line, t)
}

// Parse creates plain root node with children parsed from text using default notation.
func Parse(text string) *Node {
	return ParseWith(DefaultNotation, nil, text)
}

// ParseWith creates root node of given type with children parsed from text, nil t means Plain.
func ParseWith(n Notation, t Type, text string) *Node {
	root := newRoot(n, "", t)
	root.parseText(text)
	return root
}

func newRoot(nt Notation, line string, t Type) *Node {
	if t == nil {
		t = Plain{}
	}
	st := &state{notation: nt}
	root := &Node{line: line, typ: t, st: st, mtime: st.tick()}
	if b, is := t.(Binder); is {
		b.Bind(root)
	}
	return root
}

func (n *Node) parseText(text string) {
	if text == "" {
		return
	}

	nt := n.st.notation
	lines := strings.Split(text, nt.Line)
	parents := []*Node{n}
	depth := -1
	last := n
	for _, line := range lines {
		indent := indentCount(line, nt.Indent)
		if indent > depth {
			depth++
			parents = append(parents, last)
		} else {
			for indent < depth {
				parents = parents[:len(parents)-1]
				depth--
			}
		}
		last = parents[len(parents)-1].insertChild(line[depth*len(nt.Indent):], "", -1)
	}
}

func indentCount(line, indent string) int {
	if indent == "" {
		return 0
	}

	i := 0
	for strings.HasPrefix(line, indent) {
		line = line[len(indent):]
		i++
	}
	return i
}

// insertChild creates child node at given index (negative index counts from the end, -1 appends).
func (n *Node) insertChild(line, children string, index int) *Node {
	l := len(n.children)
	if index < 0 {
		index += l + 1
		if index < 0 {
			index = 0
		}
	}
	if index > l {
		index = l
	}

	t := n.typ.ChildType(line)
	if t == nil {
		t = Plain{}
	}
	c := &Node{line: line, parent: n, typ: t, st: n.st, mtime: n.st.tick()}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = c
	n.index = nil

	if b, is := t.(Binder); is {
		b.Bind(c)
	}
	c.parseText(children)
	return c
}

// Type returns node type.
func (n *Node) Type() Type {
	return n.typ
}

// Notation returns notation used by the tree.
func (n *Node) Notation() Notation {
	return n.st.notation
}

// Line returns node line without indentation.
func (n *Node) Line() string {
	return n.line
}

// Words returns node line split into words. The result must not be modified.
func (n *Node) Words() []string {
	if n.words == nil {
		n.words = strings.Split(n.line, n.st.notation.Word)
	}
	return n.words
}

// Word returns nth word of the line, negative index counts from the end.
// Returns empty string for nonexistent word.
func (n *Node) Word(index int) string {
	ws := n.Words()
	if index < 0 {
		index += len(ws)
	}
	if index < 0 || index >= len(ws) {
		return ""
	}
	return ws[index]
}

// WordsFrom returns words starting from given index.
func (n *Node) WordsFrom(index int) []string {
	ws := n.Words()
	if index >= len(ws) {
		return nil
	}
	return ws[index:]
}

// Keyword returns the first word of the line.
func (n *Node) Keyword() string {
	return n.Word(0)
}

// Content returns the words following the keyword joined with word delimiter.
// The flag is false if the line contains no words after the keyword.
func (n *Node) Content() (string, bool) {
	ws := n.WordsFrom(1)
	if len(ws) == 0 {
		return "", false
	}
	return strings.Join(ws, n.st.notation.Word), true
}

// ContentWithChildren returns node content followed by serialized children on separate lines.
func (n *Node) ContentWithChildren() string {
	content, _ := n.Content()
	if len(n.children) == 0 {
		return content
	}
	return content + n.st.notation.Line + n.ChildrenString()
}

// Parent returns parent node or nil for root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports if the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Root returns the root node of the tree.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Children returns child nodes. The result must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Len returns number of child nodes.
func (n *Node) Len() int {
	return len(n.children)
}

// NodeAt returns nth child, negative index counts from the end. Returns nil for nonexistent child.
func (n *Node) NodeAt(index int) *Node {
	if index < 0 {
		index += len(n.children)
	}
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// NodeAtPath returns descendant node using child indexes, each index may be negative.
func (n *Node) NodeAtPath(path []int) *Node {
	for _, i := range path {
		if n == nil {
			break
		}
		n = n.NodeAt(i)
	}
	return n
}

// Index returns position of the node among its siblings or -1 for root node.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}

	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Depth returns number of non-root ancestors including the node itself, top-level nodes have depth 1.
func (n *Node) Depth() int {
	d := 0
	for ; n.parent != nil; n = n.parent {
		d++
	}
	return d
}

// Indentation returns indentation string the node line has in serialized tree.
func (n *Node) Indentation() string {
	d := n.Depth() - 1
	if d <= 0 {
		return ""
	}
	return strings.Repeat(n.st.notation.Indent, d)
}

// Point returns node depth and its 1-based line number in serialized tree.
func (n *Node) Point() (x, y int) {
	if n.parent == nil {
		return 0, 0
	}
	root := n.Root()
	return n.Depth(), root.st.lineOf(root, n)
}

// Stack returns non-root ancestors of the node starting from the top-level one, and the node itself.
func (n *Node) Stack() []*Node {
	var res []*Node
	for ; n.parent != nil; n = n.parent {
		res = append(res, n)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// StackString returns lines of the node stack, each indented according to its depth.
func (n *Node) StackString() string {
	nt := n.st.notation
	stack := n.Stack()
	lines := make([]string, len(stack))
	for i, s := range stack {
		lines[i] = strings.Repeat(nt.Indent, i) + s.line
	}
	return strings.Join(lines, nt.Line)
}

// KeywordPath returns keywords of the node stack joined with word delimiter.
func (n *Node) KeywordPath() string {
	return n.KeywordPathRelativeTo(nil)
}

// KeywordPathRelativeTo returns keyword path starting below given ancestor.
func (n *Node) KeywordPathRelativeTo(ancestor *Node) string {
	var kws []string
	for ; n.parent != nil && n != ancestor; n = n.parent {
		kws = append(kws, n.Keyword())
	}
	for i, j := 0, len(kws)-1; i < j; i, j = i+1, j-1 {
		kws[i], kws[j] = kws[j], kws[i]
	}
	return strings.Join(kws, n.st.notation.Word)
}

// PathVector returns child indexes leading from the root node to this one.
func (n *Node) PathVector() []int {
	var res []int
	for _, s := range n.Stack() {
		res = append(res, s.Index())
	}
	return res
}

// PathVectorToKeywordPath converts child indexes to keywords of the nodes they lead to.
// Conversion stops at the first nonexistent node.
func (n *Node) PathVectorToKeywordPath(path []int) []string {
	var res []string
	for _, i := range path {
		n = n.NodeAt(i)
		if n == nil {
			break
		}
		res = append(res, n.Keyword())
	}
	return res
}

// TopDownArray returns all descendants in document order.
func (n *Node) TopDownArray() []*Node {
	var res []*Node
	Walk(n, WalkLtr, func(c *Node) (walkChildren, walkSiblings bool) {
		if c != n {
			res = append(res, c)
		}
		return true, true
	})
	return res
}

// ChildrenFirstArray returns all descendants, each node follows its children.
func (n *Node) ChildrenFirstArray() []*Node {
	var res []*Node
	for _, c := range n.children {
		res = append(res, c.ChildrenFirstArray()...)
		res = append(res, c)
	}
	return res
}

// ParentFirstArray returns all descendants level by level.
func (n *Node) ParentFirstArray() []*Node {
	var res []*Node
	q := queue.New(n.children...)
	for !q.IsEmpty() {
		c, _ := q.First()
		res = append(res, c)
		for _, cc := range c.children {
			q.Append(cc)
		}
	}
	return res
}

// Siblings returns all other children of the parent node.
func (n *Node) Siblings() []*Node {
	if n.parent == nil {
		return nil
	}

	res := make([]*Node, 0, len(n.parent.children))
	for _, c := range n.parent.children {
		if c != n {
			res = append(res, c)
		}
	}
	return res
}

// OlderSiblings returns siblings preceding the node.
func (n *Node) OlderSiblings() []*Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.children[:n.Index()]
}

// YoungerSiblings returns siblings following the node.
func (n *Node) YoungerSiblings() []*Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.children[n.Index()+1:]
}

// Next returns the next sibling, the first one for the last node, the node itself for root node.
func (n *Node) Next() *Node {
	if n.parent == nil {
		return n
	}
	cs := n.parent.children
	return cs[(n.Index()+1)%len(cs)]
}

// Previous returns the previous sibling, the last one for the first node, the node itself for root node.
func (n *Node) Previous() *Node {
	if n.parent == nil {
		return n
	}
	cs := n.parent.children
	return cs[(n.Index()+len(cs)-1)%len(cs)]
}

// Lines returns lines of child nodes.
func (n *Node) Lines() []string {
	res := make([]string, len(n.children))
	for i, c := range n.children {
		res[i] = c.line
	}
	return res
}

// Keywords returns keywords of child nodes.
func (n *Node) Keywords() []string {
	res := make([]string, len(n.children))
	for i, c := range n.children {
		res[i] = c.Keyword()
	}
	return res
}

// Contents returns contents of child nodes, empty string for nodes without content.
func (n *Node) Contents() []string {
	res := make([]string, len(n.children))
	for i, c := range n.children {
		res[i], _ = c.Content()
	}
	return res
}

func (n *Node) makeIndex() map[string]int {
	if n.index == nil {
		n.index = make(map[string]int, len(n.children))
		for i, c := range n.children {
			n.index[c.Keyword()] = i
		}
	}
	return n.index
}

// IndexOfLast returns index of the last child with given keyword or -1.
func (n *Node) IndexOfLast(keyword string) int {
	i, has := n.makeIndex()[keyword]
	if !has {
		return -1
	}
	return i
}

// IndexOf returns index of the first child with given keyword or -1.
func (n *Node) IndexOf(keyword string) int {
	if !n.Has(keyword) {
		return -1
	}

	for i, c := range n.children {
		if c.Keyword() == keyword {
			return i
		}
	}
	return -1
}

// Has reports if the node has a child with given keyword.
func (n *Node) Has(keyword string) bool {
	_, has := n.makeIndex()[keyword]
	return has
}

// Node returns descendant node using keyword path, the last child with matching keyword wins at each level.
// Returns nil if there is no such node.
func (n *Node) Node(path string) *Node {
	for _, kw := range strings.Split(path, n.st.notation.Word) {
		i := n.IndexOfLast(kw)
		if i < 0 {
			return nil
		}
		n = n.children[i]
	}
	return n
}

// FindContent returns content of the descendant node found using keyword path.
func (n *Node) FindContent(path string) (string, bool) {
	nn := n.Node(path)
	if nn == nil {
		return "", false
	}
	return nn.Content()
}

// FindNodes returns all descendants matching keyword path.
func (n *Node) FindNodes(path string) []*Node {
	kws := strings.Split(path, n.st.notation.Word)
	current := []*Node{n}
	for _, kw := range kws {
		var next []*Node
		for _, p := range current {
			for _, c := range p.children {
				if c.Keyword() == kw {
					next = append(next, c)
				}
			}
		}
		current = next
	}
	return current
}

// HasWord reports if the line has given word at given position.
func (n *Node) HasWord(index int, word string) bool {
	ws := n.Words()
	if index < 0 {
		index += len(ws)
	}
	return index >= 0 && index < len(ws) && ws[index] == word
}

func (n *Node) hasColumns(words []string) bool {
	for i, w := range words {
		if !n.HasWord(i, w) {
			return false
		}
	}
	return true
}

// NodeByColumn returns the first child having given word at given position or nil.
func (n *Node) NodeByColumn(index int, word string) *Node {
	for _, c := range n.children {
		if c.HasWord(index, word) {
			return c
		}
	}
	return nil
}

// NodeByColumns returns the first descendant (in document order) which line starts with given words.
func (n *Node) NodeByColumns(words ...string) *Node {
	for _, c := range n.TopDownArray() {
		if c.hasColumns(words) {
			return c
		}
	}
	return nil
}

// NodesByLinePrefixes returns descendants which lines start with the last prefix
// and which ancestors' lines start with respective preceding prefixes.
func (n *Node) NodesByLinePrefixes(prefixes []string) []*Node {
	if len(prefixes) == 0 {
		return nil
	}

	var res []*Node
	for _, c := range n.children {
		if !strings.HasPrefix(c.line, prefixes[0]) {
			continue
		}
		if len(prefixes) == 1 {
			res = append(res, c)
		} else {
			res = append(res, c.NodesByLinePrefixes(prefixes[1:])...)
		}
	}
	return res
}

// Column returns content found using keyword path for each child, empty string for missing content.
func (n *Node) Column(path string) []string {
	res := make([]string, len(n.children))
	for i, c := range n.children {
		res[i], _ = c.FindContent(path)
	}
	return res
}

var placeholderRe = regexp.MustCompile(`\{([^}]+)\}`)

// Format replaces {keyword path} placeholders in template with found contents.
func (n *Node) Format(template string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		content, _ := n.FindContent(m[1 : len(m)-1])
		return content
	})
}

// UID returns unique (within the tree) node identifier, assigned on the first call.
func (n *Node) UID() int64 {
	if n.uid == 0 {
		n.st.uids++
		n.uid = n.st.uids
	}
	return n.uid
}

// MTime returns version of the last modification of the node line.
// Versions are taken from the tree-wide monotonic counter.
func (n *Node) MTime() int64 {
	return n.mtime
}

// TreeMTime returns the latest version of the node, its children list, and all its descendants.
func (n *Node) TreeMTime() int64 {
	t := n.mtime
	if n.cmtime > t {
		t = n.cmtime
	}
	for _, c := range n.children {
		ct := c.TreeMTime()
		if ct > t {
			t = ct
		}
	}
	return t
}

// Version returns the latest version issued by the tree, it changes whenever any node of the tree changes.
// Unlike TreeMTime it does not traverse the tree.
func (n *Node) Version() int64 {
	return n.st.clock
}

func (n *Node) touch() {
	n.mtime = n.st.tick()
}

func (n *Node) touchChildren() {
	n.index = nil
	n.cmtime = n.st.tick()
}

// String serializes the node and its descendants. Root node line is not serialized.
func (n *Node) String() string {
	return n.toString(0)
}

// ChildrenString serializes child nodes without extra indentation.
func (n *Node) ChildrenString() string {
	return n.childrenString(0)
}

func (n *Node) toString(indent int) string {
	if n.parent == nil {
		return n.childrenString(indent)
	}

	nt := n.st.notation
	res := strings.Repeat(nt.Indent, indent) + n.line
	if len(n.children) > 0 {
		res += nt.Line + n.childrenString(indent+1)
	}
	return res
}

func (n *Node) childrenString(indent int) string {
	lines := make([]string, len(n.children))
	for i, c := range n.children {
		lines[i] = c.toString(indent)
	}
	return strings.Join(lines, n.st.notation.Line)
}
