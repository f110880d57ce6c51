package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	nodePtrType = reflect.TypeOf((*Node)(nil))
	timeType    = reflect.TypeOf(time.Time{})
)

// FromObject creates plain tree from a Go value.
//
// Maps (sorted by key), slices, arrays, and structs (exported fields, json tag names are respected)
// become nodes with children. Strings become content, lines after the first one become children.
// Nil values become "null" content, time.Time becomes Unix milliseconds, *Node contributes its children.
// A map, slice, or pointer met again on the same branch is skipped.
func FromObject(v any) *Node {
	root := New("", nil)
	switch x := v.(type) {
	case string:
		root.parseText(x)
	case *Node:
		root.parseText(x.ChildrenString())
	default:
		root.appendFields(reflect.ValueOf(v), nil)
	}
	return root
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func seenOnBranch(seen []uintptr, id uintptr) bool {
	for _, s := range seen {
		if s == id {
			return true
		}
	}
	return false
}

func (n *Node) appendFields(v reflect.Value, seen []uintptr) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return
		}
		if v.Kind() == reflect.Pointer {
			seen = append(seen, v.Pointer())
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return
	}

	switch v.Kind() {
	case reflect.Map:
		seen = append(seen, v.Pointer())
		keys := v.MapKeys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return names[order[i]] < names[order[j]] })
		for _, i := range order {
			n.appendTuple(names[i], v.MapIndex(keys[i]), seen)
		}

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Len() > 0 {
			seen = append(seen, v.Pointer())
		}
		for i := 0; i < v.Len(); i++ {
			n.appendTuple(strconv.Itoa(i), v.Index(i), seen)
		}

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}

			name := f.Name
			if tag, has := f.Tag.Lookup("json"); has {
				tn, _, _ := strings.Cut(tag, ",")
				if tn == "-" {
					continue
				}
				if tn != "" {
					name = tn
				}
			}
			n.appendTuple(name, v.Field(i), seen)
		}
	}
}

func (n *Node) appendTuple(key string, v reflect.Value, seen []uintptr) {
	word := n.st.notation.Word
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() || isNil(v) {
		n.insertChild(key+word+"null", "", -1)
		return
	}

	if v.Type() == nodePtrType {
		n.insertChild(key, v.Interface().(*Node).ChildrenString(), -1)
		return
	}

	for v.Kind() == reflect.Pointer {
		if seenOnBranch(seen, v.Pointer()) {
			return
		}
		seen = append(seen[:len(seen):len(seen)], v.Pointer())
		v = v.Elem()
		if isNil(v) {
			n.insertChild(key+word+"null", "", -1)
			return
		}
	}

	if v.Type() == timeType {
		ms := v.Interface().(time.Time).UnixMilli()
		n.insertChild(key+word+strconv.FormatInt(ms, 10), "", -1)
		return
	}

	switch v.Kind() {
	case reflect.String:
		n.appendString(key, v.String())
	case reflect.Bool:
		n.insertChild(key+word+strconv.FormatBool(v.Bool()), "", -1)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n.insertChild(key+word+strconv.FormatInt(v.Int(), 10), "", -1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n.insertChild(key+word+strconv.FormatUint(v.Uint(), 10), "", -1)
	case reflect.Float32, reflect.Float64:
		n.insertChild(key+word+strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), "", -1)

	case reflect.Map, reflect.Slice:
		if v.Len() > 0 && seenOnBranch(seen, v.Pointer()) {
			return
		}
		fallthrough
	case reflect.Array, reflect.Struct:
		c := n.insertChild(key, "", -1)
		c.appendFields(v, seen[:len(seen):len(seen)])

	default:
		n.insertChild(key+word+fmt.Sprint(v.Interface()), "", -1)
	}
}

func (n *Node) appendString(key, s string) {
	content, children, _ := strings.Cut(s, n.st.notation.Line)
	n.insertChild(key+n.st.notation.Word+content, children, -1)
}

type entry struct {
	key  string
	node *Node
}

// entries merges children with the same keyword: the first position, the last node.
func (n *Node) entries() []entry {
	res := make([]entry, 0, len(n.children))
	pos := make(map[string]int, len(n.children))
	for _, c := range n.children {
		kw := c.Keyword()
		if i, has := pos[kw]; has {
			res[i].node = c
		} else {
			pos[kw] = len(res)
			res = append(res, entry{kw, c})
		}
	}
	return res
}

// objectValue returns nil for a node without content and children, a string for a node with content,
// or a nested object for a node with children only.
func (n *Node) objectValue(nested func(*Node) any) any {
	content, hasContent := n.Content()
	switch {
	case len(n.children) == 0 && !hasContent:
		return nil
	case len(n.children) == 0:
		return content
	case !hasContent:
		return nested(n)
	default:
		return n.ContentWithChildren()
	}
}

// ToObject converts children to a map, the last child wins for duplicate keywords.
func (n *Node) ToObject() map[string]any {
	res := make(map[string]any, len(n.children))
	for _, en := range n.entries() {
		res[en.key] = en.node.objectValue(func(c *Node) any { return c.ToObject() })
	}
	return res
}

type orderedObject []orderedEntry

type orderedEntry struct {
	key   string
	value any
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, en := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, e := json.Marshal(en.key)
		if e != nil {
			return nil, e
		}
		v, e := json.Marshal(en.value)
		if e != nil {
			return nil, e
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (n *Node) orderedObject() any {
	ens := n.entries()
	res := make(orderedObject, len(ens))
	for i, en := range ens {
		res[i] = orderedEntry{en.key, en.node.objectValue((*Node).orderedObject)}
	}
	return res
}

// ToJSON converts children to JSON object keeping node order.
func (n *Node) ToJSON() (string, error) {
	data, e := json.MarshalIndent(n.orderedObject(), "", " ")
	if e != nil {
		return "", e
	}
	return string(data), nil
}

// FromJSON creates plain tree from JSON object or array, object keys keep their order.
func FromJSON(text string) (*Node, error) {
	d := json.NewDecoder(strings.NewReader(text))
	d.UseNumber()
	t, e := d.Token()
	if e != nil {
		return nil, wrongJSONError(e)
	}

	open, is := t.(json.Delim)
	if !is || (open != '{' && open != '[') {
		return nil, wrongJSONError(fmt.Errorf("object or array expected, got %v", t))
	}

	root := New("", nil)
	if e = root.decodeJSON(d, open); e != nil {
		return nil, wrongJSONError(e)
	}
	return root, nil
}

func (n *Node) decodeJSON(d *json.Decoder, open json.Delim) error {
	word := n.st.notation.Word
	for i := 0; d.More(); i++ {
		key := strconv.Itoa(i)
		if open == '{' {
			t, e := d.Token()
			if e != nil {
				return e
			}
			key, _ = t.(string)
		}

		t, e := d.Token()
		if e != nil {
			return e
		}

		switch v := t.(type) {
		case json.Delim:
			c := n.insertChild(key, "", -1)
			if e = c.decodeJSON(d, v); e != nil {
				return e
			}
		case string:
			n.appendString(key, v)
		case json.Number:
			n.insertChild(key+word+v.String(), "", -1)
		case bool:
			n.insertChild(key+word+strconv.FormatBool(v), "", -1)
		case nil:
			n.insertChild(key+word+"null", "", -1)
		}
	}

	_, e := d.Token()
	return e
}

// FromYAML creates plain tree from YAML mapping or sequence, mapping keys keep their order.
func FromYAML(text string) (*Node, error) {
	var doc yaml.Node
	if e := yaml.Unmarshal([]byte(text), &doc); e != nil {
		return nil, wrongYAMLError(e)
	}

	root := New("", nil)
	v := &doc
	if v.Kind == yaml.DocumentNode && len(v.Content) > 0 {
		v = v.Content[0]
	}
	root.decodeYAML(v, nil)
	return root, nil
}

func (n *Node) decodeYAML(v *yaml.Node, seen []*yaml.Node) {
	switch v.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(v.Content); i += 2 {
			n.appendYAML(v.Content[i].Value, v.Content[i+1], seen)
		}
	case yaml.SequenceNode:
		for i, c := range v.Content {
			n.appendYAML(strconv.Itoa(i), c, seen)
		}
	}
}

func (n *Node) appendYAML(key string, v *yaml.Node, seen []*yaml.Node) {
	for v.Kind == yaml.AliasNode && v.Alias != nil {
		for _, s := range seen {
			if s == v.Alias {
				return
			}
		}
		seen = append(seen[:len(seen):len(seen)], v.Alias)
		v = v.Alias
	}

	switch v.Kind {
	case yaml.ScalarNode:
		if v.Tag == "!!null" {
			n.insertChild(key+n.st.notation.Word+"null", "", -1)
		} else {
			n.appendString(key, v.Value)
		}
	case yaml.MappingNode, yaml.SequenceNode:
		n.insertChild(key, "", -1).decodeYAML(v, seen)
	}
}

func (n *Node) yamlNode() *yaml.Node {
	res := &yaml.Node{Kind: yaml.MappingNode}
	for _, en := range n.entries() {
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: en.key}
		var v *yaml.Node
		switch x := en.node.objectValue(func(c *Node) any { return c.yamlNode() }).(type) {
		case nil:
			v = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		case string:
			v = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}
			if strings.Contains(x, "\n") {
				v.Style = yaml.LiteralStyle
			}
		case *yaml.Node:
			v = x
		}
		res.Content = append(res.Content, k, v)
	}
	return res
}

// ToYAML converts children to YAML mapping keeping node order.
func (n *Node) ToYAML() (string, error) {
	data, e := yaml.Marshal(n.yamlNode())
	if e != nil {
		return "", e
	}
	return string(data), nil
}

// ToOutline renders the tree with box-drawing branches, one node line per output line.
func (n *Node) ToOutline() string {
	return n.ToMappedOutline((*Node).Line)
}

// ToMappedOutline renders the tree outline using fn to get text for each node.
func (n *Node) ToMappedOutline(fn func(*Node) string) string {
	var b strings.Builder
	n.outline(&b, "", fn)
	return b.String()
}

func (n *Node) outline(b *strings.Builder, prefix string, fn func(*Node) string) {
	for i, c := range n.children {
		last := (i == len(n.children)-1)
		next := prefix + "│"
		b.WriteString(prefix)
		if last {
			b.WriteString("└")
			next = prefix + " "
		} else {
			b.WriteString("├")
		}
		b.WriteString(fn(c))
		b.WriteByte('\n')
		c.outline(b, next, fn)
	}
}
