// Package node implements the generic tagged tree sent over the transport:
// a tag, string attributes, and ordered children. Nodes are built once and
// handed to the dispatcher; they carry no transport state.
package node

import (
	"sort"
	"strings"
)

// Node is one protocol stanza element. Children is nil for terminal nodes.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node
}

// New builds a Node. Pass no children for a terminal node.
func New(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{Tag: tag, Attrs: attrs}
	if len(children) > 0 {
		n.Children = children
	}
	return n
}

// Attr returns the named attribute value, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// XMLString renders the node as canonical XML with attributes in sorted
// order. Used for logging and test comparisons, not for the wire encoding.
func (n *Node) XMLString() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(n.Attrs[k]))
		b.WriteByte('"')
	}

	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
