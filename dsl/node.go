package dsl

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	pactdsl "github.com/reoring/pactdsl"
	"github.com/reoring/pactdsl/generators"
	"github.com/reoring/pactdsl/internal/pathexp"
	"github.com/reoring/pactdsl/matchers"
)

// Node is an object, array or root-value builder.
//
// A node knows its address from creation. Closing it merges its rules and
// generators into the parent under its address segment, stores its body in
// the parent and returns the parent. Closing the root rebases every address
// under "$" and freezes the Document. Repeated closes are no-ops that return
// the same node the first close returned.
type Node interface {
	// Path is the absolute address of the node, e.g. "$.items[*]".
	Path() string
	// Name is the field name, empty for array elements and roots.
	Name() string
	// Parent is nil for the root.
	Parent() Node
	IsClosed() bool

	// CloseObject closes an object node and returns its parent.
	CloseObject() Node
	// CloseArray closes an array node and returns its parent. On an object
	// element of an array it closes the object and then the array.
	CloseArray() Node
	// Close closes this node and every unclosed ancestor, returning the root.
	Close() Node

	// AsObject returns the node as an object builder. On other kinds it
	// records unsupported_operation and returns a detached builder.
	AsObject() *ObjectBuilder
	// AsArray is AsObject for arrays.
	AsArray() *ArrayBuilder

	// Err returns the issues recorded so far in this tree, or nil.
	Err() error
	// Build closes the tree and returns the Document of its root.
	Build() (*pactdsl.Document, error)
	// MustBuild is like Build but panics on error.
	MustBuild() *pactdsl.Document

	base() *node
	closeSelf()
	value() any
}

// container is a node that accepts closed children.
type container interface {
	Node
	putChild(c *node, v any)
}

type node struct {
	b      *build
	parent container
	name   string
	path   string
	// segment is the address of this node relative to an object parent.
	// Array parents compute the element segment when the child is put.
	segment string
	rules   *matchers.Category
	gens    *generators.Generators
	closed  bool
	// detached nodes stand in for a call that recorded an issue; they keep
	// chains working but are never merged into the parent.
	detached bool
	doc      *pactdsl.Document
}

func newNode(b *build, parent container, name, path, segment string) node {
	return node{
		b:       b,
		parent:  parent,
		name:    name,
		path:    path,
		segment: segment,
		rules:   matchers.NewCategory("body"),
		gens:    generators.New(),
	}
}

func (n *node) base() *node    { return n }
func (n *node) Path() string   { return n.path }
func (n *node) Name() string   { return n.name }
func (n *node) IsClosed() bool { return n.closed }
func (n *node) Err() error     { return n.b.err() }

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Rules returns the node's rule table, keyed relative to the node.
func (n *node) Rules() *matchers.Category { return n.rules }

// Generators returns the node's generator table, keyed relative to the node.
func (n *node) Generators() *generators.Generators { return n.gens }

// fail records an issue against this node.
func (n *node) fail(code, op, detail string, params map[string]any) {
	n.b.record(pactdsl.NewIssue(n.path, code, op, detail, params))
}

// failFault records f; its cause, if any, is kept on the issue.
func (n *node) failFault(op string, f *fault) {
	iss := pactdsl.NewIssue(n.path, f.code, op, f.detail, f.params)
	iss.Cause = f.cause
	n.b.record(iss)
}

// writable reports whether op may mutate the node.
func (n *node) writable(op string) bool {
	if n.closed {
		n.fail(pactdsl.CodeUseAfterClose, op, "", nil)
		return false
	}
	return true
}

// up returns the node a close should hand back: the parent, or the node
// itself at the root.
func (n *node) up(self Node) Node {
	if n.parent == nil {
		return self
	}
	return n.parent
}

// finish marks n closed and hands body to the parent, or freezes the
// Document when n is the root.
func (n *node) finish(kind string, body any) {
	n.closed = true
	n.b.log.Debug("dsl.node.close", "path", n.path, "kind", kind, "detached", n.detached)
	if n.parent != nil {
		if !n.detached {
			n.parent.putChild(n, body)
		}
		return
	}
	rules := n.rules.Copy()
	rules.ApplyRootPrefix(pathexp.Root)
	gens := n.gens.Copy()
	gens.ApplyRootPrefix(pathexp.Root)
	n.doc = &pactdsl.Document{Body: cloneValue(body), MatchingRules: rules, Generators: gens}
	n.b.log.Debug("dsl.document.ready", "rules", rules.Len(), "generators", gens.Len())
}

// receive merges a closed child's tables under segment.
func (n *node) receive(c *node, segment string) {
	n.rules.MergeFrom(c.rules, segment)
	n.gens.MergeFrom(c.gens, segment)
}

// accept checks that c may be put into n at the address at; op names the
// caller for issues.
func (n *node) accept(op, at string, c *node) bool {
	if !n.writable(op) {
		return false
	}
	if !c.closed {
		n.fail(pactdsl.CodeNotClosed, op, c.path+" is not closed", nil)
		return false
	}
	n.b.adopt(c.b, at)
	return true
}

func closeAll(n Node) Node {
	for {
		if !n.IsClosed() {
			n.closeSelf()
		}
		p := n.Parent()
		if p == nil {
			return n
		}
		n = p
	}
}

func buildDocument(n Node) (*pactdsl.Document, error) {
	root := closeAll(n)
	if err := n.Err(); err != nil {
		return nil, err
	}
	return root.base().doc, nil
}

func mustBuild(n Node) *pactdsl.Document {
	doc, err := buildDocument(n)
	if err != nil {
		panic(err)
	}
	return doc
}

// Document returns the frozen Document of a closed root. It records
// not_closed and returns nil when n is not a closed root.
func Document(n Node) *pactdsl.Document {
	b := n.base()
	if b.doc == nil {
		detail := ""
		if b.parent != nil {
			detail = "not a root"
		}
		b.fail(pactdsl.CodeNotClosed, "Document", detail, nil)
		return nil
	}
	return b.doc
}

func unsupported(n *node, op, detail string) {
	n.fail(pactdsl.CodeUnsupportedOperation, op, detail, nil)
}

// cloneValue deep-copies bodies so replicated examples never alias.
func cloneValue(v any) any {
	switch t := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		if t == nil {
			return t
		}
		out := orderedmap.New[string, any]()
		for p := t.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, cloneValue(p.Value))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
