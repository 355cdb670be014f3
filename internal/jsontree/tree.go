// Package jsontree holds a mutable JSON document model.
//
// Every node keeps a back-reference to the container that owns it so callers
// can navigate upward from a match and detach whole records. Object members
// keep their source order, which keeps rewritten files close to the originals.
package jsontree

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the variant stored in a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a single JSON value. Literal holds the decoded text of a string or
// the verbatim source text of a number.
type Node struct {
	Kind    Kind
	Bool    bool
	Literal string
	Items   []*Node
	Members []Member

	parent *Node
}

// Parent returns the owning container, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// AttachedTo reports whether root is reachable by following parent links.
func (n *Node) AttachedTo(root *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Keys returns the member keys of an object node in document order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(n.Members))
	for _, member := range n.Members {
		keys = append(keys, member.Key)
	}
	return keys
}

// Get returns the first member value stored under key.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	for _, member := range n.Members {
		if member.Key == key {
			return member.Value
		}
	}
	return nil
}

// Delete removes every member stored under key and reports whether any was removed.
func (n *Node) Delete(key string) bool {
	if n == nil || n.Kind != KindObject {
		return false
	}
	kept := n.Members[:0]
	removed := false
	for _, member := range n.Members {
		if member.Key == key {
			member.Value.parent = nil
			removed = true
			continue
		}
		kept = append(kept, member)
	}
	for i := len(kept); i < len(n.Members); i++ {
		n.Members[i] = Member{}
	}
	n.Members = kept
	return removed
}

// Detach removes n from its owning container. An array drops the element; an
// object drops the whole member whose value is n. Root nodes cannot be detached.
func (n *Node) Detach() bool {
	if n == nil || n.parent == nil {
		return false
	}
	parent := n.parent
	switch parent.Kind {
	case KindArray:
		for i, item := range parent.Items {
			if item == n {
				copy(parent.Items[i:], parent.Items[i+1:])
				parent.Items[len(parent.Items)-1] = nil
				parent.Items = parent.Items[:len(parent.Items)-1]
				n.parent = nil
				return true
			}
		}
	case KindObject:
		for i, member := range parent.Members {
			if member.Value == n {
				copy(parent.Members[i:], parent.Members[i+1:])
				parent.Members[len(parent.Members)-1] = Member{}
				parent.Members = parent.Members[:len(parent.Members)-1]
				n.parent = nil
				return true
			}
		}
	}
	return false
}

// MemberKey returns the key under which n is stored when its parent is an object.
func (n *Node) MemberKey() (string, bool) {
	if n == nil || n.parent == nil || n.parent.Kind != KindObject {
		return "", false
	}
	for _, member := range n.parent.Members {
		if member.Value == n {
			return member.Key, true
		}
	}
	return "", false
}

var identifierKey = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Path renders the location of n inside its document, e.g. $.quests[2].rewards.
func (n *Node) Path() string {
	segments := make([]string, 0, 8)
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		segments = append(segments, segmentOf(cur))
	}

	var b strings.Builder
	b.WriteString("$")
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteString(segments[i])
	}
	return b.String()
}

func segmentOf(n *Node) string {
	parent := n.parent
	switch parent.Kind {
	case KindArray:
		for i, item := range parent.Items {
			if item == n {
				return "[" + strconv.Itoa(i) + "]"
			}
		}
	case KindObject:
		if key, ok := n.MemberKey(); ok {
			if identifierKey.MatchString(key) {
				return "." + key
			}
			return "[" + strconv.Quote(key) + "]"
		}
	}
	return "[?]"
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n.Kind {
	case KindArray:
		for _, item := range n.Items {
			Walk(item, fn)
		}
	case KindObject:
		for _, member := range n.Members {
			Walk(member.Value, fn)
		}
	}
}

// FindStrings returns every string node below n whose value satisfies match.
func FindStrings(n *Node, match func(string) bool) []*Node {
	var found []*Node
	Walk(n, func(node *Node) bool {
		if node.Kind == KindString && match(node.Literal) {
			found = append(found, node)
		}
		return true
	})
	return found
}
