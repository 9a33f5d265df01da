package qrc

import (
	"errors"
	"sort"
	"strings"
)

// SkipDir can be returned from a WalkFunc to skip the children of a directory.
var SkipDir = errors.New("skip this directory")

// Node is a decoded resource entry: a directory with Children or a file with Data.
type Node struct {
	// ID is the node's index in the struct table
	ID int

	// Name is the path segment of this node
	Name string

	// Path is the slash-separated path from the top-level entry
	Path string

	// Flags are the raw node flags
	Flags uint16

	// Country and Language are the file's locale (zero for directories)
	Country  uint16
	Language uint16

	// Data is the (decompressed) file content, owned by the Node
	Data []byte

	// Children maps names to child nodes (nil for files)
	Children map[string]*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Flags&FlagDirectory != 0
}

// IsCompressed reports whether the file was stored compressed.
func (n *Node) IsCompressed() bool {
	return n.Flags&FlagCompressed != 0
}

// Names returns the child names in sorted order.
func (n *Node) Names() []string {
	return sortedNames(n.Children)
}

// Lookup returns the descendant at the slash-separated path p, or nil.
func (n *Node) Lookup(p string) *Node {
	cur := n
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			continue
		}
		if cur.Children == nil {
			return nil
		}
		cur = cur.Children[seg]
		if cur == nil {
			return nil
		}
	}
	return cur
}

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(n *Node) error

// Walk calls fn for n and all its descendants, depth-first with children in
// name order.
func (n *Node) Walk(fn WalkFunc) error {
	if err := fn(n); err != nil {
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}
	for _, name := range n.Names() {
		if err := n.Children[name].Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Resources is the result of decoding a set of tables.
type Resources struct {
	// Entries holds the top-level nodes: the root and any orphaned subtrees
	Entries map[string]*Node

	// Problems lists dropped nodes and duplicate names
	Problems []error
}

// Names returns the top-level entry names in sorted order.
func (r *Resources) Names() []string {
	return sortedNames(r.Entries)
}

// Walk walks every top-level entry in name order.
func (r *Resources) Walk(fn WalkFunc) error {
	for _, name := range r.Names() {
		if err := r.Entries[name].Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Files returns all file nodes in walk order.
func (r *Resources) Files() []*Node {
	var files []*Node
	_ = r.Walk(func(n *Node) error {
		if !n.IsDir() {
			files = append(files, n)
		}
		return nil
	})
	return files
}

func sortedNames(m map[string]*Node) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
