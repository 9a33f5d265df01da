package qrc

import (
	"bytes"
	"fmt"
)

// Decode decodes the resource tables into a tree.
//
// Every node in the struct table is visited, starting at the root. Nodes
// already reached through a directory are not decoded again, so the result
// holds the root plus any orphaned subtrees, keyed by their names.
//
// Decode fails with a MalformedTreeError when the struct table is empty, is
// not a multiple of StructRecordSize, or when the root is not a directory.
// Failures of individual nodes are collected in Resources.Problems unless
// WithStrict is set.
func Decode(t Tables, opts ...Option) (*Resources, error) {
	d, err := newDecoder(t, opts)
	if err != nil {
		return nil, err
	}

	root, err := t.readStruct(RootNodeID)
	if err != nil {
		return nil, &MalformedTreeError{NodeID: RootNodeID, Reason: err.Error()}
	}
	if !root.isDir() {
		return nil, &MalformedTreeError{NodeID: RootNodeID, Reason: "root node is not a directory"}
	}

	res := &Resources{Entries: make(map[string]*Node)}
	for id := 0; id < d.count; id++ {
		node, err := d.decodeNode(id, "")
		if err != nil {
			if d.config.Strict {
				return nil, err
			}
			d.problems = append(d.problems, err)
			continue
		}
		if node == nil {
			continue
		}
		d.insert(res.Entries, node)
	}

	res.Problems = d.problems
	return res, nil
}

// DecodeNode decodes the subtree rooted at node id. Any failure inside the
// subtree is returned as an error.
func DecodeNode(t Tables, id int, opts ...Option) (*Node, error) {
	d, err := newDecoder(t, append(opts, WithStrict(true)))
	if err != nil {
		return nil, err
	}
	return d.decodeNode(id, "")
}

type decoder struct {
	tables Tables
	config Config
	count  int

	// visited marks nodes already decoded in this pass; onPath marks the
	// directories between the current node and its top-level entry.
	visited []bool
	onPath  []bool

	problems []error
}

func newDecoder(t Tables, opts []Option) (*decoder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(t.Struct) == 0 {
		return nil, &MalformedTreeError{NodeID: -1, Reason: "empty struct table"}
	}
	if len(t.Struct)%StructRecordSize != 0 {
		return nil, &MalformedTreeError{
			NodeID: -1,
			Reason: fmt.Sprintf("struct table length %d is not a multiple of %d", len(t.Struct), StructRecordSize),
		}
	}

	count := t.NodeCount()
	return &decoder{
		tables:  t,
		config:  cfg,
		count:   count,
		visited: make([]bool, count),
		onPath:  make([]bool, count),
	}, nil
}

// decodeNode decodes node id below parentPath. It returns nil, nil for a node
// that was already decoded.
func (d *decoder) decodeNode(id int, parentPath string) (*Node, error) {
	if id < 0 || id >= d.count {
		return nil, &MalformedTreeError{
			NodeID: id,
			Reason: fmt.Sprintf("node out of bounds (table holds %d nodes)", d.count),
		}
	}
	if d.onPath[id] {
		return nil, &MalformedTreeError{NodeID: id, Reason: "directory contains itself"}
	}
	if d.visited[id] {
		return nil, nil
	}
	d.visited[id] = true

	rec, err := d.tables.readStruct(id)
	if err != nil {
		return nil, &MalformedTreeError{NodeID: id, Reason: err.Error()}
	}

	name, err := d.tables.readName(rec.nameOffset)
	if err != nil {
		return nil, &MalformedTreeError{NodeID: id, Reason: err.Error()}
	}

	node := &Node{
		ID:    id,
		Name:  name,
		Path:  joinPath(parentPath, name),
		Flags: rec.flags,
	}

	if rec.isDir() {
		return d.decodeDir(node, rec)
	}
	return d.decodeFile(node, rec)
}

func (d *decoder) decodeDir(node *Node, rec structRecord) (*Node, error) {
	first := uint64(rec.firstChild)
	end := first + uint64(rec.childCount)
	if end > uint64(d.count) {
		return nil, &MalformedTreeError{
			NodeID: node.ID,
			Reason: fmt.Sprintf("children [%d, %d) exceed table of %d nodes", first, end, d.count),
		}
	}

	d.onPath[node.ID] = true
	defer func() { d.onPath[node.ID] = false }()

	node.Children = make(map[string]*Node, rec.childCount)
	for id := int(first); id < int(end); id++ {
		child, err := d.decodeNode(id, node.Path)
		if err != nil {
			if d.config.Strict {
				return nil, err
			}
			d.problems = append(d.problems, err)
			continue
		}
		if child == nil {
			continue
		}
		d.insert(node.Children, child)
	}

	return node, nil
}

func (d *decoder) decodeFile(node *Node, rec structRecord) (*Node, error) {
	raw, err := d.tables.readPayload(rec.dataOffset)
	if err != nil {
		return nil, &MalformedTreeError{NodeID: node.ID, Reason: err.Error()}
	}

	node.Country = rec.country
	node.Language = rec.language

	if node.IsCompressed() {
		data, err := inflate(raw, d.config.MaxInflatedSize)
		if err != nil {
			return nil, &DecompressionError{NodeID: node.ID, Path: node.Path, Err: err}
		}
		node.Data = data
	} else {
		node.Data = bytes.Clone(raw)
	}

	return node, nil
}

// insert adds n to m; a name clash keeps the later node and is reported.
func (d *decoder) insert(m map[string]*Node, n *Node) {
	if _, dup := m[n.Name]; dup {
		d.problems = append(d.problems, &DuplicateNameError{NodeID: n.ID, Path: n.Path})
	}
	m[n.Name] = n
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
