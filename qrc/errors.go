package qrc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTree matches any MalformedTreeError.
	ErrMalformedTree = errors.New("malformed resource tree")

	// ErrDecompression matches any DecompressionError.
	ErrDecompression = errors.New("decompression failed")
)

// MalformedTreeError indicates that a table reference falls outside its
// table, or that the tree structure is inconsistent.
// NodeID is -1 when the whole struct table is affected.
type MalformedTreeError struct {
	NodeID int
	Reason string
}

func (e *MalformedTreeError) Error() string {
	if e.NodeID < 0 {
		return fmt.Sprintf("malformed resource tree: %s", e.Reason)
	}
	return fmt.Sprintf("malformed resource tree: node %d: %s", e.NodeID, e.Reason)
}

func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}

// DecompressionError indicates that a compressed payload could not be inflated.
type DecompressionError struct {
	NodeID int
	Path   string
	Err    error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("decompress %q (node %d): %v", e.Path, e.NodeID, e.Err)
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

func (e *DecompressionError) Is(target error) bool {
	return target == ErrDecompression
}

// DuplicateNameError reports an entry that replaced an earlier entry of the
// same name at the same level.
type DuplicateNameError struct {
	NodeID int
	Path   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate entry %q (node %d) overwrites an earlier entry", e.Path, e.NodeID)
}

// IsMalformedTree returns true if err is or wraps a MalformedTreeError.
func IsMalformedTree(err error) bool {
	return errors.Is(err, ErrMalformedTree)
}

// IsDecompression returns true if err is or wraps a DecompressionError.
func IsDecompression(err error) bool {
	return errors.Is(err, ErrDecompression)
}
