package extract

import (
	"fmt"
)

// SymbolNotFoundError indicates that a resource table symbol is missing.
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %q not found", e.Name)
}

// DuplicateSymbolError indicates that more than one symbol matches a table name.
type DuplicateSymbolError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol for %q: %q and %q", e.Name, e.First, e.Second)
}

// RegionOutOfRangeError indicates that a symbol or library region lies outside its container.
type RegionOutOfRangeError struct {
	Name   string
	Offset uint64
	Size   uint64
	Limit  uint64
}

func (e *RegionOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: region 0x%X+0x%X exceeds 0x%X bytes", e.Name, e.Offset, e.Size, e.Limit)
}

// UnsupportedLibraryError indicates that a vendor library is not in the known table.
type UnsupportedLibraryError struct {
	Model  string
	SHA256 string
}

func (e *UnsupportedLibraryError) Error() string {
	if e.SHA256 == "" {
		return fmt.Sprintf("model %q is not supported", e.Model)
	}
	return fmt.Sprintf("unsupported %s library version (SHA-256 %s)", e.Model, e.SHA256)
}

// UnsafePathError indicates a resource path that would escape the output directory.
type UnsafePathError struct {
	Path string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("unsafe resource path %q", e.Path)
}
