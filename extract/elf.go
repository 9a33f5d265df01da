package extract

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-kingstfw/qrc"
)

// SymbolNames holds the symbol name suffixes of the three resource tables.
// Suffix matching covers mangled local names such as _ZL18qt_resource_struct.
type SymbolNames struct {
	Struct  string
	Names   string
	Payload string
}

// DefaultSymbolNames returns the names rcc emits for the default resource set.
func DefaultSymbolNames() SymbolNames {
	return SymbolNames{
		Struct:  "qt_resource_struct",
		Names:   "qt_resource_name",
		Payload: "qt_resource_data",
	}
}

// ReadTables locates the resource table symbols in the ELF image r and returns
// their contents.
func ReadTables(r io.ReaderAt, names SymbolNames) (qrc.Tables, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return qrc.Tables{}, fmt.Errorf("failed to read ELF: %w", err)
	}
	defer f.Close()

	syms, err := f.Symbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return qrc.Tables{}, fmt.Errorf("ELF has no symbol table (stripped binary?)")
		}
		return qrc.Tables{}, fmt.Errorf("failed to read symbols: %w", err)
	}

	found, err := findSymbols(syms, []string{names.Struct, names.Names, names.Payload})
	if err != nil {
		return qrc.Tables{}, err
	}

	var t qrc.Tables
	dst := []*[]byte{&t.Struct, &t.Names, &t.Payload}
	for i, sym := range found {
		data, err := symbolData(f, sym)
		if err != nil {
			return qrc.Tables{}, err
		}
		*dst[i] = data
	}
	return t, nil
}

// findSymbols returns, for each wanted suffix, the single symbol whose name ends with it.
func findSymbols(syms []elf.Symbol, wanted []string) ([]elf.Symbol, error) {
	found := make([]elf.Symbol, len(wanted))
	seen := make([]bool, len(wanted))

	for _, sym := range syms {
		for i, name := range wanted {
			if name == "" || !strings.HasSuffix(sym.Name, name) {
				continue
			}
			if seen[i] {
				return nil, &DuplicateSymbolError{Name: name, First: found[i].Name, Second: sym.Name}
			}
			found[i] = sym
			seen[i] = true
		}
	}

	for i, name := range wanted {
		if !seen[i] {
			return nil, &SymbolNotFoundError{Name: name}
		}
	}
	return found, nil
}

// symbolData reads the bytes a symbol covers from its own section.
func symbolData(f *elf.File, sym elf.Symbol) ([]byte, error) {
	idx := int(sym.Section)
	if sym.Section == elf.SHN_UNDEF || idx >= len(f.Sections) {
		return nil, fmt.Errorf("symbol %q has no section (index %d)", sym.Name, sym.Section)
	}
	sec := f.Sections[idx]
	if sec.Type == elf.SHT_NOBITS {
		return nil, fmt.Errorf("symbol %q lives in %s which has no file data", sym.Name, sec.Name)
	}

	if sym.Value < sec.Addr || sym.Value-sec.Addr+sym.Size > sec.Size {
		return nil, &RegionOutOfRangeError{
			Name:   sym.Name,
			Offset: sym.Value - sec.Addr,
			Size:   sym.Size,
			Limit:  sec.Size,
		}
	}

	buf := make([]byte, sym.Size)
	if _, err := sec.ReadAt(buf, int64(sym.Value-sec.Addr)); err != nil {
		return nil, fmt.Errorf("failed to read symbol %q: %w", sym.Name, err)
	}
	return buf, nil
}
