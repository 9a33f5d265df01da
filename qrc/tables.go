package qrc

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Table layout constants.
const (
	// StructRecordSize is the stride of the struct table
	StructRecordSize = 14

	// NameHeaderSize is the size of a name record header (length + hash)
	NameHeaderSize = 6

	// PayloadHeaderSize is the size of a payload record header (size)
	PayloadHeaderSize = 4

	// RootNodeID is the node id of the tree root
	RootNodeID = 0
)

// Node flags.
const (
	FlagCompressed uint16 = 0x01
	FlagDirectory  uint16 = 0x02
)

// Tables holds the three raw resource tables of one executable.
type Tables struct {
	Struct  []byte
	Names   []byte
	Payload []byte
}

// NodeCount returns the number of complete records in the struct table.
func (t Tables) NodeCount() int {
	return len(t.Struct) / StructRecordSize
}

// structRecord is a decoded 14-byte struct table entry.
type structRecord struct {
	nameOffset uint32
	flags      uint16

	// directory
	childCount uint32
	firstChild uint32

	// file
	country    uint16
	language   uint16
	dataOffset uint32
}

func (r structRecord) isDir() bool {
	return r.flags&FlagDirectory != 0
}

// readStruct reads the record of node id.
func (t Tables) readStruct(id int) (structRecord, error) {
	off := id * StructRecordSize
	if id < 0 || off+StructRecordSize > len(t.Struct) {
		return structRecord{}, fmt.Errorf("struct record out of bounds (table holds %d nodes)", t.NodeCount())
	}
	b := t.Struct[off : off+StructRecordSize]

	rec := structRecord{
		nameOffset: binary.BigEndian.Uint32(b[0:4]),
		flags:      binary.BigEndian.Uint16(b[4:6]),
	}
	if rec.isDir() {
		rec.childCount = binary.BigEndian.Uint32(b[6:10])
		rec.firstChild = binary.BigEndian.Uint32(b[10:14])
	} else {
		rec.country = binary.BigEndian.Uint16(b[6:8])
		rec.language = binary.BigEndian.Uint16(b[8:10])
		rec.dataOffset = binary.BigEndian.Uint32(b[10:14])
	}
	return rec, nil
}

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// readName decodes the name record at off.
// The stored hash is not verified.
func (t Tables) readName(off uint32) (string, error) {
	start := uint64(off)
	if start+NameHeaderSize > uint64(len(t.Names)) {
		return "", fmt.Errorf("name record at 0x%X out of bounds (%d bytes)", off, len(t.Names))
	}
	length := uint64(binary.BigEndian.Uint16(t.Names[start:]))

	textStart := start + NameHeaderSize
	textEnd := textStart + length*2
	if textEnd > uint64(len(t.Names)) {
		return "", fmt.Errorf("name at 0x%X: %d characters exceed table (%d bytes)", off, length, len(t.Names))
	}

	name, err := utf16be.NewDecoder().Bytes(t.Names[textStart:textEnd])
	if err != nil {
		return "", fmt.Errorf("name at 0x%X: %w", off, err)
	}
	return string(name), nil
}

// readPayload returns the data of the payload record at off.
// The returned slice aliases the payload table.
func (t Tables) readPayload(off uint32) ([]byte, error) {
	start := uint64(off)
	if start+PayloadHeaderSize > uint64(len(t.Payload)) {
		return nil, fmt.Errorf("payload record at 0x%X out of bounds (%d bytes)", off, len(t.Payload))
	}
	size := uint64(binary.BigEndian.Uint32(t.Payload[start:]))

	dataStart := start + PayloadHeaderSize
	dataEnd := dataStart + size
	if dataEnd > uint64(len(t.Payload)) {
		return nil, fmt.Errorf("payload at 0x%X: %d bytes exceed table (%d bytes)", off, size, len(t.Payload))
	}
	return t.Payload[dataStart:dataEnd], nil
}
