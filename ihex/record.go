package ihex

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Constants for hex record parsing and formatting.
const (
	// StartCode is the first character of every record line
	StartCode = ':'

	// MinimumRecordLength is the shortest valid line in characters:
	// ':' + byte count(2) + address(4) + type(2) + checksum(2)
	MinimumRecordLength = 11

	// RecordHeaderSize is the size of the binary record header (count + address + type)
	RecordHeaderSize = 4

	// RecordChecksumSize is the size of the record checksum field
	RecordChecksumSize = 1

	// MaxDataLength is the largest payload a single record can carry
	MaxDataLength = 0xFF

	// EOFRecord is the fixed end-of-file line
	EOFRecord = ":00000001FF"
)

// RecordType identifies the kind of a hex record.
type RecordType byte

// Record types. Only TypeData is applied to an Image; TypeEOF terminates decoding.
const (
	TypeData                RecordType = 0x00
	TypeEOF                 RecordType = 0x01
	TypeExtendedSegmentAddr RecordType = 0x02
	TypeStartSegmentAddr    RecordType = 0x03
	TypeExtendedLinearAddr  RecordType = 0x04
	TypeStartLinearAddr     RecordType = 0x05
)

func (t RecordType) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeEOF:
		return "eof"
	case TypeExtendedSegmentAddr:
		return "extended segment address"
	case TypeStartSegmentAddr:
		return "start segment address"
	case TypeExtendedLinearAddr:
		return "extended linear address"
	case TypeStartLinearAddr:
		return "start linear address"
	default:
		return fmt.Sprintf("unknown type 0x%02X", byte(t))
	}
}

// Record is a single hex record.
type Record struct {
	// Type is the record type
	Type RecordType

	// Address is the 16-bit load offset
	Address uint16

	// Data holds the record payload (at most MaxDataLength bytes)
	Data []byte

	// Checksum is the checksum as stored in the line (or computed when encoding)
	Checksum byte
}

// header returns the binary record header: byte count, address (big-endian), type.
func (r *Record) header() []byte {
	return []byte{byte(len(r.Data)), byte(r.Address >> 8), byte(r.Address), byte(r.Type)}
}

// ComputeChecksum returns the checksum the record should carry.
func (r *Record) ComputeChecksum() byte {
	return Checksum(append(r.header(), r.Data...))
}

// Valid reports whether the stored checksum matches the record contents.
func (r *Record) Valid() bool {
	return r.Checksum == r.ComputeChecksum()
}

// String formats the record as a hex line without a line terminator.
func (r *Record) String() string {
	raw := make([]byte, 0, RecordHeaderSize+len(r.Data)+RecordChecksumSize)
	raw = append(raw, r.header()...)
	raw = append(raw, r.Data...)
	raw = append(raw, r.Checksum)

	var sb strings.Builder
	sb.Grow(1 + hex.EncodedLen(len(raw)))
	sb.WriteByte(StartCode)
	sb.WriteString(strings.ToUpper(hex.EncodeToString(raw)))
	return sb.String()
}

// ParseRecord parses a single hex line.
//
// The stored checksum is copied into Record.Checksum but not verified;
// use Record.Valid for that.
//
// Example: ":0300000041424337"
//
//	ByteCount: 0x03
//	Address: 0x0000
//	Type: 0x00 (data)
//	Data: [0x41, 0x42, 0x43]
//	Checksum: 0x37
func ParseRecord(line string) (*Record, error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 || line[0] != StartCode {
		return nil, fmt.Errorf("record must start with '%c'", StartCode)
	}
	if len(line) < MinimumRecordLength {
		return nil, fmt.Errorf("record too short: got %d characters, minimum is %d", len(line), MinimumRecordLength)
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	count := int(raw[0])
	expectedLen := RecordHeaderSize + count + RecordChecksumSize
	if len(raw) != expectedLen {
		return nil, fmt.Errorf("data length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(raw), expectedLen, RecordHeaderSize, count, RecordChecksumSize)
	}

	rec := &Record{
		Address:  uint16(raw[1])<<8 | uint16(raw[2]),
		Type:     RecordType(raw[3]),
		Data:     make([]byte, count),
		Checksum: raw[len(raw)-1],
	}
	copy(rec.Data, raw[RecordHeaderSize:RecordHeaderSize+count])

	return rec, nil
}
