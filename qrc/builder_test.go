package qrc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

// tableBuilder assembles resource tables for tests.
type tableBuilder struct {
	structs bytes.Buffer
	names   bytes.Buffer
	payload bytes.Buffer
}

func (b *tableBuilder) tables() Tables {
	return Tables{
		Struct:  b.structs.Bytes(),
		Names:   b.names.Bytes(),
		Payload: b.payload.Bytes(),
	}
}

// name appends a name record and returns its offset.
func (b *tableBuilder) name(t *testing.T, s string) uint32 {
	t.Helper()
	text, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)

	off := uint32(b.names.Len())
	var hdr [NameHeaderSize]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(len(text)/2))
	binary.BigEndian.PutUint32(hdr[2:6], 0xDEADBEEF)
	b.names.Write(hdr[:])
	b.names.Write(text)
	return off
}

// data appends a payload record and returns its offset.
func (b *tableBuilder) data(raw []byte) uint32 {
	off := uint32(b.payload.Len())
	var hdr [PayloadHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(raw)))
	b.payload.Write(hdr[:])
	b.payload.Write(raw)
	return off
}

// dir appends a directory record.
func (b *tableBuilder) dir(t *testing.T, name string, count, first uint32) {
	var rec [StructRecordSize]byte
	binary.BigEndian.PutUint32(rec[0:4], b.name(t, name))
	binary.BigEndian.PutUint16(rec[4:6], FlagDirectory)
	binary.BigEndian.PutUint32(rec[6:10], count)
	binary.BigEndian.PutUint32(rec[10:14], first)
	b.structs.Write(rec[:])
}

// file appends a file record whose payload is raw.
func (b *tableBuilder) file(t *testing.T, name string, flags uint16, raw []byte) {
	b.fileAt(t, name, flags, b.data(raw))
}

// fileAt appends a file record pointing at an explicit payload offset.
func (b *tableBuilder) fileAt(t *testing.T, name string, flags uint16, dataOff uint32) {
	var rec [StructRecordSize]byte
	binary.BigEndian.PutUint32(rec[0:4], b.name(t, name))
	binary.BigEndian.PutUint16(rec[4:6], flags)
	binary.BigEndian.PutUint16(rec[6:8], 0)
	binary.BigEndian.PutUint16(rec[8:10], 1)
	binary.BigEndian.PutUint32(rec[10:14], dataOff)
	b.structs.Write(rec[:])
}

func deflateRaw(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func deflateZlib(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// qCompress frames a zlib stream with the big-endian uncompressed length.
func qCompress(t *testing.T, data []byte) []byte {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(data)))
	return append(hdr[:], deflateZlib(t, data)...)
}
