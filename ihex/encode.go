package ihex

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

// MicroHeaderSize is the size of a micro-record header:
// address (signed 16-bit, little-endian) + length (1 byte).
const MicroHeaderSize = 3

// Encoded is the result of encoding a micro-record source buffer.
type Encoded struct {
	// Records holds one data record per micro-record, in source order
	Records []*Record

	// Image mirrors every record that fits at its address
	Image *Image

	// Warnings lists records that were emitted but could not be mirrored into Image
	Warnings []error
}

// Lines returns the hex lines including the trailing end-of-file record.
func (e *Encoded) Lines() []string {
	lines := make([]string, 0, len(e.Records)+1)
	for _, rec := range e.Records {
		lines = append(lines, rec.String())
	}
	return append(lines, EOFRecord)
}

// WriteTo writes the hex text to w. Every data record is terminated by a
// newline; the end-of-file record is written last, without one.
func (e *Encoded) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, rec := range e.Records {
		written, err := bw.WriteString(rec.String() + "\n")
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	written, err := bw.WriteString(EOFRecord)
	n += int64(written)
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// Err joins the Warnings, or returns nil when there are none.
func (e *Encoded) Err() error {
	return errors.Join(e.Warnings...)
}

// Encode converts a micro-record source buffer into hex records.
//
// The buffer is walked from offset 0 to its end; each micro-record yields one
// data record with a computed checksum. The record bytes are also mirrored
// into an Image. A record that does not fit into the Image is still emitted
// and reported as an AddressOutOfRangeError in Encoded.Warnings.
//
// A micro-record running past the end of src aborts with a TruncatedSourceError.
func Encode(src []byte, opts ...Option) (*Encoded, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	out := &Encoded{Image: NewImage(cfg.ImageSize)}

	offset := 0
	for offset < len(src) {
		if have := len(src) - offset; have < MicroHeaderSize {
			return nil, &TruncatedSourceError{Offset: offset, Need: MicroHeaderSize, Have: have}
		}

		addr := int16(binary.LittleEndian.Uint16(src[offset:]))
		length := int(src[offset+2])

		if have := len(src) - offset; have < MicroHeaderSize+length {
			return nil, &TruncatedSourceError{Offset: offset, Need: MicroHeaderSize + length, Have: have}
		}

		start := offset + MicroHeaderSize
		rec := &Record{
			Type:    TypeData,
			Address: uint16(addr),
			Data:    make([]byte, length),
		}
		copy(rec.Data, src[start:start+length])
		rec.Checksum = rec.ComputeChecksum()
		out.Records = append(out.Records, rec)

		if oor := out.Image.write(int(addr), rec.Data); oor != nil {
			oor.Line = len(out.Records)
			out.Warnings = append(out.Warnings, oor)
		}

		offset = start + length
	}

	return out, nil
}
