package ihex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Decoded is the result of decoding hex text.
type Decoded struct {
	// Image holds the data records applied at their addresses
	Image *Image

	// Records lists every parsed record in input order, including skipped ones
	Records []*Record

	// Warnings lists tolerated problems: checksum mismatches and
	// records that did not fit into the image
	Warnings []error
}

// Decode reads hex text from r and applies its data records to a new Image.
//
// Lines not starting with ':' are ignored. Decoding stops at the end-of-file
// record or at the end of input. A malformed line aborts decoding with a
// ParseError; a checksum mismatch (unless strict) or an out-of-range record is
// recorded in Decoded.Warnings and decoding continues with the next line.
func Decode(r io.Reader, opts ...Option) (*Decoded, error) {
	d := newDecoder(opts)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		done, err := d.decodeLine(lineNum, scanner.Text())
		if err != nil {
			return nil, err
		}
		if done {
			return d.out, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hex data: %w", err)
	}

	return d.out, nil
}

// DecodeLines is Decode over already split lines.
func DecodeLines(lines []string, opts ...Option) (*Decoded, error) {
	d := newDecoder(opts)
	for i, line := range lines {
		done, err := d.decodeLine(i+1, line)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return d.out, nil
}

type decoder struct {
	config Config
	out    *Decoded
}

func newDecoder(opts []Option) *decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &decoder{
		config: cfg,
		out:    &Decoded{Image: NewImage(cfg.ImageSize)},
	}
}

// decodeLine applies one line. It reports done on the end-of-file record.
func (d *decoder) decodeLine(lineNum int, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] != StartCode {
		return false, nil
	}

	rec, err := ParseRecord(line)
	if err != nil {
		return false, &ParseError{Line: lineNum, Err: err}
	}

	if sum := rec.ComputeChecksum(); sum != rec.Checksum {
		mismatch := &ChecksumMismatchError{Line: lineNum, Expected: sum, Actual: rec.Checksum}
		if d.config.StrictChecksum {
			return false, mismatch
		}
		d.out.Warnings = append(d.out.Warnings, mismatch)
	}

	d.out.Records = append(d.out.Records, rec)

	switch rec.Type {
	case TypeData:
		if oor := d.out.Image.write(int(rec.Address), rec.Data); oor != nil {
			oor.Line = lineNum
			d.out.Warnings = append(d.out.Warnings, oor)
		}
	case TypeEOF:
		return true, nil
	}

	return false, nil
}
