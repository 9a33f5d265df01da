package ihex

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksum matches any ChecksumMismatchError.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrAddressOutOfRange matches any AddressOutOfRangeError.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrTruncatedSource matches any TruncatedSourceError.
	ErrTruncatedSource = errors.New("truncated source")
)

// ChecksumMismatchError indicates that a record's stored checksum is wrong.
type ChecksumMismatchError struct {
	Line     int
	Expected byte
	Actual   byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("line %d: checksum mismatch: expected 0x%02X, got 0x%02X",
		e.Line, e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksum
}

// AddressOutOfRangeError indicates that a record does not fit into the image.
// Line is the 1-based input line when decoding, or the output record number when encoding.
type AddressOutOfRangeError struct {
	Line    int
	Address int
	Length  int
	Size    int
}

func (e *AddressOutOfRangeError) Error() string {
	return fmt.Sprintf("line %d: %d bytes at address 0x%04X exceed image of 0x%04X bytes",
		e.Line, e.Length, e.Address&0xFFFF, e.Size)
}

func (e *AddressOutOfRangeError) Is(target error) bool {
	return target == ErrAddressOutOfRange
}

// TruncatedSourceError indicates that a micro-record runs past the end of the source buffer.
type TruncatedSourceError struct {
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedSourceError) Error() string {
	return fmt.Sprintf("truncated source at offset 0x%X: need %d bytes, have %d",
		e.Offset, e.Need, e.Have)
}

func (e *TruncatedSourceError) Is(target error) bool {
	return target == ErrTruncatedSource
}

// ParseError wraps a malformed line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsChecksumMismatch returns true if err is or wraps a ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksum)
}

// IsTruncatedSource returns true if err is or wraps a TruncatedSourceError.
func IsTruncatedSource(err error) bool {
	return errors.Is(err, ErrTruncatedSource)
}

// IsAddressOutOfRange returns true if err is or wraps an AddressOutOfRangeError.
func IsAddressOutOfRange(err error) bool {
	return errors.Is(err, ErrAddressOutOfRange)
}
