// Package ihex encodes and decodes Intel HEX style firmware records.
//
// # Record Format
//
// Every record is a single text line:
//
//	:[ByteCount(2)][Address(4)][RecordType(2)][Data(2*ByteCount)][Checksum(2)]
//
// Example record:
//
//	:0300000041424337
//	  03 = Byte Count (3 data bytes)
//	  0000 = Address (big-endian)
//	  00 = Record Type (0x00 = data)
//	  414243 = Data
//	  37 = Checksum
//
// The checksum is the 2's complement of the sum of all bytes between the
// leading ':' and the checksum itself, so all bytes of a valid record
// (checksum included) sum to zero modulo 256.
//
// # Decoding
//
// Decode reads hex text and applies data records to a flat, zero-filled
// Image (0x4000 bytes by default):
//
//	out, err := ihex.Decode(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range out.Warnings {
//	    log.Println("warning:", w)
//	}
//	os.WriteFile("firmware.fw", out.Image.Bytes(), 0o644)
//
// Checksum mismatches and records that do not fit into the image are
// reported as Warnings and do not stop decoding. Use WithStrictChecksum to
// turn a mismatch into an error.
//
// # Encoding
//
// Encode walks a source buffer made of micro-records, each a 3-byte header
// (signed 16-bit little-endian address, 1-byte length) followed by the data
// bytes, and produces one data record per micro-record plus the mirrored
// binary Image:
//
//	enc, err := ihex.Encode(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	enc.WriteTo(hexFile)
//	binFile.Write(enc.Image.Bytes())
//
// # Error Handling
//
// Errors are typed and can be matched with errors.Is / errors.As:
//   - ChecksumMismatchError (ErrChecksum)
//   - AddressOutOfRangeError (ErrAddressOutOfRange)
//   - TruncatedSourceError (ErrTruncatedSource)
//   - ParseError for malformed lines
package ihex
