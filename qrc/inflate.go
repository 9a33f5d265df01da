package qrc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// qCompressHeaderSize is the big-endian uncompressed length that prefixes qCompress output.
const qCompressHeaderSize = 4

// inflate decompresses a payload. Three framings are tried in order:
// qCompress (length prefix + zlib), bare zlib, raw deflate.
func inflate(data []byte, limit int64) ([]byte, error) {
	if len(data) >= qCompressHeaderSize+2 && isZlibHeader(data[qCompressHeaderSize:]) {
		hint := int64(binary.BigEndian.Uint32(data))
		if out, err := inflateZlib(data[qCompressHeaderSize:], hint, limit); err == nil {
			return out, nil
		}
	}
	if isZlibHeader(data) {
		if out, err := inflateZlib(data, 0, limit); err == nil {
			return out, nil
		}
	}
	return readAll(flate.NewReader(bytes.NewReader(data)), 0, limit)
}

// isZlibHeader checks the zlib CMF/FLG pair: deflate method, window <= 32K,
// header check bits valid.
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	return cmf&0x0F == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

func inflateZlib(data []byte, hint, limit int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return readAll(zr, hint, limit)
}

func readAll(rc io.ReadCloser, hint, limit int64) ([]byte, error) {
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	if hint > 0 && hint <= limit {
		buf.Grow(int(hint))
	}
	n, err := io.Copy(&buf, io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, fmt.Errorf("inflated size exceeds %d bytes", limit)
	}
	return buf.Bytes(), nil
}
