package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/moffa90/go-kingstfw/ihex"
)

// Region is a byte range inside a vendor library.
type Region struct {
	Offset int
	Size   int
}

// Library describes a known vendor library build and where its firmware lives.
type Library struct {
	// Model is the upper-case device model, taken from the library file name
	Model string

	// SHA256 is the lower-case hex digest of the whole library file
	SHA256 string

	// Firmware holds the micro-record encoded FX2 firmware
	Firmware Region

	// Bitstream holds the raw FPGA bitstream
	Bitstream Region
}

// KnownLibraries lists the supported vendor library builds.
var KnownLibraries = []Library{
	{
		Model:     "LA1010",
		SHA256:    "e46c7a334b81769535bef396515fe2f1a5b2888f7a9963a5f34dfba8902b920f",
		Firmware:  Region{Offset: 0x323F8, Size: 0x1948},
		Bitstream: Region{Offset: 0x13A58, Size: 0x1E9A0},
	},
}

// ModelName derives the device model from a library file name: LA1010.dll -> LA1010.
func ModelName(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

// FindLibrary returns the entry of libs matching model and the SHA-256 of data.
func FindLibrary(libs []Library, model string, data []byte) (*Library, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	knownModel := false
	for i := range libs {
		if libs[i].Model != model {
			continue
		}
		knownModel = true
		if strings.EqualFold(libs[i].SHA256, digest) {
			return &libs[i], nil
		}
	}

	if !knownModel {
		return nil, &UnsupportedLibraryError{Model: model}
	}
	return nil, &UnsupportedLibraryError{Model: model, SHA256: digest}
}

// Extract slices the bitstream out of data and encodes the firmware region.
// Encoding warnings are returned in the Encoded result.
func (l *Library) Extract(data []byte, opts ...ihex.Option) ([]byte, *ihex.Encoded, error) {
	bitstream, err := l.slice(data, l.Bitstream, "bitstream")
	if err != nil {
		return nil, nil, err
	}
	src, err := l.slice(data, l.Firmware, "firmware")
	if err != nil {
		return nil, nil, err
	}

	enc, err := ihex.Encode(src, opts...)
	if err != nil {
		return nil, nil, err
	}
	return bitstream, enc, nil
}

func (l *Library) slice(data []byte, r Region, what string) ([]byte, error) {
	if r.Offset < 0 || r.Size < 0 || r.Offset+r.Size > len(data) {
		return nil, &RegionOutOfRangeError{
			Name:   l.Model + " " + what,
			Offset: uint64(r.Offset),
			Size:   uint64(r.Size),
			Limit:  uint64(len(data)),
		}
	}
	return data[r.Offset : r.Offset+r.Size], nil
}

// outputName builds model.ext, falling back to base.ext when that would
// overwrite the input file.
func outputName(model, ext, base string) string {
	name := model + "." + ext
	if name == base {
		return base + "." + ext
	}
	return name
}
