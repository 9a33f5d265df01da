package extract

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/moffa90/go-kingstfw/ihex"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantLibraryHex = ":0400000001020304F2\n:020010000506E3\n" + ihex.EOFRecord

// testLibrary returns a fake vendor library and its table entry.
func testLibrary() ([]byte, Library) {
	micro := []byte{
		0x00, 0x00, 0x04, 0x01, 0x02, 0x03, 0x04,
		0x10, 0x00, 0x02, 0x05, 0x06,
	}

	data := make([]byte, 128)
	copy(data[16:], micro)
	copy(data[64:], bitstreamData)

	sum := sha256.Sum256(data)
	return data, Library{
		Model:     "LA9999",
		SHA256:    hex.EncodeToString(sum[:]),
		Firmware:  Region{Offset: 16, Size: len(micro)},
		Bitstream: Region{Offset: 64, Size: len(bitstreamData)},
	}
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "LA1010", ModelName("/mnt/c/KingstVIS/LA1010.dll"))
	assert.Equal(t, "LA2016", ModelName("la2016.DLL"))
	assert.Equal(t, "LA5016", ModelName("LA5016"))
}

func TestFindLibrary(t *testing.T) {
	data, lib := testLibrary()
	libs := []Library{lib}

	got, err := FindLibrary(libs, "LA9999", data)
	require.NoError(t, err)
	assert.Equal(t, lib, *got)

	_, err = FindLibrary(libs, "LA1234", data)
	var unsupported *UnsupportedLibraryError
	require.True(t, errors.As(err, &unsupported))
	assert.Empty(t, unsupported.SHA256)
	assert.Contains(t, err.Error(), "not supported")

	_, err = FindLibrary(libs, "LA9999", append([]byte{0}, data...))
	require.True(t, errors.As(err, &unsupported))
	assert.Len(t, unsupported.SHA256, 64)
	assert.Contains(t, err.Error(), "unsupported LA9999 library version")
}

func TestKnownLibraries(t *testing.T) {
	require.NotEmpty(t, KnownLibraries)
	for _, lib := range KnownLibraries {
		assert.Equal(t, ModelName(lib.Model), lib.Model)
		assert.Len(t, lib.SHA256, 64)
		assert.Positive(t, lib.Firmware.Size)
		assert.Positive(t, lib.Bitstream.Size)
	}
}

func TestLibraryExtract(t *testing.T) {
	data, lib := testLibrary()

	bitstream, enc, err := lib.Extract(data)
	require.NoError(t, err)
	assert.Equal(t, bitstreamData, bitstream)
	assert.Empty(t, enc.Warnings)

	var buf bytes.Buffer
	_, err = enc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, wantLibraryHex, buf.String())

	image := enc.Image.Bytes()
	assert.Equal(t, []byte{1, 2, 3, 4}, image[0:4])
	assert.Equal(t, []byte{5, 6}, image[0x10:0x12])
}

func TestLibraryExtractRegionOutOfRange(t *testing.T) {
	data, lib := testLibrary()
	lib.Bitstream.Size = len(data)

	_, _, err := lib.Extract(data)
	var oor *RegionOutOfRangeError
	require.True(t, errors.As(err, &oor), "got %v", err)
	assert.Contains(t, err.Error(), "bitstream")
}

func TestLibraryExtractTruncatedFirmware(t *testing.T) {
	data, lib := testLibrary()
	lib.Firmware.Size -= 1

	_, _, err := lib.Extract(data)
	assert.ErrorIs(t, err, ihex.ErrTruncatedSource)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "LA1010.fw", outputName("LA1010", "fw", "LA1010.dll"))
	assert.Equal(t, "LA1010.hex", outputName("LA1010", "hex", "la1010.dll"))
	assert.Equal(t, "LA1010.bitstream.bitstream", outputName("LA1010", "bitstream", "LA1010.bitstream"))
}

func TestExtractLibrary(t *testing.T) {
	data, lib := testLibrary()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/vendor/LA9999.dll", data, 0o644))

	logger := &MockLogger{}
	var phases []string
	ex := New(
		WithFs(fs),
		WithLogger(logger),
		WithLibraries([]Library{lib}),
		WithProgressCallback(func(p Progress) { phases = append(phases, p.Phase) }),
	)

	res, err := ex.ExtractLibrary(context.Background(), "/vendor/LA9999.dll")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/vendor/LA9999.bitstream",
		"/vendor/LA9999.hex",
		"/vendor/LA9999.fw",
	}, res.Installed)

	got, err := afero.ReadFile(fs, "/vendor/LA9999.hex")
	require.NoError(t, err)
	assert.Equal(t, wantLibraryHex, string(got))

	got, err = afero.ReadFile(fs, "/vendor/LA9999.fw")
	require.NoError(t, err)
	assert.Len(t, got, ihex.DefaultImageSize)

	got, err = afero.ReadFile(fs, "/vendor/LA9999.bitstream")
	require.NoError(t, err)
	assert.Equal(t, bitstreamData, got)

	require.NotEmpty(t, phases)
	assert.Equal(t, PhaseReading, phases[0])
	assert.Equal(t, PhaseComplete, phases[len(phases)-1])
	assert.Contains(t, logger.InfoMessages, "library extraction complete")
}

func TestExtractLibraryOutputDir(t *testing.T) {
	data, lib := testLibrary()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/vendor/LA9999.dll", data, 0o644))

	ex := New(WithFs(fs), WithLibraries([]Library{lib}), WithOutputDir("/out"), WithImageSize(0x100))
	res, err := ex.ExtractLibrary(context.Background(), "/vendor/LA9999.dll")
	require.NoError(t, err)
	assert.Contains(t, res.Installed, "/out/LA9999.fw")

	got, err := afero.ReadFile(fs, "/out/LA9999.fw")
	require.NoError(t, err)
	assert.Len(t, got, 0x100)
}

func TestExtractLibraryUnsupported(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/vendor/LA1010.dll", []byte("not the real thing"), 0o644))

	logger := &MockLogger{}
	ex := New(WithFs(fs), WithLogger(logger))
	_, err := ex.ExtractLibrary(context.Background(), "/vendor/LA1010.dll")

	var unsupported *UnsupportedLibraryError
	require.True(t, errors.As(err, &unsupported), "got %v", err)
	assert.Equal(t, "LA1010", unsupported.Model)
	assert.NotEmpty(t, logger.ErrorMessages)
}
