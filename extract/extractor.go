package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/moffa90/go-kingstfw/ihex"
	"github.com/moffa90/go-kingstfw/qrc"
	"github.com/spf13/afero"
)

// Result summarises the files produced by an extraction.
type Result struct {
	// Exported lists the resource files written, in walk order
	Exported []string

	// Firmware lists the exported files classified as firmware
	Firmware []Firmware

	// Installed lists the files written to the firmware directory
	Installed []string

	// Warnings holds tolerated problems (dropped nodes, checksum mismatches, ...)
	Warnings []error

	// BytesWritten is the total size of all files written
	BytesWritten int
}

func (r *Result) merge(o *Result) {
	r.Exported = append(r.Exported, o.Exported...)
	r.Firmware = append(r.Firmware, o.Firmware...)
	r.Installed = append(r.Installed, o.Installed...)
	r.Warnings = append(r.Warnings, o.Warnings...)
	r.BytesWritten += o.BytesWritten
}

// Extractor pulls KingstVIS firmware out of vendor executables and libraries.
//
// Extractor is safe for concurrent use after initialization as long as the
// configured filesystem is.
type Extractor struct {
	config Config
}

// New creates a new Extractor with the given options.
//
// Example:
//
//	ex := extract.New(
//	    extract.WithOutputDir("out"),
//	    extract.WithFirmwareDir("/usr/share/sigrok-firmware"),
//	)
func New(opts ...Option) *Extractor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Extractor{config: cfg}
}

// ExtractExecutable performs the complete executable sequence:
//  1. Read the resource tables from the ELF symbol table
//  2. Decode the resource tree
//  3. Export every file below the output directory
//  4. Install classified firmware if a firmware directory is configured
//
// The operation can be cancelled via context between files.
func (e *Extractor) ExtractExecutable(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	e.reportProgress(Progress{Phase: PhaseReading, ElapsedTime: time.Since(start)})

	tables, err := e.readTables(path)
	if err != nil {
		return nil, err
	}
	e.logDebug("resource tables",
		"struct", humanize.Bytes(uint64(len(tables.Struct))),
		"names", humanize.Bytes(uint64(len(tables.Names))),
		"payload", humanize.Bytes(uint64(len(tables.Payload))),
		"nodes", tables.NodeCount())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.reportProgress(Progress{Phase: PhaseDecoding, Percentage: 10, ElapsedTime: time.Since(start)})

	res, err := qrc.Decode(tables, qrc.WithStrict(e.config.Strict))
	if err != nil {
		e.logError("failed to decode resources", "path", path, "error", err)
		return nil, fmt.Errorf("failed to decode resources of %s: %w", path, err)
	}

	out, err := e.export(ctx, res, start)
	if err != nil {
		return nil, err
	}

	if e.config.FirmwareDir != "" && len(out.Firmware) > 0 {
		installed, err := e.install(ctx, e.config.FirmwareDir, out.Firmware, start)
		if err != nil {
			return nil, err
		}
		out.merge(installed)
	}

	e.reportProgress(Progress{
		Phase:        PhaseComplete,
		Current:      len(out.Exported),
		Total:        len(out.Exported),
		Percentage:   100,
		BytesWritten: out.BytesWritten,
		ElapsedTime:  time.Since(start),
	})
	e.logInfo("extraction complete",
		"path", path,
		"files", len(out.Exported),
		"firmware", len(out.Firmware),
		"written", humanize.Bytes(uint64(out.BytesWritten)),
		"duration", time.Since(start))

	return out, nil
}

func (e *Extractor) readTables(path string) (qrc.Tables, error) {
	f, err := e.config.Fs.Open(path)
	if err != nil {
		return qrc.Tables{}, fmt.Errorf("failed to open executable: %w", err)
	}
	defer f.Close()

	tables, err := ReadTables(f, e.config.Symbols)
	if err != nil {
		e.logError("failed to read resource tables", "path", path, "error", err)
		return qrc.Tables{}, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// Export writes every file of res below the output directory and classifies
// firmware. Problems recorded in res become warnings of the result.
func (e *Extractor) Export(ctx context.Context, res *qrc.Resources) (*Result, error) {
	return e.export(ctx, res, time.Now())
}

// Install copies classified firmware into dir/kingst under sigrok's names.
func (e *Extractor) Install(ctx context.Context, dir string, fws []Firmware) (*Result, error) {
	return e.install(ctx, dir, fws, time.Now())
}

// ExtractLibrary pulls the bitstream and FX2 firmware out of a known vendor
// library and writes MODEL.bitstream, MODEL.hex and MODEL.fw.
func (e *Extractor) ExtractLibrary(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	e.reportProgress(Progress{Phase: PhaseReading, ElapsedTime: time.Since(start)})

	data, err := afero.ReadFile(e.config.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	model := ModelName(path)
	lib, err := FindLibrary(e.config.Libraries, model, data)
	if err != nil {
		e.logError("unsupported library", "path", path, "error", err)
		return nil, err
	}
	e.logDebug("library identified", "model", lib.Model, "size", humanize.Bytes(uint64(len(data))))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.reportProgress(Progress{Phase: PhaseEncoding, Percentage: 30, ElapsedTime: time.Since(start)})

	bitstream, enc, err := lib.Extract(data, ihex.WithImageSize(e.config.ImageSize))
	if err != nil {
		e.logError("failed to extract firmware", "model", lib.Model, "error", err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := &Result{Warnings: enc.Warnings}
	e.logWarnings(PhaseEncoding, enc.Warnings)

	var hexText bytes.Buffer
	if _, err := enc.WriteTo(&hexText); err != nil {
		return nil, err
	}

	dir := e.config.OutputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	base := filepath.Base(path)

	files := []struct {
		ext  string
		data []byte
	}{
		{ext: "bitstream", data: bitstream},
		{ext: "hex", data: hexText.Bytes()},
		{ext: "fw", data: enc.Image.Bytes()},
	}
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dst := filepath.Join(dir, outputName(lib.Model, f.ext, base))
		if err := e.writeFile(dst, f.data); err != nil {
			return nil, err
		}
		out.Installed = append(out.Installed, dst)
		out.BytesWritten += len(f.data)

		e.reportProgress(Progress{
			Phase:        PhaseEncoding,
			Current:      i + 1,
			Total:        len(files),
			Percentage:   30 + 70*float64(i+1)/float64(len(files)),
			BytesWritten: out.BytesWritten,
			ElapsedTime:  time.Since(start),
		})
	}

	e.reportProgress(Progress{
		Phase:        PhaseComplete,
		Current:      len(files),
		Total:        len(files),
		Percentage:   100,
		BytesWritten: out.BytesWritten,
		ElapsedTime:  time.Since(start),
	})
	e.logInfo("library extraction complete",
		"model", lib.Model,
		"records", len(enc.Records),
		"warnings", len(enc.Warnings),
		"duration", time.Since(start))

	return out, nil
}

// writeFile writes data to path on the configured filesystem, creating parents.
func (e *Extractor) writeFile(path string, data []byte) error {
	if err := e.config.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(e.config.Fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	e.logDebug("wrote file", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}

func (e *Extractor) logWarnings(phase string, warnings []error) {
	for _, w := range warnings {
		e.logInfo("tolerated problem", "phase", phase, "warning", w)
	}
}

// reportProgress calls the progress callback if configured.
func (e *Extractor) reportProgress(progress Progress) {
	if e.config.ProgressCallback != nil {
		e.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (e *Extractor) logDebug(msg string, keysAndValues ...interface{}) {
	if e.config.Logger != nil {
		e.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (e *Extractor) logInfo(msg string, keysAndValues ...interface{}) {
	if e.config.Logger != nil {
		e.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (e *Extractor) logError(msg string, keysAndValues ...interface{}) {
	if e.config.Logger != nil {
		e.config.Logger.Error(msg, keysAndValues...)
	}
}
