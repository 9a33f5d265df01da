package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/moffa90/go-kingstfw/ihex"
	"github.com/spf13/afero"
)

// InstallSubdir is the directory below the firmware directory that sigrok's
// kingst-la2016 driver loads from.
const InstallSubdir = "kingst"

// hexPrefix marks Cypress firmware shipped as Intel HEX text.
var hexPrefix = []byte(":10")

func (e *Extractor) install(ctx context.Context, dir string, fws []Firmware, start time.Time) (*Result, error) {
	target := filepath.Join(dir, InstallSubdir)
	out := &Result{}

	for i, fw := range fws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := afero.ReadFile(e.config.Fs, fw.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read firmware: %w", err)
		}

		written, err := e.installOne(target, fw, data, out)
		if err != nil {
			e.logError("failed to install firmware", "path", fw.Path, "error", err)
			return nil, err
		}
		out.Installed = append(out.Installed, written...)

		e.reportProgress(Progress{
			Phase:        PhaseInstalling,
			Current:      i + 1,
			Total:        len(fws),
			Percentage:   80 + 15*float64(i+1)/float64(len(fws)),
			BytesWritten: out.BytesWritten,
			ElapsedTime:  time.Since(start),
		})
	}

	e.logInfo("firmware installed", "dir", target, "files", len(out.Installed))
	return out, nil
}

// installOne writes the sigrok files for one firmware and returns their paths.
// Cypress HEX text is installed both as-is and converted to a binary image.
func (e *Extractor) installOne(target string, fw Firmware, data []byte, out *Result) ([]string, error) {
	isHex := fw.Category == CategoryCypress && bytes.HasPrefix(data, hexPrefix)

	name, err := sigrokName(fw, isHex)
	if err != nil {
		return nil, err
	}
	dst := filepath.Join(target, name)
	if err := e.writeFile(dst, data); err != nil {
		return nil, err
	}
	out.BytesWritten += len(data)
	if !isHex {
		return []string{dst}, nil
	}

	decoded, err := ihex.Decode(bytes.NewReader(data), ihex.WithImageSize(e.config.ImageSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fw.Path, err)
	}
	out.Warnings = append(out.Warnings, decoded.Warnings...)
	e.logWarnings(PhaseInstalling, decoded.Warnings)

	name, _ = sigrokName(fw, false)
	fwPath := filepath.Join(target, name)
	image := decoded.Image.Bytes()
	if err := e.writeFile(fwPath, image); err != nil {
		return nil, err
	}
	out.BytesWritten += len(image)
	return []string{dst, fwPath}, nil
}
