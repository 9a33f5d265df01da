package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/moffa90/go-kingstfw/qrc"
)

func (e *Extractor) export(ctx context.Context, res *qrc.Resources, start time.Time) (*Result, error) {
	out := &Result{Warnings: append([]error(nil), res.Problems...)}
	e.logWarnings(PhaseDecoding, res.Problems)

	root := e.config.OutputDir
	if root == "" {
		root = "."
	}

	files := res.Files()
	for i, node := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dst, err := resourcePath(root, node.Path)
		if err != nil {
			e.logError("refusing to export resource", "path", node.Path, "error", err)
			return nil, err
		}
		if err := e.writeFile(dst, node.Data); err != nil {
			return nil, err
		}
		out.Exported = append(out.Exported, dst)
		out.BytesWritten += len(node.Data)

		if cat := Classify(node.Path); cat != CategoryNone {
			out.Firmware = append(out.Firmware, Firmware{Path: dst, Category: cat})
			e.logDebug("firmware found", "path", node.Path, "category", cat)
		}

		e.reportProgress(Progress{
			Phase:        PhaseExporting,
			Current:      i + 1,
			Total:        len(files),
			Percentage:   20 + 60*float64(i+1)/float64(len(files)),
			BytesWritten: out.BytesWritten,
			ElapsedTime:  time.Since(start),
		})
	}

	e.logInfo("resources exported", "files", len(out.Exported), "firmware", len(out.Firmware), "dir", root)
	return out, nil
}

// resourcePath maps a slash-separated resource path below root, rejecting
// paths that are empty or would leave root.
func resourcePath(root, p string) (string, error) {
	if p == "" {
		return "", &UnsafePathError{Path: p}
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `\`) {
			return "", &UnsafePathError{Path: p}
		}
	}
	dst := filepath.Join(root, filepath.FromSlash(p))
	rel, err := filepath.Rel(root, dst)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", &UnsafePathError{Path: p}
	}
	return dst, nil
}

// sigrokName returns the installed file name for a firmware file.
func sigrokName(fw Firmware, isHex bool) (string, error) {
	base := filepath.Base(fw.Path)
	switch fw.Category {
	case CategoryCypress:
		if isHex {
			return base + ".hex", nil
		}
		return base + ".fw", nil
	case CategorySpartan:
		return base + ".bitstream", nil
	default:
		return "", fmt.Errorf("%s is not firmware", fw.Path)
	}
}
