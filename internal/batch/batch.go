// Package batch drives a conversion run: it reads each listed template from
// the source directory, rewrites it and writes it under the same name into the
// destination directory.
//
// Files are handled one at a time, each read, transformed and written in full
// before the next is opened. Sources must be UTF-8; line endings are
// normalized to LF on read. A listed file that does not exist is reported
// and skipped; every other I/O failure stops the run.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/robertgumeny/retemplate/internal/log"
)

// ErrInvalidUTF8 is returned when a source template is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Transformer rewrites the text of one template.
type Transformer interface {
	Transform(content, filename string) string
}

// Options are the inputs of a run.
type Options struct {
	SourceDir string
	DestDir   string
	Files     []string
	// DryRun transforms files without creating or writing anything.
	DryRun bool
}

// Result records what a run did.
type Result struct {
	DestDir string
	// Processed lists converted files in list order.
	Processed []string
	// Missing lists files that had no source and were skipped.
	Missing []string
	// Changed is the subset of Processed whose content differed from the source.
	Changed []string
	DryRun  bool
}

// Run converts every file in opts.Files with tr.
func Run(opts Options, tr Transformer) (*Result, error) {
	res := &Result{DestDir: opts.DestDir, DryRun: opts.DryRun}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
			return res, fmt.Errorf("create destination %s: %w", opts.DestDir, err)
		}
	}

	for _, name := range opts.Files {
		src := filepath.Join(opts.SourceDir, name)
		dst := filepath.Join(opts.DestDir, name)

		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warning(fmt.Sprintf("source file not found: %s", name))
				res.Missing = append(res.Missing, name)
				continue
			}
			return res, fmt.Errorf("stat %s: %w", src, err)
		}

		data, err := os.ReadFile(src)
		if err != nil {
			return res, fmt.Errorf("read %s: %w", src, err)
		}

		if !utf8.Valid(data) {
			return res, fmt.Errorf("read %s: %w", src, ErrInvalidUTF8)
		}

		raw := string(data)
		content := normalizeNewlines(raw)
		out := tr.Transform(content, name)

		if opts.DryRun {
			log.Info(fmt.Sprintf("would write %s", dst))
		} else {
			if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
				return res, fmt.Errorf("write %s: %w", dst, err)
			}
			log.Success(fmt.Sprintf("processed: %s", name))
		}

		res.Processed = append(res.Processed, name)
		if out != raw {
			res.Changed = append(res.Changed, name)
		}
	}

	return res, nil
}

// normalizeNewlines converts CRLF and lone CR line endings to LF, so line
// anchored rules see one line terminator and output is written with LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
