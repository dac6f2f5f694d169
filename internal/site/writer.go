package site

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
)

// dayPage matches the file names of generated day pages.
var dayPage = regexp.MustCompile(`^day-\d+\.html$`)

const filePerm = 0o644

// Page is one generated file.
type Page struct {
	Name    string
	Content []byte
}

// Options configures a Writer.
type Options struct {
	// Prune removes day pages that are not part of the current page set.
	Prune bool
	// StaticDir is copied into the output before pages are written.
	StaticDir string
}

// WriteReport lists what a Write changed.
type WriteReport struct {
	Written   []string
	Unchanged []string
	Pruned    []string
	Static    int
}

// Writer writes pages into one output directory.
type Writer struct {
	dir  string
	opts Options
}

// NewWriter returns a writer for dir.
func NewWriter(dir string, opts Options) *Writer {
	return &Writer{dir: dir, opts: opts}
}

// Write stores pages, skipping files whose content is unchanged. Running it
// twice with the same pages leaves the second run with nothing to write.
func (w *Writer) Write(pages []Page) (*WriteReport, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return nil, ferrors.FileSystemError("failed to create output directory").WithCause(err).
			Fatal().
			WithContext("path", w.dir).
			Build()
	}

	report := &WriteReport{}
	keep := make(map[string]bool, len(pages))

	if w.opts.StaticDir != "" {
		copied, err := w.copyStatic(keep)
		if err != nil {
			return nil, err
		}
		report.Static = copied
	}

	for _, p := range pages {
		if p.Name == "" || p.Name != filepath.Base(p.Name) || strings.HasPrefix(p.Name, ".") {
			return nil, ferrors.InternalError("invalid page name").WithContext("page", p.Name).Build()
		}
		keep[p.Name] = true

		changed, err := writeIfChanged(filepath.Join(w.dir, p.Name), p.Content)
		if err != nil {
			return nil, ferrors.FileSystemError("failed to write page").WithCause(err).
				Fatal().
				WithContext("path", filepath.Join(w.dir, p.Name)).
				Build()
		}
		if changed {
			report.Written = append(report.Written, p.Name)
			slog.Debug("Wrote page", logfields.File(p.Name))
		} else {
			report.Unchanged = append(report.Unchanged, p.Name)
		}
	}

	if w.opts.Prune {
		pruned, err := w.prune(keep)
		if err != nil {
			return report, err
		}
		report.Pruned = pruned
	}
	return report, nil
}

// prune removes day pages that are not in keep.
func (w *Writer) prune(keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to list output directory").WithCause(err).
			WithContext("path", w.dir).
			Build()
	}
	var pruned []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || keep[name] || !dayPage.MatchString(name) {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, name)); err != nil {
			return pruned, ferrors.FileSystemError("failed to remove stale page").WithCause(err).
				WithContext("path", filepath.Join(w.dir, name)).
				Build()
		}
		slog.Info("Removed stale page", logfields.File(name))
		pruned = append(pruned, name)
	}
	sort.Strings(pruned)
	return pruned, nil
}

// copyStatic mirrors StaticDir into the output. Copied top-level names are
// added to keep so pruning never removes them.
func (w *Writer) copyStatic(keep map[string]bool) (int, error) {
	src := w.opts.StaticDir
	copied := 0
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(w.dir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		// #nosec G304 -- path comes from walking the configured static directory
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := writeIfChanged(target, data); err != nil {
			return err
		}
		if filepath.Dir(rel) == "." {
			keep[rel] = true
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, ferrors.FileSystemError("failed to copy static files").WithCause(err).
			Fatal().
			WithContext("path", src).
			Build()
	}
	return copied, nil
}

// writeIfChanged atomically replaces path with data unless it already holds
// exactly data.
func writeIfChanged(path string, data []byte) (bool, error) {
	// #nosec G304 -- path is inside the output directory
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFileAtomic writes data to a temporary file in the target directory and
// renames it over path. On failure the target is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
