package preview

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
)

type watchTarget struct {
	path      string
	recursive bool
}

// watchTargets lists the inputs of a build: the README's directory, the days
// root and the optional template, static and config locations.
func watchTargets(cfg *config.Config, configPath string) []watchTarget {
	targets := []watchTarget{
		{path: cfg.DaysDir, recursive: true},
		{path: filepath.Dir(cfg.Readme)},
	}
	if cfg.TemplatesDir != "" {
		targets = append(targets, watchTarget{path: cfg.TemplatesDir, recursive: true})
	}
	if cfg.StaticDir != "" {
		targets = append(targets, watchTarget{path: cfg.StaticDir, recursive: true})
	}
	if configPath != "" {
		targets = append(targets, watchTarget{path: filepath.Dir(configPath)})
	}
	return targets
}

type watcher struct {
	fs        *fsnotify.Watcher
	outputDir string
}

func newWatcher(targets []watchTarget, outputDir string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Fatal().Build()
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		abs = outputDir
	}
	w := &watcher{fs: fw, outputDir: abs}
	for _, t := range targets {
		if t.recursive {
			w.addRecursive(t.path)
			continue
		}
		w.add(t.path)
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

func (w *watcher) add(dir string) {
	if err := w.fs.Add(dir); err != nil {
		slog.Warn("Watch add failed", logfields.Path(dir), logfields.Error(err))
	}
}

// addRecursive watches root and every directory below it except hidden
// directories and the output directory.
func (w *watcher) addRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.inOutput(path) {
			return filepath.SkipDir
		}
		w.add(path)
		return nil
	})
}

func (w *watcher) inOutput(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.outputDir, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// run forwards relevant events to trigger until ctx is done.
func (w *watcher) run(ctx context.Context, trigger func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev, trigger)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *watcher) handle(ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || w.inOutput(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addRecursive(ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// shouldIgnoreEvent reports events for hidden files and editor scratch files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db" || base == "4913"
}
