package preview

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/journalsite/internal/config"
)

func TestShouldIgnoreEvent(t *testing.T) {
	for _, p := range []string{"/j/.hidden.md", "/j/#README.md#", "/j/README.md.swp", "/j/README.md~", "/j/4913", "/j/x.tmp"} {
		assert.True(t, shouldIgnoreEvent(p), p)
	}
	for _, p := range []string{"/j/README.md", "/j/day 1/kernel.cu"} {
		assert.False(t, shouldIgnoreEvent(p), p)
	}
}

func TestWatchTargets(t *testing.T) {
	cfg := config.Default()
	cfg.Readme = "/j/README.md"
	cfg.DaysDir = "/j/days"
	assert.Equal(t, []watchTarget{
		{path: "/j/days", recursive: true},
		{path: "/j"},
	}, watchTargets(cfg, ""))

	cfg.TemplatesDir = "/j/templates"
	cfg.StaticDir = "/j/static"
	targets := watchTargets(cfg, "/etc/journalsite/journalsite.yaml")
	assert.Contains(t, targets, watchTarget{path: "/j/templates", recursive: true})
	assert.Contains(t, targets, watchTarget{path: "/j/static", recursive: true})
	assert.Contains(t, targets, watchTarget{path: "/etc/journalsite"})
}

func TestWatcherSkipsOutputDirectory(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "docs")
	w, err := newWatcher(nil, out)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	assert.True(t, w.inOutput(out))
	assert.True(t, w.inOutput(filepath.Join(out, "day-1.html")))
	assert.False(t, w.inOutput(filepath.Join(root, "docs-notes.md")))
	assert.False(t, w.inOutput(filepath.Join(root, "day 1", "a.cu")))

	triggered := 0
	w.handle(fsnotifyWrite(filepath.Join(out, "index.html")), func() { triggered++ })
	w.handle(fsnotifyWrite(filepath.Join(root, "README.md")), func() { triggered++ })
	assert.Equal(t, 1, triggered)
}

func fsnotifyWrite(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}
