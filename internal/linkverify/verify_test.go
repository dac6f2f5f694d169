package linkverify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

func writeSite(t *testing.T, pages map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range pages {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	return dir
}

const dayBody = `<html><body><a href="index.html">Back</a><a href="https://example.com">ext</a><a href="#top">top</a></body></html>`

func TestVerifySiteOK(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": `<html><head><link rel="stylesheet" href="css/site.css"></head><body>
			<a href="day-1.html">Day 1</a><a href="./day-2.html#files">Day 2</a>
			<a href="mailto:me@example.com">mail</a>
			<script src="https://cdn.example.com/prism.js"></script></body></html>`,
		"day-1.html":   dayBody,
		"day-2.html":   `<a href="day-1.html">prev</a>` + dayBody,
		"css/site.css": "body{}",
	})

	report, err := VerifySite(dir)
	require.NoError(t, err)
	assert.True(t, report.OK(), strings.Join(report.Problems(), "\n"))
	assert.NoError(t, report.Err())
	assert.Equal(t, 3, report.Pages)
	assert.Equal(t, 6, report.Links)
}

func TestVerifySiteProblems(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html":  `<a href="day-1.html">1</a><a href="day-3.html">3</a><img src="missing.png">`,
		"day-1.html":  `<a href="day-2.html">next</a>`,
		"day-2.html":  dayBody,
		"notes.html":  `<a href="nowhere.html">not a day page, not checked</a>`,
		".nojekyll":   "",
		"_config.yml": "",
	})

	report, err := VerifySite(dir)
	require.NoError(t, err)
	assert.False(t, report.OK())

	targets := make([]string, 0, len(report.Broken))
	for _, b := range report.Broken {
		targets = append(targets, b.Target)
	}
	assert.ElementsMatch(t, []string{"day-3.html", "missing.png"}, targets)
	assert.Equal(t, []string{"day-1.html"}, report.MissingBackLinks)
	assert.Equal(t, []string{"day-2.html"}, report.Orphans)
	assert.Len(t, report.Problems(), 4)

	err = report.Err()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestVerifySiteMissingIndex(t *testing.T) {
	_, err := VerifySite(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		page, link, want string
	}{
		{"index.html", "day-1.html", "day-1.html"},
		{"index.html", "./day-1.html?x=1#f", "day-1.html"},
		{"day-1.html", "/index.html", "index.html"},
		{"day-1.html", "./", "index.html"},
		{"day-1.html", "css/", "css/index.html"},
		{"day-1.html", "#top", ""},
		{"day-1.html", "../../etc/passwd", "etc/passwd"},
	}
	for _, tt := range tests {
		got, ok := resolve(tt.page, tt.link)
		require.True(t, ok, tt.link)
		assert.Equal(t, tt.want, got, tt.link)
	}
}

func TestExtractLinksFromReader(t *testing.T) {
	links, err := ExtractLinksFromReader(strings.NewReader(
		`<a href="day-1.html"> Day <b>1</b> </a><img src="a.png" alt="A"><link rel="icon" href="//cdn.example.com/f.ico"><a>no href</a>`))
	require.NoError(t, err)
	require.Len(t, links, 3)

	assert.Equal(t, "day-1.html", links[0].URL)
	assert.Equal(t, "Day1", links[0].Text)
	assert.True(t, links[0].IsInternal)
	assert.Equal(t, "img", links[1].Tag)
	assert.Equal(t, "A", links[1].Text)
	assert.False(t, links[2].IsInternal)
}
