package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, DefaultReadme, cfg.Readme)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultMaxDay, cfg.Parse.MaxDay)
	assert.Equal(t, 2, cfg.Parse.MaxHeadingLevel)
	assert.Equal(t, UndocumentedOmit, cfg.UndocumentedDays)
	assert.Equal(t, HighlighterPrism, cfg.Render.Highlighter)
	assert.True(t, cfg.PruneEnabled())
	assert.True(t, cfg.VerifyLinksEnabled())
}

func TestLoadMissingFileRequired(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoadParsesFile(t *testing.T) {
	path := writeConfig(t, `
readme: JOURNAL.md
output: site
site:
  title: My Journey
  links:
    - name: Blog
      url: https://example.com
scan:
  include_extensions: [CU, .py]
  languages:
    hip: cpp
undocumented_days: FLAG
prune: false
render:
  highlighter: chroma
`)
	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "JOURNAL.md", cfg.Readme)
	assert.Equal(t, "site", cfg.Output)
	assert.Equal(t, "My Journey", cfg.Site.Title)
	require.Len(t, cfg.Site.Links, 1)
	assert.Equal(t, "Blog", cfg.Site.Links[0].Name)
	assert.Equal(t, []string{".cu", ".py"}, cfg.Scan.IncludeExtensions)
	assert.Equal(t, "cpp", cfg.Scan.Languages[".hip"])
	assert.Equal(t, UndocumentedFlag, cfg.UndocumentedDays)
	assert.Equal(t, HighlighterChroma, cfg.Render.Highlighter)
	assert.False(t, cfg.PruneEnabled())
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("JOURNAL_TITLE", "From Env")
	path := writeConfig(t, "site:\n  title: ${JOURNAL_TITLE}\n")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Site.Title)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvOutput, "public")
	t.Setenv(EnvReadme, "NOTES.md")
	path := writeConfig(t, "output: docs\n")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Output)
	assert.Equal(t, "NOTES.md", cfg.Readme)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "site: [unterminated\n")
	_, err := Load(path, true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown policy", func(c *Config) { c.UndocumentedDays = "drop" }},
		{"unknown highlighter", func(c *Config) { c.Render.Highlighter = "pygments" }},
		{"bad pattern", func(c *Config) { c.Scan.DirPattern = "day(" }},
		{"pattern without group", func(c *Config) { c.Scan.DirPattern = `^day\d+$` }},
		{"heading level", func(c *Config) { c.Parse.MaxHeadingLevel = 7 }},
		{"negative max day", func(c *Config) { c.Parse.MaxDay = -1 }},
		{"output equals days dir", func(c *Config) { c.Output = "."; c.DaysDir = "." }},
		{"static equals output", func(c *Config) { c.StaticDir = c.Output }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}

	assert.NoError(t, Validate(Default()))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "GPU Kernels Learning Journey", cfg.Site.Title)
	assert.Contains(t, cfg.Scan.IncludeExtensions, ".cu")

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, Init(path, true))
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, ".cu", NormalizeExtension("CU"))
	assert.Equal(t, ".py", NormalizeExtension(" .py "))
	assert.Empty(t, NormalizeExtension(""))
}
