package highlight

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestChromaHighlightEscapesAndIsDeterministic(t *testing.T) {
	c := NewChroma("monokai")
	code := "__global__ void add(int *a) { if (a < b) {} }\n"

	first, err := c.Highlight(code, "cuda", "add.cu")
	require.NoError(t, err)
	second, err := c.Highlight(code, "cuda", "add.cu")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "<pre")
	assert.Contains(t, first, "&lt;")
	assert.NotContains(t, first, "a < b")
}

func TestChromaUnknownLanguageFallsBack(t *testing.T) {
	out, err := NewChroma("does-not-exist").Highlight("plain <text>", None, "notes.unknown")
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;text&gt;")
}

func TestChromaMarkdownExtension(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(NewChroma("monokai").MarkdownExtension()))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte("```python\nprint('hi')\n```\n"), &buf))
	assert.Contains(t, buf.String(), "style=")
}
