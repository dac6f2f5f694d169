package highlight

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"git.home.luguber.info/inful/journalsite/internal/logfields"
)

// Prism identifiers Chroma knows under another name.
var chromaAliases = map[string]string{
	"cuda":   "cpp",
	"markup": "html",
	"none":   "plaintext",
}

// Chroma renders highlighted HTML with inline styles so pages need no extra stylesheet.
type Chroma struct {
	styleName string
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma returns a highlighter for the named style. Unknown styles fall back to Chroma's default.
func NewChroma(styleName string) *Chroma {
	return &Chroma{
		styleName: styleName,
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
}

// Highlight renders code as HTML. language is a Prism identifier; filename
// is used when no lexer matches the identifier.
func (c *Chroma) Highlight(code, language, filename string) (string, error) {
	lexer := c.lexerFor(language, filename)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", filename, err)
	}
	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", filename, err)
	}
	return buf.String(), nil
}

func (c *Chroma) lexerFor(language, filename string) chroma.Lexer {
	name := language
	if alias, ok := chromaAliases[language]; ok {
		name = alias
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		slog.Debug("No lexer found, highlighting as plain text", logfields.Language(language), logfields.File(filename))
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// MarkdownExtension highlights fenced code blocks in Markdown with the same style.
func (c *Chroma) MarkdownExtension() goldmark.Extender {
	return highlighting.NewHighlighting(
		highlighting.WithStyle(c.styleName),
		highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
	)
}
