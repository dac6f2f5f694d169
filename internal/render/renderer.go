package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/highlight"
	"git.home.luguber.info/inful/journalsite/internal/journal"
)

// Highlighter modes.
const (
	HighlightPrism  = "prism"
	HighlightChroma = "chroma"
)

// Options configures a Renderer.
type Options struct {
	// PreviewLength is the number of runes shown on index cards.
	PreviewLength int
	// Highlighter is HighlightPrism (client side) or HighlightChroma (build time).
	Highlighter  string
	ChromaStyle  string
	TemplatesDir string
}

// Renderer renders index and day pages. It holds no per-build state and can be reused.
type Renderer struct {
	index         *template.Template
	day           *template.Template
	md            goldmark.Markdown
	chroma        *highlight.Chroma
	previewLength int
}

type card struct {
	Day          int
	Title        string
	Preview      string
	Page         string
	Undocumented bool
}

type navLink struct {
	Day  int
	Page string
}

type fileView struct {
	Name        string
	Language    string
	Contents    string
	Highlighted template.HTML
}

type indexData struct {
	Site      *journal.SiteModel
	Prism     bool
	Canonical string
	Cards     []card
}

type dayData struct {
	Site        *journal.SiteModel
	Prism       bool
	Canonical   string
	Day         journal.DayRecord
	Heading     string
	Description template.HTML
	Files       []fileView
	Prev        *navLink
	Next        *navLink
}

// New parses the template set. Template errors are fatal build errors.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{previewLength: opts.PreviewLength}

	var extra []goldmark.Extender
	if opts.Highlighter == HighlightChroma {
		r.chroma = highlight.NewChroma(opts.ChromaStyle)
		extra = append(extra, r.chroma.MarkdownExtension())
	}
	r.md = newMarkdown(extra...)

	var err error
	if r.index, err = parsePage(opts.TemplatesDir, indexTemplate); err != nil {
		return nil, templateError(err, opts.TemplatesDir)
	}
	if r.day, err = parsePage(opts.TemplatesDir, dayTemplate); err != nil {
		return nil, templateError(err, opts.TemplatesDir)
	}
	return r, nil
}

func templateError(err error, dir string) error {
	return ferrors.WrapError(err, ferrors.CategoryBuild, "failed to load templates").
		Fatal().
		WithContext("templates_dir", dir).
		Build()
}

// Index renders index.html with one card per day in model order.
func (r *Renderer) Index(model *journal.SiteModel) ([]byte, error) {
	data := indexData{
		Site:      model,
		Prism:     r.chroma == nil,
		Canonical: canonical(model.BaseURL, "index.html"),
		Cards:     make([]card, 0, len(model.Days)),
	}
	for _, d := range model.Days {
		preview := Preview(d.Description, r.previewLength)
		switch {
		case preview != "":
		case !d.Documented:
			preview = undocumentedNote
		default:
			preview = previewPlaceholder
		}
		data.Cards = append(data.Cards, card{
			Day:          d.Day,
			Title:        d.Title,
			Preview:      preview,
			Page:         d.PageName(),
			Undocumented: !d.Documented,
		})
	}
	return r.execute(r.index, "index.html", data)
}

// Day renders the page for model.Days[i]. Previous and next links only point
// at days that are part of model.
func (r *Renderer) Day(model *journal.SiteModel, i int) ([]byte, error) {
	if i < 0 || i >= len(model.Days) {
		return nil, ferrors.InternalError("day index out of range").
			WithContext("index", i).
			WithContext("days", len(model.Days)).
			Build()
	}
	rec := model.Days[i]

	description, err := renderMarkdown(r.md, rec.Description)
	if err != nil {
		return nil, ferrors.RenderError("failed to render description").WithCause(err).
			WithContext("day", rec.Day).
			Build()
	}

	data := dayData{
		Site:        model,
		Prism:       r.chroma == nil,
		Canonical:   canonical(model.BaseURL, rec.PageName()),
		Day:         rec,
		Heading:     heading(rec),
		Description: description,
		Files:       make([]fileView, 0, len(rec.Files)),
	}
	prev, next := model.Neighbors(i)
	if prev != nil {
		data.Prev = &navLink{Day: prev.Day, Page: prev.PageName()}
	}
	if next != nil {
		data.Next = &navLink{Day: next.Day, Page: next.PageName()}
	}

	for _, f := range rec.Files {
		view := fileView{Name: f.Name, Language: f.Language, Contents: f.Contents}
		if r.chroma != nil {
			out, err := r.chroma.Highlight(f.Contents, f.Language, f.Name)
			if err != nil {
				return nil, ferrors.RenderError("failed to highlight file").WithCause(err).
					WithContext("day", rec.Day).
					WithContext("file", f.Name).
					Build()
			}
			// #nosec G203 -- Chroma escapes the source text.
			view.Highlighted = template.HTML(out)
		}
		data.Files = append(data.Files, view)
	}
	return r.execute(r.day, rec.PageName(), data)
}

func (r *Renderer) execute(tmpl *template.Template, page string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, ferrors.RenderError("failed to execute template").WithCause(err).
			WithContext("page", page).
			Build()
	}
	return buf.Bytes(), nil
}

// heading is "Day N: Title", or just "Day N" when the day has no title of its own.
func heading(rec journal.DayRecord) string {
	def := journal.DefaultTitle(rec.Day)
	if rec.Title == "" || rec.Title == def {
		return def
	}
	return def + ": " + rec.Title
}

func canonical(baseURL, page string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + page
}
