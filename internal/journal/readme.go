package journal

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

// ParseOptions controls which headings are recognized as day headings.
type ParseOptions struct {
	// MaxDay is the largest accepted day number (default 100).
	MaxDay int
	// MaxHeadingLevel is the deepest heading level considered (default 2).
	MaxHeadingLevel int
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.MaxDay == 0 {
		o.MaxDay = 100
	}
	if o.MaxHeadingLevel == 0 {
		o.MaxHeadingLevel = 2
	}
	return o
}

// ParseResult holds the entries in document order and the problems found.
type ParseResult struct {
	Entries []Entry
	Issues  []Issue
}

// dayHeading matches "Day <token> [rest]". The token is validated separately
// so malformed numbers are reported instead of silently ignored.
var dayHeading = regexp.MustCompile(`^(?i:day)\s+([^\s:]+)\s*(.*)$`)

type heading struct {
	level     int
	text      string
	lineStart int
	bodyStart int
}

// ReadReadme reads the README at path. A missing or unreadable README is fatal.
func ReadReadme(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.NotFoundError("README not found").WithCause(fmt.Errorf("%w: %w", ErrReadmeNotFound, err)).
			WithContext("path", path).
			Build()
	}
	return nil, ferrors.FileSystemError("README could not be read").WithCause(fmt.Errorf("%w: %w", ErrReadmeUnreadable, err)).
		Fatal().
		WithContext("path", path).
		Build()
}

// ParseReadme extracts one entry per day heading of src. src may carry a
// UTF-8 or UTF-16 byte order mark and CRLF line endings.
//
// A day heading is a top-level heading of level <= MaxHeadingLevel whose text
// is "Day", whitespace, a decimal day number in [1, MaxDay] and an optional
// ":"-separated title. The description is the raw Markdown up to the next
// heading of the same or a higher level, or the next day heading.
func ParseReadme(src []byte, opts ParseOptions) (*ParseResult, error) {
	opts = opts.withDefaults()
	if opts.MaxHeadingLevel < 1 || opts.MaxHeadingLevel > 6 {
		return nil, ferrors.ValidationError("heading level must be between 1 and 6").
			WithContext("max_heading_level", opts.MaxHeadingLevel).
			Build()
	}
	if opts.MaxDay < 1 {
		return nil, ferrors.ValidationError("max day must be positive").
			WithContext("max_day", opts.MaxDay).
			Build()
	}

	// A byte order mark would hide a heading on the first line.
	decoded, err := decodeText(src)
	if err != nil {
		return nil, ferrors.ParseError("README could not be decoded").
			WithCause(err).
			Fatal().
			Build()
	}
	src = []byte(decoded)

	headings := collectHeadings(src, opts.MaxHeadingLevel)
	result := &ParseResult{}
	seen := make(map[int]bool)

	for i, h := range headings {
		m := dayHeading.FindStringSubmatch(h.text)
		if m == nil {
			continue
		}

		day, ok := parseDayNumber(m[1], opts.MaxDay)
		if !ok {
			result.Issues = append(result.Issues, Issue{
				Kind:    IssueInvalidDay,
				Message: fmt.Sprintf("heading %q has no day number in 1..%d", h.text, opts.MaxDay),
			})
			continue
		}
		if seen[day] {
			result.Issues = append(result.Issues, Issue{
				Kind:    IssueDuplicateDay,
				Day:     day,
				Message: fmt.Sprintf("heading %q repeats day %d; keeping the first entry", h.text, day),
			})
			continue
		}
		seen[day] = true

		title := strings.TrimSpace(strings.TrimLeft(m[2], ":-–—"))
		if title == "" {
			title = DefaultTitle(day)
		}

		end := len(src)
		for _, next := range headings[i+1:] {
			if next.level <= h.level || dayHeading.MatchString(next.text) {
				end = next.lineStart
				break
			}
		}
		description := ""
		if h.bodyStart < end {
			description = strings.TrimSpace(string(src[h.bodyStart:end]))
		}

		result.Entries = append(result.Entries, Entry{Day: day, Title: title, Description: description})
	}
	return result, nil
}

func collectHeadings(src []byte, maxLevel int) []heading {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []heading
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxLevel {
			continue
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			continue
		}

		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(bytes.TrimSpace(seg.Value(src)))
		}

		first := lines.At(0)
		last := lines.At(lines.Len() - 1)
		start := lineStart(src, first.Start)
		body := nextLine(src, lineStart(src, last.Start))
		if !isATX(src[start:]) {
			// Setext headings are followed by their underline.
			body = nextLine(src, body)
		}

		out = append(out, heading{
			level:     h.Level,
			text:      strings.TrimSpace(buf.String()),
			lineStart: start,
			bodyStart: body,
		})
	}
	return out
}

func parseDayNumber(token string, maxDay int) (int, bool) {
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	day, err := strconv.Atoi(token)
	if err != nil || day < 1 || day > maxDay {
		return 0, false
	}
	return day, true
}

func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

func nextLine(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

func isATX(line []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte("#"))
}
