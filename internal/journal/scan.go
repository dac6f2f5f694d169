package journal

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/highlight"
)

// DefaultDirPattern matches "day 1", "Day_07", "day-12" and "day3".
const DefaultDirPattern = `(?i)^day[\s_-]*0*(\d+)$`

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8 << 10

// ScanOptions configures a Scanner.
type ScanOptions struct {
	// DirPattern maps directory names to day numbers through its first capture group.
	DirPattern string
	MaxDay     int
	// IncludeExtensions limits files to these extensions (lowercase, with dot). Empty means all.
	IncludeExtensions []string
	Languages         *highlight.Languages
	// MaxFileBytes skips larger files. Zero means no limit.
	MaxFileBytes int64
}

// Scanner locates day directories below a root and reads their files.
type Scanner struct {
	root      string
	pattern   *regexp.Regexp
	maxDay    int
	include   map[string]bool
	languages *highlight.Languages
	maxBytes  int64
	dirs      map[int]string
}

// NewScanner returns a scanner for root. Call Index before ScanDay.
func NewScanner(root string, opts ScanOptions) (*Scanner, error) {
	if opts.DirPattern == "" {
		opts.DirPattern = DefaultDirPattern
	}
	if opts.MaxDay == 0 {
		opts.MaxDay = 100
	}
	re, err := regexp.Compile(opts.DirPattern)
	if err != nil || re.NumSubexp() < 1 {
		if err == nil {
			err = fmt.Errorf("pattern %q has no capture group", opts.DirPattern)
		}
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", ErrInvalidPattern, err), ferrors.CategoryConfig, "invalid day directory pattern").
			Fatal().
			WithContext("dir_pattern", opts.DirPattern).
			Build()
	}
	if opts.Languages == nil {
		opts.Languages = highlight.NewLanguages(nil)
	}

	var include map[string]bool
	if len(opts.IncludeExtensions) > 0 {
		include = make(map[string]bool, len(opts.IncludeExtensions))
		for _, ext := range opts.IncludeExtensions {
			include[strings.ToLower(ext)] = true
		}
	}

	return &Scanner{
		root:      root,
		pattern:   re,
		maxDay:    opts.MaxDay,
		include:   include,
		languages: opts.Languages,
		maxBytes:  opts.MaxFileBytes,
		dirs:      make(map[int]string),
	}, nil
}

// Index lists the days root once and maps each matching directory to its day.
// A missing root yields no days. When two directories map to the same day the
// lexically first one wins.
func (s *Scanner) Index() []Issue {
	s.dirs = make(map[int]string)

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return []Issue{{
			Kind:    IssueWalkFailed,
			Path:    s.root,
			Message: "days root could not be listed",
			Err: ferrors.ScanError("days root could not be listed").
				WithCause(fmt.Errorf("%w: %w", ErrDaysRootUnreadable, err)).
				WithContext("path", s.root).
				Build(),
		}}
	}

	var issues []Issue
	for _, e := range entries {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		m := s.pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > s.maxDay {
			issues = append(issues, Issue{
				Kind:    IssueInvalidDay,
				Path:    e.Name(),
				Message: fmt.Sprintf("directory has no day number in 1..%d", s.maxDay),
			})
			continue
		}
		if prev, ok := s.dirs[day]; ok {
			issues = append(issues, Issue{
				Kind:    IssueDuplicateDir,
				Day:     day,
				Path:    e.Name(),
				Message: fmt.Sprintf("directory repeats day %d; using %q", day, prev),
			})
			continue
		}
		s.dirs[day] = filepath.Join(s.root, e.Name())
	}
	return issues
}

// Days returns the indexed day numbers in ascending order.
func (s *Scanner) Days() []int {
	days := make([]int, 0, len(s.dirs))
	for day := range s.dirs {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// ScanDay reads the files of day in lexical walk order. A day without a
// directory, or with an empty one, has no files. Unreadable and binary files
// are skipped and reported.
func (s *Scanner) ScanDay(day int) ([]CodeFile, []Issue) {
	dir, ok := s.dirs[day]
	if !ok {
		return nil, nil
	}

	var files []CodeFile
	var issues []Issue
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			issues = append(issues, Issue{Kind: IssueWalkFailed, Day: day, Path: path, Message: "could not walk", Err: err})
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Links to files are read through; links to directories are not followed.
			target, statErr := os.Stat(path)
			switch {
			case statErr != nil:
				issues = append(issues, Issue{Kind: IssueUnreadableFile, Day: day, Path: path, Message: "broken symlink", Err: statErr})
				return nil
			case target.IsDir():
				issues = append(issues, Issue{Kind: IssueSymlinkDir, Day: day, Path: path, Message: "not following symlinked directory"})
				return nil
			case !target.Mode().IsRegular():
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = d.Name()
		}
		name := filepath.ToSlash(rel)
		if s.include != nil && !s.include[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		file, issue := s.readFile(day, path, name)
		if issue != nil {
			issues = append(issues, *issue)
			return nil
		}
		files = append(files, file)
		return nil
	})
	return files, issues
}

func (s *Scanner) readFile(day int, path, name string) (CodeFile, *Issue) {
	if s.maxBytes > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > s.maxBytes {
			return CodeFile{}, &Issue{
				Kind:    IssueOversizeFile,
				Day:     day,
				Path:    path,
				Message: fmt.Sprintf("file exceeds %d bytes", s.maxBytes),
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return CodeFile{}, &Issue{Kind: IssueUnreadableFile, Day: day, Path: path, Message: "could not read file", Err: err}
	}

	contents, err := decodeText(data)
	if err != nil {
		return CodeFile{}, &Issue{Kind: IssueUnreadableFile, Day: day, Path: path, Message: "could not decode file", Err: err}
	}
	sniff := contents
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if strings.IndexByte(sniff, 0) >= 0 {
		return CodeFile{}, &Issue{Kind: IssueBinaryFile, Day: day, Path: path, Message: "skipping binary file"}
	}

	return CodeFile{
		Name:     name,
		Language: s.languages.For(name),
		Contents: contents,
	}, nil
}

// decodeText honours a UTF-8 or UTF-16 byte order mark and otherwise decodes
// UTF-8, replacing invalid sequences with U+FFFD.
func decodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
