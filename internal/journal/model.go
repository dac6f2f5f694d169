package journal

import "fmt"

// CodeFile is one source file of a day.
type CodeFile struct {
	// Name is the path relative to the day directory with forward slashes.
	Name     string
	Language string
	Contents string
}

// Entry is the README-derived part of a day.
type Entry struct {
	Day         int
	Title       string
	Description string
}

// DayRecord combines a README entry with the code files of its directory.
type DayRecord struct {
	Day         int
	Title       string
	Description string
	Files       []CodeFile
	// Documented is false when the day has no README entry.
	Documented bool
	// DirFound is false when no directory maps to the day.
	DirFound bool
}

// PageName is the output file name of the day page.
func (d DayRecord) PageName() string {
	return PageName(d.Day)
}

// PageName returns the output file name for day.
func PageName(day int) string {
	return fmt.Sprintf("day-%d.html", day)
}

// DefaultTitle is used for days without a README title.
func DefaultTitle(day int) string {
	return fmt.Sprintf("Day %d", day)
}

// Link is an external link shown on the index.
type Link struct {
	Name string
	URL  string
}

// Commit identifies the revision of the journal repository a site was built from.
type Commit struct {
	Hash    string
	Short   string
	Subject string
	Date    string
}

// SiteModel drives both the index and the day pages.
type SiteModel struct {
	Title    string
	Subtitle string
	BaseURL  string
	Links    []Link
	// Days is ordered by ascending day number.
	Days   []DayRecord
	Commit *Commit
}

// Neighbors returns the records before and after Days[i], or nil at the ends.
func (m *SiteModel) Neighbors(i int) (prev, next *DayRecord) {
	if i > 0 && i < len(m.Days) {
		prev = &m.Days[i-1]
	}
	if i >= 0 && i+1 < len(m.Days) {
		next = &m.Days[i+1]
	}
	return prev, next
}

// IssueKind classifies recoverable problems found while building the model.
type IssueKind string

const (
	IssueInvalidDay      IssueKind = "invalid_day"
	IssueDuplicateDay    IssueKind = "duplicate_day"
	IssueDuplicateDir    IssueKind = "duplicate_dir"
	IssueUnreadableFile  IssueKind = "unreadable_file"
	IssueBinaryFile      IssueKind = "binary_file"
	IssueOversizeFile    IssueKind = "oversize_file"
	IssueUndocumentedDay IssueKind = "undocumented_day"
	IssueSymlinkDir      IssueKind = "symlink_dir"
	IssueWalkFailed      IssueKind = "walk_failed"
)

// Issue is a recoverable problem. The affected entry or file is skipped and the run continues.
type Issue struct {
	Kind    IssueKind
	Day     int
	Path    string
	Message string
	Err     error
}

func (i Issue) String() string {
	s := string(i.Kind) + ": " + i.Message
	if i.Path != "" {
		s += " (" + i.Path + ")"
	}
	if i.Err != nil {
		s += ": " + i.Err.Error()
	}
	return s
}
