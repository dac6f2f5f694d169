package journal

import (
	"fmt"
	"sort"
)

// UndocumentedPolicy decides what happens to days that have a directory but no README entry.
type UndocumentedPolicy string

const (
	PolicyOmit UndocumentedPolicy = "omit"
	PolicyFlag UndocumentedPolicy = "flag"
)

// DaySource provides the code files of each day. Scanner implements it.
type DaySource interface {
	Days() []int
	ScanDay(day int) ([]CodeFile, []Issue)
}

// AssembleOptions controls how README entries and day directories are joined.
type AssembleOptions struct {
	Policy UndocumentedPolicy
	// FillRange includes every day 1..MaxDay, with placeholder pages where needed.
	FillRange bool
	MaxDay    int
}

// Assemble joins README entries with day directories into day records ordered by day.
//
// Entries without a directory are always included and have no files.
// Directories without an entry are included only under PolicyFlag or FillRange.
// Entries must be unique per day, as returned by ParseReadme.
func Assemble(entries []Entry, src DaySource, opts AssembleOptions) ([]DayRecord, []Issue) {
	if opts.MaxDay == 0 {
		opts.MaxDay = 100
	}

	byDay := make(map[int]Entry, len(entries))
	for _, e := range entries {
		if _, dup := byDay[e.Day]; !dup {
			byDay[e.Day] = e
		}
	}
	hasDir := make(map[int]bool)
	var dirDays []int
	if src != nil {
		dirDays = src.Days()
		for _, day := range dirDays {
			hasDir[day] = true
		}
	}

	include := make(map[int]bool, len(byDay)+len(dirDays))
	for day := range byDay {
		include[day] = true
	}

	var issues []Issue
	for _, day := range dirDays {
		if _, documented := byDay[day]; documented {
			continue
		}
		if opts.Policy == PolicyFlag || opts.FillRange {
			include[day] = true
			continue
		}
		issues = append(issues, Issue{
			Kind:    IssueUndocumentedDay,
			Day:     day,
			Message: fmt.Sprintf("day %d has a directory but no README entry; omitted", day),
		})
	}
	if opts.FillRange {
		for day := 1; day <= opts.MaxDay; day++ {
			include[day] = true
		}
	}

	days := make([]int, 0, len(include))
	for day := range include {
		days = append(days, day)
	}
	sort.Ints(days)

	records := make([]DayRecord, 0, len(days))
	for _, day := range days {
		rec := DayRecord{Day: day, Title: DefaultTitle(day), DirFound: hasDir[day]}
		if e, ok := byDay[day]; ok {
			rec.Title = e.Title
			rec.Description = e.Description
			rec.Documented = true
		}
		if rec.DirFound {
			files, scanIssues := src.ScanDay(day)
			rec.Files = files
			issues = append(issues, scanIssues...)
		}
		records = append(records, rec)
	}
	return records, issues
}
