package build

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/journal"
	"git.home.luguber.info/inful/journalsite/internal/linkverify"
)

// Pipeline stage names, used for logging and metrics labels.
const (
	StageParse  = "parse"
	StageScan   = "scan"
	StageGit    = "git"
	StageRender = "render"
	StageWrite  = "write"
	StageVerify = "verify"
)

// BuildService is the canonical interface for generating the site.
type BuildService interface {
	// Run regenerates the whole site for req.Config.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration for this build.
	Config *config.Config
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status BuildStatus

	// OutputPath is the directory the pages were written to.
	OutputPath string

	// Days is the number of day pages generated.
	Days int

	Written   int
	Unchanged int
	Pruned    int

	// Issues are recoverable problems: skipped README entries, unreadable files, omitted days.
	Issues []journal.Issue

	// Links is nil when link verification is disabled.
	Links *linkverify.Report

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Summary is the one-line message printed after a build.
func (r *BuildResult) Summary() string {
	s := fmt.Sprintf("Generated %d day pages in %s (%d written, %d unchanged, %d pruned)",
		r.Days, r.OutputPath, r.Written, r.Unchanged, r.Pruned)
	if n := len(r.Issues); n > 0 {
		s += fmt.Sprintf(", %d warnings", n)
	}
	return s
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed without issues.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusWarning indicates the build completed with skipped entries or broken links.
	BuildStatusWarning BuildStatus = "warning"

	// BuildStatusFailed indicates the build encountered a fatal error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build produced a complete site.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusWarning
}
