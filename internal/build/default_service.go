package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/gitinfo"
	"git.home.luguber.info/inful/journalsite/internal/highlight"
	"git.home.luguber.info/inful/journalsite/internal/journal"
	"git.home.luguber.info/inful/journalsite/internal/linkverify"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
	"git.home.luguber.info/inful/journalsite/internal/metrics"
	"git.home.luguber.info/inful/journalsite/internal/observability"
	"git.home.luguber.info/inful/journalsite/internal/render"
	"git.home.luguber.info/inful/journalsite/internal/site"
)

// DefaultBuildService runs the pipeline sequentially on the local filesystem.
type DefaultBuildService struct {
	recorder metrics.Recorder
	headFunc func(path string) (*journal.Commit, error)
}

// NewBuildService creates a build service with metrics disabled.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		recorder: metrics.NoopRecorder{},
		headFunc: gitinfo.Head,
	}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithHeadFunc replaces the git HEAD lookup (for tests).
func (s *DefaultBuildService) WithHeadFunc(fn func(path string) (*journal.Commit, error)) *DefaultBuildService {
	s.headFunc = fn
	return s
}

// Run executes parse → scan → render → write → verify.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{StartTime: startTime}

	ctx = observability.WithBuildID(ctx, startTime.Format("20060102-150405"))

	if req.Config == nil {
		return s.fail(result, "", errors.ValidationError("build request has no configuration").Build())
	}
	cfg := req.Config
	result.OutputPath = cfg.Output

	// Parse
	stageStart := time.Now()
	sctx := observability.WithStage(ctx, StageParse)
	observability.InfoContext(sctx, "Parsing README", logfields.Path(cfg.Readme))
	src, err := journal.ReadReadme(cfg.Readme)
	if err != nil {
		return s.fail(result, StageParse, err)
	}
	parsed, err := journal.ParseReadme(src, journal.ParseOptions{
		MaxDay:          cfg.Parse.MaxDay,
		MaxHeadingLevel: cfg.Parse.MaxHeadingLevel,
	})
	if err != nil {
		return s.fail(result, StageParse, err)
	}
	s.addIssues(sctx, result, parsed.Issues)
	s.finishStage(StageParse, stageStart, len(parsed.Issues))
	observability.InfoContext(sctx, "Found day entries", logfields.Count(len(parsed.Entries)))

	if err := s.checkCanceled(ctx, result); err != nil {
		return result, err
	}

	// Scan
	stageStart = time.Now()
	sctx = observability.WithStage(ctx, StageScan)
	scanner, err := journal.NewScanner(cfg.DaysDir, journal.ScanOptions{
		DirPattern:        cfg.Scan.DirPattern,
		MaxDay:            cfg.Parse.MaxDay,
		IncludeExtensions: cfg.Scan.IncludeExtensions,
		Languages:         highlight.NewLanguages(cfg.Scan.Languages),
		MaxFileBytes:      cfg.Scan.MaxFileBytes,
	})
	if err != nil {
		return s.fail(result, StageScan, err)
	}
	indexIssues := scanner.Index()
	observability.DebugContext(sctx, "Indexed day directories",
		logfields.Path(cfg.DaysDir), logfields.Count(len(scanner.Days())))
	records, joinIssues := journal.Assemble(parsed.Entries, scanner, journal.AssembleOptions{
		Policy:    journal.UndocumentedPolicy(cfg.UndocumentedDays),
		FillRange: cfg.FillRange,
		MaxDay:    cfg.Parse.MaxDay,
	})
	observability.DebugContext(sctx, "Joined README entries with day directories",
		logfields.Count(len(records)), logfields.Policy(string(cfg.UndocumentedDays)))
	scanIssues := append(indexIssues, joinIssues...)
	s.addIssues(sctx, result, scanIssues)
	s.finishStage(StageScan, stageStart, len(scanIssues))

	model := &journal.SiteModel{
		Title:    cfg.Site.Title,
		Subtitle: cfg.Site.Subtitle,
		BaseURL:  cfg.Site.BaseURL,
		Days:     records,
	}
	for _, l := range cfg.Site.Links {
		model.Links = append(model.Links, journal.Link{Name: l.Name, URL: l.URL})
	}

	// Git provenance is optional; failures only drop the footer line.
	if cfg.GitInfo && s.headFunc != nil {
		stageStart = time.Now()
		sctx = observability.WithStage(ctx, StageGit)
		commit, err := s.headFunc(filepath.Dir(cfg.Readme))
		if err != nil {
			observability.WarnContext(sctx, "Git information unavailable", logfields.Error(err))
			s.finishStage(StageGit, stageStart, 1)
		} else {
			model.Commit = commit
			observability.DebugContext(sctx, "Resolved HEAD", slog.String("commit", commit.Short))
			s.finishStage(StageGit, stageStart, 0)
		}
	}

	if err := s.checkCanceled(ctx, result); err != nil {
		return result, err
	}

	// Render
	stageStart = time.Now()
	sctx = observability.WithStage(ctx, StageRender)
	renderer, err := render.New(render.Options{
		PreviewLength: cfg.Render.PreviewLength,
		Highlighter:   string(cfg.Render.Highlighter),
		ChromaStyle:   cfg.Render.ChromaStyle,
		TemplatesDir:  cfg.TemplatesDir,
	})
	if err != nil {
		return s.fail(result, StageRender, err)
	}
	pages := make([]site.Page, 0, len(model.Days)+1)
	index, err := renderer.Index(model)
	if err != nil {
		return s.fail(result, StageRender, err)
	}
	pages = append(pages, site.Page{Name: "index.html", Content: index})
	for i, rec := range model.Days {
		page, err := renderer.Day(model, i)
		if err != nil {
			return s.fail(result, StageRender, err)
		}
		observability.DebugContext(observability.WithDay(sctx, rec.Day), "Rendered day page",
			logfields.Title(rec.Title), logfields.Count(len(rec.Files)))
		pages = append(pages, site.Page{Name: rec.PageName(), Content: page})
	}
	result.Days = len(model.Days)
	s.recorder.SetDays(result.Days)
	s.finishStage(StageRender, stageStart, 0)

	if err := s.checkCanceled(ctx, result); err != nil {
		return result, err
	}

	// Write
	stageStart = time.Now()
	sctx = observability.WithStage(ctx, StageWrite)
	writer := site.NewWriter(cfg.Output, site.Options{Prune: cfg.PruneEnabled(), StaticDir: cfg.StaticDir})
	report, err := writer.Write(pages)
	if err != nil {
		return s.fail(result, StageWrite, err)
	}
	result.Written = len(report.Written)
	result.Unchanged = len(report.Unchanged)
	result.Pruned = len(report.Pruned)
	s.recorder.AddPages(metrics.PageWritten, result.Written)
	s.recorder.AddPages(metrics.PageUnchanged, result.Unchanged)
	s.recorder.AddPages(metrics.PagePruned, result.Pruned)
	s.finishStage(StageWrite, stageStart, 0)
	observability.InfoContext(sctx, "Wrote pages",
		logfields.Path(cfg.Output), logfields.Count(result.Written),
		slog.Int("unchanged", result.Unchanged), slog.Int("pruned", result.Pruned))

	// Verify
	if cfg.VerifyLinksEnabled() {
		stageStart = time.Now()
		sctx = observability.WithStage(ctx, StageVerify)
		links, err := linkverify.VerifySite(cfg.Output)
		if err != nil {
			return s.fail(result, StageVerify, err)
		}
		result.Links = links
		for _, problem := range links.Problems() {
			observability.WarnContext(sctx, "Link check failed", slog.String("problem", problem))
		}
		problems := len(links.Problems())
		s.finishStage(StageVerify, stageStart, problems)
	}

	result.Status = BuildStatusSuccess
	if len(result.Issues) > 0 || (result.Links != nil && !result.Links.OK()) {
		result.Status = BuildStatusWarning
	}
	s.complete(result)
	switch result.Status {
	case BuildStatusWarning:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeWarning)
	default:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	}
	observability.InfoContext(ctx, "Build completed",
		slog.String("status", string(result.Status)),
		logfields.Count(result.Days),
		logfields.DurationMS(float64(result.Duration.Milliseconds())))
	return result, nil
}

func (s *DefaultBuildService) addIssues(ctx context.Context, result *BuildResult, issues []journal.Issue) {
	for _, issue := range issues {
		attrs := []slog.Attr{slog.String("kind", string(issue.Kind))}
		if issue.Day > 0 {
			attrs = append(attrs, logfields.Day(issue.Day))
		}
		if issue.Path != "" {
			attrs = append(attrs, logfields.Path(issue.Path))
		}
		if issue.Err != nil {
			attrs = append(attrs, logfields.Error(issue.Err))
		}
		observability.WarnContext(ctx, issue.Message, attrs...)
		s.recorder.IncIssue(string(issue.Kind))
	}
	result.Issues = append(result.Issues, issues...)
}

func (s *DefaultBuildService) finishStage(stage string, start time.Time, problems int) {
	s.recorder.ObserveStageDuration(stage, time.Since(start))
	if problems > 0 {
		s.recorder.IncStageResult(stage, metrics.ResultWarning)
		return
	}
	s.recorder.IncStageResult(stage, metrics.ResultSuccess)
}

func (s *DefaultBuildService) fail(result *BuildResult, stage string, err error) (*BuildResult, error) {
	result.Status = BuildStatusFailed
	if stage != "" {
		s.recorder.IncStageResult(stage, metrics.ResultFatal)
	}
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	s.complete(result)
	return result, err
}

func (s *DefaultBuildService) checkCanceled(ctx context.Context, result *BuildResult) error {
	if ctx.Err() == nil {
		return nil
	}
	result.Status = BuildStatusCancelled
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	s.complete(result)
	return errors.WrapError(ctx.Err(), errors.CategoryRuntime, "build canceled").Fatal().Build()
}

func (s *DefaultBuildService) complete(result *BuildResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
}

// Run builds the site for cfg with a default service.
func Run(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*BuildResult, error) {
	return NewBuildService().WithRecorder(recorder).Run(ctx, BuildRequest{Config: cfg})
}
