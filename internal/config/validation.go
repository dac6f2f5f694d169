package config

import (
	"path/filepath"
	"regexp"

	ferrors "git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

// Validate checks a defaulted configuration and returns a classified config error.
func Validate(cfg *Config) error {
	if cfg.Parse.MaxDay < 1 {
		return invalid("parse.max_day must be positive", "max_day", cfg.Parse.MaxDay)
	}
	if cfg.Parse.MaxHeadingLevel < 1 || cfg.Parse.MaxHeadingLevel > 6 {
		return invalid("parse.max_heading_level must be between 1 and 6", "max_heading_level", cfg.Parse.MaxHeadingLevel)
	}

	re, err := regexp.Compile(cfg.Scan.DirPattern)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "scan.dir_pattern is not a valid regular expression").
			Fatal().
			WithContext("dir_pattern", cfg.Scan.DirPattern).
			Build()
	}
	if re.NumSubexp() < 1 {
		return invalid("scan.dir_pattern needs a capture group for the day number", "dir_pattern", cfg.Scan.DirPattern)
	}
	if cfg.Scan.MaxFileBytes < 0 {
		return invalid("scan.max_file_bytes must not be negative", "max_file_bytes", cfg.Scan.MaxFileBytes)
	}

	if cfg.Render.PreviewLength < 0 {
		return invalid("render.preview_length must not be negative", "preview_length", cfg.Render.PreviewLength)
	}
	if NormalizeHighlighter(string(cfg.Render.Highlighter)) == "" {
		return invalid("render.highlighter must be prism or chroma", "highlighter", cfg.Render.Highlighter)
	}
	if NormalizeUndocumentedPolicy(string(cfg.UndocumentedDays)) == "" {
		return invalid("undocumented_days must be omit or flag", "undocumented_days", cfg.UndocumentedDays)
	}

	if samePath(cfg.Output, cfg.DaysDir) {
		return invalid("output must not be the days directory", "output", cfg.Output)
	}
	if cfg.StaticDir != "" && samePath(cfg.StaticDir, cfg.Output) {
		return invalid("static_dir must differ from output", "static_dir", cfg.StaticDir)
	}
	return nil
}

func invalid(msg, key string, value any) error {
	return ferrors.ConfigError(msg).WithContext(key, value).Build()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
