package config

// Default values applied by ApplyDefaults.
const (
	DefaultReadme          = "README.md"
	DefaultDaysDir         = "."
	DefaultOutput          = "docs"
	DefaultTitle           = "100 Days Learning Journey"
	DefaultMaxDay          = 100
	DefaultMaxHeadingLevel = 2
	DefaultDirPattern      = `(?i)^day[\s_-]*0*(\d+)$`
	DefaultMaxFileBytes    = 1 << 20
	DefaultPreviewLength   = 150
	DefaultChromaStyle     = "monokai"
)

// ApplyDefaults fills zero values. Unknown enum values are left in place so
// Validate can report them.
func ApplyDefaults(cfg *Config) {
	if cfg.Readme == "" {
		cfg.Readme = DefaultReadme
	}
	if cfg.DaysDir == "" {
		cfg.DaysDir = DefaultDaysDir
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultTitle
	}

	if cfg.Parse.MaxDay == 0 {
		cfg.Parse.MaxDay = DefaultMaxDay
	}
	if cfg.Parse.MaxHeadingLevel == 0 {
		cfg.Parse.MaxHeadingLevel = DefaultMaxHeadingLevel
	}

	if cfg.Scan.DirPattern == "" {
		cfg.Scan.DirPattern = DefaultDirPattern
	}
	if cfg.Scan.MaxFileBytes == 0 {
		cfg.Scan.MaxFileBytes = DefaultMaxFileBytes
	}
	for i, ext := range cfg.Scan.IncludeExtensions {
		cfg.Scan.IncludeExtensions[i] = NormalizeExtension(ext)
	}
	if len(cfg.Scan.Languages) > 0 {
		langs := make(map[string]string, len(cfg.Scan.Languages))
		for ext, lang := range cfg.Scan.Languages {
			langs[NormalizeExtension(ext)] = lang
		}
		cfg.Scan.Languages = langs
	}

	if cfg.Render.PreviewLength == 0 {
		cfg.Render.PreviewLength = DefaultPreviewLength
	}
	if cfg.Render.Highlighter == "" {
		cfg.Render.Highlighter = HighlighterPrism
	} else if h := NormalizeHighlighter(string(cfg.Render.Highlighter)); h != "" {
		cfg.Render.Highlighter = h
	}
	if cfg.Render.ChromaStyle == "" {
		cfg.Render.ChromaStyle = DefaultChromaStyle
	}

	if cfg.UndocumentedDays == "" {
		cfg.UndocumentedDays = UndocumentedOmit
	} else if p := NormalizeUndocumentedPolicy(string(cfg.UndocumentedDays)); p != "" {
		cfg.UndocumentedDays = p
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
