package config

import (
	"fmt"
	"os"
)

// Init writes an example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	prune := true
	verify := true
	exampleConfig := Config{
		Readme:  DefaultReadme,
		DaysDir: DefaultDaysDir,
		Output:  DefaultOutput,
		Site: SiteConfig{
			Title:    "GPU Kernels Learning Journey",
			Subtitle: "A 100-day journey of learning GPU programming",
			Links: []Link{
				{Name: "GitHub Repository", URL: "https://github.com/example/100-days"},
			},
		},
		Parse: ParseConfig{MaxDay: DefaultMaxDay, MaxHeadingLevel: DefaultMaxHeadingLevel},
		Scan: ScanConfig{
			DirPattern:        DefaultDirPattern,
			IncludeExtensions: []string{".cu", ".cuh", ".c", ".h", ".cpp", ".py", ".md"},
			MaxFileBytes:      DefaultMaxFileBytes,
		},
		Render: RenderConfig{
			PreviewLength: DefaultPreviewLength,
			Highlighter:   HighlighterPrism,
		},
		UndocumentedDays: UndocumentedOmit,
		Prune:            &prune,
		VerifyLinks:      &verify,
	}

	data, err := Marshal(&exampleConfig)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
