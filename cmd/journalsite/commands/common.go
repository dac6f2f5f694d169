package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/journalsite/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"journalsite.yaml" env:"JOURNALSITE_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Regenerate the site (default command)"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	Verify  VerifyCmd  `cmd:"" help:"Check the links of a generated site"`
	Preview PreviewCmd `cmd:"" help:"Serve the site and rebuild on change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	g.Logger = logger
	return nil
}

// InputFlags override the input and output locations from the config file.
type InputFlags struct {
	Output  string `short:"o" help:"Output directory (overrides config)"`
	Readme  string `help:"README to parse (overrides config)"`
	DaysDir string `name:"days-dir" help:"Directory holding the day directories (overrides config)"`
}

func (f InputFlags) apply(cfg *config.Config) {
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.Readme != "" {
		cfg.Readme = f.Readme
	}
	if f.DaysDir != "" {
		cfg.DaysDir = f.DaysDir
	}
}

// LoadConfig reads the configuration and applies flag overrides. A missing
// file is only an error when a non-default path was given.
func (c *CLI) LoadConfig(flags InputFlags) (*config.Config, error) {
	cfg, err := config.Load(c.Config, c.Config != config.DefaultConfigFile)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
