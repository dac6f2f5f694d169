package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
	"git.home.luguber.info/inful/journalsite/internal/metrics"
	"git.home.luguber.info/inful/journalsite/internal/preview"
	"git.home.luguber.info/inful/journalsite/internal/workspace"
)

// PreviewCmd serves the generated site and rebuilds it when inputs change.
type PreviewCmd struct {
	Readme  string `help:"README to parse (overrides config)"`
	DaysDir string `name:"days-dir" help:"Directory holding the day directories (overrides config)"`
	Output  string `short:"o" help:"Output directory for the preview (defaults to a temporary directory)"`
	Port    int    `name:"port" default:"1316" help:"Preview server port."`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := InputFlags{Readme: p.Readme, DaysDir: p.DaysDir}
	// Fail fast on a broken config before creating anything.
	if _, err := root.LoadConfig(flags); err != nil {
		return err
	}

	ws := workspace.NewManager("")
	if p.Output != "" {
		ws = workspace.NewPersistentManager(p.Output)
	}
	if err := ws.Create(); err != nil {
		return err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to remove preview output", logfields.Error(err))
		}
	}()

	reg := prom.NewRegistry()
	return preview.Run(ctx, preview.Options{
		Load:       func() (*config.Config, error) { return root.LoadConfig(flags) },
		ConfigPath: root.Config,
		OutputDir:  ws.Path(),
		Port:       p.Port,
		Registry:   reg,
		Recorder:   metrics.NewPrometheusRecorder(reg),
	})
}
