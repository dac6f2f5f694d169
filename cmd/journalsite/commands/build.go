package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/journalsite/internal/build"
	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
	"git.home.luguber.info/inful/journalsite/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	InputFlags
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig(b.InputFlags)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, cfg)
}

// RunBuild regenerates the site and prints the summary line. With
// metrics_file set the build metrics are written there, also after a failure.
func RunBuild(ctx context.Context, cfg *config.Config) error {
	var (
		reg      *prom.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if cfg.MetricsFile != "" {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	result, err := build.Run(ctx, cfg, recorder)

	if reg != nil {
		if werr := metrics.WriteTextfile(cfg.MetricsFile, reg); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(cfg.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}
	fmt.Println(result.Summary())
	return nil
}
