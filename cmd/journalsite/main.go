package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/journalsite/cmd/journalsite/commands"
	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}
	ctx := kong.Parse(&cli,
		kong.Bind(global),
		kong.Name("journalsite"),
		kong.Description("Generate a static site from a 100-day learning journal."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(&cli)
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	os.Exit(adapter.HandleError(err))
}
