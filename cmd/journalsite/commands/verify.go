package commands

import (
	"fmt"

	"git.home.luguber.info/inful/journalsite/internal/config"
	"git.home.luguber.info/inful/journalsite/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `arg:"" optional:"" help:"Site directory to check (defaults to the configured output)"`
}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig(InputFlags{Output: v.Output})
	if err != nil {
		return err
	}
	return RunVerify(cfg)
}

// RunVerify prints one line per link problem and fails when there is any.
func RunVerify(cfg *config.Config) error {
	report, err := linkverify.VerifySite(cfg.Output)
	if err != nil {
		return err
	}
	for _, problem := range report.Problems() {
		fmt.Println(problem)
	}
	fmt.Printf("Checked %d pages, %d links\n", report.Pages, report.Links)
	return report.Err()
}
