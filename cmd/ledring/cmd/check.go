package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/layout"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [board_file]",
	Short: "Verify LED radius, bus wiring and pad insets of a board",
	Long: `Checks a board without modifying it and lists every violation.
Exits non-zero when any check fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	file := boardFile(cfg, args)
	doc, err := eagle.ParseFile(file)
	if err != nil {
		return err
	}
	report, err := layout.Check(doc, cfg.Params)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	out := cmd.OutOrStdout()
	for _, v := range report.Violations {
		fmt.Fprintf(out, "  ✗ %s\n", v)
	}
	if !report.OK() {
		return fmt.Errorf("%s: %d violation(s) in %d checks", file, len(report.Violations), report.Checked)
	}
	fmt.Fprintf(out, "✓ %s: %d checks passed\n", file, report.Checked)
	return nil
}
