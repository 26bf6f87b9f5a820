package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/OpenTraceLab/ledring/internal/config"
	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/layout"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	strict  bool
)

var rootCmd = &cobra.Command{
	Use:   "ledring",
	Short: "LED ring layout generator for Eagle boards",
	Long: `ledring places the LEDs of a circular LED board, routes the power,
ground and data nets and draws the outline and edge pads, editing an Eagle
.brd file in place.

Without a subcommand the configured passes run on the configured board
(hoop_v2.brd unless ledring.toml or LEDRING_BOARD_FILE says otherwise).

Examples:
  ledring                                # Place and route hoop_v2.brd
  ledring artwork board.brd              # Redraw outline, mask and pads
  ledring check board.brd                # Verify a routed board
  ledring render board.brd -o ring.png   # Render to PNG
  ledring export kicad board.brd         # Write board.kicad_pcb`,
	Version:           "0.9.0",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runPasses(cmd, cfg, cfg.BoardFile, cfg.Passes)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./ledring.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail when a board section is missing")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	layout.SetLogger(slog.New(h))
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		if err := v.BindPFlag(config.CfgLayoutStrictPaths, f); err != nil {
			return nil, err
		}
	}
	return config.Load(v)
}

// boardFile picks the positional board argument or the configured one.
func boardFile(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.BoardFile
}

// runPasses applies the named passes to file and saves it. Nothing is
// written when a pass fails.
func runPasses(cmd *cobra.Command, cfg *config.Config, file string, names []string) error {
	pipeline, err := cfg.Layout().Pipeline(names)
	if err != nil {
		return err
	}
	doc, err := eagle.ParseFile(file)
	if err != nil {
		return err
	}
	if err := pipeline.Run(doc); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := doc.WriteFile(file); err != nil {
		return err
	}

	ran := make([]string, len(pipeline.Passes))
	for i, p := range pipeline.Passes {
		ran[i] = p.Name()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s\n", file, strings.Join(ran, ", "))
	return nil
}
