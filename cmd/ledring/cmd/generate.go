package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/ledring/pkg/layout"
	"github.com/spf13/cobra"
)

var passNames []string

var generateCmd = &cobra.Command{
	Use:   "generate [board_file]",
	Short: "Place the LEDs and route the data chain and buses",
	Long: `Runs the layout passes on a board and saves it in place.

Without --pass the configured passes run (place-leds, daisy-chain,
bus-power, bus-ground by default). Use "ledring passes" to list them all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		names := cfg.Passes
		if len(passNames) > 0 {
			names = passNames
		}
		return runPasses(cmd, cfg, boardFile(cfg, args), names)
	},
}

var artworkCmd = &cobra.Command{
	Use:   "artwork [board_file]",
	Short: "Redraw the board outline, solder mask and edge pads",
	Args:  cobra.MaximumNArgs(1),
	RunE:  fixedPasses(layout.ArtworkPasses...),
}

var airwiresCmd = &cobra.Command{
	Use:   "airwires [board_file]",
	Short: "Turn unrouted LED-to-LED connections into top layer traces",
	Args:  cobra.MaximumNArgs(1),
	RunE:  fixedPasses(layout.PassAirwires),
}

var resistorsCmd = &cobra.Command{
	Use:   "resistors [board_file]",
	Short: "Place the resistors on the LED ring and drop their labels",
	Args:  cobra.MaximumNArgs(1),
	RunE:  fixedPasses(layout.PassPlaceResistors),
}

var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "List the layout passes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range layout.PassNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func fixedPasses(names ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runPasses(cmd, cfg, boardFile(cfg, args), names)
	}
}

func init() {
	generateCmd.Flags().StringSliceVar(&passNames, "pass", nil, "passes to run, in order")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(artworkCmd)
	rootCmd.AddCommand(airwiresCmd)
	rootCmd.AddCommand(resistorsCmd)
	rootCmd.AddCommand(passesCmd)
}
