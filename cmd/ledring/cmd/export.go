package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/OpenTraceLab/ledring/pkg/kicadexport"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	exportOutput  string
	exportOriginX float64
	exportOriginY float64
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board to other formats",
}

var exportKicadCmd = &cobra.Command{
	Use:   "kicad [board_file]",
	Short: "Export the board geometry as a KiCad .kicad_pcb",
	Long: `Writes the board outline, mask openings, edge pads and routed copper as a
KiCad board. Footprints are not exported. Unrouted wires (layer 19) are
skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExportKicad,
}

func init() {
	exportKicadCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default <board>.kicad_pcb)")
	exportKicadCmd.Flags().Float64Var(&exportOriginX, "origin-x", kicadexport.DefaultOrigin.X, "sheet X of the Eagle origin in mm")
	exportKicadCmd.Flags().Float64Var(&exportOriginY, "origin-y", kicadexport.DefaultOrigin.Y, "sheet Y of the Eagle origin in mm")

	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportKicadCmd)
}

func runExportKicad(cmd *cobra.Command, args []string) error {
	file, scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	out := exportOutput
	if out == "" {
		out = replaceExt(file, ".kicad_pcb")
	}

	stats, err := kicadexport.WriteFile(out, scene, kicadexport.Options{
		Origin: &r2.Vec{X: exportOriginX, Y: exportOriginY},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}

	// Summarise what a KiCad reader gets back from the file.
	f, err := os.Open(out)
	if err != nil {
		return err
	}
	defer f.Close()
	board, err := kicadexport.Read(f)
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ exported %s to %s\n", file, out)
	fmt.Fprintf(w, "  Version: %d\n", board.Version)
	fmt.Fprintf(w, "  Nets: %d\n", len(board.Nets)-1)
	kinds := make([]string, 0, len(board.Items))
	for k := range board.Items {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %s: %d\n", k, board.Items[k])
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(w, "  Skipped: %d\n", stats.Skipped)
	}
	return nil
}
