package cmd

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/render"
	"github.com/spf13/cobra"
)

var (
	renderOutput     string
	renderWidth      int
	renderHeight     int
	renderTheme      string
	renderCopperOnly bool
	renderNoMarkers  bool
)

var renderCmd = &cobra.Command{
	Use:   "render [board_file]",
	Short: "Render the board geometry to a PNG image",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output PNG (default <board>.png)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1024, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 1024, "image height in pixels")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "eagle", "color theme (eagle, classic)")
	renderCmd.Flags().BoolVar(&renderCopperOnly, "copper-only", false, "draw copper layers only")
	renderCmd.Flags().BoolVar(&renderNoMarkers, "no-markers", false, "hide element origins")
	rootCmd.AddCommand(renderCmd)
}

// loadScene reads the board named by args (or the configured one).
func loadScene(cmd *cobra.Command, args []string) (string, *render.Scene, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", nil, err
	}
	file := boardFile(cfg, args)
	doc, err := eagle.ParseFile(file)
	if err != nil {
		return "", nil, err
	}
	scene, err := render.BuildScene(doc)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", file, err)
	}
	return file, scene, nil
}

func parseTheme(name string) (render.ColorTheme, error) {
	for t, n := range render.ThemeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown theme %q", name)
}

// replaceExt swaps the extension of file, or appends ext when there is none.
func replaceExt(file, ext string) string {
	if i := strings.LastIndexByte(file, '.'); i > strings.LastIndexByte(file, '/') {
		return file[:i] + ext
	}
	return file + ext
}

func runRender(cmd *cobra.Command, args []string) error {
	theme, err := parseTheme(renderTheme)
	if err != nil {
		return err
	}
	file, scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	cfg := render.NewLayerConfig()
	cfg.Theme = render.NewTheme(theme)
	cfg.Markers = !renderNoMarkers
	if renderCopperOnly {
		cfg.ShowCopperOnly()
	}

	out := renderOutput
	if out == "" {
		out = replaceExt(file, ".png")
	}
	if err := render.SavePNG(out, scene, renderWidth, renderHeight, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ rendered %s to %s (%dx%d)\n", file, out, renderWidth, renderHeight)
	return nil
}
