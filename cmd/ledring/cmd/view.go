package cmd

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"github.com/OpenTraceLab/ledring/pkg/eagle"
	"github.com/OpenTraceLab/ledring/pkg/render"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [board_file]",
	Short: "View the board in an interactive window",
	Long: `Opens the board in a Gio window with pan, zoom, and rotation controls.

Controls:
  Left Click / R    - Rotate 90°
  Right Click / F   - Flip board
  Scroll Wheel      - Zoom in/out
  Space             - Fit board to window
  C                 - Toggle copper only
  T                 - Toggle color theme
  M                 - Toggle element markers
  1-5               - Toggle top, bottom, dimension, tPlace, tStop
  Q / Escape        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	file, scene, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	bounds := scene.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Loaded board: %s\n", file)
	fmt.Fprintf(cmd.OutOrStdout(), "  Wires: %d\n", len(scene.Strokes))
	fmt.Fprintf(cmd.OutOrStdout(), "  Circles: %d\n", len(scene.Circles))
	fmt.Fprintf(cmd.OutOrStdout(), "  Polygons: %d\n", len(scene.Polygons))
	fmt.Fprintf(cmd.OutOrStdout(), "  Elements: %d\n", len(scene.Markers))
	if !bounds.Empty() {
		size := bounds.Size()
		fmt.Fprintf(cmd.OutOrStdout(), "  Board size: %.2f x %.2f mm\n", size.X, size.Y)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("LED Ring Viewer - " + file))
		w.Option(app.Size(unit.Dp(900), unit.Dp(900)))

		if err := runViewerWindow(w, scene, bounds); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

// layerKeys toggles single layers.
var layerKeys = map[key.Name]eagle.Layer{
	"1": eagle.LayerTop,
	"2": eagle.LayerBottom,
	"3": eagle.LayerDimension,
	"4": eagle.LayerTPlace,
	"5": eagle.LayerTStop,
}

type viewer struct {
	camera *render.Camera
	layers *render.LayerConfig
	bounds render.Bounds
	theme  render.ColorTheme
	copper bool
}

func runViewerWindow(w *app.Window, scene *render.Scene, bounds render.Bounds) error {
	v := &viewer{
		camera: render.NewCamera(900, 900),
		layers: render.NewLayerConfig(),
		bounds: bounds,
	}
	if !bounds.Empty() {
		v.camera.Fit(bounds)
	}

	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()

			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			v.camera.UpdateScreenSize(e.Size.X, e.Size.Y)

			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					if v.handleKey(ke.Name) {
						return nil
					}
					w.Invalidate()
				}
			}

			for {
				ev, ok := gtx.Event(pointer.Filter{
					Target:  tag,
					Kinds:   pointer.Press | pointer.Scroll,
					ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
				})
				if !ok {
					break
				}
				pe, ok := ev.(pointer.Event)
				if !ok {
					continue
				}
				switch pe.Kind {
				case pointer.Press:
					if pe.Buttons == pointer.ButtonPrimary {
						v.camera.Rotate(90)
					} else if pe.Buttons == pointer.ButtonSecondary {
						v.camera.Flip()
					}
				case pointer.Scroll:
					factor := 1.0 - float64(pe.Scroll.Y)*0.1
					v.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), factor)
				}
				w.Invalidate()
			}

			area := clip.Rect{Max: e.Size}.Push(&ops)
			event.Op(&ops, tag)
			area.Pop()

			render.Draw(gtx, v.camera, scene, v.layers)
			e.Frame(&ops)
		}
	}
}

// handleKey applies a key press and reports whether the window should close.
func (v *viewer) handleKey(k key.Name) bool {
	switch k {
	case key.NameEscape, "Q":
		return true
	case "F":
		v.camera.Flip()
	case "R":
		v.camera.Rotate(90)
	case key.NameLeftArrow:
		v.camera.Rotate(-90)
	case key.NameSpace:
		if !v.bounds.Empty() {
			v.camera.Fit(v.bounds)
		}
	case "C":
		v.copper = !v.copper
		if v.copper {
			v.layers.ShowCopperOnly()
		} else {
			v.layers.ShowAll()
		}
	case "T":
		if v.theme == render.ThemeEagle {
			v.theme = render.ThemeClassic
		} else {
			v.theme = render.ThemeEagle
		}
		v.layers.Theme = render.NewTheme(v.theme)
	case "M":
		v.layers.Markers = !v.layers.Markers
	default:
		if l, ok := layerKeys[k]; ok {
			v.layers.ToggleLayer(l)
		}
	}
	return false
}
