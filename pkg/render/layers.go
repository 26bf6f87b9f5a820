package render

import "github.com/OpenTraceLab/ledring/pkg/eagle"

// LayerConfig controls which layers are drawn and how. The zero value is
// not usable; use NewLayerConfig.
type LayerConfig struct {
	Theme   Theme
	Markers bool // draw element origins

	visible map[eagle.Layer]bool
	hideAll bool
}

// NewLayerConfig shows every layer in the Eagle theme.
func NewLayerConfig() *LayerConfig {
	return &LayerConfig{
		Theme:   NewTheme(ThemeEagle),
		Markers: true,
		visible: make(map[eagle.Layer]bool),
	}
}

// SetVisible sets the visibility of a specific layer
func (lc *LayerConfig) SetVisible(layer eagle.Layer, visible bool) {
	lc.visible[layer] = visible
}

// IsVisible reports whether layer is drawn. Layers not configured follow
// ShowAll/ShowOnly.
func (lc *LayerConfig) IsVisible(layer eagle.Layer) bool {
	if v, ok := lc.visible[layer]; ok {
		return v
	}
	return !lc.hideAll
}

// ShowAll shows all layers
func (lc *LayerConfig) ShowAll() {
	lc.hideAll = false
	lc.visible = make(map[eagle.Layer]bool)
}

// ShowOnly shows only the specified layers, hiding all others
func (lc *LayerConfig) ShowOnly(layers ...eagle.Layer) {
	lc.hideAll = true
	lc.visible = make(map[eagle.Layer]bool)
	for _, layer := range layers {
		lc.SetVisible(layer, true)
	}
}

// ShowCopperOnly shows both copper layers.
func (lc *LayerConfig) ShowCopperOnly() {
	lc.ShowOnly(eagle.LayerTop, eagle.LayerBottom)
}

// ToggleLayer flips one layer, used by the viewer's number keys.
func (lc *LayerConfig) ToggleLayer(layer eagle.Layer) {
	lc.SetVisible(layer, !lc.IsVisible(layer))
}

// drawOrder is bottom to top: substrate side first, mask last so it tints
// the copper under it.
var drawOrder = []eagle.Layer{
	eagle.LayerBottom,
	eagle.LayerTop,
	19,
	eagle.LayerTPlace,
	eagle.LayerDimension,
	eagle.LayerTStop,
}

// layerRank orders layers for drawing; unknown layers go between the known
// copper and silkscreen.
func layerRank(l eagle.Layer) int {
	for i, d := range drawOrder {
		if d == l {
			return i * 2
		}
	}
	return 3
}
