package layout

import (
	"fmt"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
)

// ClearLayer removes every direct child of the node at path that sits on
// layer and returns that node so the caller can append the regenerated
// content. Clearing an empty layer is a no-op.
//
// When path does not resolve, lenient mode logs a warning and returns the
// document root untouched; strict mode returns ErrPathNotFound.
func (l *Layout) ClearLayer(doc *eagle.Document, path string, layer eagle.Layer) (*eagle.Node, error) {
	parent := doc.Find(path)
	if parent == nil {
		if l.StrictPaths {
			return nil, fmt.Errorf("clear layer %s: %w: %s", layer, ErrPathNotFound, path)
		}
		Logger().Warn("path not found, nothing cleared", "path", path, "layer", int(layer))
		return doc.Root, nil
	}

	removed := parent.RemoveFunc(func(n *eagle.Node) bool { return n.OnLayer(layer) })
	Logger().Info("cleared layer", "path", path, "layer", int(layer), "removed", removed)
	return parent, nil
}
