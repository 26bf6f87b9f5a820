package layout

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/ledring/pkg/eagle"
)

// Pass is one step of the layout recipe.
type Pass interface {
	Name() string
	Apply(doc *eagle.Document) error
}

type funcPass struct {
	name string
	fn   func(*eagle.Document) error
}

func (p funcPass) Name() string                     { return p.name }
func (p funcPass) Apply(doc *eagle.Document) error { return p.fn(doc) }

// Pass names understood by Lookup.
const (
	PassPlaceLEDs      = "place-leds"
	PassPlaceResistors = "place-resistors"
	PassDaisyChain     = "daisy-chain"
	PassBusPower       = "bus-power"
	PassBusGround      = "bus-ground"
	PassOutline        = "outline"
	PassSolderMask     = "soldermask"
	PassCopperPads     = "copper-pads"
	PassAirwires       = "airwires"
)

var registry = map[string]func(*Layout) func(*eagle.Document) error{
	PassPlaceLEDs:      func(l *Layout) func(*eagle.Document) error { return l.PlaceLEDs },
	PassPlaceResistors: func(l *Layout) func(*eagle.Document) error { return l.PlaceResistors },
	PassDaisyChain:     func(l *Layout) func(*eagle.Document) error { return l.RouteDaisyChain },
	PassBusPower:       func(l *Layout) func(*eagle.Document) error { return l.RoutePower },
	PassBusGround:      func(l *Layout) func(*eagle.Document) error { return l.RouteGround },
	PassOutline:        func(l *Layout) func(*eagle.Document) error { return l.Outline },
	PassSolderMask:     func(l *Layout) func(*eagle.Document) error { return l.SolderMask },
	PassCopperPads:     func(l *Layout) func(*eagle.Document) error { return l.CopperPads },
	PassAirwires:       func(l *Layout) func(*eagle.Document) error { return l.RepairAirwires },
}

// DefaultPasses is the order a plain run applies: LEDs first, since every
// router depends on their positions.
var DefaultPasses = []string{PassPlaceLEDs, PassDaisyChain, PassBusPower, PassBusGround}

// ArtworkPasses regenerate the board outline and the edge pads.
var ArtworkPasses = []string{PassOutline, PassSolderMask, PassCopperPads}

// PassNames lists every registered pass, sorted.
func PassNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a pass by name.
func (l *Layout) Lookup(name string) (Pass, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, &LookupError{Kind: "pass", Name: name}
	}
	return funcPass{name: name, fn: mk(l)}, nil
}

// Pipeline is an ordered list of passes over one document.
type Pipeline struct {
	Passes []Pass
}

// Pipeline resolves names into a Pipeline. An empty list yields the default
// passes.
func (l *Layout) Pipeline(names []string) (*Pipeline, error) {
	if len(names) == 0 {
		names = DefaultPasses
	}
	p := &Pipeline{}
	for _, name := range names {
		pass, err := l.Lookup(name)
		if err != nil {
			return nil, err
		}
		p.Passes = append(p.Passes, pass)
	}
	return p, nil
}

// Run applies every pass in order and stops at the first failure. The
// document is left as the failing pass left it.
func (p *Pipeline) Run(doc *eagle.Document) error {
	for _, pass := range p.Passes {
		Logger().Info("running pass", "pass", pass.Name())
		if err := pass.Apply(doc); err != nil {
			return fmt.Errorf("%s: %w", pass.Name(), err)
		}
	}
	return nil
}
