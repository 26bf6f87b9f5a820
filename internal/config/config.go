// Package config loads the board parameters from ledring.toml, the
// environment and command line overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/ledring/pkg/layout"
	"github.com/OpenTraceLab/ledring/pkg/ring"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	CfgBoardFile        string = "board.file"
	CfgBoardOuterRadius string = "board.outer_radius"
	CfgBoardInnerRadius string = "board.inner_radius"
	CfgBoardPadRadius   string = "board.pad_radius"
	CfgBoardCenterX     string = "board.center_x"
	CfgBoardCenterY     string = "board.center_y"

	CfgRingLEDs        string = "ring.leds"
	CfgRingLEDRadius   string = "ring.led_radius"
	CfgRingFirstLED    string = "ring.first_led"
	CfgRingLEDRotation string = "ring.led_rotation"
	CfgRingPadOffset   string = "ring.pad_offset"
	CfgRingBusGap      string = "ring.bus_gap"

	CfgPadsArcSteps string = "pads.arc_steps"
	CfgPadsCount    string = "pads.count"

	CfgWidthsDimension string = "widths.dimension"
	CfgWidthsPad       string = "widths.pad"
	CfgWidthsTap       string = "widths.tap"
	CfgWidthsBus       string = "widths.bus"
	CfgWidthsData      string = "widths.data"

	CfgLayoutStrictPaths string = "layout.strict_paths"
	CfgPipelinePasses    string = "pipeline.passes"
)

// EnvPrefix prefixes every environment override, e.g. LEDRING_RING_LEDS.
const EnvPrefix = "LEDRING"

// DefaultBoardFile is the board edited when none is named.
const DefaultBoardFile = "hoop_v2.brd"

// Config is everything a run needs.
type Config struct {
	BoardFile   string
	Params      ring.Params
	StrictPaths bool
	Passes      []string
}

// SetDefaults registers the production board values.
func SetDefaults(v *viper.Viper) {
	v.SetConfigName("ledring")
	v.AddConfigPath(".")
	v.SetConfigType("toml")

	p := ring.DefaultParams()

	v.SetDefault(CfgBoardFile, DefaultBoardFile)
	v.SetDefault(CfgBoardOuterRadius, p.OuterRadius)
	v.SetDefault(CfgBoardInnerRadius, p.InnerRadius)
	v.SetDefault(CfgBoardPadRadius, p.PadRadius)
	v.SetDefault(CfgBoardCenterX, p.Center.X)
	v.SetDefault(CfgBoardCenterY, p.Center.Y)

	v.SetDefault(CfgRingLEDs, p.LEDs)
	v.SetDefault(CfgRingLEDRadius, p.LEDRadius)
	v.SetDefault(CfgRingFirstLED, p.FirstSlot)
	v.SetDefault(CfgRingLEDRotation, p.LEDRotation)
	v.SetDefault(CfgRingPadOffset, p.PadOffset)
	v.SetDefault(CfgRingBusGap, p.BusGap)

	v.SetDefault(CfgPadsArcSteps, p.ArcSteps)
	v.SetDefault(CfgPadsCount, p.Wedges)

	v.SetDefault(CfgWidthsDimension, p.Widths.Dimension)
	v.SetDefault(CfgWidthsPad, p.Widths.Pad)
	v.SetDefault(CfgWidthsTap, p.Widths.Tap)
	v.SetDefault(CfgWidthsBus, p.Widths.Bus)
	v.SetDefault(CfgWidthsData, p.Widths.Data)

	v.SetDefault(CfgLayoutStrictPaths, false)
	v.SetDefault(CfgPipelinePasses, layout.DefaultPasses)
}

// New returns a viper instance with defaults and environment overrides set
// and the config file read. An empty configFile searches ./ledring.toml and
// tolerates its absence; a named file must exist.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		BoardFile:   v.GetString(CfgBoardFile),
		StrictPaths: v.GetBool(CfgLayoutStrictPaths),
		Passes:      v.GetStringSlice(CfgPipelinePasses),
		Params: ring.Params{
			LEDs:        v.GetInt(CfgRingLEDs),
			Center:      r2.Vec{X: v.GetFloat64(CfgBoardCenterX), Y: v.GetFloat64(CfgBoardCenterY)},
			OuterRadius: v.GetFloat64(CfgBoardOuterRadius),
			InnerRadius: v.GetFloat64(CfgBoardInnerRadius),
			PadRadius:   v.GetFloat64(CfgBoardPadRadius),
			LEDRadius:   v.GetFloat64(CfgRingLEDRadius),
			FirstSlot:   v.GetFloat64(CfgRingFirstLED),
			LEDRotation: v.GetFloat64(CfgRingLEDRotation),
			PadOffset:   v.GetFloat64(CfgRingPadOffset),
			BusGap:      v.GetFloat64(CfgRingBusGap),
			ArcSteps:    v.GetInt(CfgPadsArcSteps),
			Wedges:      v.GetInt(CfgPadsCount),
			Widths: ring.Widths{
				Dimension: v.GetFloat64(CfgWidthsDimension),
				Pad:       v.GetFloat64(CfgWidthsPad),
				Tap:       v.GetFloat64(CfgWidthsTap),
				Bus:       v.GetFloat64(CfgWidthsBus),
				Data:      v.GetFloat64(CfgWidthsData),
			},
		},
	}
	if c.BoardFile == "" {
		return nil, errors.New("config: board.file is empty")
	}
	if err := c.Params.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Layout returns a Layout for the configured parameters.
func (c *Config) Layout() *layout.Layout {
	l := layout.New(c.Params)
	l.StrictPaths = c.StrictPaths
	return l
}
