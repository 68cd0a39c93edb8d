package clock

import (
	"fmt"
	"time"
)

// Names of the styles the clock registers with its host.
const (
	StyleMain   = "BigClockMain"
	StyleShadow = "BigClockShadow"
)

// Config is the full runtime configuration, immutable between Setup calls.
type Config struct {
	Foreground      string
	ShadowColor     string
	BlendMain       int
	BlendShadow     int
	Border          string
	Padding         int
	Scale           int
	TickInterval    time.Duration
	MinCols         int
	MinRows         int
	UseShadow       bool
	ShadowRowOffset int
	ShadowColOffset int
	ToggleKey       string
	AutoBindKey     bool
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Foreground:      "#7AA2F7",
		ShadowColor:     "#3B4261",
		BlendMain:       0,
		BlendShadow:     60,
		Border:          "none",
		Padding:         1,
		Scale:           1,
		TickInterval:    time.Second,
		MinCols:         40,
		MinRows:         10,
		UseShadow:       true,
		ShadowRowOffset: 1,
		ShadowColOffset: 2,
		ToggleKey:       "c",
		AutoBindKey:     true,
	}
}

// Options is a partial configuration. Nil fields keep their current
// value, so repeated Setup calls accumulate.
type Options struct {
	Foreground      *string
	ShadowColor     *string
	BlendMain       *int
	BlendShadow     *int
	Border          *string
	Padding         *int
	Scale           *int
	TickInterval    *time.Duration
	MinCols         *int
	MinRows         *int
	UseShadow       *bool
	ShadowRowOffset *int
	ShadowColOffset *int
	ToggleKey       *string
	AutoBindKey     *bool
}

func (c Config) merged(o Options) Config {
	if o.Foreground != nil {
		c.Foreground = *o.Foreground
	}
	if o.ShadowColor != nil {
		c.ShadowColor = *o.ShadowColor
	}
	if o.BlendMain != nil {
		c.BlendMain = *o.BlendMain
	}
	if o.BlendShadow != nil {
		c.BlendShadow = *o.BlendShadow
	}
	if o.Border != nil {
		c.Border = *o.Border
	}
	if o.Padding != nil {
		c.Padding = *o.Padding
	}
	if o.Scale != nil {
		c.Scale = *o.Scale
	}
	if o.TickInterval != nil {
		c.TickInterval = *o.TickInterval
	}
	if o.MinCols != nil {
		c.MinCols = *o.MinCols
	}
	if o.MinRows != nil {
		c.MinRows = *o.MinRows
	}
	if o.UseShadow != nil {
		c.UseShadow = *o.UseShadow
	}
	if o.ShadowRowOffset != nil {
		c.ShadowRowOffset = *o.ShadowRowOffset
	}
	if o.ShadowColOffset != nil {
		c.ShadowColOffset = *o.ShadowColOffset
	}
	if o.ToggleKey != nil {
		c.ToggleKey = *o.ToggleKey
	}
	if o.AutoBindKey != nil {
		c.AutoBindKey = *o.AutoBindKey
	}
	return c
}

func (c Config) validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("scale must be >= 1, got %d", c.Scale)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must be >= 0, got %d", c.Padding)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.BlendMain < 0 || c.BlendMain > 100 {
		return fmt.Errorf("blend must be between 0 and 100, got %d", c.BlendMain)
	}
	if c.BlendShadow < 0 || c.BlendShadow > 100 {
		return fmt.Errorf("shadow blend must be between 0 and 100, got %d", c.BlendShadow)
	}
	return nil
}
