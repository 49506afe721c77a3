// Package config provides typed, TOML-loadable defaults for the concrete
// gesture recognizers in package recognizers. It replaces the reference
// recognizer's per-gesture GObject properties (set with plain field
// assignment through a builder there is no GObject property system to lean
// on here) with a small typed struct per recognizer plus a fluent builder,
// so call sites never construct one positionally.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// PanAxis constrains a pan recognizer to a single axis, or leaves it free.
type PanAxis uint8

const (
	PanAxisBoth PanAxis = iota
	PanAxisX
	PanAxisY
)

// Tap holds the tunables for recognizers/tap.
type Tap struct {
	ClicksRequired  int           `toml:"clicks_required"`
	CancelThreshold float64       `toml:"cancel_threshold_px"`
	ClickTimeout    time.Duration `toml:"click_timeout"`
}

// NewTapConfig returns the reference defaults: a single click, a threshold
// mirroring the reference recognizer's dnd-drag-threshold fallback, and a
// 100ms inter-click timeout (the reference's double-click-time fallback).
func NewTapConfig() Tap {
	return Tap{ClicksRequired: 1, CancelThreshold: 8, ClickTimeout: 100 * time.Millisecond}
}

func (t Tap) WithClicksRequired(n int) Tap  { t.ClicksRequired = n; return t }
func (t Tap) WithCancelThreshold(px float64) Tap { t.CancelThreshold = px; return t }
func (t Tap) WithClickTimeout(d time.Duration) Tap { t.ClickTimeout = d; return t }

// LongPress holds the tunables for recognizers/longpress.
type LongPress struct {
	Duration        time.Duration `toml:"duration"`
	CancelThreshold float64       `toml:"cancel_threshold_px"`
}

// NewLongPressConfig returns the reference defaults: 500ms hold, 8px cancel
// tolerance.
func NewLongPressConfig() LongPress {
	return LongPress{Duration: 500 * time.Millisecond, CancelThreshold: 8}
}

func (l LongPress) WithDuration(d time.Duration) LongPress   { l.Duration = d; return l }
func (l LongPress) WithCancelThreshold(px float64) LongPress { l.CancelThreshold = px; return l }

// Pan holds the tunables for recognizers/pan.
type Pan struct {
	BeginThreshold float64 `toml:"begin_threshold_px"`
	Axis           PanAxis `toml:"axis"`
	MinPoints      int     `toml:"min_n_points"`
	MaxPoints      int     `toml:"max_n_points"`
}

// NewPanConfig returns the reference defaults: 16px begin threshold, both
// axes free, at least one point required and no upper bound.
func NewPanConfig() Pan {
	return Pan{BeginThreshold: 16, Axis: PanAxisBoth, MinPoints: 1, MaxPoints: 0}
}

func (p Pan) WithBeginThreshold(px float64) Pan { p.BeginThreshold = px; return p }
func (p Pan) WithAxis(a PanAxis) Pan            { p.Axis = a; return p }
func (p Pan) WithNPoints(min, max int) Pan      { p.MinPoints, p.MaxPoints = min, max; return p }

// RecognizerDefaults aggregates every recognizer's defaults for loading a
// whole set from one TOML document, e.g. an application's input.toml.
type RecognizerDefaults struct {
	Tap       Tap       `toml:"tap"`
	LongPress LongPress `toml:"long_press"`
	Pan       Pan       `toml:"pan"`
}

// DefaultRecognizerDefaults returns the reference defaults for every
// recognizer, suitable as a starting point before overriding from TOML.
func DefaultRecognizerDefaults() RecognizerDefaults {
	return RecognizerDefaults{
		Tap:       NewTapConfig(),
		LongPress: NewLongPressConfig(),
		Pan:       NewPanConfig(),
	}
}

// LoadRecognizerDefaults decodes a TOML document into RecognizerDefaults,
// starting from DefaultRecognizerDefaults so an input document may specify
// only the fields it wants to override.
func LoadRecognizerDefaults(tomlText string) (RecognizerDefaults, error) {
	cfg := DefaultRecognizerDefaults()
	if _, err := toml.Decode(tomlText, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode recognizer defaults: %w", err)
	}
	return cfg, nil
}
