// Package trace provides a recording layout.Surface.
//
// A Surface either forwards every call to another surface (so the CLI can dump
// what a real backend was asked to draw) or stands alone with a fixed per-rune
// advance, which gives deterministic text widths in tests.
package trace

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/pagedraw/layout"
)

// Op names a recorded surface call.
type Op string

const (
	OpSetFontSize     Op = "set_font_size"
	OpMoveTo          Op = "move_to"
	OpShowText        Op = "show_text"
	OpRectangle       Op = "rectangle"
	OpStroke          Op = "stroke"
	OpPaintBackground Op = "paint_background"
)

// Call is one recorded surface call.
type Call struct {
	Op   Op        `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
}

func (c Call) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Args {
		parts = append(parts, fmt.Sprintf("%g", a))
	}
	if c.Op == OpShowText {
		parts = append(parts, fmt.Sprintf("%q", c.Text))
	}
	return fmt.Sprintf("%s(%s)", c.Op, strings.Join(parts, ", "))
}

// Surface records calls and optionally forwards them.
type Surface struct {
	inner    layout.Surface
	advance  float64
	fontSize float64
	calls    []Call
}

var _ layout.Surface = (*Surface)(nil)

// Wrap records every call before forwarding it to inner.
func Wrap(inner layout.Surface) *Surface {
	return &Surface{inner: inner}
}

// NewFixed returns a standalone surface whose text width is advance per rune.
func NewFixed(advance float64) *Surface {
	return &Surface{advance: advance}
}

// Calls returns the recorded calls in order.
func (s *Surface) Calls() []Call { return s.calls }

// Count returns how many calls of op were recorded.
func (s *Surface) Count(op Op) int {
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the strings passed to ShowText, in order.
func (s *Surface) Texts() []string {
	var out []string
	for _, c := range s.calls {
		if c.Op == OpShowText {
			out = append(out, c.Text)
		}
	}
	return out
}

// FontSize returns the last font size set on the surface.
func (s *Surface) FontSize() float64 { return s.fontSize }

// Reset drops all recorded calls.
func (s *Surface) Reset() { s.calls = nil }

func (s *Surface) record(c Call) { s.calls = append(s.calls, c) }

func (s *Surface) SetFontSize(px float64) {
	s.fontSize = px
	s.record(Call{Op: OpSetFontSize, Args: []float64{px}})
	if s.inner != nil {
		s.inner.SetFontSize(px)
	}
}

// MeasureText is not recorded; it does not change the drawing.
func (s *Surface) MeasureText(text string) float64 {
	if s.inner != nil {
		return s.inner.MeasureText(text)
	}
	return s.advance * float64(utf8.RuneCountInString(text))
}

func (s *Surface) MoveTo(x, y float64) {
	s.record(Call{Op: OpMoveTo, Args: []float64{x, y}})
	if s.inner != nil {
		s.inner.MoveTo(x, y)
	}
}

func (s *Surface) ShowText(text string) {
	s.record(Call{Op: OpShowText, Text: text})
	if s.inner != nil {
		s.inner.ShowText(text)
	}
}

func (s *Surface) Rectangle(x, y, w, h float64) {
	s.record(Call{Op: OpRectangle, Args: []float64{x, y, w, h}})
	if s.inner != nil {
		s.inner.Rectangle(x, y, w, h)
	}
}

func (s *Surface) Stroke() {
	s.record(Call{Op: OpStroke})
	if s.inner != nil {
		s.inner.Stroke()
	}
}

func (s *Surface) PaintBackground(c color.Color) {
	r, g, b, a := c.RGBA()
	s.record(Call{Op: OpPaintBackground, Args: []float64{float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8)}})
	if s.inner != nil {
		s.inner.PaintBackground(c)
	}
}
