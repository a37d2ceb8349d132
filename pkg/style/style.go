// Package style formats wizard output with ANSI colors. A Palette is a plain
// value; nothing here keeps process-wide state.
package style

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

const (
	headerStyle  = "magenta+bh"
	successStyle = "green+h"
	infoStyle    = "blue+h"
	warnStyle    = "yellow+h"
	errorStyle   = "red+h"
	boldStyle    = "default+b"
)

const (
	successIcon = "✅"
	infoIcon    = "ℹ️ "
	warnIcon    = "⚠️ "
	errorIcon   = "❌"
)

// Palette renders styled strings. The zero value prints plain text.
type Palette struct {
	color bool
}

// New returns a palette with colors enabled or disabled explicitly.
func New(color bool) Palette {
	return Palette{color: color}
}

// ForWriter enables colors only when w is a terminal, NO_COLOR is unset and
// disable is false.
func ForWriter(w io.Writer, disable bool) Palette {
	if disable {
		return Palette{}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return Palette{}
	}
	return Palette{color: IsTerminal(w)}
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Colored reports whether the palette emits escape sequences.
func (p Palette) Colored() bool {
	return p.color
}

func (p Palette) paint(s, style string) string {
	if !p.color {
		return s
	}
	return ansi.Color(s, style)
}

// Header formats a banner line.
func (p Palette) Header(s string) string {
	return p.paint(s, headerStyle)
}

// Bold emphasises s.
func (p Palette) Bold(s string) string {
	return p.paint(s, boldStyle)
}

func (p Palette) Success(s string) string {
	return p.paint(successIcon+" "+s, successStyle)
}

func (p Palette) Info(s string) string {
	return p.paint(infoIcon+" "+s, infoStyle)
}

func (p Palette) Warn(s string) string {
	return p.paint(warnIcon+" "+s, warnStyle)
}

func (p Palette) Error(s string) string {
	return p.paint(errorIcon+" "+s, errorStyle)
}

// Rule returns a horizontal divider of width runes.
func (p Palette) Rule(width int) string {
	if width <= 0 {
		width = 42
	}
	return p.paint(strings.Repeat("=", width), headerStyle)
}
