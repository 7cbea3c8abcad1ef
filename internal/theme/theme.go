// Package theme derives the editor's UI colors from a Chroma style so the
// whole screen follows one named theme.
package theme

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Default is used when no theme is configured.
const Default = "vulcan"

// Palette holds UI chrome colors derived deterministically from a Chroma theme.
// The grayscale ramp is a linear interpolation from bg to fg; the accent is the
// most saturated token color in the palette; error comes from the Error token.
type Palette struct {
	Bg        string // Theme background
	Fg        string // Theme foreground (primary text)
	Border    string // 10% bg→fg: borders, dividers
	Dim       string // 25% bg→fg: gutter numbers
	Muted     string // 45% bg→fg: secondary text
	SelBg     string // 30% bg→accent: selection
	Accent    string // Most saturated token color
	Error     string // From chroma Error token, lerped 45% toward fg
	ErrorBand string // Error lerped 25% from bg: flagged line background
	Added     string
	Changed   string
}

// Exists reports whether Chroma knows the named style.
func Exists(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// ThemePalette derives a full UI color palette from a Chroma theme name.
// Falls back to sensible defaults when the theme is missing entries.
func ThemePalette(name string) Palette {
	if !Exists(name) {
		return defaultPalette()
	}
	sty := styles.Get(name)
	entry := sty.Get(chroma.Background)
	bg := "#000000"
	fg := "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	accent := pickAccent(sty, fg)
	errColor := pickError(sty, bg, fg)
	return Palette{
		Bg:        bg,
		Fg:        fg,
		Border:    lerpHex(bg, fg, 0.10),
		Dim:       lerpHex(bg, fg, 0.25),
		Muted:     lerpHex(bg, fg, 0.45),
		SelBg:     lerpHex(bg, accent, 0.30),
		Accent:    accent,
		Error:     errColor,
		ErrorBand: lerpHex(bg, errColor, 0.25),
		Added:     lerpHex(bg, "#3fb950", 0.70),
		Changed:   lerpHex(bg, "#d29922", 0.70),
	}
}

func defaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Border: "#141414", Dim: "#323232", Muted: "#5a5a5a",
		SelBg: "#004350", Accent: "#00dfff",
		Error: "#932e2e", ErrorBand: "#250c0c",
		Added: "#2c8240", Changed: "#936b18",
	}
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for _, tt := range sty.Types() {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGBf(hex)
		mx := max(r, g, b)
		mn := min(r, g, b)
		if mx == 0 {
			continue
		}
		if sat := (mx - mn) / mx; sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

// pickError extracts the Error token color and lerps it 45% toward fg
// so it's visible but not garish against the theme background.
func pickError(sty *chroma.Style, bg, fg string) string {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerpHex(bg, "#d03030", 0.80)
	}
	return lerpHex(e.Colour.String(), fg, 0.45)
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := hexToRGBf(a)
	br, bg, bb := hexToRGBf(b)
	return fmt.Sprintf("#%02x%02x%02x",
		clampByte(ar+(br-ar)*t),
		clampByte(ag+(bg-ag)*t),
		clampByte(ab+(bb-ab)*t),
	)
}

func hexToRGBf(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])),
		float64(hexByte(hex[3], hex[4])),
		float64(hexByte(hex[5], hex[6]))
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}
