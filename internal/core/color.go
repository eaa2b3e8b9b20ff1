package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by the block game and its HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = [...]string{
	ColorDefault:     "default",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorYellow:      "yellow",
	ColorBlue:        "blue",
	ColorMagenta:     "magenta",
	ColorCyan:        "cyan",
	ColorWhite:       "white",
	ColorBrightRed:   "bright-red",
	ColorBrightWhite: "bright-white",
	ColorOrange:      "orange",
	ColorGray:        "gray",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
