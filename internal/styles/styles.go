// Package styles holds the terminal palette used when printing results.
package styles

import (
	"github.com/fatih/color"
)

// Palette maps each printed element to its terminal style.
type Palette struct {
	ListHeading     *color.Color
	DetailedHeading *color.Color
	Topic           *color.Color
	TopicImage      *color.Color
	Abstract        *color.Color
	AbstractSource  *color.Color
	AbstractURL     *color.Color
	Image           *color.Color
	Title           *color.Color
	Link            *color.Color
	Muted           *color.Color
	Error           *color.Color
}

// Default returns the standard palette.
func Default() Palette {
	return Palette{
		ListHeading:     color.New(color.Bold, color.FgYellow, color.Italic),
		DetailedHeading: color.New(color.Bold),
		Topic:           color.New(color.FgHiGreen),
		TopicImage:      color.New(color.FgHiBlue),
		Abstract:        color.New(color.FgWhite, color.Bold),
		AbstractSource:  color.New(color.FgMagenta, color.Bold),
		AbstractURL:     color.New(color.FgWhite, color.Faint),
		Image:           color.New(color.FgHiBlue, color.Bold),
		Title:           color.New(color.Bold),
		Link:            color.New(color.FgCyan),
		Muted:           color.New(color.Faint),
		Error:           color.New(color.Bold, color.FgRed),
	}
}

// SetEnabled turns colour output on or off for the whole process. fatih/color
// already disables itself when stdout is not a terminal or NO_COLOR is set;
// this only lets --no-color force it off.
func SetEnabled(enabled bool) {
	color.NoColor = !enabled
}

// Enabled reports whether colour output is currently on.
func Enabled() bool {
	return !color.NoColor
}
