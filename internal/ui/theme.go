package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/holgertkey/dtree/internal/config"
)

// Theme holds the resolved tcell colors for every UI element.
type Theme struct {
	Selected  tcell.Color
	Directory tcell.Color
	File      tcell.Color
	Border    tcell.Color
	Error     tcell.Color
	Highlight tcell.Color
	Hidden    tcell.Color
	Status    tcell.Color
}

var namedColors = map[string]tcell.Color{
	"black":   tcell.ColorBlack,
	"red":     tcell.ColorRed,
	"green":   tcell.ColorGreen,
	"yellow":  tcell.ColorYellow,
	"blue":    tcell.ColorBlue,
	"magenta": tcell.ColorDarkMagenta,
	"cyan":    tcell.ColorDarkCyan,
	"white":   tcell.ColorWhite,
	"gray":    tcell.ColorGray,
	"grey":    tcell.ColorGray,
	"orange":  tcell.ColorOrange,
}

// ParseColor resolves a configured color: a name, "#RRGGBB", or a 0-255
// palette index. Unknown values fall back to the terminal default.
func ParseColor(s string) tcell.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return tcell.ColorDefault
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		if v, err := strconv.ParseInt(s[1:], 16, 32); err == nil {
			return tcell.NewHexColor(int32(v))
		}
	}
	if idx, err := strconv.Atoi(s); err == nil && idx >= 0 && idx <= 255 {
		return tcell.PaletteColor(idx)
	}
	return tcell.ColorDefault
}

// ThemeFromConfig resolves the appearance section into concrete colors.
func ThemeFromConfig(a config.Appearance) Theme {
	return Theme{
		Selected:  ParseColor(a.SelectedColor),
		Directory: ParseColor(a.DirectoryColor),
		File:      ParseColor(a.FileColor),
		Border:    ParseColor(a.BorderColor),
		Error:     ParseColor(a.ErrorColor),
		Highlight: ParseColor(a.HighlightColor),
		Hidden:    tcell.ColorLightSlateGray,
		Status:    tcell.ColorDefault,
	}
}
