package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/holgertkey/dtree/internal/config"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		expect tcell.Color
	}{
		{"named", "yellow", tcell.ColorYellow},
		{"named uppercase", "CYAN", tcell.ColorDarkCyan},
		{"named with spaces", "  red ", tcell.ColorRed},
		{"hex", "#ff8800", tcell.NewHexColor(0xff8800)},
		{"palette index", "33", tcell.PaletteColor(33)},
		{"index out of range", "300", tcell.ColorDefault},
		{"garbage", "not-a-color", tcell.ColorDefault},
		{"empty", "", tcell.ColorDefault},
		{"short hex rejected", "#fff", tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseColor(tt.in); got != tt.expect {
				t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.expect)
			}
		})
	}
}

func TestThemeFromConfig(t *testing.T) {
	theme := ThemeFromConfig(config.Appearance{
		SelectedColor:  "yellow",
		DirectoryColor: "#00ffff",
		FileColor:      "white",
		ErrorColor:     "red",
	})

	if theme.Selected != tcell.ColorYellow {
		t.Fatalf("Selected = %v", theme.Selected)
	}
	if theme.Directory != tcell.NewHexColor(0x00ffff) {
		t.Fatalf("Directory = %v", theme.Directory)
	}
	if theme.Error != tcell.ColorRed {
		t.Fatalf("Error = %v", theme.Error)
	}
}
