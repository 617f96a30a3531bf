package textutil

import "testing"

func TestSanitizeControlCharacters(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
	}{
		{"clean passthrough", "hello world", "hello world"},
		{"escape byte", "a\x1b[31mb", "a?[31mb"},
		{"embedded newline", "a\nb", "a b"},
		{"delete byte", "a\x7fb", "a?b"},
		{"tab survives", "a\tb", "a\tb"},
		{"rlo made visible", "abc‮def", "abc⟪RLO⟫def"},
		{"zwsp made visible", "a​b", "a⟪ZWSP⟫b"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Sanitize(c.in); got != c.want {
				t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeRune(t *testing.T) {
	cases := []struct {
		name string
		in   rune
		want string
	}{
		{"plain passthrough", 'a', "a"},
		{"escape byte", 0x1b, "?"},
		{"tab to space", '\t', " "},
		{"newline to space", '\n', " "},
		{"rlo label", 0x202E, "⟪RLO⟫"},
		{"wide rune passthrough", '世', "世"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SanitizeRune(c.in); got != c.want {
				t.Errorf("SanitizeRune(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tb", 4); got != "a   b" {
		t.Errorf("got %q", got)
	}
	if got := ExpandTabs("\tx", 4); got != "    x" {
		t.Errorf("got %q", got)
	}
	// Wide runes advance the column by two cells.
	if got := ExpandTabs("世\tx", 4); got != "世  x" {
		t.Errorf("got %q", got)
	}
	if got := ExpandTabs("no tabs", 4); got != "no tabs" {
		t.Errorf("got %q", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	if got := DisplayWidth("abc"); got != 3 {
		t.Errorf("got %d", got)
	}
	if got := DisplayWidth("世界"); got != 4 {
		t.Errorf("got %d", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := TruncateToWidth("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	got := TruncateToWidth("hello world", 6)
	if DisplayWidth(got) > 6 {
		t.Errorf("truncated %q wider than 6", got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Errorf("missing ellipsis in %q", got)
	}
	if TruncateToWidth("abc", 0) != "" {
		t.Error("zero width should yield empty string")
	}
}
