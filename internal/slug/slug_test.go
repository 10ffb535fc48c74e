// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"theme name", "Aurora Portfolio", "aurora-portfolio"},
		{"version number", "Nova Shop v2.1", "nova-shop-v21"},
		{"punctuation", "Hello, World! How's it going?", "hello-world-hows-it-going"},
		{"ampersand", "Food & Drink", "food-drink"},
		{"slash joins words", "Frontend/Backend | Full Stack", "frontendbackend-full-stack"},
		{"accents folded", "Café Crème Brûlée", "cafe-creme-brulee"},
		{"romanian diacritics", "Șablon pentru Țară", "sablon-pentru-tara"},
		{"sharp s", "Straße", "strasse"},
		{"non-latin dropped", "Theme 東京 Tokyo", "theme-tokyo"},
		{"emoji dropped", "Launch 🚀 Pad", "launch-pad"},
		{"underscore kept", "snake_case theme", "snake_case-theme"},
		{"hyphen runs collapse", "multi -- dash - - theme", "multi-dash-theme"},
		{"mixed whitespace", "tab\tand\nnewline", "tab-and-newline"},
		{"edges trimmed", "  --_Landing Page_--  ", "landing-page"},
		{"digits only", "2026", "2026"},
		{"empty", "", ""},
		{"only symbols", "!@#$%^&*()", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateIdempotent(t *testing.T) {
	for _, in := range []string{"Aurora Portfolio", "Café & Bar", "snake_case theme", "a--b"} {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate(%q) = %q, regenerated %q", in, once, twice)
		}
		if once != "" && !Valid(once) {
			t.Errorf("Generate(%q) = %q is not Valid", in, once)
		}
	}
}

func TestGenerateMax(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"no limit", "Minimal Blog Theme", 0, "minimal-blog-theme"},
		{"fits", "Minimal Blog Theme", 50, "minimal-blog-theme"},
		{"exact", "Minimal Blog", 12, "minimal-blog"},
		{"cut at hyphen", "Minimal Blog Theme", 15, "minimal-blog"},
		{"cut inside first word", "Extraordinary", 5, "extra"},
		{"no trailing hyphen", "ab cd", 3, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateMax(tt.input, tt.max); got != tt.want {
				t.Errorf("GenerateMax(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"aurora-portfolio", true},
		{"Aurora_Portfolio", true},
		{"v2", true},
		{"", false},
		{"has space", false},
		{"dot.name", false},
		{"café", false},
		{"path/segment", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.input); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
