// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds and checks the URL slugs of themes, categories and
// pages.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// valid accepts ASCII letters, digits, underscores and hyphens.
var valid = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ligatures covers letters NFKD does not decompose into an ASCII base.
var ligatures = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "œ", "oe", "ø", "o", "ł", "l", "đ", "d", "þ", "th",
)

// fold strips accents: decompose, drop combining marks, recompose.
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, ligatures.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// Generate lowercases s, folds accents, keeps letters, digits, underscores
// and hyphens, and joins words with single hyphens.
// Example: "Café Theme & v2.0 Pro" → "cafe-theme-v20-pro"
func Generate(s string) string {
	s = fold(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			gap = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			gap = true
		}
	}
	return strings.Trim(b.String(), "-_")
}

// GenerateMax is Generate limited to max bytes, cut back to the last
// hyphen when the limit falls inside a word. A max of 0 means no limit.
func GenerateMax(s string, max int) string {
	result := Generate(s)
	if max <= 0 || len(result) <= max {
		return result
	}
	result = result[:max]
	if i := strings.LastIndexByte(result, '-'); i > 0 {
		result = result[:i]
	}
	return strings.Trim(result, "-_")
}

// Valid reports whether s is a non-empty slug of ASCII letters, digits,
// underscores and hyphens.
func Valid(s string) bool {
	return valid.MatchString(s)
}
