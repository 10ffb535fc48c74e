// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"thememarket/internal/markdown"
)

// Money formats a price with two decimals and a dollar sign.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Seq returns 0..n-1, used to repeat markup such as rating stars.
func Seq(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Deref dereferences a string pointer, returning "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func baseFuncs(devMode bool) template.FuncMap {
	return template.FuncMap{
		"deref":    Deref,
		"richtext": markdown.RichText,
		"money":    Money,
		"seq":      Seq,
		"isDev": func() bool {
			return devMode
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

func adminFuncs(devMode bool) template.FuncMap {
	m := baseFuncs(devMode)
	// activeClass highlights the sidebar entry of the current entity.
	m["activeClass"] = func(current, target string) string {
		if current == target {
			return "bg-gray-900 text-white"
		}
		return "text-gray-300 hover:bg-gray-700 hover:text-white"
	}
	// pngData embeds a base64 PNG, such as a 2FA QR code, as an image URL.
	m["pngData"] = func(b64 string) template.URL {
		return template.URL("data:image/png;base64," + b64)
	}
	return m
}

// CSSColor passes a #rrggbb color through as trusted CSS and drops
// anything else, so stored colors can be emitted into style attributes.
func CSSColor(c string) template.CSS {
	if len(c) == 7 && strings.HasPrefix(c, "#") && strings.Trim(c[1:], "0123456789abcdefABCDEF") == "" {
		return template.CSS(c)
	}
	return ""
}

func siteFuncs(devMode bool) template.FuncMap {
	m := baseFuncs(devMode)
	m["cssColor"] = CSSColor
	return m
}
