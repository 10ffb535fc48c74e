// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ThemeType classifies a catalog item.
type ThemeType string

const (
	ThemeTypeWordPress ThemeType = "wordpress"
	ThemeTypeHTML      ThemeType = "html"
	ThemeTypeUI        ThemeType = "ui"
	ThemeTypePlugin    ThemeType = "plugin"
)

// Valid reports whether t is one of the known theme types.
func (t ThemeType) Valid() bool {
	switch t {
	case ThemeTypeWordPress, ThemeTypeHTML, ThemeTypeUI, ThemeTypePlugin:
		return true
	}
	return false
}

// Label returns the human-readable name shown in listings.
func (t ThemeType) Label() string {
	switch t {
	case ThemeTypeWordPress:
		return "WordPress Theme"
	case ThemeTypeHTML:
		return "HTML Template"
	case ThemeTypeUI:
		return "UI Template"
	case ThemeTypePlugin:
		return "Plugin"
	}
	return string(t)
}

// Category groups themes. Deleting a category deletes its themes.
type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	IconClass   string `db:"icon_class" json:"icon_class"`
	Color       string `db:"color" json:"color"`
	IsFeatured  bool   `db:"is_featured" json:"is_featured"`
	SortOrder   int    `db:"sort_order" json:"order"`
}

// Theme is a sellable catalog item.
type Theme struct {
	ID            int64               `db:"id" json:"id"`
	Title         string              `db:"title" json:"title"`
	Slug          string              `db:"slug" json:"slug"`
	Description   string              `db:"description" json:"description"`
	CategoryID    int64               `db:"category_id" json:"category_id"`
	ThemeType     ThemeType           `db:"theme_type" json:"theme_type"`
	Price         decimal.Decimal     `db:"price" json:"price"`
	OriginalPrice decimal.NullDecimal `db:"original_price" json:"original_price"`
	Image         *string             `db:"image" json:"image,omitempty"`
	PreviewURL    string              `db:"preview_url" json:"preview_url"`
	DownloadURL   string              `db:"download_url" json:"download_url"`
	IsFeatured    bool                `db:"is_featured" json:"is_featured"`
	IsPopular     bool                `db:"is_popular" json:"is_popular"`
	IsNew         bool                `db:"is_new" json:"is_new"`
	Rating        decimal.Decimal     `db:"rating" json:"rating"`
	Downloads     int                 `db:"downloads" json:"downloads"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`

	// Joined from categories by store queries.
	CategoryName string `db:"category_name" json:"category_name"`
	CategorySlug string `db:"category_slug" json:"category_slug"`

	// Populated only by detail lookups.
	Images []ThemeImage `db:"-" json:"images,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// DiscountPercentage returns the whole-number percentage saved against
// the original price, rounded down. It is 0 when there is no original
// price or the original price does not exceed the current price.
func (t *Theme) DiscountPercentage() int {
	if !t.OriginalPrice.Valid {
		return 0
	}
	orig := t.OriginalPrice.Decimal
	if !orig.GreaterThan(t.Price) || !orig.IsPositive() {
		return 0
	}
	pct := orig.Sub(t.Price).Mul(hundred).Div(orig).Floor()
	return int(pct.IntPart())
}

// ThemeImage is one gallery image of a theme.
type ThemeImage struct {
	ID        int64  `db:"id" json:"id"`
	ThemeID   int64  `db:"theme_id" json:"-"`
	Image     string `db:"image" json:"image"`
	AltText   string `db:"alt_text" json:"alt_text"`
	IsPrimary bool   `db:"is_primary" json:"is_primary"`
	SortOrder int    `db:"sort_order" json:"order"`
}
