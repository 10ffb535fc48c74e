// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SiteSettings holds branding shared by every page. There is at most one
// row.
type SiteSettings struct {
	ID             int64  `db:"id" json:"id"`
	SiteName       string `db:"site_name" json:"site_name"`
	SiteTagline    string `db:"site_tagline" json:"site_tagline"`
	LogoText       string `db:"logo_text" json:"logo_text"`
	PrimaryColor   string `db:"primary_color" json:"primary_color"`
	SecondaryColor string `db:"secondary_color" json:"secondary_color"`
	AccentColor    string `db:"accent_color" json:"accent_color"`
}

// NavigationMenu is one entry of the header navigation.
type NavigationMenu struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	URL       string `db:"url" json:"url"`
	SortOrder int    `db:"sort_order" json:"order"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

// FooterSection is a titled column of footer links.
type FooterSection struct {
	ID        int64        `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	SortOrder int          `db:"sort_order" json:"order"`
	Links     []FooterLink `db:"-" json:"links"`
}

// FooterLink belongs to a FooterSection.
type FooterLink struct {
	ID        int64  `db:"id" json:"id"`
	SectionID int64  `db:"section_id" json:"-"`
	Title     string `db:"title" json:"title"`
	URL       string `db:"url" json:"url"`
	SortOrder int    `db:"sort_order" json:"order"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

// SocialLink points to the storefront's profile on a social platform.
type SocialLink struct {
	ID        int64  `db:"id" json:"id"`
	Platform  string `db:"platform" json:"platform"`
	URL       string `db:"url" json:"url"`
	IconClass string `db:"icon_class" json:"icon_class"`
	IsActive  bool   `db:"is_active" json:"is_active"`
	SortOrder int    `db:"sort_order" json:"order"`
}

// ContactInfo holds the storefront's contact details. There is at most one
// row.
type ContactInfo struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
	Address      string `db:"address" json:"address"`
	WorkingHours string `db:"working_hours" json:"working_hours"`
}

// Page is a free-form static page served under /pages/{slug}/.
type Page struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Slug            string    `db:"slug" json:"slug"`
	Content         string    `db:"content" json:"content"`
	MetaDescription string    `db:"meta_description" json:"meta_description"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
