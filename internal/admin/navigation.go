// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package admin organizes the flat entity schema for the admin UI: a fixed
// navigation tree grouped by storefront page, and per-entity behaviour
// such as list columns, inline child editors and singleton guards.
package admin

import (
	"strconv"
	"strings"

	"thememarket/internal/schema"
)

// Prefix is the mount point of the admin UI.
const Prefix = "/admin"

// Entry is one navigable entity in a group.
type Entry struct {
	Name       string `json:"name"`        // display label with leading glyph
	ObjectName string `json:"object_name"` // canonical entity name
	AdminURL   string `json:"admin_url"`
	AddURL     string `json:"add_url"`
}

// Group is a named section of the admin navigation.
type Group struct {
	Name     string  `json:"name"`
	AppLabel string  `json:"app_label"`
	Models   []Entry `json:"models"`
}

type navItem struct {
	glyph  string
	label  string
	entity string
}

type navGroup struct {
	name     string
	appLabel string
	items    []navItem
}

// layout is the fixed admin navigation. Entities not listed here are still
// reachable by URL but only edited through their parent.
var layout = []navGroup{
	{"Site-Wide Settings (Common Elements)", "site_config", []navItem{
		{"📱", "Site Settings", "SiteSettings"},
		{"🔝", "Header Navigation", "NavigationMenu"},
		{"👣", "Footer Sections", "FooterSection"},
		{"🔗", "Social Links", "SocialLink"},
		{"📞", "Contact Information", "ContactInfo"},
	}},
	{"Home Page", "home_page", []navItem{
		{"🎯", "Hero Banner", "HeroBanner"},
		{"📂", "Categories Section", "CategorySection"},
		{"⭐", "Featured Section", "FeaturedSection"},
		{"🔥", "Popular Section", "PopularSection"},
		{"🆕", "New Section", "NewSection"},
		{"💡", "Why Choose Us", "WhyChooseSection"},
		{"📧", "Newsletter Section", "NewsletterSection"},
		{"💬", "Testimonials Section", "TestimonialsSection"},
	}},
	{"About Page", "about_page", []navItem{
		{"🎯", "Hero Section", "AboutHero"},
		{"🎯", "Mission Section", "AboutMission"},
		{"💫", "Values Section", "AboutValues"},
		{"👥", "Team Section", "AboutTeam"},
	}},
	{"Contact Page", "contact_page", []navItem{
		{"🎯", "Hero Section", "ContactHero"},
		{"📝", "Contact Form", "ContactForm"},
		{"🏢", "Office Information", "ContactOffice"},
	}},
	{"Themes Page", "themes_page", []navItem{
		{"🎯", "Hero Section", "ThemesHero"},
		{"🔍", "Filter Section", "ThemesFilter"},
		{"📱", "Grid Settings", "ThemesGrid"},
		{"📂", "Categories", "Category"},
		{"🎨", "Themes", "Theme"},
	}},
	{"Templates Page", "template_page", []navItem{
		{"🎯", "Hero Section", "TemplatesHero"},
		{"🌐", "HTML Templates", "HTMLTemplatesSection"},
		{"💻", "UI Templates", "UITemplatesSection"},
	}},
	{"Account Pages", "account_pages", []navItem{
		{"🔑", "Login Page", "LoginPageContent"},
	}},
	{"Shopping Pages", "shopping_pages", []navItem{
		{"🛍️", "Cart Page", "CartPageContent"},
		{"📝", "Checkout Page", "CheckoutPageContent"},
		{"💳", "Payment Page", "PaymentPageContent"},
		{"✅", "Success Page", "PaymentSuccessPageContent"},
	}},
	{"Other Pages", "other_pages", []navItem{
		{"📑", "Static Pages", "Page"},
	}},
}

// ListURL returns the admin list path of an entity.
func ListURL(entity string) string {
	return Prefix + "/" + strings.ToLower(entity) + "/"
}

// AddURL returns the admin create path of an entity.
func AddURL(entity string) string {
	return ListURL(entity) + "add/"
}

// EditURL returns the admin edit path of one row.
func EditURL(entity string, id int64) string {
	return ListURL(entity) + strconv.FormatInt(id, 10) + "/"
}

// Navigation returns the fixed admin navigation. The framework-level
// grouping in base is ignored.
func Navigation(base []Group) []Group {
	_ = base
	out := make([]Group, 0, len(layout))
	for _, g := range layout {
		grp := Group{Name: g.name, AppLabel: g.appLabel, Models: make([]Entry, 0, len(g.items))}
		for _, it := range g.items {
			grp.Models = append(grp.Models, Entry{
				Name:       it.glyph + " " + it.label,
				ObjectName: it.entity,
				AdminURL:   ListURL(it.entity),
				AddURL:     AddURL(it.entity),
			})
		}
		out = append(out, grp)
	}
	return out
}

// Label returns the navigation label of an entity, or its verbose plural
// name when it is not listed in the navigation.
func Label(e *schema.Entity) string {
	for _, g := range layout {
		for _, it := range g.items {
			if it.entity == e.Name {
				return it.glyph + " " + it.label
			}
		}
	}
	return e.Plural
}
