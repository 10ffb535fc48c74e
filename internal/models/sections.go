// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SectionKind names an entity with the plain title/subtitle/is_active
// shape. Its value is the entity's canonical name.
type SectionKind string

const (
	SectionCategory     SectionKind = "CategorySection"
	SectionFeatured     SectionKind = "FeaturedSection"
	SectionPopular      SectionKind = "PopularSection"
	SectionNew          SectionKind = "NewSection"
	SectionThemesFilter SectionKind = "ThemesFilter"
)

// PanelKind names a page hero entity.
type PanelKind string

const (
	PanelAbout     PanelKind = "AboutHero"
	PanelContact   PanelKind = "ContactHero"
	PanelThemes    PanelKind = "ThemesHero"
	PanelTemplates PanelKind = "TemplatesHero"
)

// TemplatesKind names a section of the templates page.
type TemplatesKind string

const (
	TemplatesHTML TemplatesKind = "HTMLTemplatesSection"
	TemplatesUI   TemplatesKind = "UITemplatesSection"
)

// Section is a titled block of a page that can be switched off.
type Section struct {
	ID       int64  `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	Subtitle string `db:"subtitle" json:"subtitle"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

// Panel is the hero at the top of the about, contact, themes and
// templates pages.
type Panel struct {
	ID              int64   `db:"id" json:"id"`
	Title           string  `db:"title" json:"title"`
	Subtitle        string  `db:"subtitle" json:"subtitle"`
	Description     string  `db:"description" json:"description"`
	BackgroundImage *string `db:"background_image" json:"background_image,omitempty"`
	IsActive        bool    `db:"is_active" json:"is_active"`
}

// HeroBanner is the home page hero.
type HeroBanner struct {
	ID                int64       `db:"id" json:"id"`
	BadgeText         string      `db:"badge_text" json:"badge_text"`
	MainTitle         string      `db:"main_title" json:"main_title"`
	HighlightedWord   string      `db:"highlighted_word" json:"highlighted_word"`
	Subtitle          string      `db:"subtitle" json:"subtitle"`
	SearchPlaceholder string      `db:"search_placeholder" json:"search_placeholder"`
	BackgroundImage   *string     `db:"background_image" json:"background_image,omitempty"`
	IsActive          bool        `db:"is_active" json:"is_active"`
	HeroImages        []HeroImage `db:"-" json:"hero_images"`
}

// HeroImage is a template preview shown beside the home hero.
type HeroImage struct {
	ID        int64  `db:"id" json:"id"`
	HeroID    int64  `db:"hero_id" json:"-"`
	Image     string `db:"image" json:"image"`
	Title     string `db:"title" json:"title"`
	Category  string `db:"category" json:"category"`
	IsLarge   bool   `db:"is_large" json:"is_large"`
	SortOrder int    `db:"sort_order" json:"order"`
}

// WhyChooseSection lists the storefront's selling points.
type WhyChooseSection struct {
	Section
	Features []FeatureCard `db:"-" json:"features"`
}

// FeatureCard belongs to a WhyChooseSection.
type FeatureCard struct {
	ID              int64  `db:"id" json:"id"`
	SectionID       int64  `db:"section_id" json:"-"`
	IconClass       string `db:"icon_class" json:"icon_class"`
	Title           string `db:"title" json:"title"`
	Description     string `db:"description" json:"description"`
	BackgroundColor string `db:"background_color" json:"background_color"`
	IconColor       string `db:"icon_color" json:"icon_color"`
	SortOrder       int    `db:"sort_order" json:"order"`
}

// NewsletterSection is the newsletter signup block.
type NewsletterSection struct {
	ID               int64  `db:"id" json:"id"`
	Title            string `db:"title" json:"title"`
	Subtitle         string `db:"subtitle" json:"subtitle"`
	EmailPlaceholder string `db:"email_placeholder" json:"email_placeholder"`
	ButtonText       string `db:"button_text" json:"button_text"`
	PrivacyText      string `db:"privacy_text" json:"privacy_text"`
	IsActive         bool   `db:"is_active" json:"is_active"`
}

// TestimonialsSection groups customer quotes on the home page.
type TestimonialsSection struct {
	Section
	Testimonials []CustomerTestimonial `db:"-" json:"testimonials"`
}

// CustomerTestimonial belongs to a TestimonialsSection.
type CustomerTestimonial struct {
	ID        int64  `db:"id" json:"id"`
	SectionID int64  `db:"section_id" json:"-"`
	Name      string `db:"name" json:"name"`
	Position  string `db:"position" json:"position"`
	Avatar    string `db:"avatar" json:"avatar"`
	Rating    int    `db:"rating" json:"rating"`
	Content   string `db:"content" json:"content"`
	SortOrder int    `db:"sort_order" json:"order"`
}

// AboutMission is the mission statement on the about page.
type AboutMission struct {
	Section
	Content string  `db:"content" json:"content"`
	Image   *string `db:"image" json:"image,omitempty"`
}

// AboutValues lists the company values.
type AboutValues struct {
	Section
	Values []ValueItem `db:"-" json:"values"`
}

// ValueItem belongs to AboutValues.
type ValueItem struct {
	ID              int64  `db:"id" json:"id"`
	ValuesSectionID int64  `db:"values_section_id" json:"-"`
	Title           string `db:"title" json:"title"`
	Description     string `db:"description" json:"description"`
	IconClass       string `db:"icon_class" json:"icon_class"`
	SortOrder       int    `db:"sort_order" json:"order"`
}

// AboutTeam introduces the team.
type AboutTeam struct {
	Section
	Members []TeamMember `db:"-" json:"members"`
}

// TeamMember belongs to AboutTeam.
type TeamMember struct {
	ID            int64  `db:"id" json:"id"`
	TeamSectionID int64  `db:"team_section_id" json:"-"`
	Name          string `db:"name" json:"name"`
	Position      string `db:"position" json:"position"`
	Bio           string `db:"bio" json:"bio"`
	Photo         string `db:"photo" json:"photo"`
	Email         string `db:"email" json:"email"`
	LinkedInURL   string `db:"linkedin_url" json:"linkedin_url"`
	TwitterURL    string `db:"twitter_url" json:"twitter_url"`
	SortOrder     int    `db:"sort_order" json:"order"`
}

// ContactForm holds the labels of the contact form.
type ContactForm struct {
	Section
	NamePlaceholder    string `db:"name_placeholder" json:"name_placeholder"`
	EmailPlaceholder   string `db:"email_placeholder" json:"email_placeholder"`
	SubjectPlaceholder string `db:"subject_placeholder" json:"subject_placeholder"`
	MessagePlaceholder string `db:"message_placeholder" json:"message_placeholder"`
	ButtonText         string `db:"button_text" json:"button_text"`
}

// ContactOffice describes office hours on the contact page.
type ContactOffice struct {
	Section
	Content string `db:"content" json:"content"`
}

// DefaultItemsPerPage is the theme listing size used when no grid section
// is active.
const DefaultItemsPerPage = 20

// ThemesGrid configures the theme listing.
type ThemesGrid struct {
	Section
	ItemsPerPage int `db:"items_per_page" json:"items_per_page"`
}

// TemplatesSection introduces a template listing on the templates page.
type TemplatesSection struct {
	Section
	Description string `db:"description" json:"description"`
}
