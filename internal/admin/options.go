// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import "thememarket/internal/schema"

// Fieldset groups form fields under a heading. An empty Name renders the
// fields without a heading.
type Fieldset struct {
	Name   string
	Fields []string
}

// Inline is a child entity edited as a table inside its parent's form.
type Inline struct {
	Entity string
	Fields []string
	Extra  int // blank rows offered for new children
}

// Options describes how the admin lists and edits one entity.
type Options struct {
	Entity       *schema.Entity
	ListDisplay  []string
	ListEditable []string
	ListFilter   []string
	SearchFields []string
	Fieldsets    []Fieldset
	Inlines      []Inline
	Prepopulated map[string]string // target field -> source field
}

// CanAdd reports whether a new row may be created given whether the
// entity already has rows. Singletons accept exactly one row.
func (o Options) CanAdd(exists bool) bool {
	return !o.Entity.Singleton || !exists
}

// CanDelete reports whether rows of the entity may be deleted.
func (o Options) CanDelete() bool {
	return !o.Entity.Singleton
}

// Editable reports whether a column may be changed from the list view.
func (o Options) Editable(field string) bool {
	for _, f := range o.ListEditable {
		if f == field {
			return true
		}
	}
	return false
}

// FormFieldsets returns the fieldsets of the edit form. Entities without
// explicit fieldsets get one unnamed fieldset of all writable fields.
func (o Options) FormFieldsets() []Fieldset {
	if len(o.Fieldsets) > 0 {
		return o.Fieldsets
	}
	var names []string
	for _, f := range o.Entity.WritableFields() {
		names = append(names, f.Name)
	}
	return []Fieldset{{Fields: names}}
}

// FormFields returns the names of every field on the edit form.
func (o Options) FormFields() []string {
	var out []string
	for _, fs := range o.FormFieldsets() {
		out = append(out, fs.Fields...)
	}
	return out
}

var (
	titleActive    = []string{"title", "is_active"}
	titledFields   = []Fieldset{{Fields: []string{"title", "subtitle", "is_active"}}}
	describedPanel = []Fieldset{
		{"Content", []string{"title", "subtitle", "description"}},
		{"Media", []string{"background_image"}},
		{"Status", []string{"is_active"}},
	}
	blockOptions = Options{
		ListDisplay:  []string{"section_type", "title", "is_active", "sort_order"},
		ListEditable: []string{"is_active", "sort_order"},
		ListFilter:   []string{"section_type", "is_active"},
	}
)

var registered = map[string]Options{
	"SiteSettings": {
		ListDisplay: []string{"site_name", "site_tagline"},
		Fieldsets: []Fieldset{
			{"Basic Information", []string{"site_name", "site_tagline", "logo_text"}},
			{"Colors", []string{"primary_color", "secondary_color", "accent_color"}},
		},
	},
	"NavigationMenu": {
		ListDisplay:  []string{"title", "url", "sort_order", "is_active"},
		ListEditable: []string{"sort_order", "is_active"},
		ListFilter:   []string{"is_active"},
	},
	"HeroSection": {
		ListDisplay: []string{"main_title", "is_active"},
		Fieldsets: []Fieldset{
			{"Content", []string{"badge_text", "main_title", "highlighted_text", "description"}},
			{"Search", []string{"search_placeholder"}},
			{"Status", []string{"is_active"}},
		},
		Inlines: []Inline{{"HeroStats", []string{"icon_class", "number", "label", "sort_order"}, 1}},
	},
	"Category": {
		ListDisplay:  []string{"name", "slug", "icon_class", "is_featured", "sort_order"},
		ListEditable: []string{"is_featured", "sort_order"},
		ListFilter:   []string{"is_featured"},
		SearchFields: []string{"name", "description"},
		Prepopulated: map[string]string{"slug": "name"},
	},
	"Theme": {
		ListDisplay:  []string{"title", "category_id", "theme_type", "price", "is_featured", "is_popular", "is_new", "rating", "downloads"},
		ListEditable: []string{"is_featured", "is_popular", "is_new", "price"},
		ListFilter:   []string{"category_id", "theme_type", "is_featured", "is_popular", "is_new"},
		SearchFields: []string{"title", "description"},
		Prepopulated: map[string]string{"slug": "title"},
		Inlines:      []Inline{{"ThemeImage", []string{"image", "alt_text", "is_primary", "sort_order"}, 1}},
		Fieldsets: []Fieldset{
			{"Basic Information", []string{"title", "slug", "description", "category_id", "theme_type"}},
			{"Pricing", []string{"price", "original_price"}},
			{"Media", []string{"image"}},
			{"URLs", []string{"preview_url", "download_url"}},
			{"Status & Features", []string{"is_featured", "is_popular", "is_new"}},
			{"Statistics", []string{"rating", "downloads"}},
		},
	},
	"Page": {
		ListDisplay:  []string{"title", "slug", "is_active", "created_at", "updated_at"},
		ListEditable: []string{"is_active"},
		ListFilter:   []string{"is_active"},
		SearchFields: []string{"title", "content"},
		Prepopulated: map[string]string{"slug": "title"},
		Fieldsets: []Fieldset{
			{"Basic Information", []string{"title", "slug", "content"}},
			{"SEO", []string{"meta_description"}},
			{"Status", []string{"is_active"}},
		},
	},
	"FooterSection": {
		ListDisplay:  []string{"title", "sort_order"},
		ListEditable: []string{"sort_order"},
		Inlines:      []Inline{{"FooterLink", []string{"title", "url", "sort_order", "is_active"}, 1}},
	},
	"SocialLink": {
		ListDisplay:  []string{"platform", "url", "is_active", "sort_order"},
		ListEditable: []string{"is_active", "sort_order"},
		ListFilter:   []string{"platform", "is_active"},
	},
	"Testimonial": {
		ListDisplay:  []string{"name", "company", "rating", "is_featured", "sort_order"},
		ListEditable: []string{"is_featured", "sort_order", "rating"},
		ListFilter:   []string{"rating", "is_featured"},
		SearchFields: []string{"name", "company", "content"},
		Fieldsets: []Fieldset{
			{"Personal Information", []string{"name", "position", "company", "avatar"}},
			{"Testimonial", []string{"content", "rating"}},
			{"Display Options", []string{"is_featured", "sort_order"}},
		},
	},
	"ContactInfo": {
		ListDisplay: []string{"email", "phone"},
		Fieldsets: []Fieldset{
			{"Contact Details", []string{"email", "phone"}},
			{"Address & Hours", []string{"address", "working_hours"}},
		},
	},

	"HeroBanner": {
		ListDisplay: []string{"main_title", "is_active"},
		Inlines:     []Inline{{"HeroImage", []string{"image", "title", "category", "is_large", "sort_order"}, 1}},
		Fieldsets: []Fieldset{
			{"Content", []string{"badge_text", "main_title", "highlighted_word", "subtitle"}},
			{"Search", []string{"search_placeholder"}},
			{"Media", []string{"background_image"}},
			{"Status", []string{"is_active"}},
		},
	},
	"CategorySection": {ListDisplay: titleActive, Fieldsets: titledFields},
	"FeaturedSection": {ListDisplay: titleActive, Fieldsets: titledFields},
	"PopularSection":  {ListDisplay: titleActive, Fieldsets: titledFields},
	"NewSection":      {ListDisplay: titleActive, Fieldsets: titledFields},
	"WhyChooseSection": {
		ListDisplay: titleActive, Fieldsets: titledFields,
		Inlines: []Inline{{"FeatureCard", []string{"icon_class", "title", "description", "background_color", "icon_color", "sort_order"}, 1}},
	},
	"NewsletterSection": {
		ListDisplay: titleActive,
		Fieldsets: []Fieldset{
			{"Content", []string{"title", "subtitle"}},
			{"Form", []string{"email_placeholder", "button_text"}},
			{"Privacy", []string{"privacy_text"}},
			{"Status", []string{"is_active"}},
		},
	},
	"TestimonialsSection": {
		ListDisplay: titleActive, Fieldsets: titledFields,
		Inlines: []Inline{{"CustomerTestimonial", []string{"name", "position", "avatar", "rating", "content", "sort_order"}, 1}},
	},

	"AboutHero": {ListDisplay: titleActive, Fieldsets: describedPanel},
	"AboutMission": {
		ListDisplay: titleActive,
		Fieldsets: []Fieldset{
			{"Content", []string{"title", "subtitle", "content"}},
			{"Media", []string{"image"}},
			{"Status", []string{"is_active"}},
		},
	},
	"AboutValues": {
		ListDisplay: titleActive, Fieldsets: titledFields,
		Inlines: []Inline{{"ValueItem", []string{"title", "description", "icon_class", "sort_order"}, 1}},
	},
	"AboutTeam": {
		ListDisplay: titleActive, Fieldsets: titledFields,
		Inlines: []Inline{{"TeamMember", []string{"name", "position", "photo", "bio", "email", "sort_order"}, 1}},
	},

	"ContactHero": {ListDisplay: titleActive, Fieldsets: describedPanel},
	"ContactForm": {
		ListDisplay: titleActive,
		Fieldsets: []Fieldset{
			{"Content", []string{"title", "subtitle"}},
			{"Form Fields", []string{"name_placeholder", "email_placeholder", "subject_placeholder", "message_placeholder", "button_text"}},
			{"Status", []string{"is_active"}},
		},
	},
	"ContactOffice": {
		ListDisplay: titleActive,
		Fieldsets:   []Fieldset{{Fields: []string{"title", "subtitle", "content", "is_active"}}},
	},

	"ThemesHero":   {ListDisplay: titleActive, Fieldsets: describedPanel},
	"ThemesFilter": {ListDisplay: titleActive, Fieldsets: titledFields},
	"ThemesGrid": {
		ListDisplay: []string{"title", "items_per_page", "is_active"},
		Fieldsets:   []Fieldset{{Fields: []string{"title", "subtitle", "items_per_page", "is_active"}}},
	},

	"TemplatesHero": {ListDisplay: titleActive, Fieldsets: describedPanel},
	"HTMLTemplatesSection": {
		ListDisplay: titleActive,
		Fieldsets:   []Fieldset{{Fields: []string{"title", "subtitle", "description", "is_active"}}},
	},
	"UITemplatesSection": {
		ListDisplay: titleActive,
		Fieldsets:   []Fieldset{{Fields: []string{"title", "subtitle", "description", "is_active"}}},
	},

	"LoginPageContent":          blockOptions,
	"CartPageContent":           blockOptions,
	"CheckoutPageContent":       blockOptions,
	"PaymentPageContent":        blockOptions,
	"PaymentSuccessPageContent": blockOptions,
}

// OptionsFor returns the admin options of an entity. Entities without
// registered options list their display column and edit every writable
// field.
func OptionsFor(e *schema.Entity) Options {
	o, ok := registered[e.Name]
	if !ok {
		o = Options{ListDisplay: []string{e.Display}}
	}
	o.Entity = e
	if len(o.ListDisplay) == 0 {
		o.ListDisplay = []string{e.Display}
	}
	return o
}
