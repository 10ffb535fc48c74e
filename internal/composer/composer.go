// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package composer assembles the context handed to the renderer for each
// public route. A section with no active row is stored as a nil value;
// only storage failures are returned as errors.
package composer

import (
	"context"
	"errors"
	"fmt"

	"thememarket/internal/models"
)

// Limits applied to bounded listings.
const (
	MaxFeaturedCategories = 8
	MaxHighlightThemes    = 9
	MaxTemplatesPerType   = 12
)

// ErrNotFound is returned by detail lookups for unknown or inactive slugs.
var ErrNotFound = errors.New("not found")

// Context maps template keys to entities, lists, or nil.
type Context map[string]any

// Source is the read side of the content store.
type Source interface {
	SiteSettings(ctx context.Context) (*models.SiteSettings, error)
	NavigationMenus(ctx context.Context) ([]models.NavigationMenu, error)
	FooterSections(ctx context.Context) ([]models.FooterSection, error)
	SocialLinks(ctx context.Context) ([]models.SocialLink, error)
	ContactInfo(ctx context.Context) (*models.ContactInfo, error)

	HeroBanner(ctx context.Context) (*models.HeroBanner, error)
	Section(ctx context.Context, kind models.SectionKind) (*models.Section, error)
	WhyChooseSection(ctx context.Context) (*models.WhyChooseSection, error)
	NewsletterSection(ctx context.Context) (*models.NewsletterSection, error)
	TestimonialsSection(ctx context.Context) (*models.TestimonialsSection, error)

	Panel(ctx context.Context, kind models.PanelKind) (*models.Panel, error)
	AboutMission(ctx context.Context) (*models.AboutMission, error)
	AboutValues(ctx context.Context) (*models.AboutValues, error)
	AboutTeam(ctx context.Context) (*models.AboutTeam, error)
	ContactForm(ctx context.Context) (*models.ContactForm, error)
	ContactOffice(ctx context.Context) (*models.ContactOffice, error)
	ThemesGrid(ctx context.Context) (*models.ThemesGrid, error)
	TemplatesSection(ctx context.Context, kind models.TemplatesKind) (*models.TemplatesSection, error)

	Categories(ctx context.Context, q models.CategoryQuery) ([]models.Category, error)
	Themes(ctx context.Context, q models.ThemeQuery) ([]models.Theme, error)
	ThemeBySlug(ctx context.Context, slug string) (*models.Theme, error)
	PageBySlug(ctx context.Context, slug string) (*models.Page, error)
	Blocks(ctx context.Context, kind models.BlockKind) ([]models.Block, error)
}

// Composer builds page contexts from a Source.
type Composer struct {
	src Source
}

// New creates a Composer reading from src.
func New(src Source) *Composer {
	return &Composer{src: src}
}

// step loads one context key.
type step struct {
	key  string
	load func(ctx context.Context) (any, error)
}

func get[T any](key string, fn func(ctx context.Context) (T, error)) step {
	return step{key: key, load: func(ctx context.Context) (any, error) { return fn(ctx) }}
}

// compose runs the common steps followed by the page steps.
func (c *Composer) compose(ctx context.Context, steps ...step) (Context, error) {
	out := make(Context, len(steps)+4)
	all := append(c.common(), steps...)
	for _, s := range all {
		v, err := s.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("compose %s: %w", s.key, err)
		}
		out[s.key] = v
	}
	return out, nil
}

func (c *Composer) common() []step {
	return []step{
		get("site_settings", c.src.SiteSettings),
		get("navigation_menus", c.src.NavigationMenus),
		get("footer_sections", c.src.FooterSections),
		get("social_links", c.src.SocialLinks),
	}
}

func (c *Composer) section(key string, kind models.SectionKind) step {
	return get(key, func(ctx context.Context) (*models.Section, error) { return c.src.Section(ctx, kind) })
}

func (c *Composer) panel(key string, kind models.PanelKind) step {
	return get(key, func(ctx context.Context) (*models.Panel, error) { return c.src.Panel(ctx, kind) })
}

func (c *Composer) themes(key string, q models.ThemeQuery) step {
	return get(key, func(ctx context.Context) ([]models.Theme, error) { return c.src.Themes(ctx, q) })
}

// Common builds the context shared by every page, used on its own by
// error pages.
func (c *Composer) Common(ctx context.Context) (Context, error) {
	return c.compose(ctx)
}

// Home builds the landing page.
func (c *Composer) Home(ctx context.Context) (Context, error) {
	return c.compose(ctx,
		get("hero_banner", c.src.HeroBanner),
		c.section("category_section", models.SectionCategory),
		c.section("featured_section", models.SectionFeatured),
		c.section("popular_section", models.SectionPopular),
		c.section("new_section", models.SectionNew),
		get("why_choose_section", c.src.WhyChooseSection),
		get("newsletter_section", c.src.NewsletterSection),
		get("testimonials_section", c.src.TestimonialsSection),
		get("categories", func(ctx context.Context) ([]models.Category, error) {
			return c.src.Categories(ctx, models.CategoryQuery{FeaturedOnly: true, Limit: MaxFeaturedCategories})
		}),
		c.themes("featured_themes", models.ThemeQuery{Featured: true, Limit: MaxHighlightThemes}),
		c.themes("popular_themes", models.ThemeQuery{Popular: true, Limit: MaxHighlightThemes}),
		c.themes("new_themes", models.ThemeQuery{New: true, Limit: MaxHighlightThemes}),
	)
}

// About builds the about page.
func (c *Composer) About(ctx context.Context) (Context, error) {
	return c.compose(ctx,
		c.panel("about_hero", models.PanelAbout),
		get("about_mission", c.src.AboutMission),
		get("about_values", c.src.AboutValues),
		get("about_team", c.src.AboutTeam),
	)
}

// Contact builds the contact page.
func (c *Composer) Contact(ctx context.Context) (Context, error) {
	return c.compose(ctx,
		c.panel("contact_hero", models.PanelContact),
		get("contact_form", c.src.ContactForm),
		get("contact_office", c.src.ContactOffice),
		get("contact_info", c.src.ContactInfo),
	)
}

// ThemeFilter holds the catalog listing query parameters. Empty values do
// not filter.
type ThemeFilter struct {
	Category string
	Type     string
}

// Themes builds the catalog listing. The listing size comes from the
// active grid section, falling back to models.DefaultItemsPerPage.
func (c *Composer) Themes(ctx context.Context, f ThemeFilter) (Context, error) {
	grid, err := c.src.ThemesGrid(ctx)
	if err != nil {
		return nil, fmt.Errorf("compose themes_grid: %w", err)
	}
	limit := models.DefaultItemsPerPage
	if grid != nil && grid.ItemsPerPage > 0 {
		limit = grid.ItemsPerPage
	}

	q := models.ThemeQuery{CategorySlug: f.Category, Type: models.ThemeType(f.Type), Limit: limit}
	themes := c.themes("themes", q)
	if q.Type != "" && !q.Type.Valid() {
		// An unknown type matches nothing, like an unknown category.
		themes = get("themes", func(context.Context) ([]models.Theme, error) { return []models.Theme{}, nil })
	}

	out, err := c.compose(ctx,
		c.panel("themes_hero", models.PanelThemes),
		c.section("themes_filter", models.SectionThemesFilter),
		themes,
		get("categories", func(ctx context.Context) ([]models.Category, error) {
			return c.src.Categories(ctx, models.CategoryQuery{})
		}),
	)
	if err != nil {
		return nil, err
	}
	out["themes_grid"] = grid
	out["selected_category"] = f.Category
	out["selected_type"] = f.Type
	return out, nil
}

// Templates builds the HTML and UI template listing.
func (c *Composer) Templates(ctx context.Context) (Context, error) {
	return c.compose(ctx,
		c.panel("templates_hero", models.PanelTemplates),
		get("html_templates_section", func(ctx context.Context) (*models.TemplatesSection, error) {
			return c.src.TemplatesSection(ctx, models.TemplatesHTML)
		}),
		get("ui_templates_section", func(ctx context.Context) (*models.TemplatesSection, error) {
			return c.src.TemplatesSection(ctx, models.TemplatesUI)
		}),
		c.themes("html_templates", models.ThemeQuery{Type: models.ThemeTypeHTML, Limit: MaxTemplatesPerType}),
		c.themes("ui_templates", models.ThemeQuery{Type: models.ThemeTypeUI, Limit: MaxTemplatesPerType}),
	)
}

// Blocks builds one of the checkout-flow placeholder pages. The blocks are
// stored under "<kind>_contents".
func (c *Composer) Blocks(ctx context.Context, kind models.BlockKind) (Context, error) {
	if kind.Entity() == "" {
		return nil, ErrNotFound
	}
	return c.compose(ctx,
		get(kind.ContextKey(), func(ctx context.Context) ([]models.Block, error) {
			return c.src.Blocks(ctx, kind)
		}),
	)
}

// Theme builds a theme detail page.
func (c *Composer) Theme(ctx context.Context, slug string) (Context, error) {
	theme, err := c.src.ThemeBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("compose theme: %w", err)
	}
	if theme == nil {
		return nil, ErrNotFound
	}
	out, err := c.compose(ctx,
		c.themes("related_themes", models.ThemeQuery{CategorySlug: theme.CategorySlug, Limit: MaxHighlightThemes + 1}),
	)
	if err != nil {
		return nil, err
	}

	related := out["related_themes"].([]models.Theme)
	kept := make([]models.Theme, 0, len(related))
	for _, t := range related {
		if t.ID != theme.ID && len(kept) < MaxHighlightThemes {
			kept = append(kept, t)
		}
	}
	out["related_themes"] = kept
	out["theme"] = theme
	return out, nil
}

// StaticPage builds an admin-authored page.
func (c *Composer) StaticPage(ctx context.Context, slug string) (Context, error) {
	page, err := c.src.PageBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("compose page: %w", err)
	}
	if page == nil {
		return nil, ErrNotFound
	}
	out, err := c.compose(ctx)
	if err != nil {
		return nil, err
	}
	out["page"] = page
	return out, nil
}
