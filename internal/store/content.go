// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"thememarket/internal/models"
	"thememarket/internal/schema"
)

// ContentStore serves the read-only queries behind public pages. Missing
// optional rows are returned as nil without an error.
type ContentStore struct {
	db  *sqlx.DB
	reg *schema.Registry
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db, reg: schema.Default}
}

// columns returns the entity's columns qualified with alias.
func columns(e *schema.Entity, alias string) string {
	cols := e.Columns()
	for i, c := range cols {
		cols[i] = alias + "." + schema.Quote(c)
	}
	return strings.Join(cols, ", ")
}

func firstQuery(e *schema.Entity) string {
	query := "SELECT " + columns(e, "t") + " FROM " + schema.Quote(e.Table) + " t"
	if _, ok := e.Field("is_active"); ok {
		query += " WHERE t.is_active"
	}
	return query + " ORDER BY " + e.OrderBy() + " LIMIT 1"
}

// first loads the first row of an entity in its default order into dest,
// restricted to active rows when the entity has an is_active column. It
// reports whether a row was found.
func (s *ContentStore) first(ctx context.Context, dest any, entity string) (bool, error) {
	e := s.reg.MustGet(entity)
	err := s.db.GetContext(ctx, dest, firstQuery(e))
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("first %s: %w", e.Table, err)
	}
	return true, nil
}

// list loads the active rows of an entity in its default order.
func (s *ContentStore) list(ctx context.Context, dest any, entity string) error {
	e := s.reg.MustGet(entity)
	query := "SELECT " + columns(e, "t") + " FROM " + schema.Quote(e.Table) + " t"
	if _, ok := e.Field("is_active"); ok {
		query += " WHERE t.is_active"
	}
	query += " ORDER BY " + e.OrderBy()
	if err := s.db.SelectContext(ctx, dest, query); err != nil {
		return fmt.Errorf("list %s: %w", e.Table, err)
	}
	return nil
}

// children loads the rows of a child entity owned by parentID, ordered by
// sort_order with ties kept in insertion order.
func (s *ContentStore) children(ctx context.Context, dest any, entity string, parentID int64) error {
	e := s.reg.MustGet(entity)
	query := "SELECT " + columns(e, "t") + " FROM " + schema.Quote(e.Table) + " t WHERE t." +
		schema.Quote(e.Parent.Column) + " = $1 ORDER BY " + e.OrderBy()
	if err := s.db.SelectContext(ctx, dest, query, parentID); err != nil {
		return fmt.Errorf("list %s: %w", e.Table, err)
	}
	return nil
}

// SiteSettings returns the site settings row, or nil if none exists.
func (s *ContentStore) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	var v models.SiteSettings
	if ok, err := s.first(ctx, &v, "SiteSettings"); !ok {
		return nil, err
	}
	return &v, nil
}

// ContactInfo returns the contact details row, or nil if none exists.
func (s *ContentStore) ContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	var v models.ContactInfo
	if ok, err := s.first(ctx, &v, "ContactInfo"); !ok {
		return nil, err
	}
	return &v, nil
}

// NavigationMenus returns the active header entries in display order.
func (s *ContentStore) NavigationMenus(ctx context.Context) ([]models.NavigationMenu, error) {
	var v []models.NavigationMenu
	if err := s.list(ctx, &v, "NavigationMenu"); err != nil {
		return nil, err
	}
	return v, nil
}

// SocialLinks returns the active social links in display order.
func (s *ContentStore) SocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	var v []models.SocialLink
	if err := s.list(ctx, &v, "SocialLink"); err != nil {
		return nil, err
	}
	return v, nil
}

// FooterSections returns every footer section with its active links.
func (s *ContentStore) FooterSections(ctx context.Context) ([]models.FooterSection, error) {
	var sections []models.FooterSection
	if err := s.list(ctx, &sections, "FooterSection"); err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return sections, nil
	}

	var links []models.FooterLink
	if err := s.list(ctx, &links, "FooterLink"); err != nil {
		return nil, err
	}
	bySection := make(map[int64][]models.FooterLink, len(sections))
	for _, l := range links {
		bySection[l.SectionID] = append(bySection[l.SectionID], l)
	}
	for i := range sections {
		sections[i].Links = bySection[sections[i].ID]
	}
	return sections, nil
}

// HeroBanner returns the first active home hero with its images.
func (s *ContentStore) HeroBanner(ctx context.Context) (*models.HeroBanner, error) {
	var v models.HeroBanner
	if ok, err := s.first(ctx, &v, "HeroBanner"); !ok {
		return nil, err
	}
	if err := s.children(ctx, &v.HeroImages, "HeroImage", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// Section returns the first active row of a title/subtitle section.
func (s *ContentStore) Section(ctx context.Context, kind models.SectionKind) (*models.Section, error) {
	if _, ok := s.reg.Get(string(kind)); !ok {
		return nil, fmt.Errorf("unknown section kind %q", kind)
	}
	var v models.Section
	if ok, err := s.first(ctx, &v, string(kind)); !ok {
		return nil, err
	}
	return &v, nil
}

// WhyChooseSection returns the first active selling-points section with
// its feature cards.
func (s *ContentStore) WhyChooseSection(ctx context.Context) (*models.WhyChooseSection, error) {
	var v models.WhyChooseSection
	if ok, err := s.first(ctx, &v, "WhyChooseSection"); !ok {
		return nil, err
	}
	if err := s.children(ctx, &v.Features, "FeatureCard", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// NewsletterSection returns the first active newsletter block.
func (s *ContentStore) NewsletterSection(ctx context.Context) (*models.NewsletterSection, error) {
	var v models.NewsletterSection
	if ok, err := s.first(ctx, &v, "NewsletterSection"); !ok {
		return nil, err
	}
	return &v, nil
}

// TestimonialsSection returns the first active testimonials section with
// its quotes.
func (s *ContentStore) TestimonialsSection(ctx context.Context) (*models.TestimonialsSection, error) {
	var v models.TestimonialsSection
	if ok, err := s.first(ctx, &v, "TestimonialsSection"); !ok {
		return nil, err
	}
	if err := s.children(ctx, &v.Testimonials, "CustomerTestimonial", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// Panel returns the first active hero of an inner page.
func (s *ContentStore) Panel(ctx context.Context, kind models.PanelKind) (*models.Panel, error) {
	if _, ok := s.reg.Get(string(kind)); !ok {
		return nil, fmt.Errorf("unknown panel kind %q", kind)
	}
	var v models.Panel
	if ok, err := s.first(ctx, &v, string(kind)); !ok {
		return nil, err
	}
	return &v, nil
}

// AboutMission returns the first active mission statement.
func (s *ContentStore) AboutMission(ctx context.Context) (*models.AboutMission, error) {
	var v models.AboutMission
	if ok, err := s.first(ctx, &v, "AboutMission"); !ok {
		return nil, err
	}
	return &v, nil
}

// AboutValues returns the first active values section with its items.
func (s *ContentStore) AboutValues(ctx context.Context) (*models.AboutValues, error) {
	var v models.AboutValues
	if ok, err := s.first(ctx, &v, "AboutValues"); !ok {
		return nil, err
	}
	if err := s.children(ctx, &v.Values, "ValueItem", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// AboutTeam returns the first active team section with its members.
func (s *ContentStore) AboutTeam(ctx context.Context) (*models.AboutTeam, error) {
	var v models.AboutTeam
	if ok, err := s.first(ctx, &v, "AboutTeam"); !ok {
		return nil, err
	}
	if err := s.children(ctx, &v.Members, "TeamMember", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// ContactForm returns the first active contact form configuration.
func (s *ContentStore) ContactForm(ctx context.Context) (*models.ContactForm, error) {
	var v models.ContactForm
	if ok, err := s.first(ctx, &v, "ContactForm"); !ok {
		return nil, err
	}
	return &v, nil
}

// ContactOffice returns the first active office hours block.
func (s *ContentStore) ContactOffice(ctx context.Context) (*models.ContactOffice, error) {
	var v models.ContactOffice
	if ok, err := s.first(ctx, &v, "ContactOffice"); !ok {
		return nil, err
	}
	return &v, nil
}

// ThemesGrid returns the first active listing configuration.
func (s *ContentStore) ThemesGrid(ctx context.Context) (*models.ThemesGrid, error) {
	var v models.ThemesGrid
	if ok, err := s.first(ctx, &v, "ThemesGrid"); !ok {
		return nil, err
	}
	return &v, nil
}

// TemplatesSection returns the first active section of the given kind.
func (s *ContentStore) TemplatesSection(ctx context.Context, kind models.TemplatesKind) (*models.TemplatesSection, error) {
	if _, ok := s.reg.Get(string(kind)); !ok {
		return nil, fmt.Errorf("unknown templates section kind %q", kind)
	}
	var v models.TemplatesSection
	if ok, err := s.first(ctx, &v, string(kind)); !ok {
		return nil, err
	}
	return &v, nil
}

// Categories returns categories in display order.
func (s *ContentStore) Categories(ctx context.Context, q models.CategoryQuery) ([]models.Category, error) {
	e := s.reg.MustGet("Category")
	query := "SELECT " + columns(e, "t") + " FROM categories t"
	if q.FeaturedOnly {
		query += " WHERE t.is_featured"
	}
	query += " ORDER BY " + e.OrderBy()
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	var v []models.Category
	if err := s.db.SelectContext(ctx, &v, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return v, nil
}

// themeSelect is the theme projection shared by listings and detail
// lookups. Theme columns keep the alias t so the entity ordering applies.
func (s *ContentStore) themeSelect() string {
	return "SELECT " + columns(s.reg.MustGet("Theme"), "t") +
		", c.name AS category_name, c.slug AS category_slug" +
		" FROM themes t JOIN categories c ON c.id = t.category_id"
}

// Themes returns themes newest first, filtered by q. Filters are combined
// with AND; an unknown category slug yields an empty list.
func (s *ContentStore) Themes(ctx context.Context, q models.ThemeQuery) ([]models.Theme, error) {
	var (
		where []string
		args  []any
	)
	if q.CategorySlug != "" {
		args = append(args, q.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if q.Type != "" {
		args = append(args, string(q.Type))
		where = append(where, fmt.Sprintf("t.theme_type = $%d", len(args)))
	}
	if q.Featured {
		where = append(where, "t.is_featured")
	}
	if q.Popular {
		where = append(where, "t.is_popular")
	}
	if q.New {
		where = append(where, "t.is_new")
	}

	query := s.themeSelect()
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	var v []models.Theme
	if err := s.db.SelectContext(ctx, &v, query, args...); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return v, nil
}

// ThemeBySlug returns a theme with its gallery. Returns nil if not found.
func (s *ContentStore) ThemeBySlug(ctx context.Context, slug string) (*models.Theme, error) {
	var v models.Theme
	err := s.db.GetContext(ctx, &v, s.themeSelect()+" WHERE t.slug = $1", slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme by slug: %w", err)
	}
	if err := s.children(ctx, &v.Images, "ThemeImage", v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

// PageBySlug returns an active static page. Returns nil if not found.
func (s *ContentStore) PageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var v models.Page
	err := s.db.GetContext(ctx, &v,
		"SELECT "+columns(s.reg.MustGet("Page"), "t")+" FROM pages t WHERE t.slug = $1 AND t.is_active", slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return &v, nil
}

// Blocks returns the active content blocks of a checkout-flow page in
// display order.
func (s *ContentStore) Blocks(ctx context.Context, kind models.BlockKind) ([]models.Block, error) {
	entity := kind.Entity()
	if entity == "" {
		return nil, fmt.Errorf("unknown block kind %q", kind)
	}
	var v []models.Block
	if err := s.list(ctx, &v, entity); err != nil {
		return nil, err
	}
	return v, nil
}
