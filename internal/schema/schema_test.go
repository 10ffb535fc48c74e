package schema

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// TestDefaultRegistryLookup verifies that every entity can be found by
// canonical name and by lowercase slug.
func TestDefaultRegistryLookup(t *testing.T) {
	for _, e := range Default.All() {
		if got, ok := Default.Get(e.Name); !ok || got != e {
			t.Errorf("Get(%q) did not return the entity", e.Name)
		}
		if got, ok := Default.Lookup(e.Slug()); !ok || got != e {
			t.Errorf("Lookup(%q) did not return the entity", e.Slug())
		}
		if e.Slug() != strings.ToLower(e.Name) {
			t.Errorf("Slug() = %q, want lowercase of %q", e.Slug(), e.Name)
		}
	}
	if _, ok := Default.Lookup("nonexistent"); ok {
		t.Error("Lookup(nonexistent) should fail")
	}
	if got := len(Default.All()); got != 44 {
		t.Errorf("registry has %d entities, want 44", got)
	}
}

// TestSingletons verifies the entities guarded as single-row tables.
func TestSingletons(t *testing.T) {
	var got []string
	for _, e := range Default.All() {
		if e.Singleton {
			got = append(got, e.Name)
		}
	}
	want := []string{"SiteSettings", "HeroSection", "ContactInfo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("singletons mismatch (-want +got):\n%s", diff)
	}
}

// TestChildren verifies parent ownership.
func TestChildren(t *testing.T) {
	tests := []struct {
		parent string
		want   []string
	}{
		{"HeroSection", []string{"HeroStats"}},
		{"HeroBanner", []string{"HeroImage"}},
		{"Theme", []string{"ThemeImage"}},
		{"FooterSection", []string{"FooterLink"}},
		{"WhyChooseSection", []string{"FeatureCard"}},
		{"TestimonialsSection", []string{"CustomerTestimonial"}},
		{"AboutValues", []string{"ValueItem"}},
		{"AboutTeam", []string{"TeamMember"}},
		{"Category", nil},
	}
	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			var got []string
			for _, c := range Default.Children(tt.parent) {
				got = append(got, c.Name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Children(%s) mismatch (-want +got):\n%s", tt.parent, diff)
			}
		})
	}
}

// TestDependencyOrder verifies that Category is seeded before Theme and
// that child entities are excluded.
func TestDependencyOrder(t *testing.T) {
	pos := map[string]int{}
	for i, e := range Default.DependencyOrder() {
		pos[e.Name] = i
		if e.Parent != nil {
			t.Errorf("child entity %s in dependency order", e.Name)
		}
	}
	if pos["Category"] >= pos["Theme"] {
		t.Errorf("Category at %d, Theme at %d; want Category first", pos["Category"], pos["Theme"])
	}
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		entity string
		want   string
	}{
		{"NavigationMenu", `"sort_order" ASC, id ASC`},
		{"Theme", `"created_at" DESC, id DESC`},
		{"SiteSettings", `id ASC`},
	}
	for _, tt := range tests {
		if got := Default.MustGet(tt.entity).OrderBy(); got != tt.want {
			t.Errorf("%s.OrderBy() = %q, want %q", tt.entity, got, tt.want)
		}
	}
}

// TestWritableFieldsSkipsParentAndTimestamps verifies that forms never
// submit server-assigned columns.
func TestWritableFieldsSkipsParentAndTimestamps(t *testing.T) {
	for _, name := range []string{"Theme", "ThemeImage", "Page"} {
		for _, f := range Default.MustGet(name).WritableFields() {
			switch f.Name {
			case "created_at", "updated_at", "theme_id":
				t.Errorf("%s: %s should not be writable", name, f.Name)
			}
		}
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	return verr.Fields
}

// TestParseDefaults verifies that absent fields fall back to their
// declared defaults.
func TestParseDefaults(t *testing.T) {
	v, err := Default.MustGet("SiteSettings").Parse(url.Values{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Values{
		"site_name":       "ThemeMarket",
		"site_tagline":    "Build Stunning Websites Faster",
		"logo_text":       "ThemeMarket",
		"primary_color":   "#5c2dd5",
		"secondary_color": "#7b3fe4",
		"accent_color":    "#4ade80",
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTheme(t *testing.T) {
	form := url.Values{
		"title":          {"Modern Blog"},
		"slug":           {"modern-blog"},
		"description":    {"<p>Clean.</p>"},
		"category_id":    {"3"},
		"theme_type":     {"html"},
		"price":          {"29.00"},
		"original_price": {""},
		"preview_url":    {"https://example.com/demo"},
		"is_featured":    {"false", "on"},
		"is_new":         {"false"},
		"downloads":      {"12"},
	}
	v, err := Default.MustGet("Theme").Parse(form)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v["category_id"] != int64(3) {
		t.Errorf("category_id = %#v, want int64(3)", v["category_id"])
	}
	if p, ok := v["price"].(decimal.Decimal); !ok || !p.Equal(decimal.RequireFromString("29")) {
		t.Errorf("price = %#v, want 29", v["price"])
	}
	if v["original_price"] != nil {
		t.Errorf("original_price = %#v, want nil", v["original_price"])
	}
	if v["is_featured"] != true {
		t.Error("is_featured should be true when the checkbox is posted")
	}
	if v["is_new"] != false {
		t.Error("is_new should be false when only the hidden input is posted")
	}
	if v["is_popular"] != false {
		t.Error("is_popular should default to false")
	}
	if v["download_url"] != "" {
		t.Errorf("download_url = %#v, want empty", v["download_url"])
	}
	if _, ok := v["created_at"]; ok {
		t.Error("created_at must not be parsed")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name   string
		entity string
		form   url.Values
		field  string
	}{
		{"over-length title", "NavigationMenu",
			url.Values{"title": {strings.Repeat("x", 51)}, "url": {"/"}}, "title"},
		{"multibyte within limit", "NavigationMenu",
			url.Values{"title": {strings.Repeat("é", 50)}, "url": {"/"}}, ""},
		{"relative social url", "SocialLink",
			url.Values{"platform": {"github"}, "url": {"/github"}, "icon_class": {"fab fa-github"}}, "url"},
		{"ftp social url", "SocialLink",
			url.Values{"platform": {"github"}, "url": {"ftp://example.com"}, "icon_class": {"fab fa-github"}}, "url"},
		{"unknown platform", "SocialLink",
			url.Values{"platform": {"myspace"}, "url": {"https://myspace.com"}, "icon_class": {"x"}}, "platform"},
		{"bad color", "SiteSettings", url.Values{"primary_color": {"red"}}, "primary_color"},
		{"short color", "SiteSettings", url.Values{"primary_color": {"#fff"}}, "primary_color"},
		{"bad email", "ContactInfo", url.Values{"email": {"not-an-email"}}, "email"},
		{"missing email", "ContactInfo", url.Values{}, "email"},
		{"rating too high", "Testimonial",
			url.Values{"name": {"Ana"}, "content": {"Great"}, "rating": {"6"}}, "rating"},
		{"rating too low", "Testimonial",
			url.Values{"name": {"Ana"}, "content": {"Great"}, "rating": {"0"}}, "rating"},
		{"grid of zero", "ThemesGrid", url.Values{"items_per_page": {"0"}}, "items_per_page"},
		{"not a number", "ThemesGrid", url.Values{"items_per_page": {"ten"}}, "items_per_page"},
		{"bad slug", "Category",
			url.Values{"name": {"WP"}, "slug": {"word press!"}, "icon_class": {"fab fa-wordpress"}}, "slug"},
		{"unknown section type", "PaymentPageContent",
			url.Values{"section_type": {"login_form"}, "title": {"Pay"}}, "section_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default.MustGet(tt.entity).Parse(tt.form)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fields := validationFields(t, err)
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected message for %q, got %v", tt.field, fields)
			}
		})
	}
}

func TestParseThemeNumbers(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"title": {"T"}, "slug": {"t"}, "description": {"d"},
			"category_id": {"1"}, "price": {"10.00"},
		}
	}
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"negative price", "price", "-1", "price"},
		{"three decimal places", "price", "1.999", "price"},
		{"trailing zeros allowed", "price", "1.500", ""},
		{"rating above five", "rating", "5.01", "rating"},
		{"rating at five", "rating", "5.00", ""},
		{"negative downloads", "downloads", "-3", "downloads"},
		{"missing category", "category_id", "", "category_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base()
			form.Set(tt.key, tt.value)
			_, err := Default.MustGet("Theme").Parse(form)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			fields := validationFields(t, err)
			if _, ok := fields[tt.field]; !ok {
				t.Errorf("expected message for %q, got %v", tt.field, fields)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	e := Default.MustGet("NavigationMenu")
	v, err := e.ParseFields(url.Values{"sort_order": {"4"}, "is_active": {"false"}}, []string{"sort_order", "is_active"})
	if err != nil {
		t.Fatalf("ParseFields: %v", err)
	}
	if diff := cmp.Diff(Values{"sort_order": int64(4), "is_active": false}, v); diff != "" {
		t.Errorf("ParseFields mismatch (-want +got):\n%s", diff)
	}

	if _, err := e.ParseFields(url.Values{}, []string{"nope"}); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestValidate(t *testing.T) {
	e := Default.MustGet("SocialLink")
	if err := e.Validate(Values{"platform": "github", "url": "https://github.com/x", "icon_class": "fab fa-github"}); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	fields := validationFields(t, e.Validate(Values{"platform": "github"}))
	if _, ok := fields["url"]; !ok {
		t.Errorf("expected url to be required, got %v", fields)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{}
	err.Add("b", "second")
	err.Add("a", "first")
	err.Add("a", "ignored")
	want := "validation failed: a: first; b: second"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKindString(t *testing.T) {
	if KindRichText.String() != "richtext" || KindForeignKey.String() != "fk" || Kind(99).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}
