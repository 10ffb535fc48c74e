// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package schema

import "github.com/shopspring/decimal"

// Theme types.
var ThemeTypes = []Choice{
	{"wordpress", "WordPress Theme"},
	{"html", "HTML Template"},
	{"ui", "UI Template"},
	{"plugin", "Plugin"},
}

// Social platforms.
var SocialPlatforms = []Choice{
	{"facebook", "Facebook"},
	{"instagram", "Instagram"},
	{"twitter", "Twitter"},
	{"linkedin", "LinkedIn"},
	{"youtube", "YouTube"},
	{"github", "GitHub"},
}

const iconHelp = "FontAwesome icon class (e.g., fas fa-users)"

func str(name, label string, max int, required bool, def any) Field {
	return Field{Name: name, Label: label, Kind: KindString, MaxLen: max, Required: required, Default: def}
}

func text(name, label string, required bool, def any) Field {
	return Field{Name: name, Label: label, Kind: KindText, Required: required, Default: def}
}

func rich(name, label string, required bool, def any) Field {
	return Field{Name: name, Label: label, Kind: KindRichText, Required: required, Default: def}
}

func image(name, label string, required bool) Field {
	return Field{Name: name, Label: label, Kind: KindImage, MaxLen: 255, Required: required, Nullable: !required}
}

func color(name, label, def string) Field {
	return Field{Name: name, Label: label, Kind: KindColor, MaxLen: 7, Required: true, Default: def}
}

func icon() Field {
	return Field{Name: "icon_class", Label: "Icon class", Kind: KindString, MaxLen: 50, Required: true, Help: iconHelp}
}

func active() Field {
	return Field{Name: "is_active", Label: "Active", Kind: KindBool, Default: true}
}

func flag(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindBool, Default: false}
}

func order() Field {
	return Field{Name: "sort_order", Label: "Order", Kind: KindInt, Default: 0}
}

func rating() Field {
	return Field{Name: "rating", Label: "Rating", Kind: KindInt, Range: between(1, 5), Default: 5}
}

func parentKey(column, parent string) Field {
	return Field{Name: column, Label: parent, Kind: KindForeignKey, Required: true, Ref: parent}
}

func timestamps() []Field {
	return []Field{
		{Name: "created_at", Label: "Created", Kind: KindTimestamp, ReadOnly: true},
		{Name: "updated_at", Label: "Updated", Kind: KindTimestamp, ReadOnly: true},
	}
}

func slugField() Field {
	return Field{Name: "slug", Label: "Slug", Kind: KindSlug, MaxLen: 50, Required: true, Unique: true}
}

// titled builds the common title/subtitle/is_active section shape.
func titled(name, table, verbose, plural, title, subtitle string, extra ...Field) *Entity {
	fields := []Field{
		str("title", "Title", 200, true, title),
		str("subtitle", "Subtitle", 300, true, subtitle),
	}
	fields = append(fields, extra...)
	fields = append(fields, active())
	return &Entity{
		Name: name, Table: table, Verbose: verbose, Plural: plural,
		Fields: fields, NaturalKey: "title", Display: "title",
	}
}

// panel builds the hero shape shared by the about, contact, themes and
// templates pages.
func panel(name, table, verbose, plural, title, subtitle string) *Entity {
	return &Entity{
		Name: name, Table: table, Verbose: verbose, Plural: plural,
		Fields: []Field{
			str("title", "Title", 200, true, title),
			text("subtitle", "Subtitle", true, subtitle),
			text("description", "Description", true, nil),
			image("background_image", "Background image", false),
			active(),
		},
		NaturalKey: "title", Display: "title",
	}
}

// block builds a page-content block entity. Each table holds at most one
// row per section type.
func block(name, table, verbose string, sections []Choice) *Entity {
	return &Entity{
		Name: name, Table: table, Verbose: verbose, Plural: verbose + "s",
		Fields: []Field{
			{Name: "section_type", Label: "Section type", Kind: KindChoice, MaxLen: 20, Required: true, Unique: true, Choices: sections},
			str("title", "Title", 200, true, nil),
			str("subtitle", "Subtitle", 300, false, nil),
			text("content", "Content", false, nil),
			active(),
			order(),
		},
		Ordering:   []string{"sort_order"},
		NaturalKey: "section_type",
		Display:    "title",
	}
}

func money() *Range {
	hi := decimal.RequireFromString("99999999.99")
	return &Range{Min: bound(0), Max: &hi}
}

func ratingRange() *Range {
	hi := decimal.RequireFromString("5.00")
	return &Range{Min: bound(0), Max: &hi}
}

// Default is the storefront's entity registry.
var Default = NewRegistry(
	// Site-wide
	&Entity{
		Name: "SiteSettings", Table: "site_settings", Verbose: "Site Settings", Plural: "Site Settings",
		Fields: []Field{
			str("site_name", "Site name", 100, true, "ThemeMarket"),
			str("site_tagline", "Site tagline", 200, true, "Build Stunning Websites Faster"),
			str("logo_text", "Logo text", 50, true, "ThemeMarket"),
			color("primary_color", "Primary color", "#5c2dd5"),
			color("secondary_color", "Secondary color", "#7b3fe4"),
			color("accent_color", "Accent color", "#4ade80"),
		},
		Singleton: true, Display: "site_name",
	},
	&Entity{
		Name: "NavigationMenu", Table: "navigation_menus", Verbose: "Navigation Menu", Plural: "Navigation Menus",
		Fields: []Field{
			str("title", "Title", 50, true, nil),
			str("url", "URL", 200, true, nil),
			order(),
			active(),
		},
		Ordering: []string{"sort_order"}, NaturalKey: "title", Display: "title",
	},
	&Entity{
		Name: "HeroSection", Table: "hero_sections", Verbose: "Hero Section", Plural: "Hero Sections",
		Fields: []Field{
			str("badge_text", "Badge text", 100, true, "NEW"),
			str("main_title", "Main title", 200, true, "Build Stunning Websites Faster"),
			str("highlighted_text", "Highlighted text", 100, true, "Faster"),
			rich("description", "Description", true, "Discover premium themes and templates for your next project"),
			str("search_placeholder", "Search placeholder", 100, true, "Search for themes, templates, plugins..."),
			active(),
		},
		Singleton: true, Display: "main_title",
	},
	&Entity{
		Name: "HeroStats", Table: "hero_stats", Verbose: "Hero Stat", Plural: "Hero Stats",
		Fields: []Field{
			parentKey("hero_section_id", "HeroSection"),
			icon(),
			str("number", "Number", 20, true, nil),
			str("label", "Label", 50, true, nil),
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "HeroSection", Column: "hero_section_id"},
		Display:  "label",
	},
	&Entity{
		Name: "Category", Table: "categories", Verbose: "Category", Plural: "Categories",
		Fields: []Field{
			str("name", "Name", 100, true, nil),
			slugField(),
			rich("description", "Description", false, nil),
			{Name: "icon_class", Label: "Icon class", Kind: KindString, MaxLen: 50, Required: true, Help: "FontAwesome icon class"},
			color("color", "Color", "#5c2dd5"),
			flag("is_featured", "Featured"),
			order(),
		},
		Ordering: []string{"sort_order"}, NaturalKey: "slug", Display: "name",
	},
	&Entity{
		Name: "Theme", Table: "themes", Verbose: "Theme", Plural: "Themes",
		Fields: append([]Field{
			str("title", "Title", 200, true, nil),
			slugField(),
			rich("description", "Description", true, nil),
			{Name: "category_id", Label: "Category", Kind: KindForeignKey, Required: true, Ref: "Category"},
			{Name: "theme_type", Label: "Theme type", Kind: KindChoice, MaxLen: 20, Required: true, Choices: ThemeTypes, Default: "wordpress"},
			{Name: "price", Label: "Price", Kind: KindDecimal, Required: true, Digits: 10, Places: 2, Range: money()},
			{Name: "original_price", Label: "Original price", Kind: KindDecimal, Nullable: true, Digits: 10, Places: 2, Range: money()},
			image("image", "Image", false),
			{Name: "preview_url", Label: "Preview URL", Kind: KindURL, MaxLen: 200},
			{Name: "download_url", Label: "Download URL", Kind: KindURL, MaxLen: 200},
			flag("is_featured", "Featured"),
			flag("is_popular", "Popular"),
			flag("is_new", "New"),
			{Name: "rating", Label: "Rating", Kind: KindDecimal, Digits: 3, Places: 2, Range: ratingRange(), Default: decimal.Zero},
			{Name: "downloads", Label: "Downloads", Kind: KindInt, Range: atLeast(0), Default: 0},
		}, timestamps()...),
		Ordering: []string{"-created_at"}, NaturalKey: "slug", Display: "title",
	},
	&Entity{
		Name: "ThemeImage", Table: "theme_images", Verbose: "Theme Image", Plural: "Theme Images",
		Fields: []Field{
			parentKey("theme_id", "Theme"),
			image("image", "Image", true),
			str("alt_text", "Alt text", 200, false, nil),
			flag("is_primary", "Primary"),
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "Theme", Column: "theme_id"},
		Display:  "alt_text",
	},
	&Entity{
		Name: "Page", Table: "pages", Verbose: "Page", Plural: "Pages",
		Fields: append([]Field{
			str("title", "Title", 200, true, nil),
			slugField(),
			rich("content", "Content", true, nil),
			str("meta_description", "Meta description", 160, false, nil),
			active(),
		}, timestamps()...),
		Ordering: []string{"-updated_at"}, NaturalKey: "slug", Display: "title",
	},
	&Entity{
		Name: "FooterSection", Table: "footer_sections", Verbose: "Footer Section", Plural: "Footer Sections",
		Fields: []Field{
			str("title", "Title", 100, true, nil),
			order(),
		},
		Ordering: []string{"sort_order"}, NaturalKey: "title", Display: "title",
	},
	&Entity{
		Name: "FooterLink", Table: "footer_links", Verbose: "Footer Link", Plural: "Footer Links",
		Fields: []Field{
			parentKey("section_id", "FooterSection"),
			str("title", "Title", 100, true, nil),
			str("url", "URL", 200, true, nil),
			order(),
			active(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "FooterSection", Column: "section_id"},
		Display:  "title",
	},
	&Entity{
		Name: "SocialLink", Table: "social_links", Verbose: "Social Link", Plural: "Social Links",
		Fields: []Field{
			{Name: "platform", Label: "Platform", Kind: KindChoice, MaxLen: 20, Required: true, Choices: SocialPlatforms},
			{Name: "url", Label: "URL", Kind: KindURL, MaxLen: 200, Required: true},
			{Name: "icon_class", Label: "Icon class", Kind: KindString, MaxLen: 50, Required: true, Help: "FontAwesome icon class"},
			active(),
			order(),
		},
		Ordering: []string{"sort_order"}, NaturalKey: "platform", Display: "platform",
	},
	&Entity{
		Name: "Testimonial", Table: "testimonials", Verbose: "Testimonial", Plural: "Testimonials",
		Fields: []Field{
			str("name", "Name", 100, true, nil),
			str("position", "Position", 100, false, nil),
			str("company", "Company", 100, false, nil),
			rich("content", "Content", true, nil),
			image("avatar", "Avatar", false),
			rating(),
			flag("is_featured", "Featured"),
			order(),
		},
		Ordering: []string{"sort_order"}, NaturalKey: "name", Display: "name",
	},
	&Entity{
		Name: "ContactInfo", Table: "contact_info", Verbose: "Contact Information", Plural: "Contact Information",
		Fields: []Field{
			{Name: "email", Label: "Email", Kind: KindEmail, MaxLen: 254, Required: true},
			str("phone", "Phone", 20, false, nil),
			text("address", "Address", false, nil),
			str("working_hours", "Working hours", 100, false, nil),
		},
		Singleton: true, Display: "email",
	},

	// Home page
	&Entity{
		Name: "HeroBanner", Table: "hero_banners", Verbose: "Hero Banner", Plural: "Hero Banners",
		Fields: []Field{
			str("badge_text", "Badge text", 50, true, "NEW"),
			str("main_title", "Main title", 200, true, nil),
			{Name: "highlighted_word", Label: "Highlighted word", Kind: KindString, MaxLen: 50, Required: true, Help: "Word to highlight in title"},
			text("subtitle", "Subtitle", true, nil),
			str("search_placeholder", "Search placeholder", 100, true, nil),
			image("background_image", "Background image", false),
			active(),
		},
		NaturalKey: "main_title", Display: "main_title",
	},
	&Entity{
		Name: "HeroImage", Table: "hero_images", Verbose: "Hero Image", Plural: "Hero Images",
		Fields: []Field{
			parentKey("hero_id", "HeroBanner"),
			image("image", "Image", true),
			str("title", "Title", 100, true, nil),
			str("category", "Category", 50, true, nil),
			{Name: "is_large", Label: "Large", Kind: KindBool, Default: false, Help: "Large template image"},
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "HeroBanner", Column: "hero_id"},
		Display:  "title",
	},
	titled("CategorySection", "category_sections", "Category Section", "Category Sections",
		"Browse by Category", "Find the perfect theme for your project"),
	titled("FeaturedSection", "featured_sections", "Featured Section", "Featured Sections",
		"Featured Themes", "Hand-picked themes by our team"),
	titled("PopularSection", "popular_sections", "Popular Section", "Popular Sections",
		"Popular Themes", "Most downloaded themes"),
	titled("NewSection", "new_sections", "New Section", "New Sections",
		"New Themes", "Latest additions to our collection"),
	titled("WhyChooseSection", "why_choose_sections", "Why Choose Section", "Why Choose Sections",
		"Why Choose ThemeMarket?", "Everything you need to build amazing websites"),
	&Entity{
		Name: "FeatureCard", Table: "feature_cards", Verbose: "Feature Card", Plural: "Feature Cards",
		Fields: []Field{
			parentKey("section_id", "WhyChooseSection"),
			icon(),
			str("title", "Title", 100, true, nil),
			text("description", "Description", true, nil),
			color("background_color", "Background color", "#e3f7e3"),
			color("icon_color", "Icon color", "#2ecc71"),
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "WhyChooseSection", Column: "section_id"},
		Display:  "title",
	},
	&Entity{
		Name: "NewsletterSection", Table: "newsletter_sections", Verbose: "Newsletter Section", Plural: "Newsletter Sections",
		Fields: []Field{
			str("title", "Title", 200, true, "Stay Updated"),
			text("subtitle", "Subtitle", true, "Get the latest themes, exclusive deals, and design inspiration delivered to your inbox weekly"),
			str("email_placeholder", "Email placeholder", 100, true, "Enter your email"),
			str("button_text", "Button text", 50, true, "Subscribe"),
			text("privacy_text", "Privacy text", true, "By subscribing, you agree to our Privacy Policy and consent to receive updates"),
			active(),
		},
		NaturalKey: "title", Display: "title",
	},
	titled("TestimonialsSection", "testimonials_sections", "Testimonials Section", "Testimonials Sections",
		"What Our Customers Say", "Join thousands of satisfied customers"),
	&Entity{
		Name: "CustomerTestimonial", Table: "customer_testimonials", Verbose: "Customer Testimonial", Plural: "Customer Testimonials",
		Fields: []Field{
			parentKey("section_id", "TestimonialsSection"),
			str("name", "Name", 100, true, nil),
			str("position", "Position", 100, true, nil),
			image("avatar", "Avatar", true),
			rating(),
			text("content", "Content", true, nil),
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "TestimonialsSection", Column: "section_id"},
		Display:  "name",
	},

	// About page
	panel("AboutHero", "about_heroes", "About Hero", "About Heroes",
		"About ThemeMarket", "Your premier destination for high-quality website themes and templates"),
	titled("AboutMission", "about_missions", "About Mission", "About Missions",
		"Our Mission", "Democratizing web design",
		text("content", "Content", true, nil),
		image("image", "Image", false)),
	titled("AboutValues", "about_values", "About Values", "About Values",
		"Why Choose Us?", "What sets us apart"),
	&Entity{
		Name: "ValueItem", Table: "value_items", Verbose: "Value Item", Plural: "Value Items",
		Fields: []Field{
			parentKey("values_section_id", "AboutValues"),
			str("title", "Title", 100, true, nil),
			text("description", "Description", true, nil),
			{Name: "icon_class", Label: "Icon class", Kind: KindString, MaxLen: 50, Required: true, Help: "FontAwesome icon class"},
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "AboutValues", Column: "values_section_id"},
		Display:  "title",
	},
	titled("AboutTeam", "about_teams", "About Team", "About Teams",
		"Our Team", "Meet the people behind ThemeMarket"),
	&Entity{
		Name: "TeamMember", Table: "team_members", Verbose: "Team Member", Plural: "Team Members",
		Fields: []Field{
			parentKey("team_section_id", "AboutTeam"),
			str("name", "Name", 100, true, nil),
			str("position", "Position", 100, true, nil),
			text("bio", "Bio", false, nil),
			image("photo", "Photo", true),
			{Name: "email", Label: "Email", Kind: KindEmail, MaxLen: 254},
			{Name: "linkedin_url", Label: "LinkedIn URL", Kind: KindURL, MaxLen: 200},
			{Name: "twitter_url", Label: "Twitter URL", Kind: KindURL, MaxLen: 200},
			order(),
		},
		Ordering: []string{"sort_order"},
		Parent:   &ParentRef{Entity: "AboutTeam", Column: "team_section_id"},
		Display:  "name",
	},

	// Contact page
	panel("ContactHero", "contact_heroes", "Contact Hero", "Contact Heroes",
		"Get in Touch", "Have questions about our themes or need support? We are here to help!"),
	titled("ContactForm", "contact_forms", "Contact Form", "Contact Forms",
		"Send us a Message", "We'll get back to you within 24 hours",
		str("name_placeholder", "Name placeholder", 100, true, "Your Name"),
		str("email_placeholder", "Email placeholder", 100, true, "Your Email"),
		str("subject_placeholder", "Subject placeholder", 100, true, "Subject"),
		str("message_placeholder", "Message placeholder", 100, true, "Your Message"),
		str("button_text", "Button text", 50, true, "Send Message")),
	titled("ContactOffice", "contact_offices", "Contact Office", "Contact Offices",
		"Support Hours", "When we are available",
		text("content", "Content", true, nil)),

	// Themes page
	panel("ThemesHero", "themes_heroes", "Themes Hero", "Themes Heroes",
		"Browse Themes", "Discover thousands of professional themes and templates"),
	titled("ThemesFilter", "themes_filters", "Themes Filter", "Themes Filters",
		"Filter Themes", "Find exactly what you're looking for"),
	titled("ThemesGrid", "themes_grids", "Themes Grid", "Themes Grids",
		"All Themes", "Browse our complete collection",
		Field{Name: "items_per_page", Label: "Items per page", Kind: KindInt, Range: atLeast(1), Default: 20}),

	// Templates page
	panel("TemplatesHero", "templates_heroes", "Templates Hero", "Templates Heroes",
		"HTML & UI Templates", "Ready-to-use templates for modern websites"),
	titled("HTMLTemplatesSection", "html_templates_sections", "HTML Templates Section", "HTML Templates Sections",
		"HTML Templates", "Clean, modern HTML templates",
		text("description", "Description", false, nil)),
	titled("UITemplatesSection", "ui_templates_sections", "UI Templates Section", "UI Templates Sections",
		"UI Templates", "Beautiful UI components and templates",
		text("description", "Description", false, nil)),

	// Checkout flow placeholders
	block("LoginPageContent", "login_page_contents", "Login Page Content", []Choice{
		{"hero", "Hero Section"},
		{"login_form", "Login Form Section"},
		{"register_form", "Register Form Section"},
	}),
	block("CartPageContent", "cart_page_contents", "Cart Page Content", []Choice{
		{"hero", "Hero Section"},
		{"cart_items", "Cart Items Section"},
		{"summary", "Cart Summary Section"},
	}),
	block("CheckoutPageContent", "checkout_page_contents", "Checkout Page Content", []Choice{
		{"hero", "Hero Section"},
		{"billing_form", "Billing Form Section"},
		{"order_summary", "Order Summary Section"},
	}),
	block("PaymentPageContent", "payment_page_contents", "Payment Page Content", []Choice{
		{"hero", "Hero Section"},
		{"payment_form", "Payment Form Section"},
		{"security_info", "Security Information"},
	}),
	block("PaymentSuccessPageContent", "payment_success_page_contents", "Payment Success Page Content", []Choice{
		{"hero", "Hero Section"},
		{"success_message", "Success Message Section"},
		{"next_steps", "Next Steps Section"},
	}),
)
