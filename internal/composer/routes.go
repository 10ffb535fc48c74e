// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package composer

import (
	"context"
	"net/url"

	"thememarket/internal/models"
)

// Route names a public page, its path and the template that renders it.
type Route struct {
	Name     string
	Path     string
	Template string
}

// Routes lists the fixed public pages in navigation order.
var Routes = []Route{
	{Name: "home", Path: "/", Template: "home.html"},
	{Name: "about", Path: "/about/", Template: "about.html"},
	{Name: "contact", Path: "/contact/", Template: "contact.html"},
	{Name: "themes", Path: "/themes/", Template: "themes.html"},
	{Name: "template", Path: "/template/", Template: "template.html"},
	{Name: "login", Path: "/login/", Template: "login.html"},
	{Name: "cart", Path: "/cart/", Template: "cart.html"},
	{Name: "checkout", Path: "/checkout/", Template: "checkout.html"},
	{Name: "payment", Path: "/payment/", Template: "payment.html"},
	{Name: "payment-success", Path: "/payment-success/", Template: "payment_success.html"},
}

// Templates for the slug-addressed detail pages.
const (
	ThemeTemplate = "theme_detail.html"
	PageTemplate  = "page.html"
)

// RouteByName returns the named fixed route.
func RouteByName(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// blockKind returns the block page served under route name.
func blockKind(name string) (models.BlockKind, bool) {
	for _, k := range models.BlockKinds {
		if k.RouteName() == name {
			return k, true
		}
	}
	return "", false
}

// Compose builds the context of a fixed route by name. Query parameters
// are only read by the themes listing. Unknown names return ErrNotFound.
func (c *Composer) Compose(ctx context.Context, name string, query url.Values) (Context, error) {
	switch name {
	case "home":
		return c.Home(ctx)
	case "about":
		return c.About(ctx)
	case "contact":
		return c.Contact(ctx)
	case "themes":
		return c.Themes(ctx, ThemeFilter{Category: query.Get("category"), Type: query.Get("type")})
	case "template":
		return c.Templates(ctx)
	}
	if kind, ok := blockKind(name); ok {
		return c.Blocks(ctx, kind)
	}
	return nil, ErrNotFound
}
