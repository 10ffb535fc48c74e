// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// BlockKind identifies a checkout-flow page built from content blocks.
type BlockKind string

const (
	BlockLogin          BlockKind = "login"
	BlockCart           BlockKind = "cart"
	BlockCheckout       BlockKind = "checkout"
	BlockPayment        BlockKind = "payment"
	BlockPaymentSuccess BlockKind = "payment_success"
)

// BlockKinds lists every block page in navigation order.
var BlockKinds = []BlockKind{BlockLogin, BlockCart, BlockCheckout, BlockPayment, BlockPaymentSuccess}

// Entity returns the name of the entity storing this page's blocks, or ""
// for an unknown kind.
func (k BlockKind) Entity() string {
	switch k {
	case BlockLogin:
		return "LoginPageContent"
	case BlockCart:
		return "CartPageContent"
	case BlockCheckout:
		return "CheckoutPageContent"
	case BlockPayment:
		return "PaymentPageContent"
	case BlockPaymentSuccess:
		return "PaymentSuccessPageContent"
	}
	return ""
}

// RouteName returns the name of the public route serving this page.
func (k BlockKind) RouteName() string {
	return strings.ReplaceAll(string(k), "_", "-")
}

// ContextKey returns the key under which the page's blocks are rendered.
func (k BlockKind) ContextKey() string {
	return string(k) + "_contents"
}

// Block is one content section of a checkout-flow page. SectionType is
// unique within a page.
type Block struct {
	ID          int64  `db:"id" json:"id"`
	SectionType string `db:"section_type" json:"section_type"`
	Title       string `db:"title" json:"title"`
	Subtitle    string `db:"subtitle" json:"subtitle"`
	Content     string `db:"content" json:"content"`
	IsActive    bool   `db:"is_active" json:"is_active"`
	SortOrder   int    `db:"sort_order" json:"order"`
}
