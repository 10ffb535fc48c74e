package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func original(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: price(s), Valid: true}
}

// TestThemeDiscountPercentage verifies that the discount is the floor of
// the percentage saved, and zero when there is nothing saved.
func TestThemeDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		original decimal.NullDecimal
		want     int
	}{
		{name: "no original price", price: "29.00", want: 0},
		{name: "original equals price", price: "29.00", original: original("29.00"), want: 0},
		{name: "original below price", price: "29.00", original: original("19.00"), want: 0},
		{name: "half off", price: "25.00", original: original("50.00"), want: 50},
		{name: "rounds down", price: "19.99", original: original("30.00"), want: 33},
		{name: "two thirds rounds down", price: "1.00", original: original("3.00"), want: 66},
		{name: "almost free", price: "0.01", original: original("100.00"), want: 99},
		{name: "free", price: "0.00", original: original("49.00"), want: 100},
		{name: "zero original", price: "0.00", original: original("0.00"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := &Theme{Price: price(tt.price), OriginalPrice: tt.original}
			if got := th.DiscountPercentage(); got != tt.want {
				t.Errorf("DiscountPercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestThemeType(t *testing.T) {
	tests := []struct {
		tt    ThemeType
		valid bool
		label string
	}{
		{ThemeTypeWordPress, true, "WordPress Theme"},
		{ThemeTypeHTML, true, "HTML Template"},
		{ThemeTypeUI, true, "UI Template"},
		{ThemeTypePlugin, true, "Plugin"},
		{ThemeType("joomla"), false, "joomla"},
		{ThemeType(""), false, ""},
	}
	for _, tc := range tests {
		if got := tc.tt.Valid(); got != tc.valid {
			t.Errorf("%q.Valid() = %v, want %v", tc.tt, got, tc.valid)
		}
		if got := tc.tt.Label(); got != tc.label {
			t.Errorf("%q.Label() = %q, want %q", tc.tt, got, tc.label)
		}
	}
}

// TestBlockKinds verifies the entity and context key of every block page.
func TestBlockKinds(t *testing.T) {
	tests := []struct {
		kind   BlockKind
		entity string
		key    string
		route  string
	}{
		{BlockLogin, "LoginPageContent", "login_contents", "login"},
		{BlockCart, "CartPageContent", "cart_contents", "cart"},
		{BlockCheckout, "CheckoutPageContent", "checkout_contents", "checkout"},
		{BlockPayment, "PaymentPageContent", "payment_contents", "payment"},
		{BlockPaymentSuccess, "PaymentSuccessPageContent", "payment_success_contents", "payment-success"},
	}
	if len(BlockKinds) != len(tests) {
		t.Fatalf("BlockKinds has %d entries, want %d", len(BlockKinds), len(tests))
	}
	for _, tc := range tests {
		if got := tc.kind.Entity(); got != tc.entity {
			t.Errorf("%s.Entity() = %q, want %q", tc.kind, got, tc.entity)
		}
		if got := tc.kind.ContextKey(); got != tc.key {
			t.Errorf("%s.ContextKey() = %q, want %q", tc.kind, got, tc.key)
		}
		if got := tc.kind.RouteName(); got != tc.route {
			t.Errorf("%s.RouteName() = %q, want %q", tc.kind, got, tc.route)
		}
	}
	if BlockKind("wishlist").Entity() != "" {
		t.Error("unknown kind should have no entity")
	}
}
