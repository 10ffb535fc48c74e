// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryQuery filters category listings. A zero Limit means no limit.
type CategoryQuery struct {
	FeaturedOnly bool
	Limit        int
}

// ThemeQuery filters theme listings. Set filters are combined with AND;
// empty strings and false flags do not filter. A zero Limit means no
// limit.
type ThemeQuery struct {
	CategorySlug string
	Type         ThemeType
	Featured     bool
	Popular      bool
	New          bool
	Limit        int
}
