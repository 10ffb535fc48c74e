// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"
)

// Upload describes an image stored in S3-compatible object storage for an
// image field. The field itself stores the URL.
type Upload struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// HumanSize returns a human-readable file size string.
func (u *Upload) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case u.SizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(u.SizeBytes)/float64(mb))
	case u.SizeBytes >= kb:
		return fmt.Sprintf("%.0f KB", float64(u.SizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", u.SizeBytes)
	}
}
