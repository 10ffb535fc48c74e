// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage client for the
// images behind image fields. It wraps the AWS SDK v2 and is configured for
// path-style access (required by CEPH/Hetzner).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"thememarket/internal/models"
)

// MaxImageSize is the largest image accepted for upload (10 MB).
const MaxImageSize = 10 << 20

// ErrUnsupportedType is returned for uploads that are not a known image type.
var ErrUnsupportedType = errors.New("unsupported image type")

// imageTypes maps accepted MIME types to the extension used for their key.
var imageTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// Client wraps an S3 client for image uploads to a single public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for public files
}

// New creates an S3 storage client configured for CEPH/Hetzner with
// path-style addressing. Returns (nil, nil) if endpoint or credentials
// are empty, allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required when storage is configured")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// DetectImageType sniffs the leading bytes of an upload and returns its
// MIME type. SVG files sniff as XML or text, so the filename decides those.
func DetectImageType(head []byte, filename string) (string, error) {
	contentType := http.DetectContentType(head)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}
	if _, ok := imageTypes[contentType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return contentType, nil
}

// ImageKey builds the object key for an upload: uploads/<dir>/<uuid><ext>.
// The extension comes from the filename, falling back to the content type.
func ImageKey(dir, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = imageTypes[contentType]
	}
	return path.Join("uploads", dir, uuid.New().String()+ext)
}

// UploadImage validates and stores one image under uploads/<dir>/ with a
// public-read ACL and returns its metadata. The body is read fully so its
// type can be sniffed before anything is written.
func (c *Client) UploadImage(ctx context.Context, dir, filename string, body io.Reader) (*models.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", filename, err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("upload %s exceeds %d bytes", filename, MaxImageSize)
	}
	contentType, err := DetectImageType(data, filename)
	if err != nil {
		return nil, err
	}

	key := ImageKey(dir, filename, contentType)
	if err := c.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}
	return &models.Upload{
		Key:         key,
		URL:         c.FileURL(key),
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		UploadedAt:  time.Now(),
	}, nil
}

// Upload stores an object in the bucket with a public-read ACL so it can be
// served directly.
func (c *Client) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Delete removes an object from the bucket.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for a key.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ExtractKey extracts the object key from a public file URL.
// Returns ("", false) for URLs that do not belong to this storage, such as
// seeded images or external links.
func (c *Client) ExtractKey(rawURL string) (string, bool) {
	if c.publicURL != "" {
		prefix := c.publicURL + "/"
		if strings.HasPrefix(rawURL, prefix) {
			return rawURL[len(prefix):], true
		}
	}

	prefix := c.endpoint + "/" + c.bucket + "/"
	if strings.HasPrefix(rawURL, prefix) {
		return rawURL[len(prefix):], true
	}

	return "", false
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
