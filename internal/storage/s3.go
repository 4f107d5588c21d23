// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage resolves the object keys stored on cars, brands and car
// types into URLs a browser can load. Keys live in an S3-compatible store
// accessed through the AWS SDK v2 with path-style addressing.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options configures a Client.
type Options struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBucket  string
	PrivateBucket string
	// PublicURL is an optional CDN or custom domain in front of the
	// public bucket.
	PublicURL string
	// PresignTTL, when positive, serves images from the private bucket
	// through pre-signed GET URLs valid for this long.
	PresignTTL time.Duration
}

// Client turns stored image keys into URLs.
type Client struct {
	presigner     *s3.PresignClient
	publicBucket  string
	privateBucket string
	endpoint      string
	publicURL     string
	presignTTL    time.Duration
}

// New creates a storage client with path-style addressing. Returns
// (nil, nil) if the endpoint or credentials are empty, allowing the app to
// start without storage; a nil *Client passes keys through unchanged.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, nil
	}
	if opts.PresignTTL > 7*24*time.Hour {
		return nil, fmt.Errorf("storage: presign TTL %v exceeds 7 days", opts.PresignTTL)
	}

	endpoint := strings.TrimRight(opts.Endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       opts.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		presigner:     s3.NewPresignClient(s3Client),
		publicBucket:  opts.PublicBucket,
		privateBucket: opts.PrivateBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(opts.PublicURL, "/"),
		presignTTL:    opts.PresignTTL,
	}, nil
}

// FileURL returns the public URL for a key in the public bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.publicBucket + "/" + key
}

// PresignedURL generates a pre-signed GET URL for a private object.
func (c *Client) PresignedURL(ctx context.Context, key string) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.privateBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.presignTTL))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", c.privateBucket, key, err)
	}
	return req.URL, nil
}

// Resolve returns a loadable URL for a stored image reference. Absolute
// URLs and empty strings are returned unchanged, as is every key when c is
// nil.
func (c *Client) Resolve(ctx context.Context, key string) (string, error) {
	if c == nil || key == "" || isAbsolute(key) {
		return key, nil
	}
	key = strings.TrimLeft(key, "/")
	if c.presignTTL > 0 {
		return c.PresignedURL(ctx, key)
	}
	return c.FileURL(key), nil
}

// ResolveAll resolves every key into a new slice. keys is never modified,
// so a failure part way through leaves the caller's keys intact.
func (c *Client) ResolveAll(ctx context.Context, keys []string) ([]string, error) {
	if keys == nil {
		return nil, nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		u, err := c.Resolve(ctx, k)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
