// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage publishes export artifacts to S3-compatible object
// storage. Standalone documents go to a public-read bucket and get a
// permanent URL; component sources go to a private bucket and are handed
// out through presigned URLs. Path-style addressing is used throughout
// (required by CEPH/Hetzner).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"pagesmith/internal/export"
)

// DefaultPresignTTL is how long a private artifact link stays valid.
const DefaultPresignTTL = 24 * time.Hour

// ErrNotConfigured is returned by a nil *Client.
var ErrNotConfigured = errors.New("object storage is not configured")

// Config holds the connection settings.
type Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBucket  string
	PrivateBucket string
	PublicURL     string // optional CDN/direct URL for public files
	PresignTTL    time.Duration
}

// Client uploads artifacts to two buckets.
type Client struct {
	s3            *s3.Client
	presigner     *s3.PresignClient
	publicBucket  string
	privateBucket string
	endpoint      string
	publicURL     string
	presignTTL    time.Duration
}

// Published describes an uploaded artifact.
type Published struct {
	Format    export.Format `json:"format"`
	Bucket    string        `json:"bucket"`
	Key       string        `json:"key"`
	URL       string        `json:"url"`
	Public    bool          `json:"public"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
}

// New creates a storage client. Returns (nil, nil) if the endpoint or
// credentials are empty, allowing the app to start without storage.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}
	if cfg.PublicBucket == "" || cfg.PrivateBucket == "" {
		return nil, errors.New("storage: both bucket names are required")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = DefaultPresignTTL
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	s3Client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:            s3Client,
		presigner:     s3.NewPresignClient(s3Client),
		publicBucket:  cfg.PublicBucket,
		privateBucket: cfg.PrivateBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(cfg.PublicURL, "/"),
		presignTTL:    cfg.PresignTTL,
	}, nil
}

// ArtifactKey returns the object key of an artifact.
func ArtifactKey(draftID uuid.UUID, filename string) string {
	return "exports/" + draftID.String() + "/" + filename
}

// Publish uploads the artifact and returns where it can be fetched.
func (c *Client) Publish(ctx context.Context, draftID uuid.UUID, a export.Artifact) (Published, error) {
	if c == nil {
		return Published{}, ErrNotConfigured
	}

	key := ArtifactKey(draftID, a.Filename)
	public := a.Format == export.FormatHTML
	bucket := c.privateBucket
	if public {
		bucket = c.publicBucket
	}

	if err := c.upload(ctx, bucket, key, a.ContentType, a.Body); err != nil {
		return Published{}, err
	}

	out := Published{Format: a.Format, Bucket: bucket, Key: key, Public: public}
	if public {
		out.URL = c.FileURL(key)
		return out, nil
	}

	url, err := c.PresignedURL(ctx, bucket, key, c.presignTTL)
	if err != nil {
		return Published{}, err
	}
	exp := time.Now().Add(c.presignTTL).UTC()
	out.URL = url
	out.ExpiresAt = &exp
	return out, nil
}

// upload stores an object. Public bucket objects get a public-read ACL so
// they can be served directly.
func (c *Client) upload(ctx context.Context, bucket, key, contentType string, body []byte) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	}
	if bucket == c.publicBucket {
		input.ACL = s3types.ObjectCannedACLPublicRead
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for a file in the public bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.publicBucket + "/" + key
}

// PresignedURL generates a pre-signed GET URL for a private object.
// The URL is valid for the specified duration (max 7 days per S3 spec).
func (c *Client) PresignedURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}
