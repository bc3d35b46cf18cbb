// Package handbookstore serves handbook PDFs from S3-compatible object
// storage (Cloudflare R2 in production). Documents are delivered through
// presigned download URLs so the bot never proxies file bytes.
package handbookstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds object storage configuration.
type Config struct {
	Endpoint    string // e.g. https://account-id.r2.cloudflarestorage.com
	AccessKeyID string
	SecretKey   string
	BucketName  string

	// Expiry bounds presigned URL validity. Zero means DefaultExpiry.
	Expiry time.Duration
}

// DefaultExpiry keeps presigned links valid for a day.
const DefaultExpiry = 24 * time.Hour

// Store issues presigned download URLs for handbook files.
type Store struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

// New creates a store. Returns nil with no error when no endpoint is
// configured; callers treat a nil store as disabled.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	if cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.BucketName == "" {
		return nil, errors.New("handbookstore: endpoint set but credentials or bucket missing")
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultExpiry
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("handbookstore: load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // Required for R2
	})

	return &Store{
		presign: s3.NewPresignClient(s3Client),
		bucket:  cfg.BucketName,
		expiry:  cfg.Expiry,
	}, nil
}

// DownloadURL presigns a GET for the given file.
func (s *Store) DownloadURL(ctx context.Context, fileName string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileName),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("handbookstore: presign %q: %w", fileName, err)
	}
	return req.URL, nil
}
