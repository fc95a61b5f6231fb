package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"hostel-drishti/backend/config"
)

// SpacesStore uploads public-read objects to an S3-compatible bucket
type SpacesStore struct {
	client   s3iface.S3API
	bucket   string
	endpoint string
	cdnURL   string
	prefix   string
}

// NewSpacesStore builds the S3 client for the configured endpoint
func NewSpacesStore(cfg *config.SpacesConfig) (*SpacesStore, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("spaces: bucket and endpoint are required")
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("spaces session: %w", err)
	}

	return newSpacesStore(s3.New(sess), cfg), nil
}

func newSpacesStore(client s3iface.S3API, cfg *config.SpacesConfig) *SpacesStore {
	return &SpacesStore{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://"),
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
		prefix:   strings.Trim(cfg.Prefix, "/"),
	}
}

func (s *SpacesStore) Name() string { return "spaces" }

func (s *SpacesStore) Save(ctx context.Context, obj Object) (string, error) {
	key := obj.Key()
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(obj.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("spaces upload: %w", err)
	}

	return s.url(key), nil
}

func (s *SpacesStore) url(key string) string {
	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
}
