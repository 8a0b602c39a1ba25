package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const awsEndpoint = "s3.amazonaws.com"

type S3Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint is host[:port]; empty selects AWS.
	Endpoint string
	UseSSL   bool
}

type S3Storage struct {
	client *minio.Client
	opts   S3Options
}

func NewS3Storage(opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3: bucket name is required")
	}

	endpoint := opts.Endpoint
	secure := opts.UseSSL
	if endpoint == "" {
		endpoint = awsEndpoint
		secure = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}

	opts.UseSSL = secure

	return &S3Storage{client: client, opts: opts}, nil
}

func (s *S3Storage) Name() string {
	return BackendS3
}

func (s *S3Storage) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.opts.Bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("s3: put %s: %w", name, err)
	}

	return s.URL(name), nil
}

func (s *S3Storage) Remove(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.opts.Bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3: delete %s: %w", name, err)
	}

	return nil
}

// URL is the virtual-hosted AWS address, or a path-style address on custom endpoints.
func (s *S3Storage) URL(name string) string {
	if s.opts.Endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, name)
	}

	scheme := "http"
	if s.opts.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.opts.Endpoint, s.opts.Bucket, name)
}
