package filestorage

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsPublicHost = "https://storage.googleapis.com"

type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage uses application default credentials unless credentialsFile is set.
func NewGCSStorage(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCSStorage, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket name is required")
	}

	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}

	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) Name() string {
	return BackendGCS
}

func (s *GCSStorage) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: finalize %s: %w", name, err)
	}

	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, s.bucket, name), nil
}

func (s *GCSStorage) Remove(ctx context.Context, name string) error {
	if err := s.client.Bucket(s.bucket).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("gcs: delete %s: %w", name, err)
	}

	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
