package filestorage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"wedding_memories/internal/config"
	"wedding_memories/internal/lib/logger/sl"
)

const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
	BackendS3    = "s3"
)

// Backend is a single object store.
type Backend interface {
	Name() string
	Put(ctx context.Context, name string, data []byte, contentType string) (url string, err error)
	Remove(ctx context.Context, name string) error
}

type Recorder interface {
	RecordStorageUpload(backend string)
	RecordStorageFallback(backend string)
}

// Storage writes media to the backend chosen at startup and falls back to local disk on failure when allowed.
type Storage struct {
	log             *slog.Logger
	backend         Backend
	local           *LocalFileStorage
	fallbackToLocal bool
	rec             Recorder
}

func New(log *slog.Logger, backend Backend, local *LocalFileStorage, fallbackToLocal bool, rec Recorder) *Storage {
	if backend == nil {
		backend = local
	}

	return &Storage{
		log:             log,
		backend:         backend,
		local:           local,
		fallbackToLocal: fallbackToLocal,
		rec:             rec,
	}
}

// NewFromConfig picks GCS when a bucket is set, then S3 when credentials are set, else local disk.
// A remote backend that fails to initialise is replaced by local disk.
func NewFromConfig(ctx context.Context, log *slog.Logger, cfg *config.Config, rec Recorder) (*Storage, error) {
	const op = "filestorage.NewFromConfig"

	log = log.With(slog.String("op", op))

	local, err := NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.PublicPrefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var backend Backend = local

	switch {
	case cfg.GCS.Bucket != "":
		gs, err := NewGCSStorage(ctx, cfg.GCS.Bucket, cfg.GCS.CredentialsFile)
		if err != nil {
			log.Error("gcs unavailable, using local storage", sl.Err(err))
			break
		}
		backend = gs
	case cfg.S3.AccessKeyID != "" && cfg.S3.SecretAccessKey != "" && cfg.S3.Bucket != "":
		s3, err := NewS3Storage(S3Options{
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Endpoint:        cfg.S3.Endpoint,
			UseSSL:          cfg.S3.UseSSL,
		})
		if err != nil {
			log.Error("s3 unavailable, using local storage", sl.Err(err))
			break
		}
		backend = s3
	}

	log.Info("media storage ready",
		slog.String("backend", backend.Name()),
		slog.Bool("fallback_to_local", cfg.FileStorage.FallbackToLocal),
	)

	return New(log, backend, local, cfg.FileStorage.FallbackToLocal, rec), nil
}

// Upload stores data under filename and returns its public URL.
func (s *Storage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	const op = "filestorage.Storage.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("backend", s.backend.Name()),
		slog.String("filename", filename),
	)

	url, err := s.backend.Put(ctx, filename, data, contentType)
	if err == nil {
		s.recordUpload(s.backend.Name())
		return url, nil
	}

	if s.backend.Name() == BackendLocal || !s.fallbackToLocal {
		log.Error("failed to store media", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Warn("backend upload failed, writing to local disk", sl.Err(err))

	if s.rec != nil {
		s.rec.RecordStorageFallback(s.backend.Name())
	}

	url, err = s.local.Put(ctx, filename, data, contentType)
	if err != nil {
		log.Error("local fallback failed", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.recordUpload(BackendLocal)

	return url, nil
}

// Delete removes filename from the active backend and from local disk, where a fallback
// upload may have put it. It never fails; false means the object may remain.
func (s *Storage) Delete(ctx context.Context, filename string) bool {
	const op = "filestorage.Storage.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", filename),
	)

	err := s.backend.Remove(ctx, filename)
	if s.backend.Name() == BackendLocal || !s.local.has(filename) {
		if err != nil {
			log.Warn("failed to delete media object", slog.String("backend", s.backend.Name()), sl.Err(err))
			return false
		}
		return true
	}

	if lerr := s.local.Remove(ctx, filename); lerr != nil {
		log.Warn("failed to delete fallback copy", slog.String("backend", BackendLocal), sl.Err(lerr))
		return false
	}

	if err != nil {
		log.Debug("object only existed on local disk", slog.String("backend", s.backend.Name()), sl.Err(err))
	}

	return true
}

func (s *Storage) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

func (s *Storage) recordUpload(backend string) {
	if s.rec != nil {
		s.rec.RecordStorageUpload(backend)
	}
}
