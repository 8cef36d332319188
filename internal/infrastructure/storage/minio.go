package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bookrealm-backend/internal/config"
)

// ImageStore is what the domain services depend on. Cover images and
// category icons are opaque URLs from the services' point of view.
type ImageStore interface {
	// Store uploads data under a folder and returns the public URL.
	Store(ctx context.Context, folder, filename string, data []byte, contentType string) (string, error)

	// Delete removes the object a previously returned URL points to.
	// Deleting a URL that no longer exists is a no-op.
	Delete(ctx context.Context, objectURL string) error
}

// MinIOStorage implements ImageStore on a MinIO bucket.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// objectName derives a fresh key for every upload. Client filenames are
// not unique across uploads, so only the extension survives; reusing
// them as keys would let one book's cover overwrite another's.
func objectName(filename string) string {
	return uuid.New().String() + strings.ToLower(path.Ext(filename))
}

func (s *MinIOStorage) Store(ctx context.Context, folder, filename string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s", folder, objectName(filename))

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key), nil
}

// Delete is idempotent: MinIO's RemoveObject does not fail for missing
// keys, which matches the contract (a cover may already be gone).
func (s *MinIOStorage) Delete(ctx context.Context, objectURL string) error {
	key, err := s.objectKey(objectURL)
	if err != nil {
		// A URL we never issued; nothing to clean up.
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MinIOStorage) objectKey(objectURL string) (string, error) {
	u, err := url.Parse(objectURL)
	if err != nil {
		return "", err
	}

	prefix := "/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("url %q is not in bucket %q", objectURL, s.bucket)
	}
	return strings.TrimPrefix(u.Path, prefix), nil
}
