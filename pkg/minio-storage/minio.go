// Package miniostorage keeps note files in a MinIO bucket.
package miniostorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"note-share-be/pkg/blobstore"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

type Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

var _ blobstore.Store = (*Store)(nil)

func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	// Accept either "minio:9000" or "http://minio:9000" / "https://minio:9000".
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, false, nil
}

// New connects to MinIO and checks that the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}

	endpoint, secure, err := normaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket does not exist: %s", cfg.Bucket)
	}

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBase(cfg.PublicBaseURL, endpoint, secure),
	}, nil
}

func publicBase(configured, endpoint string, secure bool) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return scheme + "://" + endpoint
}

func (s *Store) Upload(ctx context.Context, content io.Reader, opts blobstore.UploadOptions) (*blobstore.UploadResult, error) {
	publicID := blobstore.PublicID(opts.Folder, opts.PublicID)
	key := blobstore.ObjectKey(opts.ResourceType, publicID)

	_, err := s.client.PutObject(ctx, s.bucket, key, content, opts.Size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &blobstore.UploadResult{
		SecureURL: blobstore.PublicURL(s.baseURL, s.bucket, key),
		PublicID:  publicID,
	}, nil
}

func (s *Store) Destroy(ctx context.Context, publicID string, opts blobstore.DestroyOptions) error {
	key := blobstore.ObjectKey(opts.ResourceType, publicID)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
