// Package storage checks that document content references point at real
// objects. Upload of the bytes themselves happens outside this service.
package storage

import (
	"context"
	"fmt"

	"pharmaops/internal/config"
	"pharmaops/pkg/apperror"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOVerifier resolves content references against one bucket.
type MinIOVerifier struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient returns nil without error when no endpoint is configured.
func NewMinIOClient(cfg config.MinIOConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
}

func NewMinIOVerifier(client *minio.Client, bucket string) *MinIOVerifier {
	return &MinIOVerifier{client: client, bucket: bucket}
}

// Stat returns the object size for contentRef. A missing object is a
// validation error.
func (v *MinIOVerifier) Stat(ctx context.Context, contentRef string) (int64, error) {
	info, err := v.client.StatObject(ctx, v.bucket, contentRef, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, apperror.Validation("content reference %q does not exist", contentRef)
		}
		return 0, fmt.Errorf("stat object %s/%s: %w", v.bucket, contentRef, err)
	}
	return info.Size, nil
}
