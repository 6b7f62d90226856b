package blob

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ArchiveConfig configures the optional object-storage mirror for promoted
// assets.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Archiver mirrors promoted assets into a MinIO bucket. It is best effort:
// the pipeline logs archive failures and moves on, local disk stays the
// source of truth.
type Archiver struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver connects to object storage and ensures the bucket exists.
func NewArchiver(ctx context.Context, cfg ArchiveConfig, logger *zap.Logger) (*Archiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Archiver{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Archive uploads one promoted asset under its permanent name.
func (a *Archiver) Archive(ctx context.Context, localPath, finalName string) error {
	_, err := a.client.FPutObject(ctx, a.bucket, finalName, localPath, minio.PutObjectOptions{
		ContentType: "audio/mp4",
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", finalName, err)
	}

	a.logger.Info("asset archived", zap.String("bucket", a.bucket), zap.String("object", finalName))
	return nil
}

// Remove deletes an archived copy; used by the delete flow when configured.
func (a *Archiver) Remove(ctx context.Context, finalName string) error {
	return a.client.RemoveObject(ctx, a.bucket, finalName, minio.RemoveObjectOptions{})
}
