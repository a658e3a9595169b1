package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ilkin0/mediagw/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultContentType = "application/octet-stream"

// MinIOClient mirrors gallery objects into a bucket.
type MinIOClient struct {
	Client     *minio.Client
	BucketName string
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		slog.Info("minio bucket created successfully",
			slog.String("bucket_name", cfg.BucketName),
		)
	}

	return &MinIOClient{
		Client:     client,
		BucketName: cfg.BucketName,
	}, nil
}

// Save stores r under name. A negative size streams with multipart upload.
func (m *MinIOClient) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if name == "" {
		return "", fmt.Errorf("object name is required")
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	info, err := m.Client.PutObject(ctx, m.BucketName, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to MinIO: %w", name, err)
	}

	slog.Debug("object mirrored",
		slog.String("bucket", info.Bucket),
		slog.String("key", info.Key),
		slog.Int64("size", info.Size),
	)
	return fmt.Sprintf("s3://%s/%s", info.Bucket, info.Key), nil
}

func (m *MinIOClient) Stat(ctx context.Context, name string) (minio.ObjectInfo, error) {
	info, err := m.Client.StatObject(ctx, m.BucketName, name, minio.StatObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return info, nil
}
