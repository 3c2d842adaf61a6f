package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Storage stores listing media in a MinIO bucket and hands back public
// object URLs. It satisfies domain.MediaStorage.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, endpoint, accessKey, secretKey, bucketName string, useSSL bool, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucketName)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %w", bucketName, err)
		}
	}
	logger.Info("media bucket ready", zap.String("endpoint", endpoint), zap.String("bucket", bucketName))

	return &S3Storage{client: client, bucket: bucketName, logger: logger}, nil
}

func (s *S3Storage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("media upload failed",
			zap.String("bucket", s.bucket),
			zap.String("key", objectKey),
			zap.Error(err))
		return "", fmt.Errorf("upload object %s: %w", objectKey, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("media uploaded", zap.String("key", objectKey), zap.Int("size_bytes", len(data)))
	return fileURL, nil
}

// Release deletes the object behind a previously returned URL. URLs that do
// not point into our bucket are ignored.
func (s *S3Storage) Release(ctx context.Context, fileURL string) error {
	prefix := fmt.Sprintf("%s/%s/", s.client.EndpointURL().String(), s.bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		s.logger.Warn("skipping release of foreign media URL", zap.String("url", fileURL))
		return nil
	}
	objectKey := strings.TrimPrefix(fileURL, prefix)

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}
	s.logger.Info("media released", zap.String("key", objectKey))
	return nil
}
