// Package storage stores uploaded artwork files.  The backing store is
// selected by configuration: S3 in production, the local filesystem
// otherwise.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kalakriti/events-backend/internal/config"
)

// Uploader persists one file and returns the URL it will be served from.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
}

// New selects an Uploader by the configured driver.
func New(cfg config.Config) (Uploader, error) {
	if cfg.UploadDriver == "s3" {
		return NewS3Uploader(cfg)
	}
	return &LocalUploader{Root: cfg.LocalDir}, nil
}

// objectKey gives every upload a unique name, keeping only the original
// file's extension.
func objectKey(folder, filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i:]
	}
	return fmt.Sprintf("%s/%s%s", folder, uuid.New(), ext)
}

// S3Uploader writes objects to an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader builds a client from static credentials in cfg.  A custom
// endpoint supports MinIO-style deployments.
func NewS3Uploader(cfg config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "")))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	return &S3Uploader{client: client, bucket: cfg.S3Bucket}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	key := objectKey(folder, filename)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key), nil
}

// LocalUploader writes files under Root and serves them by relative path.
type LocalUploader struct {
	Root string
}

func (u *LocalUploader) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	key := objectKey(folder, filename)
	path := filepath.Join(u.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Join(u.Root, key)), nil
}
