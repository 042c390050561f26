package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-ambient-occlusion/pkg/config"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrUploadNotConfigured is returned when no bucket is configured
var ErrUploadNotConfigured = errors.New("S3 upload not configured")

// S3Uploader stores encoded renders in an S3 compatible bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	cdnURL string
}

// NewS3Uploader creates an uploader from the S3 settings using static
// credentials and path-style addressing
func NewS3Uploader(cfg config.S3Config) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrUploadNotConfigured
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), cfg.Bucket, cfg.CDNURL), nil
}

// NewS3UploaderWithClient wraps an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, cdnURL string) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: bucket,
		cdnURL: strings.TrimSuffix(cdnURL, "/"),
	}
}

// Upload stores data under key as a public object and returns its URL
func (u *S3Uploader) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.URL(key), nil
}

// URL returns the public address of key. Without a CDN the bucket path is
// returned.
func (u *S3Uploader) URL(key string) string {
	if u.cdnURL == "" {
		return fmt.Sprintf("s3://%s/%s", u.bucket, key)
	}
	return fmt.Sprintf("%s/%s", u.cdnURL, key)
}
