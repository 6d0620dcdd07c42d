package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores a file and returns the public URL of the stored object.
type Uploader interface {
	Upload(ctx context.Context, originalName, contentType string, body []byte) (key, url string, err error)
}

// S3Uploader pushes objects to an S3 (or S3-compatible) bucket.
type S3Uploader struct {
	client        *s3.Client
	bucket        string
	region        string
	keyPrefix     string
	publicBaseURL string
}

// NewS3Uploader builds an S3Uploader from the environment. AWS_S3_BUCKET is
// required; AWS_S3_ENDPOINT/AWS_S3_FORCE_PATH_STYLE support MinIO-style
// stores.
func NewS3Uploader(ctx context.Context) (*S3Uploader, error) {
	bucket := os.Getenv("AWS_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is not configured")
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	keyPrefix := os.Getenv("AWS_S3_UPLOAD_PREFIX")
	if keyPrefix == "" {
		keyPrefix = "uploads/products"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey, secretKey := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := os.Getenv("AWS_S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			if os.Getenv("AWS_S3_FORCE_PATH_STYLE") == "true" {
				o.UsePathStyle = true
			}
		}
	})

	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		region:        region,
		keyPrefix:     keyPrefix,
		publicBaseURL: os.Getenv("AWS_S3_PUBLIC_URL"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, originalName, contentType string, body []byte) (string, string, error) {
	key := u.buildObjectKey(originalName)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return key, u.buildFileURL(key), nil
}

func (u *S3Uploader) buildObjectKey(originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%s/%d-%s%s", u.keyPrefix, time.Now().UnixMilli(), uuid.NewString(), ext)
}

func (u *S3Uploader) buildFileURL(key string) string {
	if u.publicBaseURL != "" {
		return strings.TrimRight(u.publicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
