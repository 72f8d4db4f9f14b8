// Package storage generates presigned object-storage URLs for direct
// client uploads. The server never proxies image bytes.
package storage

import (
	"context"
	"fmt"
	"time"

	appconfig "github.com/iamsihlegqeza/sterkspruit/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	uploadExpiry      = time.Hour
	uploadContentType = "image/jpeg"
)

// Uploader hands out presigned PUT URLs for banner and profile images.
type Uploader interface {
	PresignUpload(ctx context.Context) (string, error)
}

// S3Uploader implements Uploader against an S3 bucket.
type S3Uploader struct {
	presigner *s3.PresignClient
	bucket    string
}

// NewS3Uploader builds an S3-backed Uploader from application config.
func NewS3Uploader(ctx context.Context, cfg *appconfig.Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Uploader{
		presigner: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		bucket:    cfg.S3Bucket,
	}, nil
}

// PresignUpload returns a PUT URL valid for one hour, fixed to
// image/jpeg content. The key is unique per call.
func (u *S3Uploader) PresignUpload(ctx context.Context) (string, error) {
	key := UploadKey()

	req, err := u.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(uploadContentType),
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", key, err)
	}

	return req.URL, nil
}

// UploadKey builds a collision-free object key for a jpeg upload.
func UploadKey() string {
	return fmt.Sprintf("%s-%d.jpeg", uuid.NewString(), time.Now().Unix())
}
