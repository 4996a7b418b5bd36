// utils/bucket.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"game-score-service/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client the bucket uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Bucket uploads export files to an S3-compatible bucket (R2, S3, MinIO).
type Bucket struct {
	client ObjectPutter
	name   string
}

func NewBucket(client ObjectPutter, name string) *Bucket {
	return &Bucket{client: client, name: name}
}

// OpenBucket builds an S3 client from cfg. Static credentials are used when
// both keys are set; otherwise the default AWS chain applies.
func OpenBucket(ctx context.Context, cfg config.ArchiveConfig) (*Bucket, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.AccessKeySecret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load bucket config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	log.Printf("[ARCHIVE] bucket %q ready", cfg.Bucket)
	return NewBucket(client, cfg.Bucket), nil
}

// Upload stores body under key and returns the object location.
func (b *Bucket) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.name),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", b.name, key), nil
}
