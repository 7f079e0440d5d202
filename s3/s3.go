// Package s3 implements the object-storage gateway on AWS S3. It works with
// any S3-compatible provider (AWS, MinIO) by overriding the base endpoint.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/mediakeep/mediakeep"
)

// API is the subset of the S3 client the gateway uses. Declared as an
// interface so tests can substitute a mock.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Presigner mints presigned GET URLs. *s3.PresignClient satisfies it.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Config holds configuration for the S3 gateway.
type Config struct {
	Region string
	Bucket string

	// Endpoint overrides the AWS endpoint for S3-compatible stores
	// (e.g. a local MinIO). Empty means AWS.
	Endpoint string

	// Static credentials. Empty values fall back to the default AWS
	// credential chain.
	AccessKeyID     string
	SecretAccessKey string

	// PublicBaseURL is the base for direct object URLs. Empty derives the
	// virtual-hosted AWS URL from bucket and region.
	PublicBaseURL string
}

// Storage implements mediakeep.ObjectStorage on S3.
type Storage struct {
	client     API
	presign    Presigner
	bucket     string
	publicBase string
}

var _ mediakeep.ObjectStorage = (*Storage)(nil)

// New loads AWS configuration and returns a ready gateway. The client is
// constructed once at process start and shared by reference; it is never
// rebuilt per request.
func New(ctx context.Context, logger *slog.Logger, cfg Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("initialized S3 storage",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region),
	)

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &Storage{
		client:     client,
		presign:    s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		publicBase: publicBase,
	}, nil
}

// NewWithClient wires a gateway from pre-built clients. Used by tests.
func NewWithClient(client API, presign Presigner, bucket, publicBase string) *Storage {
	return &Storage{
		client:     client,
		presign:    presign,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// Put writes an object, overwriting any existing key.
func (s *Storage) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return mediakeep.Unavailable("failed to store object", err)
	}
	return nil
}

// List returns a snapshot of the objects under prefix, following
// continuation tokens across pages.
func (s *Storage) List(ctx context.Context, prefix string) ([]mediakeep.ObjectInfo, error) {
	var objects []mediakeep.ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mediakeep.Unavailable("failed to list objects", err)
		}
		for _, obj := range page.Contents {
			info := mediakeep.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: obj.Size,
			}
			if obj.LastModified != nil {
				t := *obj.LastModified
				info.LastModified = &t
			}
			objects = append(objects, info)
		}
	}

	return objects, nil
}

// Exists probes for an object with a HEAD request.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, mediakeep.Unavailable("failed to probe object", err)
	}
	return true, nil
}

// Delete removes an object. S3 deletes are idempotent: deleting an absent
// key succeeds.
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return mediakeep.Unavailable("failed to delete object", err)
	}
	return nil
}

// SignedURL mints a presigned GET URL with the given expiry. Expiry is
// enforced by the backend.
func (s *Storage) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", mediakeep.Unavailable("failed to presign URL", err)
	}
	return req.URL, nil
}

// PublicURL returns the direct object URL under the configured public base.
func (s *Storage) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// isNotFound reports whether an S3 error means the object is absent.
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
