// Package storage holds the object stores KYC files are uploaded to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	kycapp "github.com/vendorhub/backend/internal/application/kyc"
	infraconfig "github.com/vendorhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ kycapp.ObjectStorage = (*S3ObjectStorage)(nil)

// S3ObjectStorage issues presigned URLs against an S3-compatible bucket
// (AWS S3, MinIO). Vendors upload KYC scans straight to the bucket; the API
// only ever sees object keys.
type S3ObjectStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	root              string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// S3ObjectStorageOption configures S3ObjectStorage
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// WithPresignExpiration sets the expiry used when a caller passes none
func WithPresignExpiration(d time.Duration) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.presignExpiration = d
	}
}

// NewS3ObjectStorage creates the store. Without an endpoint the AWS regional
// endpoint is used, and without static keys the default credential chain
// (environment, shared profile, instance role) applies.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access_key_id and secret_access_key must be set together")
	}

	var endpoint string
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "ap-south-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3ObjectStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		root:              strings.Trim(cfg.KeyPrefix, "/"),
		presignExpiration: cfg.PresignExpiry,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presignExpiration <= 0 {
		s.presignExpiration = 15 * time.Minute
	}
	return s, nil
}

// EnsureBucket creates the bucket if it is missing
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// GenerateUploadURL presigns a PUT bound to contentType
func (s *S3ObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresIn = s.expiry(expiresIn)

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(storageKey)),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign upload of %s: %w", storageKey, err)
	}
	return req.URL, time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL presigns a GET for reviewers
func (s *S3ObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresIn = s.expiry(expiresIn)

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(storageKey)),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign download of %s: %w", storageKey, err)
	}
	return req.URL, time.Now().Add(expiresIn), nil
}

// ObjectExists reports whether the vendor actually uploaded the file
func (s *S3ObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(storageKey)),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return false, nil
	}
	// MinIO reports a missing key as a bare API error code.
	if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
		return false, nil
	}
	return false, fmt.Errorf("check object %s: %w", storageKey, err)
}

// Bucket returns the bucket name
func (s *S3ObjectStorage) Bucket() string {
	return s.bucket
}

func (s *S3ObjectStorage) objectKey(storageKey string) string {
	if s.root == "" {
		return storageKey
	}
	return path.Join(s.root, storageKey)
}

func (s *S3ObjectStorage) expiry(d time.Duration) time.Duration {
	if d <= 0 {
		return s.presignExpiration
	}
	return d
}
