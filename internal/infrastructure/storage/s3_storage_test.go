package storage

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func minioConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "vendorhub-kyc",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		UsePathStyle:    true,
		PresignExpiry:   15 * time.Minute,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := minioConfig()
		cfg.Bucket = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket")
	})

	t.Run("half of a key pair", func(t *testing.T) {
		cfg := minioConfig()
		cfg.SecretAccessKey = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "together")
	})

	t.Run("endpoint without scheme gets https", func(t *testing.T) {
		cfg := minioConfig()
		cfg.Endpoint = "minio.internal:9000"
		s, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)

		u, _, err := s.GenerateDownloadURL(context.Background(), "kyc/a/b.pdf", time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(u, "https://minio.internal:9000/"))
	})
}

func TestS3ObjectStorage_Options(t *testing.T) {
	s, err := NewS3ObjectStorage(minioConfig(), WithLogger(zap.NewNop()), WithPresignExpiration(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, s.presignExpiration)
	assert.Equal(t, "vendorhub-kyc", s.Bucket())
}

func TestS3ObjectStorage_GenerateUploadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(minioConfig())
	require.NoError(t, err)
	key := "kyc/8d5b3e1c-0000-4000-8000-000000000001/trade_license/scan.pdf"

	raw, expiresAt, err := s.GenerateUploadURL(context.Background(), key, "application/pdf", 10*time.Minute)

	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/vendorhub-kyc/"+key, u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	_, _, err = s.GenerateUploadURL(context.Background(), "", "application/pdf", time.Minute)
	assert.Error(t, err)
}

func TestS3ObjectStorage_DefaultExpiryAndRoot(t *testing.T) {
	cfg := minioConfig()
	cfg.KeyPrefix = "/staging/"
	s, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)

	raw, _, err := s.GenerateDownloadURL(context.Background(), "kyc/a/nid.png", 0)

	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/vendorhub-kyc/staging/kyc/a/nid.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestS3ObjectStorage_ObjectExists_EmptyKey(t *testing.T) {
	s, err := NewS3ObjectStorage(minioConfig())
	require.NoError(t, err)

	_, err = s.ObjectExists(context.Background(), "")
	assert.Error(t, err)
}

// Integration tests run against a local MinIO when VH_STORAGE_INTEGRATION=1.
func newIntegrationStorage(t *testing.T) *S3ObjectStorage {
	t.Helper()
	if os.Getenv("VH_STORAGE_INTEGRATION") != "1" {
		t.Skip("set VH_STORAGE_INTEGRATION=1 with MinIO on localhost:9000 to run")
	}
	cfg := minioConfig()
	cfg.Bucket = "vendorhub-kyc-it"
	s, err := NewS3ObjectStorage(cfg, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	require.NoError(t, s.EnsureBucket(context.Background()))
	return s
}

func TestIntegration_PresignedUploadThenExists(t *testing.T) {
	s := newIntegrationStorage(t)
	ctx := context.Background()
	key := "kyc/it/trade_license/" + time.Now().Format("150405.000") + ".pdf"

	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	uploadURL, _, err := s.GenerateUploadURL(ctx, key, "application/pdf", time.Minute)
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader([]byte("%PDF-1.4")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/pdf")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIntegration_EnsureBucketTwice(t *testing.T) {
	s := newIntegrationStorage(t)

	require.NoError(t, s.EnsureBucket(context.Background()))
}
