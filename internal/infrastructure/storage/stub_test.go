package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadThenExists(t *testing.T) {
	s := NewStubObjectStorage("https://files.test")
	ctx := context.Background()
	key := "kyc/8d5b3e1c-0000-4000-8000-000000000001/trade_license/abc.pdf"

	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	url, expiresAt, err := s.GenerateUploadURL(ctx, key, "application/pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://files.test/upload/"+key+"?expires="))
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStubObjectStorage_DownloadURL(t *testing.T) {
	s := NewStubObjectStorage("")

	url, _, err := s.GenerateDownloadURL(context.Background(), "kyc/x/nid.png", time.Hour)

	require.NoError(t, err)
	assert.Contains(t, url, "/_stub-storage/download/kyc/x/nid.png")
}

func TestStubObjectStorage_EmptyKey(t *testing.T) {
	s := NewStubObjectStorage("")
	ctx := context.Background()

	_, _, err := s.GenerateUploadURL(ctx, "", "image/png", time.Minute)
	assert.Error(t, err)
	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.Error(t, err)
	_, err = s.ObjectExists(ctx, "")
	assert.Error(t, err)
}
