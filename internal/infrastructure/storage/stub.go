package storage

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	kycapp "github.com/vendorhub/backend/internal/application/kyc"
)

var _ kycapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage stands in for S3 when no bucket is configured. It hands
// out fake URLs and treats a key as uploaded once an upload URL was issued
// for it, so the presign then register flow works end to end in development.
type StubObjectStorage struct {
	BaseURL string

	mu     sync.Mutex
	issued map[string]struct{}
}

// NewStubObjectStorage creates a stub serving URLs under baseURL
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/_stub-storage"
	}
	return &StubObjectStorage{BaseURL: baseURL, issued: make(map[string]struct{})}
}

// GenerateUploadURL returns a fake upload URL and remembers the key
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	s.mu.Lock()
	s.issued[storageKey] = struct{}{}
	s.mu.Unlock()

	expiresAt := time.Now().Add(expiresIn)
	return s.url("upload", storageKey, expiresAt), expiresAt, nil
}

// GenerateDownloadURL returns a fake download URL
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.url("download", storageKey, expiresAt), expiresAt, nil
}

// ObjectExists reports whether an upload URL was issued for storageKey
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.issued[storageKey]
	return ok, nil
}

func (s *StubObjectStorage) url(action, storageKey string, expiresAt time.Time) string {
	q := url.Values{}
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))
	return s.BaseURL + "/" + action + "/" + storageKey + "?" + q.Encode()
}
