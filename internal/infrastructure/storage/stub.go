package storage

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	companyapp "github.com/orgdesk/backend/internal/application/company"
)

var _ companyapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage fakes presigned URLs for local development. Every key it has
// issued an upload URL for is reported as existing.
type StubObjectStorage struct {
	BaseURL string
	TTL     time.Duration

	mu     sync.Mutex
	issued map[string]string
}

// NewStubObjectStorage creates a stub rooted at https://storage.example.com
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		TTL:     15 * time.Minute,
		issued:  make(map[string]string),
	}
}

// PresignUpload returns a fake PUT URL and remembers the key
func (s *StubObjectStorage) PresignUpload(_ context.Context, key, contentType string) (*companyapp.PresignedURL, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}
	s.mu.Lock()
	s.issued[key] = contentType
	s.mu.Unlock()
	return s.presign("upload", key, "PUT"), nil
}

// PresignDownload returns a fake GET URL
func (s *StubObjectStorage) PresignDownload(_ context.Context, key string) (*companyapp.PresignedURL, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}
	return s.presign("download", key, "GET"), nil
}

// Stat reports previously issued keys as existing empty objects
func (s *StubObjectStorage) Stat(_ context.Context, key string) (*companyapp.ObjectInfo, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	contentType, ok := s.issued[key]
	if !ok {
		return nil, nil
	}
	return &companyapp.ObjectInfo{Key: key, ContentType: contentType}, nil
}

// Delete forgets the key
func (s *StubObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.issued, key)
	s.mu.Unlock()
	return nil
}

func (s *StubObjectStorage) presign(action, key, method string) *companyapp.PresignedURL {
	expiresAt := time.Now().Add(s.TTL)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return &companyapp.PresignedURL{
		URL:       s.BaseURL + "/" + action + "/" + key + "?" + q.Encode(),
		Method:    method,
		ExpiresAt: expiresAt,
	}
}
