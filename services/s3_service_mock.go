package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/kendall-kelly/bakery-api/storage"
)

// MockS3Service is an in-memory S3Interface for tests
type MockS3Service struct {
	objects map[string][]byte // map of S3 key to object content
	err     error
	mu      sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// FailWith makes every following call return err. nil restores normal behavior.
func (m *MockS3Service) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *MockS3Service) failure() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// UploadFile stores the file under a predictable key
func (m *MockS3Service) UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := m.failure(); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	s3Key := fmt.Sprintf("gallery/mock_%s", fileHeader.Filename)
	m.mu.Lock()
	m.objects[s3Key] = content
	m.mu.Unlock()

	return s3Key, nil
}

// GetPresignedURL returns a fake URL for stored objects
func (m *MockS3Service) GetPresignedURL(ctx context.Context, s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}
	if err := m.failure(); err != nil {
		return "", err
	}

	if !m.FileExists(s3Key) {
		return "", fmt.Errorf("file not found in mock S3: %s", s3Key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", s3Key), nil
}

// DeleteFile removes an object
func (m *MockS3Service) DeleteFile(ctx context.Context, s3Key string) error {
	if s3Key == "" {
		return nil
	}
	if err := m.failure(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.objects, s3Key)
	m.mu.Unlock()
	return nil
}

// GetObject returns a copy of a stored object
func (m *MockS3Service) GetObject(ctx context.Context, key string) ([]byte, error) {
	if err := m.failure(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), body...), nil
}

// PutObject stores a copy of body
func (m *MockS3Service) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if err := m.failure(); err != nil {
		return err
	}

	m.mu.Lock()
	m.objects[key] = append([]byte(nil), body...)
	m.mu.Unlock()
	return nil
}

// Ping reports the injected failure, if any
func (m *MockS3Service) Ping(ctx context.Context) error {
	return m.failure()
}

// GetUploadedFiles returns all stored objects (for testing assertions)
func (m *MockS3Service) GetUploadedFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]byte, len(m.objects))
	for k, v := range m.objects {
		files[k] = v
	}
	return files
}

// FileExists checks if an object exists in mock storage
func (m *MockS3Service) FileExists(s3Key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.objects[s3Key]
	return exists
}

// Clear removes all objects
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.objects = make(map[string][]byte)
	m.mu.Unlock()
}
