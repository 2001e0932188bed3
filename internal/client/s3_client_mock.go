package client

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockS3Client implements S3ClientInterface for testing without AWS
// credentials. Uploaded documents are kept in memory.
type MockS3Client struct {
	Bucket string
	Region string

	mu      sync.Mutex
	Objects map[string][]byte

	// Optional function overrides for custom test behavior
	GenerateSnapshotKeyFunc func(now time.Time) string
	UploadJSONFunc          func(ctx context.Context, key string, body []byte) (string, error)
	GetObjectURLFunc        func(key string) string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket:  "test-bucket",
		Region:  "ap-northeast-2",
		Objects: make(map[string][]byte),
	}
}

func (m *MockS3Client) GenerateSnapshotKey(now time.Time) string {
	if m.GenerateSnapshotKeyFunc != nil {
		return m.GenerateSnapshotKeyFunc(now)
	}
	return fmt.Sprintf("config-snapshots/%s/%s/config-%s.json",
		now.UTC().Format("2006"),
		now.UTC().Format("01"),
		now.UTC().Format("20060102T150405Z"),
	)
}

func (m *MockS3Client) UploadJSON(ctx context.Context, key string, body []byte) (string, error) {
	if m.UploadJSONFunc != nil {
		return m.UploadJSONFunc(ctx, key, body)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Objects == nil {
		m.Objects = make(map[string][]byte)
	}
	stored := make([]byte, len(body))
	copy(stored, body)
	m.Objects[key] = stored

	return m.GetObjectURL(key), nil
}

func (m *MockS3Client) GetObjectURL(key string) string {
	if m.GetObjectURLFunc != nil {
		return m.GetObjectURLFunc(key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}
