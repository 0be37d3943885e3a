package service

import (
	"context"
	"sync"
	"time"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockBlobStore ---
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlobStore) Read(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- MockContentFetcher ---
type MockContentFetcher struct {
	mock.Mock
}

func (m *MockContentFetcher) Fetch(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// --- MockCompletionClient ---
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// memoryBlobStore serves fixed objects and records the order reads complete in.
type memoryBlobStore struct {
	mu      sync.Mutex
	names   []string
	objects map[string][]byte
	failing map[string]error
	delays  map[string]time.Duration
	reads   []string
}

func (s *memoryBlobStore) List(_ context.Context, _ string) ([]string, error) {
	return s.names, nil
}

func (s *memoryBlobStore) Read(_ context.Context, name string) ([]byte, error) {
	if d, ok := s.delays[name]; ok {
		time.Sleep(d)
	}
	s.mu.Lock()
	s.reads = append(s.reads, name)
	s.mu.Unlock()
	if err, ok := s.failing[name]; ok {
		return nil, err
	}
	data, ok := s.objects[name]
	if !ok {
		return nil, domain.NewStorageError(nil)
	}
	return data, nil
}
