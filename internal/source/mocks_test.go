package source

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// --- Mocks ---

type mockReader struct {
	objects map[string][]byte // パス → 内容
	order   []string          // List が返す登録順
	listErr error
	openErr error
}

func newMockReader() *mockReader {
	return &mockReader{objects: make(map[string][]byte)}
}

func (m *mockReader) add(path string, data []byte) {
	m.objects[path] = data
	m.order = append(m.order, path)
}

func (m *mockReader) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	data, ok := m.objects[uri]
	if !ok {
		return nil, errors.New("storage: object doesn't exist")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(_ context.Context, _ string, fn func(string) error) error {
	if m.listErr != nil {
		return m.listErr
	}
	for _, path := range m.order {
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}
