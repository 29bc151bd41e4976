package store

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// --- Mocks ---

type mockReader struct {
	existing   map[string][]byte
	openCalled bool
}

func (m *mockReader) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	m.openCalled = true
	if data, ok := m.existing[uri]; ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return nil, errors.New("storage: object doesn't exist")
}

func (m *mockReader) List(_ context.Context, _ string, _ func(string) error) error {
	return nil
}

type mockWriter struct {
	writeCalled     bool
	lastURL         string
	lastContentType string
	lastData        []byte
	err             error
}

func (m *mockWriter) Write(_ context.Context, path string, r io.Reader, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.writeCalled = true
	m.lastURL = path
	m.lastContentType = contentType
	m.lastData = data
	return nil
}
