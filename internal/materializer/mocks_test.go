package materializer

import (
	"context"

	"github.com/Darius-Gillingham/Img-s3/internal/store"
)

// --- Mocks ---

type recordedWrite struct {
	name string
	data []byte
	opts store.WriteOptions
}

type mockStore struct {
	writes  []recordedWrite
	failOn  string
	failErr error
}

func (m *mockStore) Write(_ context.Context, name string, data []byte, opts store.WriteOptions) error {
	if m.failOn != "" && name == m.failOn {
		return m.failErr
	}
	m.writes = append(m.writes, recordedWrite{name: name, data: data, opts: opts})
	return nil
}
