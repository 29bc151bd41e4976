package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// mockPartsGenerator は PartsGenerator のテスト用実装です。
type mockPartsGenerator struct {
	resp      *gemini.Response
	err       error
	called    int
	lastModel string
	lastParts []*genai.Part
	lastOpts  gemini.GenerateOptions
}

func (m *mockPartsGenerator) GenerateWithParts(_ context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.called++
	m.lastModel = model
	m.lastParts = parts
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

// mockFetcher は HTTPFetcher のテスト用実装です。
type mockFetcher struct {
	data    []byte
	err     error
	called  int
	lastURL string
}

func (m *mockFetcher) FetchBytes(_ context.Context, url string) ([]byte, error) {
	m.called++
	m.lastURL = url
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

// mockReader は remoteio.InputReader のテスト用実装です。パス → 内容。
type mockReader struct {
	objects    map[string][]byte
	openCalled int
}

func (m *mockReader) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	m.openCalled++
	data, ok := m.objects[uri]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", uri)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(_ context.Context, _ string, _ func(string) error) error {
	return nil
}

// mockCache は ImageCacher のテスト用実装です。
type mockCache struct {
	store    map[string]any
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string]any)}
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.store[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, _ time.Duration) {
	m.setCalls++
	m.store[key] = value
}

// imageResponseWith は、指定パーツを先頭候補に持つ応答を組み立てます。
func imageResponseWith(parts ...*genai.Part) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: parts}},
			},
		},
	}
}

// pngBytes は image/png として判定される最小のバイト列です。
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
