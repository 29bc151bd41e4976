package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// mockSource は source.Source のテスト用実装です。
type mockSource struct {
	collection domain.WordsetCollection
	err        error
	loads      int
}

func (m *mockSource) Load(_ context.Context) (domain.WordsetCollection, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.collection, nil
}

// mockComposer は PromptComposer のテスト用実装です。
type mockComposer struct {
	batch          domain.PromptBatch
	err            error
	called         int
	lastVocabulary []string
}

func (m *mockComposer) Compose(_ context.Context, vocabulary []string) (domain.PromptBatch, error) {
	m.called++
	m.lastVocabulary = vocabulary
	if m.err != nil {
		return domain.PromptBatch{}, m.err
	}
	return m.batch, nil
}

// mockPromptMaterializer は PromptMaterializer のテスト用実装です。
type mockPromptMaterializer struct {
	name      string
	err       error
	lastBatch domain.PromptBatch
	called    int
}

func (m *mockPromptMaterializer) MaterializePrompts(_ context.Context, batch domain.PromptBatch) (string, error) {
	m.called++
	m.lastBatch = batch
	if m.err != nil {
		return "", m.err
	}
	return m.name, nil
}

// mockImageMaterializer は ImageMaterializer のテスト用実装です。
type mockImageMaterializer struct {
	indexes []int
	err     error
}

func (m *mockImageMaterializer) MaterializeImage(_ context.Context, index int, _ []byte) (string, error) {
	m.indexes = append(m.indexes, index)
	if m.err != nil {
		return "", m.err
	}
	return fmt.Sprintf("image-test-%d.png", index+1), nil
}

// mockImageGenerator は adapters.ImageGenerator のテスト用実装です。
// failOn は何回目の呼び出しを失敗させるか (1始まり) を指定します。
type mockImageGenerator struct {
	data   []byte
	failOn map[int]error
	called int
	reqs   []imagedom.ImageGenerationRequest
	cancel context.CancelFunc
}

func (m *mockImageGenerator) Generate(_ context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	m.called++
	m.reqs = append(m.reqs, req)
	if m.cancel != nil {
		m.cancel()
	}
	if err, ok := m.failOn[m.called]; ok {
		return nil, err
	}
	return &imagedom.ImageResponse{Data: m.data, MimeType: "image/png"}, nil
}

// mockNotifier は adapters.SlackNotifier のテスト用実装です。
type mockNotifier struct {
	notified      int
	lastPublicURL string
	lastStorage   string
	lastReq       domain.NotificationRequest
	errNotified   int
	lastErr       error
}

func (m *mockNotifier) Notify(_ context.Context, publicURL, storageURI string, req domain.NotificationRequest) error {
	m.notified++
	m.lastPublicURL = publicURL
	m.lastStorage = storageURI
	m.lastReq = req
	return nil
}

func (m *mockNotifier) NotifyError(_ context.Context, errDetail error, req domain.NotificationRequest) error {
	m.errNotified++
	m.lastErr = errDetail
	m.lastReq = req
	return nil
}

// mockSigner は remoteio.URLSigner のテスト用実装です。
type mockSigner struct {
	url      string
	err      error
	lastPath string
}

func (m *mockSigner) GenerateSignedURL(_ context.Context, path, _ string, _ time.Duration) (string, error) {
	m.lastPath = path
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

// mockJobRunner は Scheduler のテスト用 JobRunner です。
// cancelAt に達した呼び出しで cancel を発火し、ループを終了へ導きます。
type mockJobRunner struct {
	runs     int
	report   RunReport
	err      error
	cancelAt int
	cancel   context.CancelFunc
}

func (m *mockJobRunner) Run(_ context.Context) (RunReport, error) {
	m.runs++
	if m.cancel != nil && m.runs >= m.cancelAt {
		m.cancel()
	}
	return m.report, m.err
}
