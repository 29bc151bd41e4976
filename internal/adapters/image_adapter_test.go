package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestImageAdapter(t *testing.T, ai *mockPartsGenerator, reader *mockReader, fetcher *mockFetcher, cache ImageCacher) *GeminiImageAdapter {
	t.Helper()
	adapter, err := NewGeminiImageAdapter(ai, reader, fetcher, cache, time.Minute, "image-model-under-test")
	require.NoError(t, err)
	return adapter
}

func TestNewGeminiImageAdapter(t *testing.T) {
	t.Run("必須依存が欠けているとエラーになるのだ", func(t *testing.T) {
		_, err := NewGeminiImageAdapter(nil, &mockReader{}, &mockFetcher{}, nil, time.Minute, "m")
		require.Error(t, err)

		_, err = NewGeminiImageAdapter(&mockPartsGenerator{}, &mockReader{}, nil, nil, time.Minute, "m")
		require.Error(t, err)
	})

	t.Run("リーダーとキャッシュは nil でも初期化できるのだ", func(t *testing.T) {
		_, err := NewGeminiImageAdapter(&mockPartsGenerator{}, nil, &mockFetcher{}, nil, time.Minute, "m")
		require.NoError(t, err)
	})
}

func TestGeminiImageAdapter_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("プロンプトとアスペクト比を渡して画像バイト列を得るのだ", func(t *testing.T) {
		ai := &mockPartsGenerator{
			resp: imageResponseWith(&genai.Part{
				InlineData: &genai.Blob{MIMEType: "image/png", Data: pngBytes},
			}),
		}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, &mockFetcher{}, nil)

		resp, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:      "夕暮れの城下町",
			AspectRatio: "1:1",
		})
		require.NoError(t, err)

		assert.Equal(t, pngBytes, resp.Data)
		assert.Equal(t, "image/png", resp.MimeType)
		assert.Equal(t, "image-model-under-test", ai.lastModel)
		assert.Equal(t, "1:1", ai.lastOpts.AspectRatio)
		require.Len(t, ai.lastParts, 1)
		assert.Equal(t, "夕暮れの城下町", ai.lastParts[0].Text)
	})

	t.Run("テキストのみの応答は ErrNoImageData になるのだ", func(t *testing.T) {
		ai := &mockPartsGenerator{
			resp: imageResponseWith(&genai.Part{Text: "画像は作れませんでした"}),
		}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, &mockFetcher{}, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{Prompt: "p"})
		require.ErrorIs(t, err, ErrNoImageData)
	})

	t.Run("候補が空の応答は ErrNoImageData になるのだ", func(t *testing.T) {
		ai := &mockPartsGenerator{resp: imageResponseWith()}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, &mockFetcher{}, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{Prompt: "p"})
		require.ErrorIs(t, err, ErrNoImageData)
	})

	t.Run("クライアントエラーはラップされて伝播するのだ", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		ai := &mockPartsGenerator{err: boom}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, &mockFetcher{}, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{Prompt: "p"})
		require.ErrorIs(t, err, boom)
	})
}

func TestGeminiImageAdapter_ReferenceImage(t *testing.T) {
	ctx := context.Background()

	okResp := func() *mockPartsGenerator {
		return &mockPartsGenerator{
			resp: imageResponseWith(&genai.Part{
				InlineData: &genai.Blob{MIMEType: "image/png", Data: pngBytes},
			}),
		}
	}

	t.Run("https の参照画像はHTTP取得してインラインパーツに足すのだ", func(t *testing.T) {
		ai := okResp()
		fetcher := &mockFetcher{data: pngBytes}
		cache := newMockCache()
		adapter := newTestImageAdapter(t, ai, &mockReader{}, fetcher, cache)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "https://example.com/style.png",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, fetcher.called)
		assert.Equal(t, "https://example.com/style.png", fetcher.lastURL)
		require.Len(t, ai.lastParts, 2)
		require.NotNil(t, ai.lastParts[1].InlineData)
		assert.Equal(t, "image/png", ai.lastParts[1].InlineData.MIMEType)
		assert.Equal(t, 1, cache.setCalls)
	})

	t.Run("キャッシュ命中時はHTTP取得しないのだ", func(t *testing.T) {
		ai := okResp()
		fetcher := &mockFetcher{data: pngBytes}
		cache := newMockCache()
		cache.store[cacheKeyReferenceImage+"https://example.com/style.png"] = pngBytes
		adapter := newTestImageAdapter(t, ai, &mockReader{}, fetcher, cache)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "https://example.com/style.png",
		})
		require.NoError(t, err)

		assert.Equal(t, 0, fetcher.called)
		require.Len(t, ai.lastParts, 2)
	})

	t.Run("gs スキームの参照画像はリーダーから読むのだ", func(t *testing.T) {
		ai := okResp()
		reader := &mockReader{objects: map[string][]byte{
			"gs://assets/style.png": pngBytes,
		}}
		fetcher := &mockFetcher{}
		adapter := newTestImageAdapter(t, ai, reader, fetcher, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "gs://assets/style.png",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, reader.openCalled)
		assert.Equal(t, 0, fetcher.called)
		require.Len(t, ai.lastParts, 2)
	})

	t.Run("取得に失敗してもプロンプトのみで生成を続けるのだ", func(t *testing.T) {
		ai := okResp()
		fetcher := &mockFetcher{err: errors.New("connection refused")}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, fetcher, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "https://example.com/style.png",
		})
		require.NoError(t, err)
		require.Len(t, ai.lastParts, 1)
	})

	t.Run("http スキームは拒否されプロンプトのみで続行するのだ", func(t *testing.T) {
		ai := okResp()
		fetcher := &mockFetcher{data: pngBytes}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, fetcher, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "http://example.com/style.png",
		})
		require.NoError(t, err)

		assert.Equal(t, 0, fetcher.called)
		require.Len(t, ai.lastParts, 1)
	})

	t.Run("画像でないバイト列はパーツにしないのだ", func(t *testing.T) {
		ai := okResp()
		fetcher := &mockFetcher{data: []byte("<html>not an image</html>")}
		adapter := newTestImageAdapter(t, ai, &mockReader{}, fetcher, nil)

		_, err := adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "https://example.com/style.png",
		})
		require.NoError(t, err)
		require.Len(t, ai.lastParts, 1)
	})

	t.Run("リーダー未設定で gs 参照が来てもプロンプトのみで続行するのだ", func(t *testing.T) {
		ai := okResp()
		adapter, err := NewGeminiImageAdapter(ai, nil, &mockFetcher{}, nil, time.Minute, "m")
		require.NoError(t, err)

		_, err = adapter.Generate(ctx, imagedom.ImageGenerationRequest{
			Prompt:       "p",
			ReferenceURL: "gs://assets/style.png",
		})
		require.NoError(t, err)
		require.Len(t, ai.lastParts, 1)
	})
}
