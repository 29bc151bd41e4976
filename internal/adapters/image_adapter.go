package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// ErrNoImageData は、生成応答に画像データが1つも含まれていなかったことを示します。
var ErrNoImageData = errors.New("生成応答に画像データが含まれていません")

// 参照画像バイト列のキャッシュキー接頭辞。
const cacheKeyReferenceImage = "ref-image:"

// --- インターフェース定義 ---

// ImageGenerator は、単一の画像生成要求を処理する統合窓口です。
type ImageGenerator interface {
	Generate(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// PartsGenerator は、画像生成に必要な最小限の Gemini クライアント操作です。
type PartsGenerator interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// HTTPFetcher は、参照画像の取得に使う最小限のHTTPクライアント操作です。
type HTTPFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ImageCacher は、参照画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// --- 具象アダプター ---

// GeminiImageAdapter は Gemini の画像生成モデルで1枚のパネル画像を錬成します。
type GeminiImageAdapter struct {
	aiClient   PartsGenerator
	reader     remoteio.InputReader
	httpClient HTTPFetcher
	cache      ImageCacher
	cacheTTL   time.Duration
	model      string
}

// NewGeminiImageAdapter は依存関係を注入して GeminiImageAdapter を初期化します。
// reader は gs:// の参照画像を使わない構成では nil を許容します。
func NewGeminiImageAdapter(aiClient PartsGenerator, reader remoteio.InputReader, httpClient HTTPFetcher, cache ImageCacher, cacheTTL time.Duration, model string) (*GeminiImageAdapter, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	return &GeminiImageAdapter{
		aiClient:   aiClient,
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		model:      model,
	}, nil
}

// Generate は単一の画像生成要求を実行し、画像バイト列とメタデータを返します。
func (a *GeminiImageAdapter) Generate(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	parts := []*genai.Part{{Text: req.Prompt}}

	// 参照画像が指定されていれば、インラインパーツとして先頭プロンプトに続けます。
	if req.ReferenceURL != "" {
		if part := a.referencePart(ctx, req.ReferenceURL); part != nil {
			parts = append(parts, part)
		}
	}

	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
	}

	resp, err := a.aiClient.GenerateWithParts(ctx, a.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("画像生成リクエストに失敗しました: %w", err)
	}

	return parseImageResponse(resp)
}

// --- ヘルパー関数 ---

// referencePart は参照画像URLからインラインデータパーツを構築します。
// 取得に失敗した場合は nil を返し、プロンプトのみで生成を続行させます。
func (a *GeminiImageAdapter) referencePart(ctx context.Context, rawURL string) *genai.Part {
	if a.cache != nil {
		if val, ok := a.cache.Get(cacheKeyReferenceImage + rawURL); ok {
			if data, ok := val.([]byte); ok {
				return toInlinePart(data)
			}
		}
	}

	data, err := a.fetchReferenceData(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像の取得に失敗したため、プロンプトのみで生成します",
			"url", rawURL,
			"error", err,
		)
		return nil
	}

	if a.cache != nil {
		a.cache.Set(cacheKeyReferenceImage+rawURL, data, a.cacheTTL)
	}
	return toInlinePart(data)
}

// fetchReferenceData は gs:// と https:// の参照画像を取得します。
func (a *GeminiImageAdapter) fetchReferenceData(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		if a.reader == nil {
			return nil, fmt.Errorf("gs:// の参照画像にはGCSリーダーが必要です: %s", rawURL)
		}
		rc, err := a.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if !strings.HasPrefix(rawURL, "https://") {
		return nil, fmt.Errorf("参照画像のURLは https または gs のみ許可されています: %s", rawURL)
	}
	return a.httpClient.FetchBytes(ctx, rawURL)
}

// toInlinePart はバイト列を画像インラインパーツへ変換します。画像以外は nil です。
func toInlinePart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// parseImageResponse は応答の先頭候補から最初の画像パーツを取り出します。
func parseImageResponse(resp *gemini.Response) (*imagedom.ImageResponse, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, ErrNoImageData
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil {
		return nil, ErrNoImageData
	}

	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil {
			return &imagedom.ImageResponse{
				Data:     part.InlineData.Data,
				MimeType: part.InlineData.MIMEType,
			}, nil
		}
	}
	return nil, ErrNoImageData
}
