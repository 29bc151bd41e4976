package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Darius-Gillingham/Img-s3/internal/config"

	"google.golang.org/genai"
)

// GeminiTextAdapter は Gemini API を呼び出してプロンプト文章を錬成するアダプターです。
// composer.TextGenerator インターフェースを満たす想定です。
type GeminiTextAdapter struct {
	client *genai.Client
	model  string
}

// NewGeminiTextAdapter は genai クライアントを初期化してアダプターを返します。
func NewGeminiTextAdapter(ctx context.Context, apiKey, model string) (*GeminiTextAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	return &GeminiTextAdapter{
		client: client,
		model:  model,
	}, nil
}

// Generate は指示プロファイルの温度・Top-P・システム指示を適用して、1回のテキスト生成を実行します。
func (a *GeminiTextAdapter) Generate(ctx context.Context, profile config.InstructionProfile, userMessage string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(profile.Temperature),
		TopP:        genai.Ptr(profile.NucleusProbability),
	}
	if profile.SystemInstruction != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: profile.SystemInstruction}},
		}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(userMessage, genai.RoleUser),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API の呼び出しに失敗しました: %w", err)
	}

	text := extractText(resp)
	slog.DebugContext(ctx, "テキスト生成が完了しました",
		"model", a.model,
		"profile", profile.Name,
		"chars", len(text),
	)
	return text, nil
}

// extractText は先頭候補のパーツからテキスト部分のみを連結して返します。
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
