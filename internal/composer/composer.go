package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// ErrEmptyResponse は生成APIが使用可能なテキストを返さなかったことを示します。
var ErrEmptyResponse = errors.New("generation returned no usable content")

// TextGenerator はプロンプト錬成に使うテキスト生成能力の抽象です。
// 本番実装は internal/adapters の Gemini アダプタが提供します。
type TextGenerator interface {
	Generate(ctx context.Context, profile config.InstructionProfile, userMessage string) (string, error)
}

// Composer は結合語彙から画像生成用プロンプト群を錬成します。
type Composer struct {
	generator TextGenerator
	profile   config.InstructionProfile
}

// New は指定された生成能力と指示プロファイルで Composer を生成します。
// プロファイルはデプロイ単位で固定され、呼び出しごとには切り替えません。
func New(generator TextGenerator, profile config.InstructionProfile) *Composer {
	return &Composer{
		generator: generator,
		profile:   profile,
	}
}

// Compose は語彙をカンマ結合した1つのユーザーメッセージとして生成APIを1回呼び、
// 応答を正規化したプロンプト群を返します。リトライはここでは行わず、
// 失敗はそのまま呼び出し元に伝播させます。
func (c *Composer) Compose(ctx context.Context, vocabulary []string) (domain.PromptBatch, error) {
	message := strings.Join(vocabulary, ", ")

	slog.InfoContext(ctx, "Composing prompts",
		"profile", c.profile.Name,
		"vocabulary_size", len(vocabulary),
	)

	raw, err := c.generator.Generate(ctx, c.profile, message)
	if err != nil {
		return domain.PromptBatch{}, fmt.Errorf("prompt generation failed: %w", err)
	}

	prompts := parsePrompts(raw)
	if len(prompts) == 0 {
		return domain.PromptBatch{}, ErrEmptyResponse
	}

	slog.InfoContext(ctx, "Prompt batch composed", "count", len(prompts))
	return domain.PromptBatch{Prompts: prompts}, nil
}
