package materializer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/store"
)

const (
	promptArtifactPrefix = "generated-prompts-"
	imageArtifactPrefix  = "image-"
	markerSuffix         = ".done"

	// 成果物名のタイムスタンプは分精度です。同一分内の再実行は
	// 同名になり、上書きガードで衝突として検出されます。
	timestampLayout = "200601021504"
)

// Options は成果物書き込みの方針を指定します。
// 通常は config.DisallowOverwrite() / config.WriteCompletionMarker() から導出します。
type Options struct {
	// DisallowOverwrite は同名成果物が既にある場合に書き込みを失敗させます。
	DisallowOverwrite bool
	// WriteMarker はプロンプト成果物の書き込み成功後に完了マーカーを書き込みます。
	WriteMarker bool
}

// Materializer はプロンプト群と画像を成果物としてストアに書き出します。
type Materializer struct {
	store store.ObjectStore
	opts  Options
	now   func() time.Time
}

// New は指定されたストアと方針で Materializer を生成します。
func New(objectStore store.ObjectStore, opts Options) *Materializer {
	return &Materializer{
		store: objectStore,
		opts:  opts,
		now:   time.Now,
	}
}

// stamp は現在時刻からUTC分精度のタイムスタンプ文字列を返します。
func (m *Materializer) stamp() string {
	return m.now().UTC().Format(timestampLayout)
}

// MaterializePrompts はプロンプト群を generated-prompts-<timestamp>.json として書き出し、
// 成果物名を返します。マーカー方針が有効な場合、ペイロード書き込みの成功後にのみ
// <name>.done を書き込みます。ペイロードが失敗したらマーカーは一切書きません。
func (m *Materializer) MaterializePrompts(ctx context.Context, batch domain.PromptBatch) (string, error) {
	name := promptArtifactPrefix + m.stamp() + ".json"

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("prompt batch serialization failed: %w", err)
	}

	writeOpts := store.WriteOptions{
		ContentType:       "application/json",
		DisallowOverwrite: m.opts.DisallowOverwrite,
	}
	if err := m.store.Write(ctx, name, data, writeOpts); err != nil {
		return "", fmt.Errorf("failed to materialize %s: %w", name, err)
	}

	if m.opts.WriteMarker {
		if err := m.store.Write(ctx, name+markerSuffix, nil, store.WriteOptions{}); err != nil {
			return name, fmt.Errorf("failed to write completion marker for %s: %w", name, err)
		}
	}

	slog.InfoContext(ctx, "Prompt artifact saved", "name", name, "prompts", batch.Size())
	return name, nil
}

// MaterializeImage は1枚の画像を image-<timestamp>-<n>.png として書き出し、
// 成果物名を返します。n はバッチ内の1始まりの連番です。
func (m *Materializer) MaterializeImage(ctx context.Context, index int, data []byte) (string, error) {
	name := fmt.Sprintf("%s%s-%d.png", imageArtifactPrefix, m.stamp(), index+1)

	writeOpts := store.WriteOptions{
		ContentType:       "image/png",
		DisallowOverwrite: m.opts.DisallowOverwrite,
	}
	if err := m.store.Write(ctx, name, data, writeOpts); err != nil {
		return "", fmt.Errorf("failed to materialize %s: %w", name, err)
	}

	slog.InfoContext(ctx, "Image artifact saved", "name", name, "bytes", len(data))
	return name, nil
}
