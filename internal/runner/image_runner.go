package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Darius-Gillingham/Img-s3/internal/adapters"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/selector"
	"github.com/Darius-Gillingham/Img-s3/internal/source"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// ImageBatchRunner は、ワードセット1件の抽選ごとにプロンプトを錬成し、
// パネル画像を1枚ずつ確定するバッチ実行を管理します。
type ImageBatchRunner struct {
	cfg          *config.Config
	source       source.Source
	selector     *selector.Selector
	composer     PromptComposer
	generator    adapters.ImageGenerator
	materializer ImageMaterializer
	notifier     adapters.SlackNotifier
}

// NewImageBatchRunner は依存関係を注入して ImageBatchRunner を初期化します。
func NewImageBatchRunner(
	cfg *config.Config,
	src source.Source,
	sel *selector.Selector,
	comp PromptComposer,
	gen adapters.ImageGenerator,
	mat ImageMaterializer,
	notifier adapters.SlackNotifier,
) *ImageBatchRunner {
	return &ImageBatchRunner{
		cfg:          cfg,
		source:       src,
		selector:     sel,
		composer:     comp,
		generator:    gen,
		materializer: mat,
		notifier:     notifier,
	}
}

// Run は設定値のバッチサイズで RunBatch を実行します。
func (r *ImageBatchRunner) Run(ctx context.Context) (RunReport, error) {
	return r.RunBatch(ctx, r.cfg.ImageBatchSize)
}

// RunBatch は指定枚数の画像錬成を実行します。
// 1枚ごとの失敗はログに記録して次の1枚へ進み、全滅した場合のみ failed を返します。
func (r *ImageBatchRunner) RunBatch(ctx context.Context, batchSize int) (RunReport, error) {
	if batchSize <= 0 {
		batchSize = r.cfg.ImageBatchSize
	}

	slog.InfoContext(ctx, "Step: Loading wordsets",
		"source", r.cfg.WordsetSourceURI(),
		"batch_size", batchSize,
	)

	collection, err := r.source.Load(ctx)
	if err != nil {
		return r.fail(ctx, fmt.Errorf("wordset loading failed: %w", err))
	}

	if collection.Size() == 0 {
		slog.WarnContext(ctx, "ワードセットが見つからないため、今回の実行をスキップします")
		return RunReport{
			Outcome: OutcomeNoOp,
			Reason:  "no wordsets available",
		}, nil
	}

	var artifacts []string
	for i := 0; i < batchSize; i++ {
		// シャットダウン要求は1枚の区切りで拾います。
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "キャンセルされたため、バッチを途中で打ち切ります",
				"rendered", len(artifacts),
				"requested", batchSize,
			)
			break
		}

		name, err := r.renderOne(ctx, collection, i)
		if err != nil {
			slog.ErrorContext(ctx, "パネル画像1枚の錬成に失敗しましたが、バッチは継続します",
				"index", i+1,
				"error", err,
			)
			continue
		}

		slog.InfoContext(ctx, "パネル画像を確定しました", "index", i+1, "artifact", name)
		artifacts = append(artifacts, name)
	}

	if len(artifacts) == 0 {
		return r.fail(ctx, fmt.Errorf("image batch produced no artifacts (requested %d)", batchSize))
	}

	slog.InfoContext(ctx, "✅ 画像バッチが完了しました",
		"rendered", len(artifacts),
		"requested", batchSize,
	)
	r.notifyCompleted(ctx, artifacts, batchSize)

	return RunReport{
		Outcome:      OutcomeCompleted,
		ArtifactName: artifacts[0],
		Artifacts:    artifacts,
	}, nil
}

// --- 内部ステップ群 ---

// renderOne はワードセット1件の抽選から画像1枚の確定までを実行します。
func (r *ImageBatchRunner) renderOne(ctx context.Context, collection domain.WordsetCollection, index int) (string, error) {
	set, err := r.selector.PickOne(collection)
	if err != nil {
		return "", fmt.Errorf("wordset selection failed: %w", err)
	}

	vocabulary := domain.CombineVocabulary(set)

	batch, err := r.composer.Compose(ctx, vocabulary)
	if err != nil {
		return "", fmt.Errorf("prompt composition failed: %w", err)
	}

	prompt := r.imagePrompt(batch)

	resp, err := r.generator.Generate(ctx, imagedom.ImageGenerationRequest{
		Prompt:       prompt,
		AspectRatio:  r.cfg.AspectRatio,
		ReferenceURL: r.cfg.StyleReferenceURL,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	name, err := r.materializer.MaterializeImage(ctx, index, resp.Data)
	if err != nil {
		return "", fmt.Errorf("image materialization failed: %w", err)
	}
	return name, nil
}

// imagePrompt は錬成されたプロンプト集の先頭に共通画風サフィックスを連結します。
func (r *ImageBatchRunner) imagePrompt(batch domain.PromptBatch) string {
	prompt := batch.Prompts[0]
	if suffix := strings.TrimSpace(r.cfg.StyleSuffix); suffix != "" {
		prompt = prompt + ", " + suffix
	}
	return prompt
}

// --- ヘルパー関数 ---

func (r *ImageBatchRunner) fail(ctx context.Context, err error) (RunReport, error) {
	slog.ErrorContext(ctx, "画像バッチジョブが失敗しました", "error", err)

	if r.notifier != nil {
		req := r.notificationRequest(domain.CategoryNotAvailable)
		if notifyErr := r.notifier.NotifyError(ctx, err, req); notifyErr != nil {
			// 通知処理自体の失敗は、ジョブ全体の成否には影響させません。
			slog.ErrorContext(ctx, "Notification failed", "error", notifyErr)
		}
	}

	return RunReport{Outcome: OutcomeFailed, Reason: err.Error()}, err
}

func (r *ImageBatchRunner) notifyCompleted(ctx context.Context, artifacts []string, requested int) {
	if r.notifier == nil {
		return
	}

	req := r.notificationRequest(domain.CategoryImageBatch)
	req.TargetTitle = fmt.Sprintf("%s ほか %d/%d 枚", artifacts[0], len(artifacts), requested)

	if err := r.notifier.Notify(ctx, "", r.cfg.OutputTargetURI(), req); err != nil {
		slog.ErrorContext(ctx, "Notification failed", "error", err)
	}
}

func (r *ImageBatchRunner) notificationRequest(category string) domain.NotificationRequest {
	return domain.NotificationRequest{
		SourceURI:      r.cfg.WordsetSourceURI(),
		OutputCategory: category,
		ExecutionMode:  fmt.Sprintf("%s / %s", r.cfg.JobKind, r.cfg.Mode),
	}
}
