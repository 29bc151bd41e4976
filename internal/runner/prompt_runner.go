package runner

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"

	"github.com/Darius-Gillingham/Img-s3/internal/adapters"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/selector"
	"github.com/Darius-Gillingham/Img-s3/internal/source"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// PromptRunner は、2つのワードセットを抽選して語彙を合成し、
// プロンプト集 JSON を1つ確定するまでの一連の流れを実行します。
type PromptRunner struct {
	cfg          *config.Config
	source       source.Source
	selector     *selector.Selector
	composer     PromptComposer
	materializer PromptMaterializer
	notifier     adapters.SlackNotifier
	signer       remoteio.URLSigner // GCS出力時のみ。nil 許容
}

// NewPromptRunner は依存関係を注入して PromptRunner を初期化します。
func NewPromptRunner(
	cfg *config.Config,
	src source.Source,
	sel *selector.Selector,
	comp PromptComposer,
	mat PromptMaterializer,
	notifier adapters.SlackNotifier,
	signer remoteio.URLSigner,
) *PromptRunner {
	return &PromptRunner{
		cfg:          cfg,
		source:       src,
		selector:     sel,
		composer:     comp,
		materializer: mat,
		notifier:     notifier,
		signer:       signer,
	}
}

// Run は1回分のプロンプト錬成ジョブを実行します。
// ワードセットが2件に満たない場合は、エラーではなく no-op として正常終了します。
func (r *PromptRunner) Run(ctx context.Context) (RunReport, error) {
	slog.InfoContext(ctx, "Step: Loading wordsets", "source", r.cfg.WordsetSourceURI())

	collection, err := r.source.Load(ctx)
	if err != nil {
		return r.fail(ctx, fmt.Errorf("wordset loading failed: %w", err))
	}

	if collection.Size() < 2 {
		slog.WarnContext(ctx, "ワードセットが2件未満のため、今回の実行をスキップします",
			"count", collection.Size(),
		)
		return RunReport{
			Outcome: OutcomeNoOp,
			Reason:  fmt.Sprintf("wordsets available: %d, need at least 2", collection.Size()),
		}, nil
	}

	first, second, err := r.selector.PickTwoDistinct(collection)
	if err != nil {
		return r.fail(ctx, fmt.Errorf("wordset selection failed: %w", err))
	}

	vocabulary := domain.CombineVocabulary(first, second)
	slog.InfoContext(ctx, "Step: Vocabulary combined",
		"first_words", len(first),
		"second_words", len(second),
		"combined_words", len(vocabulary),
	)

	batch, err := r.composer.Compose(ctx, vocabulary)
	if err != nil {
		return r.fail(ctx, fmt.Errorf("prompt composition failed: %w", err))
	}

	name, err := r.materializer.MaterializePrompts(ctx, batch)
	if err != nil {
		return r.fail(ctx, fmt.Errorf("prompt materialization failed: %w", err))
	}

	slog.InfoContext(ctx, "✅ プロンプト集を確定しました", "artifact", name, "prompts", batch.Size())
	r.notifyCompleted(ctx, name)

	return RunReport{
		Outcome:      OutcomeCompleted,
		ArtifactName: name,
		Artifacts:    []string{name},
	}, nil
}

// --- ヘルパー関数 ---

// fail は失敗ログとエラー通知をまとめ、failed レポートを返します。
func (r *PromptRunner) fail(ctx context.Context, err error) (RunReport, error) {
	slog.ErrorContext(ctx, "プロンプト錬成ジョブが失敗しました", "error", err)

	if r.notifier != nil {
		req := r.notificationRequest(domain.CategoryNotAvailable)
		if notifyErr := r.notifier.NotifyError(ctx, err, req); notifyErr != nil {
			// 通知処理自体の失敗は、ジョブ全体の成否には影響させません。
			slog.ErrorContext(ctx, "Notification failed", "error", notifyErr)
		}
	}

	return RunReport{Outcome: OutcomeFailed, Reason: err.Error()}, err
}

// notifyCompleted は成果物の保存先と署名付きURLを添えて完了を通知します。
func (r *PromptRunner) notifyCompleted(ctx context.Context, artifactName string) {
	if r.notifier == nil {
		return
	}

	storageURI := r.artifactURI(artifactName)

	var publicURL string
	if r.signer != nil && r.cfg.DestKind == config.DestBucket {
		if url, err := r.signer.GenerateSignedURL(ctx, storageURI, http.MethodGet, r.cfg.SignedURLTTL); err == nil {
			publicURL = url
		} else {
			slog.WarnContext(ctx, "署名付きURLの生成に失敗しました", "error", err)
		}
	}

	req := r.notificationRequest(domain.CategoryPromptBatch)
	req.TargetTitle = artifactName

	if err := r.notifier.Notify(ctx, publicURL, storageURI, req); err != nil {
		slog.ErrorContext(ctx, "Notification failed", "error", err)
	}
}

// notificationRequest は通知の共通メタデータを組み立てます。
func (r *PromptRunner) notificationRequest(category string) domain.NotificationRequest {
	return domain.NotificationRequest{
		SourceURI:      r.cfg.WordsetSourceURI(),
		OutputCategory: category,
		ExecutionMode:  fmt.Sprintf("%s / %s", r.cfg.JobKind, r.cfg.Mode),
	}
}

// artifactURI は成果物1件分の保存先識別子を返します。
func (r *PromptRunner) artifactURI(name string) string {
	if r.cfg.DestKind == config.DestBucket {
		return r.cfg.GetGCSObjectURL(path.Join(r.cfg.BaseOutputDir, name))
	}
	return filepath.Join(r.cfg.OutputDir, name)
}
