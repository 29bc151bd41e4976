package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Darius-Gillingham/Img-s3/internal/builder"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/runner"
)

// JobPipeline はタスクペイロードを受け取り、対応するジョブ Runner を
// 組み立てて実行する中継層です。Runner はタスクごとに組み立て直します。
type JobPipeline struct {
	appCtx *builder.AppContext
}

// NewJobPipeline は JobPipeline を初期化します。
func NewJobPipeline(appCtx *builder.AppContext) *JobPipeline {
	return &JobPipeline{
		appCtx: appCtx,
	}
}

// Execute はペイロードの kind に対応するジョブを1回実行し、実行レポートを返します。
// kind が空のペイロードは、設定のジョブ種別へフォールバックします。
func (p *JobPipeline) Execute(ctx context.Context, payload domain.RunTaskPayload) (runner.RunReport, error) {
	kind := payload.Kind
	if kind == "" {
		kind = p.appCtx.Config.JobKind
	}

	slog.Info("Pipeline execution started",
		"kind", kind,
		"batch_size", payload.BatchSize,
	)

	switch kind {
	case config.JobKindPrompts:
		r, err := builder.BuildPromptRunner(ctx, p.appCtx)
		if err != nil {
			return runner.RunReport{Outcome: runner.OutcomeFailed, Reason: err.Error()}, err
		}
		return r.Run(ctx)

	case config.JobKindImages:
		r, err := builder.BuildImageRunner(ctx, p.appCtx)
		if err != nil {
			return runner.RunReport{Outcome: runner.OutcomeFailed, Reason: err.Error()}, err
		}
		return r.RunBatch(ctx, payload.BatchSize)

	default:
		err := fmt.Errorf("unsupported job kind: %s", kind)
		return runner.RunReport{Outcome: runner.OutcomeFailed, Reason: err.Error()}, err
	}
}
