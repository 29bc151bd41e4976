package pipeline

import (
	"context"
	"log/slog"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/runner"
)

// reportingPipeline は実行レポートを返すパイプライン操作の抽象です。
type reportingPipeline interface {
	Execute(ctx context.Context, payload domain.RunTaskPayload) (runner.RunReport, error)
}

// TaskExecutor は Cloud Tasks ワーカーからの呼び出しをパイプライン実行へ橋渡しします。
// エラーを返すとタスクはリトライされるため、no-op はエラーにしません。
type TaskExecutor struct {
	pipeline reportingPipeline
}

// NewTaskExecutor は TaskExecutor を初期化します。
func NewTaskExecutor(p *JobPipeline) *TaskExecutor {
	return &TaskExecutor{pipeline: p}
}

// Execute は1件のタスクペイロードを処理します。
func (e *TaskExecutor) Execute(ctx context.Context, payload domain.RunTaskPayload) error {
	report, err := e.pipeline.Execute(ctx, payload)
	if err != nil {
		return err
	}

	if report.Outcome == runner.OutcomeNoOp {
		slog.WarnContext(ctx, "タスクは実行条件を満たさなかったため、スキップ扱いで完了します",
			"reason", report.Reason,
		)
	}
	return nil
}
