package runner

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler は1つの JobRunner を一定間隔で繰り返し駆動します。
// イテレーション単体の失敗はループを止めず、キャンセルだけが終了条件です。
type Scheduler struct {
	job      JobRunner
	interval time.Duration
}

// NewScheduler は指定間隔で job を駆動する Scheduler を生成します。
func NewScheduler(job JobRunner, interval time.Duration) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
	}
}

// RunLoop は ctx がキャンセルされるまでジョブを繰り返します。
// 起動直後に1回実行し、以降は interval ごとに実行します。
func (s *Scheduler) RunLoop(ctx context.Context) error {
	slog.InfoContext(ctx, "♻️ ループ実行を開始します", "interval", s.interval.String())

	s.runIteration(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "シャットダウン要求を受けたため、ループを終了します")
			return nil
		case <-ticker.C:
			s.runIteration(ctx)
		}
	}
}

// runIteration は1回分の実行結果をログに集約します。エラーは伝播させません。
func (s *Scheduler) runIteration(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	started := time.Now()
	report, err := s.job.Run(ctx)
	elapsed := time.Since(started)

	switch {
	case err != nil:
		slog.ErrorContext(ctx, "イテレーションが失敗しましたが、ループは継続します",
			"outcome", report.Outcome,
			"elapsed", elapsed.String(),
			"error", err,
		)
	case report.Outcome == OutcomeNoOp:
		slog.WarnContext(ctx, "イテレーションをスキップしました",
			"reason", report.Reason,
			"elapsed", elapsed.String(),
		)
	default:
		slog.InfoContext(ctx, "イテレーションが完了しました",
			"outcome", report.Outcome,
			"artifact", report.ArtifactName,
			"elapsed", elapsed.String(),
		)
	}
}
