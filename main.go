package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Darius-Gillingham/Img-s3/internal/builder"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/pipeline"
	"github.com/Darius-Gillingham/Img-s3/internal/runner"
	"github.com/Darius-Gillingham/Img-s3/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	if err := run(context.Background()); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// 1. 設定のロードとバリデーション
	cfg := config.LoadConfig()
	if err := config.ValidateEssentialConfig(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 2. シグナルによるキャンセルを全モード共通で張る
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 依存関係の組み立てとライフサイクル管理
	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build application context: %w", err)
	}
	defer func() {
		slog.Info("♻️ Closing application context...")
		appCtx.Close()
	}()

	slog.Info("🚀 Job starting...",
		"mode", cfg.Mode,
		"kind", cfg.JobKind,
		"source", cfg.WordsetSourceURI(),
		"dest", cfg.OutputTargetURI(),
	)

	switch cfg.Mode {
	case config.ModeOnce:
		return runOnce(ctx, cfg, appCtx)
	case config.ModeLoop:
		return runLoop(ctx, cfg, appCtx)
	case config.ModeServe:
		return server.Run(ctx, cfg, appCtx)
	default:
		return fmt.Errorf("unknown job mode: %s", cfg.Mode)
	}
}

// runOnce はジョブを1回だけ実行します。no-op は正常終了扱いです。
func runOnce(ctx context.Context, cfg *config.Config, appCtx *builder.AppContext) error {
	jobPipeline := pipeline.NewJobPipeline(appCtx)

	report, err := jobPipeline.Execute(ctx, domain.RunTaskPayload{Kind: cfg.JobKind})
	if err != nil {
		return fmt.Errorf("job execution failed: %w", err)
	}

	slog.Info("✅ Job finished",
		"outcome", report.Outcome,
		"artifact", report.ArtifactName,
		"reason", report.Reason,
	)
	return nil
}

// runLoop は固定間隔でジョブを反復実行します。シグナルで停止するまで回り続けます。
func runLoop(ctx context.Context, cfg *config.Config, appCtx *builder.AppContext) error {
	job, err := builder.BuildJobRunner(ctx, appCtx, cfg.JobKind)
	if err != nil {
		return fmt.Errorf("failed to build job runner: %w", err)
	}

	return runner.NewScheduler(job, cfg.Interval).RunLoop(ctx)
}
