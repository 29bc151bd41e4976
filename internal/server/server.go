package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Darius-Gillingham/Img-s3/internal/builder"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/pipeline"
)

// デフォルトのシャットダウン猶予時間
const defaultShutdownTimeout = 30 * time.Second

// Run は、ハンドラーの組み立てとサーバーのライフサイクル管理を行います。
// ctx のキャンセルでグレースフルシャットダウンへ移行します。
func Run(ctx context.Context, cfg *config.Config, appCtx *builder.AppContext) error {
	// 1. ハンドラーの組み立て
	jobPipeline := pipeline.NewJobPipeline(appCtx)
	h, err := builder.BuildHandlers(appCtx, pipeline.NewTaskExecutor(jobPipeline))
	if err != nil {
		return fmt.Errorf("failed to build handlers: %w", err)
	}

	// 2. ルーターの構築
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(h),
	}

	// --- サーバー起動とキャンセル待機 ---
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("🚀 Server starting...", "port", cfg.Port, "service_url", cfg.ServiceURL)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		slog.Info("⚠️ Starting graceful shutdown...")
		if err := shutdownGracefully(srv, cfg.ShutdownTimeout); err != nil {
			return err
		}
		slog.Info("✅ Server stopped cleanly")
	}

	return nil
}

// shutdownGracefully は猶予時間内での停止を試み、間に合わなければ強制的に閉じます。
func shutdownGracefully(srv *http.Server, timeout time.Duration) error {
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed, forcing close", "error", err)

		if closeErr := srv.Close(); closeErr != nil {
			return fmt.Errorf("could not stop server: shutdown error: %v, close error: %v", err, closeErr)
		}
		return fmt.Errorf("could not stop server gracefully: %w", err)
	}

	return nil
}
