package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// TaskEnqueuer は実行タスクをキューへ投入する操作の抽象です。
// 本番実装は gcp-kit の Enqueuer が担います。
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, payload domain.RunTaskPayload) error
}

type Handler struct {
	cfg          *config.Config
	taskEnqueuer TaskEnqueuer
	startedAt    time.Time
}

// NewHandler は指定された構成に基づいて新しいハンドラーを初期化します。
func NewHandler(cfg *config.Config, taskEnqueuer TaskEnqueuer) (*Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("設定が必要です")
	}
	if taskEnqueuer == nil {
		return nil, fmt.Errorf("タスクエンキューアが必要です")
	}

	return &Handler{
		cfg,
		taskEnqueuer,
		time.Now(),
	}, nil
}
