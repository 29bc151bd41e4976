package builder

import (
	"context"
	"fmt"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/server/handlers"

	"github.com/shouni/gcp-kit/worker"
)

// AppHandlers は生成されたすべての HTTP ハンドラーを保持する構造体です。
// server パッケージはこの構造体を受け取ってルーティングを行います。
type AppHandlers struct {
	API    *handlers.Handler
	Worker *worker.Handler[domain.RunTaskPayload]
}

// TaskExecutor は、非同期タスクのペイロードを受け取り、
// 対応するビジネスロジックを実行する責務を抽象化します。
type TaskExecutor interface {
	Execute(ctx context.Context, payload domain.RunTaskPayload) error
}

// BuildHandlers は各ハンドラーの依存関係をすべて組み立て、AppHandlers 構造体を返します。
func BuildHandlers(appCtx *AppContext, executor TaskExecutor) (*AppHandlers, error) {
	if appCtx.TaskEnqueuer == nil {
		return nil, fmt.Errorf("タスク投入のために TaskEnqueuer の初期化が必要です")
	}

	apiHandler, err := handlers.NewHandler(appCtx.Config, appCtx.TaskEnqueuer)
	if err != nil {
		return nil, fmt.Errorf("APIハンドラーの初期化に失敗しました: %w", err)
	}

	workerHandler := worker.NewHandler[domain.RunTaskPayload](executor)

	return &AppHandlers{
		API:    apiHandler,
		Worker: workerHandler,
	}, nil
}
