package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Darius-Gillingham/Img-s3/internal/adapters"
	"github.com/Darius-Gillingham/Img-s3/internal/app"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"
	"github.com/Darius-Gillingham/Img-s3/internal/source"

	"github.com/shouni/gcp-kit/tasks"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// AppContext はアプリケーションの依存関係を保持します。
// 各フィールドをインターフェースで定義することで、将来的なモック利用を容易にします。
type AppContext struct {
	Config *config.Config

	// I/O and Storage
	RemoteIO *app.RemoteIO // gs:// を使わない構成では nil

	// Wordset Source
	Source source.Source

	// Asynchronous Task
	TaskEnqueuer *tasks.Enqueuer[domain.RunTaskPayload]

	// External Adapters
	HTTPClient    httpkit.ClientInterface
	SlackNotifier adapters.SlackNotifier
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	// 2. I/O インフラ (GCS) の初期化。gs:// に触れない構成では接続しません。
	var rio *app.RemoteIO
	if cfg.NeedsGCS() {
		var err error
		rio, err = buildRemoteIO(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	// 3. ワードセット読み込み元の初期化
	src, err := buildSource(cfg, rio)
	if err != nil {
		return nil, err
	}

	// 4. アダプターの初期化
	slack, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	// 5. serve モードのみ、Cloud Tasks エンキューアを初期化
	var enqueuer *tasks.Enqueuer[domain.RunTaskPayload]
	if cfg.Mode == config.ModeServe {
		enqueuer, err = buildTaskEnqueuer(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize task enqueuer: %w", err)
		}
	}

	return &AppContext{
		Config:        cfg,
		RemoteIO:      rio,
		Source:        src,
		TaskEnqueuer:  enqueuer,
		HTTPClient:    httpClient,
		SlackNotifier: slack,
	}, nil
}

// Close は、AppContext が保持するすべての外部接続リソースを安全に解放します。
func (a *AppContext) Close() {
	a.RemoteIO.Close()

	if a.TaskEnqueuer != nil {
		if err := a.TaskEnqueuer.Close(); err != nil {
			slog.Error("failed to close task enqueuer", "error", err)
		}
	}

	if closer, ok := a.Source.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Error("failed to close wordset source", "error", err)
		}
	}
}
