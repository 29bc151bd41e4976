package builder

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/domain"

	"github.com/shouni/gcp-kit/tasks"
)

// buildTaskEnqueuer は、Cloud Tasks エンキューアを初期化します。
// serve モードでのみ呼ばれ、自サービスの /tasks/run を叩くタスクを積みます。
func buildTaskEnqueuer(ctx context.Context, cfg *config.Config) (*tasks.Enqueuer[domain.RunTaskPayload], error) {
	workerURL, err := url.JoinPath(cfg.ServiceURL, "/tasks/run")
	if err != nil {
		return nil, fmt.Errorf("failed to build worker URL: %w", err)
	}

	return tasks.NewEnqueuer[domain.RunTaskPayload](ctx, tasks.Config{
		ProjectID:           cfg.ProjectID,
		LocationID:          cfg.LocationID,
		QueueID:             cfg.QueueID,
		WorkerURL:           workerURL,
		ServiceAccountEmail: cfg.ServiceAccountEmail,
		Audience:            cfg.TaskAudienceURL,
	})
}
