package builder

import (
	"context"
	"fmt"

	"github.com/Darius-Gillingham/Img-s3/internal/app"
	"github.com/Darius-Gillingham/Img-s3/internal/config"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// buildRemoteIO は、GCS ベースの I/O コンポーネントを初期化します。
// 署名器は成果物をバケットへ書く構成でのみ用意し、それ以外では nil のままです。
func buildRemoteIO(ctx context.Context, cfg *config.Config) (*app.RemoteIO, error) {
	factory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS factory: %w", err)
	}

	rio := &app.RemoteIO{Factory: factory}

	if rio.Reader, err = factory.InputReader(); err != nil {
		return nil, fmt.Errorf("failed to create input reader: %w", err)
	}
	if rio.Writer, err = factory.OutputWriter(); err != nil {
		return nil, fmt.Errorf("failed to create output writer: %w", err)
	}

	if cfg.DestKind == config.DestBucket {
		if rio.Signer, err = factory.URLSigner(); err != nil {
			return nil, fmt.Errorf("failed to create URL signer: %w", err)
		}
	}

	return rio, nil
}
