package app

import (
	"log/slog"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// RemoteIO はGCSベースのI/Oコンポーネント一式を保持します。
// gs:// を使わない構成では組み立てられず、保持側のフィールドは nil のままです。
type RemoteIO struct {
	Factory remoteio.IOFactory
	Reader  remoteio.InputReader
	Writer  remoteio.OutputWriter
	Signer  remoteio.URLSigner
}

// Close は基盤のI/Oファクトリを安全に解放します。nil レシーバーでも呼べます。
func (r *RemoteIO) Close() {
	if r == nil || r.Factory == nil {
		return
	}
	if err := r.Factory.Close(); err != nil {
		slog.Error("failed to close IOFactory", "error", err)
	}
}
