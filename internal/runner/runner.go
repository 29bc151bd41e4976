package runner

import (
	"context"

	"github.com/Darius-Gillingham/Img-s3/internal/domain"
)

// 1回のジョブ実行が辿り着いた結末を表すタグです。
const (
	// OutcomeCompleted 成果物を1つ以上確定できた
	OutcomeCompleted = "completed"
	// OutcomeNoOp 素材不足などで、なにも生成せずに正常終了した
	OutcomeNoOp = "no-op"
	// OutcomeFailed 成果物を1つも確定できずに終了した
	OutcomeFailed = "failed"
)

// RunReport は1回のジョブ実行の結果サマリーです。
// 呼び出し側は Outcome を見て終了コードやログレベルを決定します。
type RunReport struct {
	Outcome      string   // completed / no-op / failed
	ArtifactName string   // 代表成果物の名前 (プロンプトJSONや先頭画像)
	Artifacts    []string // 確定した全成果物の名前
	Reason       string   // no-op / failed 時の補足説明
}

// JobRunner は1回分のジョブ実行を抽象化します。
// PromptRunner と ImageBatchRunner がこのインターフェースを満たします。
type JobRunner interface {
	Run(ctx context.Context) (RunReport, error)
}

// PromptComposer は語彙からプロンプト集を錬成するコンポーネントの窓口です。
type PromptComposer interface {
	Compose(ctx context.Context, vocabulary []string) (domain.PromptBatch, error)
}

// PromptMaterializer はプロンプト集を成果物として確定するコンポーネントの窓口です。
type PromptMaterializer interface {
	MaterializePrompts(ctx context.Context, batch domain.PromptBatch) (string, error)
}

// ImageMaterializer は画像バイト列を成果物として確定するコンポーネントの窓口です。
type ImageMaterializer interface {
	MaterializeImage(ctx context.Context, index int, data []byte) (string, error)
}
