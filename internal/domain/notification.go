package domain

const (
	CategoryNotAvailable = "N/A"

	// CategoryPromptBatch はプロンプト集 JSON の出力カテゴリです。
	CategoryPromptBatch = "prompt-batch"
	// CategoryImageBatch はパネル画像群の出力カテゴリです。
	CategoryImageBatch = "image-batch"
)

// NotificationRequest は Slack 等の通知コンポーネントで共有されるデータ構造です。
// 生成物のメタデータを通知先に伝えるために使用します。
type NotificationRequest struct {
	// SourceURI は、ワードセットの取得元です。(例: "gs://bucket/wordsets", "file:./wordsets")
	SourceURI string `json:"source_uri"`

	// OutputCategory は、出力物の種別です。(例: "prompt-batch", "image-batch")
	OutputCategory string `json:"output_category"`

	// TargetTitle は、生成物のタイトルやアーティファクト名です。
	TargetTitle string `json:"target_title"`

	// ExecutionMode は、実行されたジョブ種別とモードです。(例: "prompts / loop")
	ExecutionMode string `json:"execution_mode"`
}
