package domain

// RunTaskPayload は、Cloud Tasks経由で渡される実行指示を表します。
type RunTaskPayload struct {
	// Kind は実行するジョブ種別を指定します。("prompts" または "images")
	Kind string `json:"kind"`
	// BatchSize は images ジョブで1回に錬成する枚数です。0 の場合は設定値を使用します。
	BatchSize int `json:"batch_size"`
}
