package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/shouni/netarmor/securenet"
)

// GetGCSObjectURL は、指定されたパスから完全なGCSオブジェクトURL ("gs://...") を組み立てます。
// pathが既に "gs://" プレフィックスを持つ場合は、そのままpathを返します。
// c.GCSBucketが空文字列の場合、この関数は引数で与えられたpathをそのまま返します。
// これはローカルファイルシステムでの実行など、GCSを使用しないシナリオを想定しています。
func (c Config) GetGCSObjectURL(path string) string {
	if strings.HasPrefix(path, "gs://") {
		return path
	}
	if c.GCSBucket != "" {
		return fmt.Sprintf("gs://%s/%s", c.GCSBucket, path)
	}

	return path
}

// WordsetPrefixURL はワードセット読み込み元のGCSプレフィックスURLを返します。
func (c Config) WordsetPrefixURL() string {
	return c.GetGCSObjectURL(c.WordsetPrefix)
}

// WordsetSourceURI は通知や監査ログに使う、読み込み元の人間可読な識別子を返します。
func (c Config) WordsetSourceURI() string {
	switch c.SourceKind {
	case SourceBucket:
		return c.WordsetPrefixURL()
	case SourceTable:
		return c.WordsetDBPath
	default:
		return c.WordsetDir
	}
}

// OutputTargetURI は成果物の書き込み先の人間可読な識別子を返します。
func (c Config) OutputTargetURI() string {
	if c.DestKind == DestBucket {
		return c.GetGCSObjectURL(path.Clean(c.BaseOutputDir))
	}
	return c.OutputDir
}

// DisallowOverwrite は書き込み先で同名オブジェクトの上書きを禁止すべきか返します。
// GCSバケットへの出力では、既存オブジェクトとの衝突をエラーとして扱います。
func (c Config) DisallowOverwrite() bool {
	return c.DestKind == DestBucket
}

// WriteCompletionMarker は成果物の後に完了マーカーを書き込むべきか返します。
// ローカルファイル出力では、後続処理が完成済みファイルだけを拾えるように
// ペイロード書き込み成功後にマーカーを置きます。
func (c Config) WriteCompletionMarker() bool {
	return c.DestKind == DestFile
}

// NeedsGCS はこの設定でGCSクライアントの初期化が必要か返します。
// 読み込み元・書き込み先・参照画像のいずれかが gs:// を指す場合のみ true です。
func (c Config) NeedsGCS() bool {
	return c.SourceKind == SourceBucket ||
		c.DestKind == DestBucket ||
		strings.HasPrefix(c.StyleReferenceURL, "gs://")
}

// --- バリデーション ---

// ValidateEssentialConfig はジョブ実行に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("configuration error: GEMINI_API_KEY is not set")
	}

	switch cfg.Mode {
	case ModeOnce, ModeLoop, ModeServe:
	default:
		return fmt.Errorf("configuration error: unknown JOB_MODE '%s'", cfg.Mode)
	}

	switch cfg.JobKind {
	case JobKindPrompts, JobKindImages:
	default:
		return fmt.Errorf("configuration error: unknown JOB_KIND '%s'", cfg.JobKind)
	}

	if _, ok := InstructionProfileFor(cfg.PromptProfile); !ok {
		return fmt.Errorf("configuration error: unknown PROMPT_PROFILE '%s'", cfg.PromptProfile)
	}

	if err := validateSource(cfg); err != nil {
		return err
	}
	if err := validateDestination(cfg); err != nil {
		return err
	}

	if cfg.Mode == ModeLoop && cfg.Interval <= 0 {
		return fmt.Errorf("configuration error: JOB_INTERVAL must be positive, got %s", cfg.Interval)
	}
	if cfg.JobKind == JobKindImages && cfg.ImageBatchSize <= 0 {
		return fmt.Errorf("configuration error: IMAGE_BATCH_SIZE must be positive, got %d", cfg.ImageBatchSize)
	}

	if cfg.Mode == ModeServe && !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}
	if cfg.SlackWebhookURL != "" && !IsSecureURL(cfg.SlackWebhookURL) {
		return fmt.Errorf("security error: SLACK_WEBHOOK_URL must be HTTPS")
	}
	if err := validateStyleReference(cfg.StyleReferenceURL); err != nil {
		return err
	}

	return nil
}

// validateStyleReference は参照画像URLのスキームを検証します。未設定は許容します。
func validateStyleReference(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if strings.HasPrefix(rawURL, "gs://") || strings.HasPrefix(rawURL, "https://") {
		return nil
	}
	return fmt.Errorf("security error: REFERENCE_IMAGE_URL must use https:// or gs://, got '%s'", rawURL)
}

// validateSource はワードセット読み込み元の組み合わせを検証します。
func validateSource(cfg *Config) error {
	switch cfg.SourceKind {
	case SourceFile:
		if cfg.WordsetDir == "" {
			return fmt.Errorf("configuration error: WORDSET_DIR is required for the file source")
		}
	case SourceBucket:
		if cfg.GCSBucket == "" {
			return fmt.Errorf("configuration error: GCS_BUCKET is required for the bucket source")
		}
	case SourceTable:
		if cfg.WordsetDBPath == "" {
			return fmt.Errorf("configuration error: WORDSET_DB_PATH is required for the table source")
		}
	default:
		return fmt.Errorf("configuration error: unknown WORDSET_SOURCE '%s'", cfg.SourceKind)
	}
	return nil
}

// validateDestination は成果物書き込み先の組み合わせを検証します。
func validateDestination(cfg *Config) error {
	switch cfg.DestKind {
	case DestFile:
		if cfg.OutputDir == "" {
			return fmt.Errorf("configuration error: OUTPUT_DIR is required for the file destination")
		}
	case DestBucket:
		if cfg.GCSBucket == "" {
			return fmt.Errorf("configuration error: GCS_BUCKET is required for the bucket destination")
		}
	default:
		return fmt.Errorf("configuration error: unknown OUTPUT_DEST '%s'", cfg.DestKind)
	}
	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
