package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DefaultTextModel  = "gemini-3-flash-preview"
	DefaultImageModel = "gemini-2.5-flash-image"
	// DefaultHTTPTimeout 画像生成や Gemini API の応答を考慮したタイムアウト
	DefaultHTTPTimeout = 60 * time.Second
	// DefaultImageCacheTTL 参照画像アップロードのキャッシュ有効期限
	DefaultImageCacheTTL  = 30 * time.Minute
	DefaultInterval       = time.Minute
	DefaultImageBatchSize = 5
	DefaultAspectRatio    = "1:1"
	// DefaultSignedURLTTL 通知リンクから成果物を確認する時間を考慮した有効期限
	DefaultSignedURLTTL = time.Hour
	DefaultStyleSuffix  = "high-quality digital illustration, rich color, cinematic lighting, sharp focus, detailed texture, masterpiece"
)

// 実行モード。JOB_MODE で選択します。
const (
	ModeOnce  = "once"
	ModeLoop  = "loop"
	ModeServe = "serve"
)

// ジョブ種別 (JOB_KIND) の識別子です。タスクペイロードの kind と同じ値を共有します。
const (
	JobKindPrompts = "prompts"
	JobKindImages  = "images"
)

// ワードセットの取得元。WORDSET_SOURCE で選択します。
const (
	SourceFile   = "file"
	SourceBucket = "bucket"
	SourceTable  = "table"
)

// 出力先。OUTPUT_DEST で選択します。
const (
	DestFile   = "file"
	DestBucket = "bucket"
)

// プロンプト指示プロファイル。PROMPT_PROFILE で選択し、起動後は固定です。
const (
	ProfileCreative = "creative"
	ProfileLiteral  = "literal"
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	Mode    string // once / loop / serve
	JobKind string // prompts / images

	// Wordset Source
	SourceKind    string // file / bucket / table
	WordsetDir    string // file ソースのディレクトリ
	WordsetPrefix string // bucket ソースのオブジェクトプレフィックス
	WordsetDBPath string // table ソースの SQLite ファイル

	// Destination
	DestKind      string // file / bucket
	OutputDir     string // file 出力のディレクトリ
	GCSBucket     string // プロンプトJSONと画像を保存するバケット
	BaseOutputDir string // GCS内のベースルート (例: "output")

	// Generation
	GeminiAPIKey      string
	GeminiModel       string // プロンプト錬成用テキストモデル
	ImageModel        string // 画像レンダリング用モデル
	PromptProfile     string // creative / literal
	StyleSuffix       string // 画像プロンプトに付与する共通画風サフィックス
	AspectRatio       string
	StyleReferenceURL string // 画風を固定するための参照画像 (https:// または gs://)。空なら未使用

	// Run Loop
	Interval       time.Duration // loop モードの反復間隔
	ImageBatchSize int           // images ジョブの1回あたりの枚数

	// Notification
	SlackWebhookURL string
	SignedURLTTL    time.Duration // 通知に添える署名付きURLの有効期限

	// Serve (Cloud Run)
	ServiceURL          string
	Port                string
	ProjectID           string
	LocationID          string
	QueueID             string
	TaskAudienceURL     string // OIDC トークンの検証に使用する Audience URL
	ServiceAccountEmail string
	ShutdownTimeout     time.Duration
}

// InstructionProfile は生成APIへ渡す指示文とサンプリング設定の組です。
// デプロイ単位で固定され、呼び出しごとには切り替えません。
type InstructionProfile struct {
	Name               string
	Temperature        float32
	NucleusProbability float32 // top-p 相当の多様性カットオフ
	SystemInstruction  string
}

const (
	creativeInstruction = "You craft prompts for an image generation model. " +
		"Treat the provided vocabulary as loose inspiration and write five imaginative, mutually dissimilar image prompts. " +
		"Each prompt must be a single line. Respond with a JSON array of five strings and nothing else."
	literalInstruction = "You craft prompts for an image generation model. " +
		"Combine the provided vocabulary into five terse, literal scene descriptions built from concrete physical nouns. " +
		"Each prompt must be a single line. Respond with a JSON array of five strings and nothing else."
)

// InstructionProfileFor は名前に対応するプロファイル定義を返します。
// 未知の名前は creative 扱いにせず ok=false を返し、バリデーション側で弾きます。
func InstructionProfileFor(name string) (InstructionProfile, bool) {
	switch name {
	case ProfileCreative:
		return InstructionProfile{
			Name:               ProfileCreative,
			Temperature:        1.0,
			NucleusProbability: 0.95,
			SystemInstruction:  creativeInstruction,
		}, true
	case ProfileLiteral:
		return InstructionProfile{
			Name:               ProfileLiteral,
			Temperature:        0.4,
			NucleusProbability: 0.8,
			SystemInstruction:  literalInstruction,
		}, true
	}
	return InstructionProfile{}, false
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	serviceURL := getEnv("SERVICE_URL", "http://localhost:8080")

	return &Config{
		Mode:    getEnv("JOB_MODE", ModeOnce),
		JobKind: getEnv("JOB_KIND", JobKindPrompts),

		SourceKind:    getEnv("WORDSET_SOURCE", SourceFile),
		WordsetDir:    getEnv("WORDSET_DIR", "./wordsets"),
		WordsetPrefix: getEnv("WORDSET_PREFIX", "wordsets"),
		WordsetDBPath: getEnv("WORDSET_DB_PATH", "./wordsets.db"),

		DestKind:      getEnv("OUTPUT_DEST", DestFile),
		OutputDir:     getEnv("OUTPUT_DIR", "./output"),
		GCSBucket:     getEnv("GCS_BUCKET", "your-prompt-archive-bucket"),
		BaseOutputDir: getEnv("BASE_OUTPUT_DIR", "output"),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", DefaultTextModel),
		ImageModel:        getEnv("IMAGE_MODEL", DefaultImageModel),
		PromptProfile:     getEnv("PROMPT_PROFILE", ProfileCreative),
		StyleSuffix:       getEnv("STYLE_SUFFIX", DefaultStyleSuffix),
		AspectRatio:       getEnv("IMAGE_ASPECT_RATIO", DefaultAspectRatio),
		StyleReferenceURL: getEnv("REFERENCE_IMAGE_URL", ""),

		Interval:       getEnvDuration("JOB_INTERVAL", DefaultInterval),
		ImageBatchSize: getEnvInt("IMAGE_BATCH_SIZE", DefaultImageBatchSize),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		SignedURLTTL:    getEnvDuration("SIGNED_URL_TTL", DefaultSignedURLTTL),

		ServiceURL:          serviceURL,
		Port:                getEnv("PORT", "8080"),
		ProjectID:           getEnv("GCP_PROJECT_ID", "your-gcp-project"),
		LocationID:          getEnv("GCP_LOCATION_ID", "asia-northeast1"),
		QueueID:             getEnv("CLOUD_TASKS_QUEUE_ID", "prompt-forge-queue"),
		TaskAudienceURL:     getEnv("TASK_AUDIENCE_URL", serviceURL),
		ServiceAccountEmail: getEnv("SERVICE_ACCOUNT_EMAIL", ""),
		ShutdownTimeout:     15 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration は time.ParseDuration 形式 (例: "90s", "5m") の環境変数を読み込みます。
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Invalid duration in environment, using fallback", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return d
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Invalid integer in environment, using fallback", "key", key, "value", v, "fallback", fallback)
		return fallback
	}
	return n
}
