package builder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Darius-Gillingham/Img-s3/internal/adapters"
	"github.com/Darius-Gillingham/Img-s3/internal/app"
	"github.com/Darius-Gillingham/Img-s3/internal/composer"
	"github.com/Darius-Gillingham/Img-s3/internal/config"
	"github.com/Darius-Gillingham/Img-s3/internal/materializer"
	"github.com/Darius-Gillingham/Img-s3/internal/runner"
	"github.com/Darius-Gillingham/Img-s3/internal/selector"
	"github.com/Darius-Gillingham/Img-s3/internal/source"
	"github.com/Darius-Gillingham/Img-s3/internal/store"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// BuildJobRunner はジョブ種別に対応する Runner を構築します。
func BuildJobRunner(ctx context.Context, appCtx *AppContext, kind string) (runner.JobRunner, error) {
	switch kind {
	case config.JobKindPrompts:
		return BuildPromptRunner(ctx, appCtx)
	case config.JobKindImages:
		return BuildImageRunner(ctx, appCtx)
	default:
		return nil, fmt.Errorf("unsupported job kind: %s", kind)
	}
}

// BuildPromptRunner はプロンプト錬成ジョブの Runner を構築します。
func BuildPromptRunner(ctx context.Context, appCtx *AppContext) (*runner.PromptRunner, error) {
	cfg := appCtx.Config

	comp, err := buildComposer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mat, err := buildMaterializer(appCtx)
	if err != nil {
		return nil, err
	}

	var signer remoteio.URLSigner
	if appCtx.RemoteIO != nil {
		signer = appCtx.RemoteIO.Signer
	}

	return runner.NewPromptRunner(cfg, appCtx.Source, newSelector(), comp, mat, appCtx.SlackNotifier, signer), nil
}

// BuildImageRunner は画像バッチジョブの Runner を構築します。
func BuildImageRunner(ctx context.Context, appCtx *AppContext) (*runner.ImageBatchRunner, error) {
	cfg := appCtx.Config

	comp, err := buildComposer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mat, err := buildMaterializer(appCtx)
	if err != nil {
		return nil, err
	}

	aiClient, err := initializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	var reader remoteio.InputReader
	if appCtx.RemoteIO != nil {
		reader = appCtx.RemoteIO.Reader
	}

	imageCache := gocache.New(config.DefaultImageCacheTTL, 10*time.Minute)
	gen, err := adapters.NewGeminiImageAdapter(aiClient, reader, appCtx.HTTPClient, imageCache, config.DefaultImageCacheTTL, cfg.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("画像アダプターの初期化に失敗しました: %w", err)
	}

	return runner.NewImageBatchRunner(cfg, appCtx.Source, newSelector(), comp, gen, mat, appCtx.SlackNotifier), nil
}

// --- 内部ビルドヘルパー ---

// buildComposer は指示プロファイルとテキスト生成アダプターから Composer を構築します。
func buildComposer(ctx context.Context, cfg *config.Config) (*composer.Composer, error) {
	profile, ok := config.InstructionProfileFor(cfg.PromptProfile)
	if !ok {
		return nil, fmt.Errorf("unsupported prompt profile: %s", cfg.PromptProfile)
	}

	textAdapter, err := adapters.NewGeminiTextAdapter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("テキストアダプターの初期化に失敗しました: %w", err)
	}

	return composer.New(textAdapter, profile), nil
}

// buildMaterializer は出力先ストアと書き込み方針から Materializer を構築します。
func buildMaterializer(appCtx *AppContext) (*materializer.Materializer, error) {
	cfg := appCtx.Config

	var objectStore store.ObjectStore
	switch cfg.DestKind {
	case config.DestBucket:
		if appCtx.RemoteIO == nil {
			return nil, fmt.Errorf("bucket destination requires GCS clients")
		}
		objectStore = store.NewGCSStore(appCtx.RemoteIO.Reader, appCtx.RemoteIO.Writer, cfg.GCSBucket, cfg.BaseOutputDir)
	case config.DestFile:
		objectStore = store.NewFSStore(cfg.OutputDir)
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.DestKind)
	}

	return materializer.New(objectStore, materializer.Options{
		DisallowOverwrite: cfg.DisallowOverwrite(),
		WriteMarker:       cfg.WriteCompletionMarker(),
	}), nil
}

// buildSource はワードセット読み込み元を構築します。
func buildSource(cfg *config.Config, rio *app.RemoteIO) (source.Source, error) {
	switch cfg.SourceKind {
	case config.SourceFile:
		return source.NewFileSource(cfg.WordsetDir), nil
	case config.SourceBucket:
		if rio == nil {
			return nil, fmt.Errorf("bucket source requires GCS clients")
		}
		return source.NewBucketSource(rio.Reader, cfg.WordsetPrefixURL()), nil
	case config.SourceTable:
		return source.NewTableSource(cfg.WordsetDBPath)
	default:
		return nil, fmt.Errorf("unsupported wordset source: %s", cfg.SourceKind)
	}
}

// newSelector は抽選器を時刻シードの乱数で初期化します。
func newSelector() *selector.Selector {
	return selector.New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// initializeAIClient は画像生成用の gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
