package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/internal/runner"
	"github.com/shouni/go-carousel-kit/pkg/gdrive"
	"github.com/shouni/go-carousel-kit/pkg/prompts"
	"github.com/shouni/go-carousel-kit/pkg/publisher"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-text-format/pkg/builder"
	"google.golang.org/genai"
)

// BuildScriptRunner はデッキ原稿の生成を担当する Runner を構築します。
func BuildScriptRunner(appCtx *AppContext) (runner.ScriptRunner, error) {
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの初期化に失敗しました: %w", err)
	}

	return runner.NewDeckScriptRunner(*appCtx.Config, pb, appCtx.aiClient, appCtx.Options.Offline), nil
}

// BuildImageRunner はスライド画像生成を担当する Runner を構築します。
// オフライン実行では画像生成AIを初期化せず、プレースホルダー専用の Runner を返すのだ。
func BuildImageRunner(appCtx *AppContext) (runner.ImageRunner, error) {
	ipb := prompts.NewImagePromptBuilder(appCtx.Config.ImagePromptSuffix)

	if appCtx.Options.Offline {
		return runner.NewSlideImageRunner(nil, ipb, appCtx.Writer, appCtx.Options.Variants, true), nil
	}

	imgGen, err := InitializeImageGenerator(appCtx, appCtx.Config.GeminiImageModel)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return runner.NewSlideImageRunner(imgGen, ipb, appCtx.Writer, appCtx.Options.Variants, false), nil
}

// BuildPublishRunner はコンテンツ保存と変換、Driveへの転送を行う Runner を構築します。
func BuildPublishRunner(ctx context.Context, appCtx *AppContext) (runner.PublishRunner, error) {
	builderConfig := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	appBuilder, err := builder.NewBuilder(builderConfig)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}

	md2htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}

	pub := publisher.NewDeckPublisher(appCtx.Writer, md2htmlRunner)

	// Driveアップロードは --upload 指定時のみ組み込むのだ。
	// 認可フローの失敗は設定ミスとして、ここで致命扱いにするのだよ。
	var uploader *gdrive.Uploader
	if appCtx.Options.Upload {
		uploader, err = gdrive.NewUploader(ctx, appCtx.Config.DriveCredentialsFile, appCtx.Config.DriveTokenFile)
		if err != nil {
			return nil, fmt.Errorf("Driveアップローダーの初期化に失敗したのだ: %w", err)
		}
	}

	return runner.NewDefaultPublishRunner(appCtx.Options, pub, uploader, appCtx.Config.DriveParentFolderID), nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(config.DefaultTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageGenerator は ImageGeneratorを初期化します。
func InitializeImageGenerator(appCtx *AppContext, model string) (generator.ImageGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)
	cacheTTL := 1 * time.Hour

	// 画像処理コアを生成
	core, err := generator.NewGeminiImageCore(
		appCtx.httpClient,
		imgCache,
		cacheTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := generator.NewGeminiGenerator(
		core,
		appCtx.aiClient,
		model,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return imgGen, nil
}
