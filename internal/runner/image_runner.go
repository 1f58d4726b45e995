package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/pkg/asset"
	"github.com/shouni/go-carousel-kit/pkg/domain"
	"github.com/shouni/go-carousel-kit/pkg/imaging"
	"github.com/shouni/go-carousel-kit/pkg/prompts"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// slideAspectRatio は縦型カルーセル向けのアスペクト比なのだ。
const slideAspectRatio = "9:16"

// PanelGenerator は、画像生成AIに1枚のイラストを描かせる契約なのだ。
// gemini-image-kit の GeminiGenerator がこれを満たすのだよ。
type PanelGenerator interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// ImageRunner は、デッキの全スライドに対して画像生成を実行するためのインターフェース。
type ImageRunner interface {
	// Run は各スライドのバリアント画像を生成して保存し、結果のリストを返す。
	Run(ctx context.Context, deck domain.Deck, imageDir string) (domain.Assets, error)
}

// SlideImageRunner は、スライドごとに既定枚数のバリアントを順番に生成する実体なのだ。
// 本生成に失敗したバリアントはプレースホルダー画像に、プレースホルダーの保存にも
// 失敗した場合はセンチネル値に落とすのだ。生成起因の失敗ではエラーを返さず、
// コンテキストの中断だけをエラーとして伝えるのだよ。
type SlideImageRunner struct {
	generator     PanelGenerator              // 画像生成AI（Gemini）へのアダプター
	promptBuilder *prompts.ImagePromptBuilder // スライド情報から画像プロンプトを組み立てるビルダー
	writer        remoteio.OutputWriter       // 生成結果の保存先
	variants      int                         // スライド1枚あたりのバリアント数
	offline       bool                        // APIを呼ばず全てプレースホルダーで済ませるか
}

// NewSlideImageRunner は、SlideImageRunnerの新しいインスタンスを生成して返すのだ。
// offline が true の場合、generator は nil でも構わないのだ。
func NewSlideImageRunner(
	gen PanelGenerator,
	pb *prompts.ImagePromptBuilder,
	writer remoteio.OutputWriter,
	variants int,
	offline bool,
) *SlideImageRunner {
	if variants <= 0 {
		variants = config.DefaultVariantCount
	}
	return &SlideImageRunner{
		generator:     gen,
		promptBuilder: pb,
		writer:        writer,
		variants:      variants,
		offline:       offline,
	}
}

// Run は全スライドの画像生成を順番に実行するメインロジックなのだ。
// API側のクォータに優しくするため、意図的に並列化はしていないのだ。
func (ir *SlideImageRunner) Run(ctx context.Context, deck domain.Deck, imageDir string) (domain.Assets, error) {
	slog.InfoContext(ctx, "スライド画像の生成を開始するのだ",
		"theme", deck.Theme, "slides", len(deck.Slides), "variants", ir.variants)

	assets := make(domain.Assets, 0, len(deck.Slides))
	for _, slide := range deck.Slides {
		// 中断要求にはスライド境界で素直に従うのだ
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		paths := make([]string, 0, ir.variants)
		for v := 1; v <= ir.variants; v++ {
			paths = append(paths, ir.generateVariant(ctx, slide, imageDir, v))
		}
		assets = append(assets, domain.SlideAsset{Slide: slide, ImagePaths: paths})
	}

	slog.InfoContext(ctx, "スライド画像の生成が完了したのだ",
		"theme", deck.Theme, "failed", assets.FailedCount())
	return assets, nil
}

// generateVariant は1バリアント分の生成と保存を行い、保存先パスを返すのだ。
// 二段構えのフォールバック: 本生成 → プレースホルダー → センチネル。
func (ir *SlideImageRunner) generateVariant(ctx context.Context, slide domain.SlideRecord, imageDir string, variant int) string {
	fullPath, err := asset.ResolveOutputPath(imageDir, asset.SlideImageName(slide.Ordinal, slide.Label, variant))
	if err != nil {
		slog.ErrorContext(ctx, "画像パスの解決に失敗したのだ",
			"slide", slide.Ordinal, "variant", variant, "error", err)
		return domain.GenerationFailed
	}

	if !ir.offline && ir.generator != nil {
		data, genErr := ir.requestImage(ctx, slide)
		if genErr != nil {
			slog.WarnContext(ctx, "画像生成に失敗したのでプレースホルダーに切り替えるのだ",
				"slide", slide.Ordinal, "variant", variant, "error", genErr)
		} else if writeErr := ir.writer.Write(ctx, fullPath, bytes.NewReader(data), "image/png"); writeErr != nil {
			slog.WarnContext(ctx, "画像の保存に失敗したのでプレースホルダーに切り替えるのだ",
				"slide", slide.Ordinal, "variant", variant, "error", writeErr)
		} else {
			slog.InfoContext(ctx, "スライド画像を生成したのだ", "slide", slide.Ordinal, "variant", variant)
			return fullPath
		}
	}

	data, err := imaging.RenderPlaceholder(slide.DisplayText, imaging.DefaultWidth, imaging.DefaultHeight)
	if err == nil {
		if writeErr := ir.writer.Write(ctx, fullPath, bytes.NewReader(data), "image/png"); writeErr == nil {
			slog.InfoContext(ctx, "プレースホルダー画像を保存したのだ", "slide", slide.Ordinal, "variant", variant)
			return fullPath
		} else {
			err = writeErr
		}
	}

	slog.ErrorContext(ctx, "プレースホルダーの保存にも失敗したのだ",
		"slide", slide.Ordinal, "variant", variant, "error", err)
	return domain.GenerationFailed
}

// requestImage は画像生成AIを呼び出してPNGデータを受け取るのだ。
func (ir *SlideImageRunner) requestImage(ctx context.Context, slide domain.SlideRecord) ([]byte, error) {
	positive, negative := ir.promptBuilder.BuildSlidePrompt(slide)

	resp, err := ir.generator.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         positive,
		NegativePrompt: negative,
		AspectRatio:    slideAspectRatio,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("画像データが空だったのだ")
	}
	return resp.Data, nil
}
