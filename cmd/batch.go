package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// batchCmd は、CSVに並んだテーマをまとめてカルーセル化するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "CSVの全テーマを順番にカルーセル化するのだ。",
	Long: `Theme列を持つCSVを読み込み、各テーマについて原稿生成、スライド画像生成、
マニフェスト保存までを一気に実行するのだ。台帳に記録済みのテーマは
自動的にスキップされるのだよ。`,
	RunE: batchCommand,
}

func batchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("バッチ処理パイプラインを起動するのだ！",
		"input", opts.InputFile,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプラインの初期化に失敗したのだ: %w", err)
	}
	if err := p.ExecuteBatch(ctx); err != nil {
		return fmt.Errorf("バッチ実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべてのバッチ工程が完了したのだ！")
	return nil
}
