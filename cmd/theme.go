package cmd

import (
	"fmt"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// themeCmd は、単一のテーマだけをカルーセル化するのだ。
var themeCmd = &cobra.Command{
	Use:   "theme [theme]",
	Short: "テーマを1件だけカルーセル化するのだ。",
	Long: `引数で渡されたテーマ（省略時は対話入力）について、原稿生成から
マニフェスト保存までを実行するのだ。台帳の記録済みかどうかは
確認せず、指定されたテーマを必ず処理するのだよ。`,
	Args: cobra.MaximumNArgs(1),
	RunE: themeCommand,
}

func themeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	theme := ""
	if len(args) > 0 {
		theme = args[0]
	}

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプラインの初期化に失敗したのだ: %w", err)
	}
	if err := p.ExecuteTheme(ctx, theme); err != nil {
		return fmt.Errorf("テーマ処理中にエラーが発生したのだ: %w", err)
	}
	return nil
}
