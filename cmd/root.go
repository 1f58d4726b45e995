package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-carousel-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は、全コマンドで共有するコマンドラインオプションなのだ。
var opts config.RunOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output", "o", config.DefaultOutputDir, "成果物を保存するベースディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.Variants, "variants", config.DefaultVariantCount, "スライド1枚あたりに生成する画像バリアント数なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "原稿生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "APIを一切呼ばず、プレースホルダーだけで動かすモードなのだ。")

	// --- Google Drive 連携 ---
	rootCmd.PersistentFlags().BoolVar(&opts.Upload, "upload", false, "成果物を Google Drive にアップロードするのだ。")

	// --- batch コマンド固有設定 ---
	batchCmd.Flags().StringVarP(&opts.InputFile, "input", "i", config.DefaultInputFile, "Theme列を持つ入力CSVのパスなのだ。")
	batchCmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "処理するテーマ数の上限なのだ（0で対話的に質問、負数で無制限）。")
	batchCmd.Flags().StringVar(&opts.LedgerFile, "ledger", config.DefaultLedgerFile, "処理済みテーマを記録する台帳ファイルのパスなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// auth コマンドとオフライン実行では Gemini API を使わないのだ
	if cmd.Name() == "auth" || opts.Offline {
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-carousel-go",
		addAppFlags,
		preRunAppE,
		batchCmd,
		themeCmd,
		authCmd,
	)
}
