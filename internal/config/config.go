package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel           = "gemini-3-flash-preview"
	DefaultImageModel      = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultThemeInterval   = 5 * time.Second // テーマ間の待機。外部APIのレート対策なのだ
	DefaultVariantCount    = 2               // スライド1枚につき生成する画像バリアント数
	DefaultTemperature     = float32(0.8)    // デッキ原稿は創作寄りなので高めなのだ
	DefaultOutputDir       = "output"                // 成果物の保存先ベースディレクトリ
	DefaultInputFile       = "themes.csv"            // バッチ入力のテーマ一覧CSV
	DefaultLedgerFile      = "processed_themes.txt"  // 処理済みテーマの台帳
	DefaultCredentialsFile = "credentials.json"      // Drive OAuth クライアントシークレット
	DefaultTokenFile       = "token.json"            // Drive OAuth トークンキャッシュ
	DefaultEnvFile         = "config.env"            // 任意の環境変数ファイル
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey      string
	GeminiModel       string
	GeminiImageModel  string
	ImagePromptSuffix string

	DriveParentFolderID  string
	DriveCredentialsFile string
	DriveTokenFile       string

	Options RunOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// カレントディレクトリに config.env があれば先に取り込む（無くても構わない）。
func LoadConfig() *Config {
	_ = godotenv.Load(DefaultEnvFile)

	cfg := &Config{
		GeminiAPIKey:         envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:          envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel:     envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ImagePromptSuffix:    envutil.GetEnv("IMAGE_PROMPT_SUFFIX", ""),
		DriveParentFolderID:  envutil.GetEnv("DRIVE_PARENT_FOLDER_ID", ""),
		DriveCredentialsFile: envutil.GetEnv("DRIVE_CREDENTIALS_FILE", DefaultCredentialsFile),
		DriveTokenFile:       envutil.GetEnv("DRIVE_TOKEN_FILE", DefaultTokenFile),
	}
	return cfg
}

// RunOptions は CLI フラグから渡される実行時のパラメータなのだ。
type RunOptions struct {
	// 入出力関連
	InputFile  string // --input: テーマ一覧CSVのパス
	OutputDir  string // --output: 保存先（ローカル or gs://...）
	LedgerFile string // --ledger: 処理済みテーマ台帳のパス

	// 生成制御
	Variants int  // --variants: スライドごとの画像バリアント数
	Limit    int  // --limit: 今回処理するテーマ数の上限（0なら対話で確認）
	Offline  bool // --offline: APIを呼ばずプレースホルダーだけで実行
	Upload   bool // --upload: Google Drive へのアップロードを有効化

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
