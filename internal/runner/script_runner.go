package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/pkg/domain"
	"github.com/shouni/go-carousel-kit/pkg/prompts"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// ScriptRunner は、テーマからデッキ原稿（Markdown）を生成するためのインターフェースなのだ。
type ScriptRunner interface {
	// Run はテーマとテンプレートからデッキ原稿を生成して返すのだ。
	Run(ctx context.Context, theme string, tpl domain.Template) (string, error)
}

// DeckScriptRunner は、テーマからカルーセル原稿を生成する核となる構造体なのだ。
type DeckScriptRunner struct {
	cfg           config.Config          // 実行時の設定
	promptBuilder prompts.PromptBuilder  // AIに渡すプロンプトを構築するビルダー
	aiClient      gemini.GenerativeModel // Gemini APIと通信するクライアント
	offline       bool                   // APIを呼ばずプレースホルダー原稿で済ませるか
}

// NewDeckScriptRunner は、DeckScriptRunnerの新しいインスタンスを生成して返すのだ。
// offline が true の場合、aiClient は nil でも構わないのだ。
func NewDeckScriptRunner(
	cfg config.Config,
	pb prompts.PromptBuilder,
	ai gemini.GenerativeModel,
	offline bool,
) *DeckScriptRunner {
	return &DeckScriptRunner{
		cfg:           cfg,
		promptBuilder: pb,
		aiClient:      ai,
		offline:       offline,
	}
}

// Run は、プロンプト構築、AIによる生成、フェンス除去を一気に行うのだ。
func (sr *DeckScriptRunner) Run(ctx context.Context, theme string, tpl domain.Template) (string, error) {
	// オフライン実行ではAPIを呼ばず、決定論的なプレースホルダー原稿を返すのだ。
	// 形式は本番と同じなので、下流のパーサー以降は同じ経路を通るのだよ。
	if sr.offline || sr.aiClient == nil {
		slog.InfoContext(ctx, "オフラインモード: プレースホルダー原稿を使うのだ", "theme", theme, "template", tpl.Name)
		return prompts.BuildPlaceholderDeck(theme, tpl), nil
	}

	promptContent, err := sr.promptBuilder.Build(tpl.Name, prompts.TemplateData{
		Theme:      theme,
		SlideCount: tpl.SlideCount,
		Sections:   tpl.Sections,
		Guideline:  tpl.Guideline,
	})
	if err != nil {
		return "", err
	}

	resp, err := sr.aiClient.GenerateContent(ctx, promptContent, sr.cfg.GeminiModel)
	if err != nil {
		return "", fmt.Errorf("デッキ原稿の生成に失敗したのだ: %w", err)
	}

	return stripFences(resp.Text), nil
}

// stripFences は、AIが付けがちなMarkdownのコードフェンス (```markdown ... ```) を取り除くのだ。
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```markdown")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
