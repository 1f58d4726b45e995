package prompts

import (
	_ "embed"
)

// TemplateData はデッキ生成プロンプトのテンプレートに渡すデータ構造です。
type TemplateData struct {
	Theme      string   // カルーセルのテーマ
	SlideCount int      // タイトルカードを含む期待スライド枚数
	Sections   []string // 2枚目以降の見出し（汎用テンプレートでは空）
	Guideline  string   // テンプレート固有の構成指示
}

var (
	//go:embed deck_generic.md
	GenericDeckPrompt string
	//go:embed deck_month.md
	MonthDeckPrompt string
	//go:embed deck_class.md
	ClassDeckPrompt string
)

// allTemplates はテンプレート名とテンプレート文字列を紐づけるマップなのだ。
// キーは domain.Template.Name と一致させる。
var allTemplates = map[string]string{
	"generic": GenericDeckPrompt,
	"month":   MonthDeckPrompt,
	"class":   ClassDeckPrompt,
}
