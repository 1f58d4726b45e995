package domain

import (
	"regexp"
	"strings"
)

// TemplateKind はテーマ分類の結果を表すタグ付きの列挙型です。
type TemplateKind int

const (
	// TemplateGeneric はキーワードに一致しなかったテーマ向けの汎用テンプレートです。
	TemplateGeneric TemplateKind = iota
	// TemplateMonth は「1月〜12月」の12枚構成テンプレートです。
	TemplateMonth
	// TemplateClass はTTRPGの13クラス構成テンプレートです。
	TemplateClass
)

var (
	// MonthThemeRegex は月テンプレートを選ぶキーワードに一致します。
	// 部分文字列ではなく単語単位で照合します（"calendar girl" は一致、"classic" は不一致）。
	MonthThemeRegex = regexp.MustCompile(`(?i)\b(months?|monthly|calendar)\b`)

	// ClassThemeRegex はクラステンプレートを選ぶキーワードに一致します。
	ClassThemeRegex = regexp.MustCompile(`(?i)\b(class|classes)\b`)
)

// MonthSections は月テンプレートのスライド2枚目以降の見出しです。
var MonthSections = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ClassSections はクラステンプレートのスライド2枚目以降の見出しです。
var ClassSections = []string{
	"Artificer", "Barbarian", "Bard", "Cleric", "Druid", "Fighter",
	"Monk", "Paladin", "Ranger", "Rogue", "Sorcerer", "Warlock", "Wizard",
}

// Template はテーマ分類の結果と、そこから決まる構成情報を保持します。
// SlideCount はプロンプト構築とパーサーの上限判定の両方で参照される
// 唯一の期待枚数です。
type Template struct {
	Kind       TemplateKind
	Name       string   // "generic" / "month" / "class"
	SlideCount int      // タイトルカードを含む期待スライド枚数
	Sections   []string // 2枚目以降の見出し（汎用テンプレートでは nil）
	Guideline  string   // テンプレート固有のプロンプト指示
}

// ClassifyTheme はテーマ文字列をキーワード走査で分類し、対応するテンプレートを返します。
// 入力のみに依存する純粋関数で、月キーワードがクラスキーワードより優先されます。
func ClassifyTheme(theme string) Template {
	switch {
	case MonthThemeRegex.MatchString(theme):
		return Template{
			Kind:       TemplateMonth,
			Name:       "month",
			SlideCount: 1 + len(MonthSections),
			Sections:   MonthSections,
			Guideline:  "Slide 1 is the title card. Slides 2-13 correspond to the months January through December, in order.",
		}
	case ClassThemeRegex.MatchString(theme):
		return Template{
			Kind:       TemplateClass,
			Name:       "class",
			SlideCount: 1 + len(ClassSections),
			Sections:   ClassSections,
			Guideline:  "Slide 1 is the title card. Slides 2-14 each cover one character class: " + strings.Join(ClassSections, ", ") + ", in order.",
		}
	default:
		return Template{
			Kind:       TemplateGeneric,
			Name:       "generic",
			SlideCount: 13,
			Guideline:  "Slide 1 is the title card. Slides 2-13 each cover one distinct concept drawn from the theme.",
		}
	}
}
