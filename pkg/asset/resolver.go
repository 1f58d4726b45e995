package asset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultManifestName はテーマごとのマニフェストCSVのファイル名です。
	DefaultManifestName = "slides.csv"
	// DefaultPreviewName はデッキプレビュー Markdown のファイル名です。
	DefaultPreviewName = "deck.md"
	// fallbackName は正規化で空文字になった名前の代替です。
	fallbackName = "untitled"
)

var (
	// forbiddenCharsRegex はファイル名に使えない文字に一致します。
	forbiddenCharsRegex = regexp.MustCompile(`[\\/*?:"<>|]`)
	// whitespaceRegex は連続した空白に一致します。
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// SlideImageRegex はスライド画像 (01_January_v1.png 等) に一致します。
	SlideImageRegex = regexp.MustCompile(`^\d{2}_.+_v\d+\.png$`)
)

// SanitizeName は任意の文字列をファイル名・フォルダ名として安全な形に正規化します。
// 禁止文字を除去し、空白をアンダースコアに置き換えます。
// テーマ名、スライドラベル、Driveフォルダ名はすべてこの1本を通します。
func SanitizeName(s string) string {
	cleaned := forbiddenCharsRegex.ReplaceAllString(s, "")
	cleaned = whitespaceRegex.ReplaceAllString(strings.TrimSpace(cleaned), "_")
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return fallbackName
	}
	return cleaned
}

// SlideImageName はスライド番号・ラベル・バリアント番号から画像ファイル名を組み立てます。
// 例: (2, "February", 1) -> "02_February_v1.png"
func SlideImageName(ordinal int, label string, variant int) string {
	return fmt.Sprintf("%02d_%s_v%d.png", ordinal, SanitizeName(label), variant)
}

// ThemeDirName はテーマ名から出力ディレクトリ名（兼 Drive フォルダ名）を生成します。
func ThemeDirName(theme string) string {
	return SanitizeName(theme)
}

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}
