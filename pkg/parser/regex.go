package parser

import "regexp"

var (
	// VisualRegex は "**visual:** ..." マーカー行から描写指示をキャプチャします。
	// 大文字小文字は区別しません。
	VisualRegex = regexp.MustCompile(`(?i)\*\*visual:\*\*[ \t]*(.*)`)

	// ExactTextHeaderRegex は本文先頭の指示行
	// "**The slide should have this exact text (don't add any other text):**"
	// に一致します。本文には含めず取り除きます。
	ExactTextHeaderRegex = regexp.MustCompile(`(?i)^\s*\*\*the slide should have this exact text.*?\*\*[ \t]*\n?`)

	// SlideHeaderRegex はチャンク見出しの "Slide N – ラベル" からラベル部分をキャプチャします。
	// 区切りはエンダッシュ・エムダッシュ・ハイフンのいずれも受け付けます。
	SlideHeaderRegex = regexp.MustCompile(`(?i)slide\s*\d+\s*[–—-]\s*\**([^*\n]+)\**`)
)
