package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/domain"
)

// ImagePromptBuilder は、スライド情報から画像生成AIへのプロンプトを構築します。
type ImagePromptBuilder struct {
	artStyle string // 共通で適用する画風ブロック
}

// NewImagePromptBuilder は新しい ImagePromptBuilder を生成します。
// styleOverride が空ならデフォルトの画風を使います。
func NewImagePromptBuilder(styleOverride string) *ImagePromptBuilder {
	style := DefaultArtStyle
	if strings.TrimSpace(styleOverride) != "" {
		style = styleOverride
	}
	return &ImagePromptBuilder{artStyle: style}
}

// BuildSlidePrompt は、1スライド分のポジティブ・ネガティブプロンプトを生成します。
// ポジティブ側は役割・画風・厳守事項・シーン描写・表示テキストの順で組み立てます。
func (pb *ImagePromptBuilder) BuildSlidePrompt(slide domain.SlideRecord) (string, string) {
	var sb strings.Builder
	sb.WriteString(SlideImageInstruction)
	sb.WriteString("\n\n")
	sb.WriteString(pb.artStyle)
	sb.WriteString("\n\n")
	sb.WriteString(SlideRules)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("### SCENE ###\nvisual: %s\n", slide.Visual))

	if text := strings.TrimSpace(slide.DisplayText); text != "" {
		sb.WriteString(fmt.Sprintf("\n### SLIDE TEXT (render exactly, centered) ###\n%s\n", text))
	}

	return sb.String(), SlideNegativePrompt
}
