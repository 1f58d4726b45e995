package publisher

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/asset"
	"github.com/shouni/go-carousel-kit/pkg/domain"
)

const failedImageNote = "*(image generation failed)*"

// buildMarkdown は、デッキ1冊分のプレビューMarkdownを組み立てます。
// 画像参照はデッキディレクトリからの相対パス（images/...）に変換します。
func buildMarkdown(deck domain.Deck, assets domain.Assets) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", deck.Title()))
	sb.WriteString(fmt.Sprintf("template: %s / slides: %d\n\n", deck.Template.Name, len(assets)))

	for _, a := range assets {
		sb.WriteString(fmt.Sprintf("## Slide %d – %s\n\n", a.Slide.Ordinal, a.Slide.Label))
		sb.WriteString(fmt.Sprintf("**visual:** %s\n\n", a.Slide.Visual))

		if text := strings.TrimSpace(a.Slide.DisplayText); text != "" {
			for _, line := range strings.Split(text, "\n") {
				sb.WriteString(fmt.Sprintf("> %s\n", line))
			}
			sb.WriteString("\n")
		}

		for i, imgPath := range a.ImagePaths {
			if imgPath == domain.GenerationFailed {
				sb.WriteString(failedImageNote + "\n")
				continue
			}
			rel := path.Join(asset.DefaultImageDir, filepath.Base(imgPath))
			sb.WriteString(fmt.Sprintf("![Slide %d variant %d](%s)\n", a.Slide.Ordinal, i+1, rel))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
