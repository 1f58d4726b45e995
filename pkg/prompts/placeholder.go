package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/domain"
)

// BuildPlaceholderDeck は、APIを呼ばずに組み立てる決定論的なデッキ原稿を返すのだ。
// オフライン実行でも下流（パーサー・画像・マニフェスト）が本番と同じ経路を
// 通れるように、生成AIに指示しているのと同じチャンク形式で出力する。
func BuildPlaceholderDeck(theme string, tpl domain.Template) string {
	chunks := make([]string, 0, tpl.SlideCount)

	for i := 1; i <= tpl.SlideCount; i++ {
		label := "Title Card"
		if i > 1 {
			if idx := i - 2; idx < len(tpl.Sections) {
				label = tpl.Sections[idx]
			} else {
				label = fmt.Sprintf("Concept %d", i-1)
			}
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("### 🏷️ **Slide %d – %s**\n", i, label))
		if i == 1 {
			sb.WriteString(fmt.Sprintf("**visual:** A placeholder title scene for the theme %q.\n", theme))
			sb.WriteString("**The slide should have this exact text (don't add any other text):**\n")
			sb.WriteString(fmt.Sprintf("**%s**\n", theme))
			sb.WriteString("*Placeholder deck (offline)*\n")
		} else {
			sb.WriteString(fmt.Sprintf("**visual:** A placeholder scene for %s within the theme %q.\n", label, theme))
			sb.WriteString("**The slide should have this exact text (don't add any other text):**\n")
			sb.WriteString(fmt.Sprintf("**%s – Placeholder**\n", label))
			sb.WriteString("*Generated without the API*\n")
		}
		chunks = append(chunks, sb.String())
	}

	return strings.Join(chunks, "\n---\n")
}
