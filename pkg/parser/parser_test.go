package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-carousel-kit/pkg/domain"
)

// buildChunk はテスト用に原文フォーマット通りのチャンクを組み立てるのだ。
func buildChunk(num int, label, visual, title, subtitle string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### 🏷️ **Slide %d – %s**\n", num, label))
	sb.WriteString(fmt.Sprintf("**visual:** %s\n", visual))
	sb.WriteString("**The slide should have this exact text (don't add any other text):**\n")
	sb.WriteString(fmt.Sprintf("**%s**\n", title))
	sb.WriteString(fmt.Sprintf("*%s*\n", subtitle))
	return sb.String()
}

func smallTemplate(count int) domain.Template {
	return domain.Template{Kind: domain.TemplateGeneric, Name: "generic", SlideCount: count}
}

func TestParseDeck_Basic(t *testing.T) {
	p := NewSlideBlockParser()

	t.Run("2チャンクの正常系を解析できるのだ", func(t *testing.T) {
		raw := buildChunk(1, "Title Card", "A dramatic dungeon entrance", "Cursed Loot Calendar", "One curse per month") +
			"\n---\n" +
			buildChunk(2, "January", "A frozen mimic chest", "January – Frostbite Mimic", "It bites back, coldly")

		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("期待枚数 2, 実際の枚数 %d なのだ", len(records))
		}

		first := records[0]
		if first.Ordinal != 1 || first.Label != "Title Card" {
			t.Errorf("1枚目の見出しが違うのだ: %+v", first)
		}
		if first.Visual != "A dramatic dungeon entrance" {
			t.Errorf("1枚目の visual が違うのだ: %q", first.Visual)
		}
		if strings.Contains(first.DisplayText, "exact text") {
			t.Errorf("指示行が本文に残っているのだ: %q", first.DisplayText)
		}
		if !strings.Contains(first.DisplayText, "**Cursed Loot Calendar**") {
			t.Errorf("本文のタイトル行が欠けているのだ: %q", first.DisplayText)
		}

		second := records[1]
		if second.Ordinal != 2 || second.Label != "January" {
			t.Errorf("2枚目の見出しが違うのだ: %+v", second)
		}
		if !strings.Contains(second.DisplayText, "*It bites back, coldly*") {
			t.Errorf("2枚目の本文が欠けているのだ: %q", second.DisplayText)
		}
	})

	t.Run("visual マーカーは大文字小文字を区別しないのだ", func(t *testing.T) {
		raw := "### 🏷️ **Slide 1 – Title Card**\n**VISUAL:** a looming tower\n**The slide should have this exact text (don't add any other text):**\n**Tower Time**\n"
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if records[0].Visual != "a looming tower" {
			t.Errorf("大文字マーカーが拾えていないのだ: %q", records[0].Visual)
		}
	})

	t.Run("CRLF入力も解析できるのだ", func(t *testing.T) {
		raw := strings.ReplaceAll(
			buildChunk(1, "Title Card", "a red door", "Doors", "They open")+"\n---\n"+
				buildChunk(2, "January", "a blue door", "January – Blue Door", "It is cold"),
			"\n", "\r\n")
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("期待枚数 2, 実際の枚数 %d なのだ", len(records))
		}
		if strings.Contains(records[0].DisplayText, "\r") {
			t.Error("本文にCRが残っているのだ")
		}
	})
}

func TestParseDeck_InvalidChunks(t *testing.T) {
	p := NewSlideBlockParser()

	t.Run("visual の無いチャンクはスキップして連番を詰めるのだ", func(t *testing.T) {
		raw := buildChunk(1, "Title Card", "an old map", "Maps", "Where to?") +
			"\n---\n" +
			"### 🏷️ **Slide 2 – Broken**\nここには visual 指示がないのだ\n" +
			"\n---\n" +
			buildChunk(3, "February", "a cursed ring", "February – Ring", "Do not wear it")

		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("期待枚数 2, 実際の枚数 %d なのだ", len(records))
		}
		// 欠番を作らず 1, 2 と振り直される
		if records[0].Ordinal != 1 || records[1].Ordinal != 2 {
			t.Errorf("連番が詰められていないのだ: %d, %d", records[0].Ordinal, records[1].Ordinal)
		}
		if records[1].Label != "February" {
			t.Errorf("スキップ後のラベルが違うのだ: %q", records[1].Label)
		}
	})

	t.Run("visual が空のチャンクも無効なのだ", func(t *testing.T) {
		raw := "### 🏷️ **Slide 1 – Empty**\n**visual:**   \nbody text\n---\n" +
			buildChunk(2, "March", "a muddy boot", "March – Boot", "Squelch")
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if len(records) != 1 || records[0].Label != "March" {
			t.Errorf("空 visual チャンクが混入しているのだ: %+v", records)
		}
	})

	t.Run("有効なチャンクがゼロならエラーなのだ", func(t *testing.T) {
		raw := "ただの文章なのだ\n---\nこれも visual が無いのだ"
		if _, err := p.ParseDeck(raw, smallTemplate(13)); err == nil {
			t.Error("エラーが返らなかったのだ")
		}
	})

	t.Run("空文字列の入力もエラーなのだ", func(t *testing.T) {
		if _, err := p.ParseDeck("", smallTemplate(13)); err == nil {
			t.Error("エラーが返らなかったのだ")
		}
	})
}

func TestParseDeck_Truncation(t *testing.T) {
	p := NewSlideBlockParser()

	t.Run("過剰生産は期待枚数で切り捨てて先頭から採用するのだ", func(t *testing.T) {
		var parts []string
		for i := 1; i <= 6; i++ {
			parts = append(parts, buildChunk(i, fmt.Sprintf("Part %d", i), fmt.Sprintf("scene %d", i), "T", "S"))
		}
		raw := strings.Join(parts, "\n---\n")

		records, err := p.ParseDeck(raw, smallTemplate(4))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("期待枚数 4, 実際の枚数 %d なのだ", len(records))
		}
		for i, r := range records {
			wantLabel := fmt.Sprintf("Part %d", i+1)
			if r.Ordinal != i+1 || r.Label != wantLabel {
				t.Errorf("%d枚目が違うのだ。期待: (%d, %s), 実際: (%d, %s)", i+1, i+1, wantLabel, r.Ordinal, r.Label)
			}
		}
	})

	t.Run("不足生産は警告だけであるだけ返すのだ", func(t *testing.T) {
		raw := buildChunk(1, "Title Card", "a lone torch", "Torch", "Flicker")
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if len(records) != 1 {
			t.Errorf("期待枚数 1, 実際の枚数 %d なのだ", len(records))
		}
	})
}

func TestParseDeck_Labels(t *testing.T) {
	p := NewSlideBlockParser()

	t.Run("見出しが読めないチャンクは Slide_n に落ちるのだ", func(t *testing.T) {
		raw := "何の見出しも無いのだ\n**visual:** a forgotten cellar\n**The slide should have this exact text (don't add any other text):**\n**Cellar**\n"
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if records[0].Label != "Slide_1" {
			t.Errorf("期待値 Slide_1, 実際の値 %q なのだ", records[0].Label)
		}
	})

	t.Run("フォールバックの番号は振り直し後の連番なのだ", func(t *testing.T) {
		raw := "visual の無い先頭チャンクなのだ\n---\n" +
			"見出しなし\n**visual:** a brass lantern\nbody\n"
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		// 生き残り1枚目なので Slide_1（元の位置の2ではない）
		if records[0].Label != "Slide_1" {
			t.Errorf("期待値 Slide_1, 実際の値 %q なのだ", records[0].Label)
		}
	})

	t.Run("ハイフン区切りの見出しも読めるのだ", func(t *testing.T) {
		raw := "**Slide 4 - April**\n**visual:** spring rain on cobblestones\nbody\n"
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if records[0].Label != "April" {
			t.Errorf("期待値 April, 実際の値 %q なのだ", records[0].Label)
		}
	})

	t.Run("本文側の強調行をラベルと誤認しないのだ", func(t *testing.T) {
		raw := "### 🏷️ **Slide 2 – February**\n**visual:** a heart-shaped shield\n**The slide should have this exact text (don't add any other text):**\n**February – Cursed Gift**\n*Romance, but armored*\n"
		records, err := p.ParseDeck(raw, smallTemplate(13))
		if err != nil {
			t.Fatalf("解析に失敗したのだ: %v", err)
		}
		if records[0].Label != "February" {
			t.Errorf("期待値 February, 実際の値 %q なのだ", records[0].Label)
		}
		if !strings.Contains(records[0].DisplayText, "February – Cursed Gift") {
			t.Errorf("本文が欠けているのだ: %q", records[0].DisplayText)
		}
	})
}
