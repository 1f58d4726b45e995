package imaging

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestRenderPlaceholder(t *testing.T) {
	t.Run("指定サイズの有効なPNGが返るのだ", func(t *testing.T) {
		data, err := RenderPlaceholder("February – Cursed Gift", DefaultWidth, DefaultHeight)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}

		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("PNGとしてデコードできないのだ: %v", err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != DefaultWidth || bounds.Dy() != DefaultHeight {
			t.Errorf("期待サイズ %dx%d, 実際のサイズ %dx%d なのだ",
				DefaultWidth, DefaultHeight, bounds.Dx(), bounds.Dy())
		}
	})

	t.Run("テキストが実際に描かれているのだ", func(t *testing.T) {
		data, err := RenderPlaceholder("HELLO DUNGEON", 320, 480)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("PNGとしてデコードできないのだ: %v", err)
		}

		// 背景一色ではなく、文字色のピクセルが存在するはず
		found := false
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y && !found; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				if r == 0 && g == 0 && b == 0 {
					found = true
					break
				}
			}
		}
		if !found {
			t.Error("文字のピクセルが見つからないのだ")
		}
	})

	t.Run("空テキストでも背景だけの画像が返るのだ", func(t *testing.T) {
		data, err := RenderPlaceholder("", 100, 150)
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Fatalf("PNGとしてデコードできないのだ: %v", err)
		}
	})

	t.Run("不正なサイズはエラーなのだ", func(t *testing.T) {
		if _, err := RenderPlaceholder("x", 0, 100); err == nil {
			t.Error("幅0でエラーが返らなかったのだ")
		}
		if _, err := RenderPlaceholder("x", 100, -1); err == nil {
			t.Error("負の高さでエラーが返らなかったのだ")
		}
	})
}

func TestWrapText(t *testing.T) {
	face := basicfont.Face7x13

	t.Run("幅に収まるよう単語単位で折り返すのだ", func(t *testing.T) {
		lines := wrapText("one two three four five six seven eight nine ten", face, 100)
		if len(lines) < 2 {
			t.Fatalf("折り返されていないのだ: %v", lines)
		}
		for _, line := range lines {
			// 7px/文字のフォントなので 100px には14文字程度まで
			if len(line) > 14 {
				t.Errorf("行が幅を超えているのだ: %q", line)
			}
		}
	})

	t.Run("改行は段落区切りとして保持されるのだ", func(t *testing.T) {
		lines := wrapText("title line\nsubtitle line", face, 500)
		if len(lines) != 2 {
			t.Fatalf("期待行数 2, 実際の行数 %d なのだ: %v", len(lines), lines)
		}
		if lines[0] != "title line" || lines[1] != "subtitle line" {
			t.Errorf("段落が崩れているのだ: %v", lines)
		}
	})

	t.Run("長すぎる単語は強制的に刻むのだ", func(t *testing.T) {
		long := strings.Repeat("a", 100)
		lines := wrapText(long, face, 70)
		if len(lines) < 2 {
			t.Fatalf("強制折り返しが働いていないのだ: %v", lines)
		}
		total := 0
		for _, line := range lines {
			total += len(line)
		}
		if total != 100 {
			t.Errorf("文字が欠けているのだ。期待 100, 実際 %d", total)
		}
	})

	t.Run("空テキストは空リストなのだ", func(t *testing.T) {
		if lines := wrapText("   ", face, 100); len(lines) != 0 {
			t.Errorf("期待行数 0, 実際 %v なのだ", lines)
		}
	})
}
