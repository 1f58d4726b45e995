package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultWidth / DefaultHeight はプレースホルダーの標準キャンバスです（9:16相当の縦長）。
	DefaultWidth  = 1024
	DefaultHeight = 1536

	// textMargin は左右の余白（px）です。折り返し幅の計算に使います。
	textMargin = 96
)

var (
	backgroundColor = color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF}
	textColor       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// RenderPlaceholder は、画像生成に失敗したスライドの代替として
// 単色背景に表示テキストを載せたPNGを生成します。
// テキストは幅に収まるよう単語単位で折り返し、行ごとに中央揃え、
// ブロック全体を垂直方向の中央に配置します。テキストが空でも背景だけの
// 画像を返します。
func RenderPlaceholder(text string, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("プレースホルダーのサイズが不正です: %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: backgroundColor}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lines := wrapText(text, face, width-2*textMargin)

	if len(lines) > 0 {
		metrics := face.Metrics()
		lineHeight := metrics.Height.Ceil()
		blockHeight := lineHeight * len(lines)

		y := (height-blockHeight)/2 + metrics.Ascent.Ceil()
		for _, line := range lines {
			lineWidth := font.MeasureString(face, line).Ceil()
			x := (width - lineWidth) / 2
			if x < textMargin {
				x = textMargin
			}

			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(textColor),
				Face: face,
				Dot:  fixed.P(x, y),
			}
			d.DrawString(line)
			y += lineHeight
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("プレースホルダーのPNGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapText はテキストを maxWidth(px) に収まる行のリストに変換します。
// 入力の改行は段落区切りとして保持し、段落内は単語単位で詰め込みます。
// 1単語で幅を超える場合だけ文字単位で強制的に折り返します。
func wrapText(text string, face font.Face, maxWidth int) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if font.MeasureString(face, candidate).Ceil() <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			// 単語単体が幅を超えるときは文字単位で刻む（バイトではなくルーン境界で）
			runes := []rune(word)
			for len(runes) > 0 && font.MeasureString(face, string(runes)).Ceil() > maxWidth {
				cut := len(runes)
				for cut > 1 && font.MeasureString(face, string(runes[:cut])).Ceil() > maxWidth {
					cut--
				}
				lines = append(lines, string(runes[:cut]))
				runes = runes[cut:]
			}
			current = string(runes)
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}
