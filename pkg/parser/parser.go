package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/domain"
)

// chunkDelimiter は生成AIに指示しているスライド区切りです。
const chunkDelimiter = "---"

// Parser は生成AIのデッキ出力を解析するためのインターフェースなのだ。
type Parser interface {
	// ParseDeck は生のMarkdownテキストを受け取り、構造化されたスライドのリストを返すのだ。
	ParseDeck(raw string, tpl domain.Template) ([]domain.SlideRecord, error)
}

// SlideBlockParser は "---" 区切りのチャンクを SlideRecord に変換する構造体です。
type SlideBlockParser struct {
}

// NewSlideBlockParser は SlideBlockParser を初期化するのだ。
func NewSlideBlockParser() *SlideBlockParser {
	return &SlideBlockParser{}
}

// ParseDeck は生成AIの出力をチャンクに分割し、有効なチャンクだけを拾って
// 1 から始まる連番を振り直したスライドのリストを返します。
// 不正なチャンクのスキップや期待枚数超過の切り捨ては警告ログに留め、
// 有効なスライドがひとつも無かった場合のみエラーを返します。
func (p *SlideBlockParser) ParseDeck(raw string, tpl domain.Template) ([]domain.SlideRecord, error) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	chunks := strings.Split(normalized, chunkDelimiter)

	records := make([]domain.SlideRecord, 0, tpl.SlideCount)
	leftover := 0

	for i, chunk := range chunks {
		// 期待枚数に達したら残りは数えるだけにするのだ
		if len(records) >= tpl.SlideCount {
			if strings.TrimSpace(chunk) != "" {
				leftover++
			}
			continue
		}

		record, ok := p.parseChunk(i+1, chunk)
		if !ok {
			continue
		}

		// 生き残ったチャンクに連番を振り直す（欠番は作らない）
		record.Ordinal = len(records) + 1
		if record.Label == "" {
			record.Label = fmt.Sprintf("Slide_%d", record.Ordinal)
		}
		records = append(records, record)
	}

	if leftover > 0 {
		slog.Warn("期待枚数を超えたチャンクを切り捨てました",
			"expected", tpl.SlideCount,
			"discarded", leftover,
		)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("有効なスライドチャンクが見つかりませんでした")
	}

	if len(records) < tpl.SlideCount {
		slog.Warn("期待枚数より少ないスライドしか得られませんでした",
			"expected", tpl.SlideCount,
			"actual", len(records),
		)
	}

	return records, nil
}

// parseChunk は1チャンクを解析して SlideRecord を返します。
// visual 指示を持たないチャンクは無効としてスキップします（ok=false）。
// Ordinal は呼び出し側で振り直すため、ここでは設定しません。
func (p *SlideBlockParser) parseChunk(index int, chunk string) (domain.SlideRecord, bool) {
	trimmed := strings.TrimSpace(chunk)
	if trimmed == "" {
		// 末尾区切りなどで生じる空チャンクは無言で読み飛ばすのだ
		return domain.SlideRecord{}, false
	}

	loc := VisualRegex.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		slog.Warn("visual 指示の無いチャンクをスキップします", "chunk", index)
		return domain.SlideRecord{}, false
	}

	visual := strings.TrimSpace(trimmed[loc[2]:loc[3]])
	if visual == "" {
		slog.Warn("visual 指示が空のチャンクをスキップします", "chunk", index)
		return domain.SlideRecord{}, false
	}

	// ラベルは visual マーカーより前の見出し領域からだけ拾うのだ。
	// 本文側の "**February – Cursed Gift**" のような行を誤って拾わないためなのだ。
	label := ""
	if m := SlideHeaderRegex.FindStringSubmatch(trimmed[:loc[0]]); m != nil {
		label = strings.Trim(m[1], "* \t")
	}

	// 本文は visual 行の後ろ全部。先頭の指示行は取り除く。
	rest := trimmed[loc[1]:]
	rest = ExactTextHeaderRegex.ReplaceAllString(rest, "")
	displayText := strings.TrimSpace(rest)
	if displayText == "" {
		slog.Warn("本文が空のスライドです", "chunk", index, "label", label)
	}

	return domain.SlideRecord{
		Label:       label,
		Visual:      visual,
		DisplayText: displayText,
	}, true
}
