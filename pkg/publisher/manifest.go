package publisher

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/domain"
)

// マニフェストCSVの固定列です。画像列だけバリアント数に応じて増えます。
const (
	colTheme       = "theme"
	colSlideNumber = "slide_number"
	colLabel       = "label"
	colVisual      = "visual_prompt"
	colSlideText   = "slide_text"
	colImagePrefix = "image_file_"
)

// ManifestRow はマニフェストCSVの1行分です。
type ManifestRow struct {
	Theme       string
	Ordinal     int
	Label       string
	Visual      string
	DisplayText string
	ImagePaths  []string // バリアント順。失敗時は domain.GenerationFailed が入る
}

// ManifestHeader はバリアント数に応じたヘッダー行を返します。
func ManifestHeader(variants int) []string {
	header := []string{colTheme, colSlideNumber, colLabel, colVisual, colSlideText}
	for i := 1; i <= variants; i++ {
		header = append(header, fmt.Sprintf("%s%d", colImagePrefix, i))
	}
	return header
}

// BuildManifestRecords はヘッダーを含むCSVレコード群を組み立てます。
// 画像セルはバリアント数に満たない分を空欄で埋めます。
func BuildManifestRecords(theme string, assets domain.Assets, variants int) [][]string {
	records := [][]string{ManifestHeader(variants)}

	for _, a := range assets {
		row := []string{
			theme,
			strconv.Itoa(a.Slide.Ordinal),
			a.Slide.Label,
			a.Slide.Visual,
			a.Slide.DisplayText,
		}
		for i := 0; i < variants; i++ {
			if i < len(a.ImagePaths) {
				row = append(row, a.ImagePaths[i])
			} else {
				row = append(row, "")
			}
		}
		records = append(records, row)
	}

	return records
}

// WriteManifest はレコード群をCSVとして w に書き出します。
// 本文の改行は encoding/csv のクオートで保持されます。
func WriteManifest(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("マニフェストCSVの書き出しに失敗しました: %w", err)
	}
	return nil
}

// ReadManifest はCSVを読み戻して行のリストに復元します。
// ヘッダーの固定列を検証し、image_file_* 列の数からバリアント数を検出します。
func ReadManifest(r io.Reader) ([]ManifestRow, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("マニフェストのヘッダーを読めませんでした: %w", err)
	}

	fixed := []string{colTheme, colSlideNumber, colLabel, colVisual, colSlideText}
	if len(header) < len(fixed) {
		return nil, fmt.Errorf("マニフェストの列が不足しています: %v", header)
	}
	for i, name := range fixed {
		if header[i] != name {
			return nil, fmt.Errorf("マニフェストの列 %d が不正です。期待: %s, 実際: %s", i, name, header[i])
		}
	}

	variants := 0
	for _, name := range header[len(fixed):] {
		if !strings.HasPrefix(name, colImagePrefix) {
			return nil, fmt.Errorf("不明な画像列です: %s", name)
		}
		variants++
	}

	var rows []ManifestRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("マニフェスト行の読み込みに失敗しました: %w", err)
		}

		ordinal, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("slide_number が数値ではありません: %q", record[1])
		}

		row := ManifestRow{
			Theme:       record[0],
			Ordinal:     ordinal,
			Label:       record[2],
			Visual:      record[3],
			DisplayText: record[4],
		}
		for i := 0; i < variants; i++ {
			row.ImagePaths = append(row.ImagePaths, record[len(fixed)+i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
