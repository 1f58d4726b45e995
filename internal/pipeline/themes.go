package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/ledger"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// themeColumn は入力CSVに必須のヘッダ名なのだ。大文字小文字は区別しないのだ。
const themeColumn = "Theme"

// readThemes は入力CSVからテーマ一覧を読み出すのだ。
// ファイルが開けない場合とTheme列が無い場合は致命的エラーなのだ。
func readThemes(ctx context.Context, reader remoteio.InputReader, inputFile string) ([]string, error) {
	rc, err := reader.Open(ctx, inputFile)
	if err != nil {
		return nil, fmt.Errorf("テーマCSV '%s' の読み込みに失敗したのだ: %w", inputFile, err)
	}
	defer rc.Close()

	themes, err := parseThemeCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("テーマCSV '%s' の解析に失敗したのだ: %w", inputFile, err)
	}
	return themes, nil
}

// parseThemeCSV はCSVストリームからテーマを抽出するのだ。
// 空セルは飛ばし、重複は最初の1件だけを残すのだ。
func parseThemeCSV(r io.Reader) ([]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1 // 行ごとの列数ズレは許容するのだ

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("ヘッダ行が読めなかったのだ: %w", err)
	}

	themeIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), themeColumn) {
			themeIdx = i
			break
		}
	}
	if themeIdx < 0 {
		return nil, fmt.Errorf("必須の '%s' 列が見つからないのだ", themeColumn)
	}

	var themes []string
	seen := make(map[string]struct{})
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("データ行の読み取りに失敗したのだ: %w", err)
		}
		if themeIdx >= len(record) {
			continue
		}
		theme := strings.TrimSpace(record[themeIdx])
		if theme == "" {
			continue
		}
		if _, ok := seen[theme]; ok {
			continue
		}
		seen[theme] = struct{}{}
		themes = append(themes, theme)
	}
	return themes, nil
}

// planThemes は、台帳に記録済みのテーマを除外し、上限を適用した処理計画を返すのだ。
// 純粋関数なので、同じ入力には常に同じ計画を返すのだよ。limit が 0 以下なら無制限なのだ。
func planThemes(all []string, processed map[string]struct{}, limit int) []string {
	plan := make([]string, 0, len(all))
	for _, theme := range all {
		if ledger.Contains(processed, theme) {
			continue
		}
		plan = append(plan, theme)
	}
	if limit > 0 && len(plan) > limit {
		plan = plan[:limit]
	}
	return plan
}
