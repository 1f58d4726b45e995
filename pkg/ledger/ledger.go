package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Ledger は処理済みテーマを1行1テーマで記録する台帳です。
// テーマのパイプライン全体（原稿生成・解析・全画像・マニフェスト）が
// 成功したときだけ追記され、再実行時のスキップ判定に使われます。
type Ledger struct {
	path string
}

// New は指定パスの台帳を返します。ファイルはまだ存在しなくて構いません。
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path は台帳ファイルのパスを返します。
func (l *Ledger) Path() string {
	return l.path
}

// Load は台帳を読み込み、処理済みテーマの集合を返します。
// ファイルが無い場合は空集合を返し、エラーにはしません（初回実行）。
func (l *Ledger) Load() (map[string]struct{}, error) {
	processed := make(map[string]struct{})

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return processed, nil
		}
		return nil, fmt.Errorf("台帳 '%s' を開けませんでした: %w", l.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		theme := strings.TrimSpace(scanner.Text())
		if theme == "" {
			continue
		}
		processed[theme] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("台帳 '%s' の読み込みに失敗しました: %w", l.path, err)
	}

	return processed, nil
}

// Contains は処理済み集合にテーマが含まれるかを返します。
func Contains(processed map[string]struct{}, theme string) bool {
	_, ok := processed[theme]
	return ok
}

// Append はテーマを台帳の末尾に1行追記します。
func (l *Ledger) Append(theme string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("台帳 '%s' を追記用に開けませんでした: %w", l.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, theme); err != nil {
		return fmt.Errorf("台帳 '%s' への追記に失敗しました: %w", l.path, err)
	}
	return nil
}
