package domain

// GenerationFailed は、画像もプレースホルダーも生成できなかった
// バリアントのパス欄に記録されるセンチネル値です。
const GenerationFailed = "GENERATION_FAILED"

// SlideRecord はカルーセル1枚分のスライド構成を保持します。
// パーサーが生成AIの出力から抽出する最小単位です。
type SlideRecord struct {
	Ordinal     int    `json:"ordinal"`      // 1始まりの連番
	Label       string `json:"label"`        // 見出しラベル（月名、クラス名など）
	Visual      string `json:"visual"`       // 画像生成に渡す描写指示
	DisplayText string `json:"display_text"` // スライドに載せる本文（複数行可）
}

// SlideAsset はスライドと、その生成済み画像パスの組です。
// ImagePaths の要素数は常にバリアント数と一致し、
// 生成に失敗した要素には GenerationFailed が入ります。
type SlideAsset struct {
	Slide      SlideRecord
	ImagePaths []string
}

// Failed は、いずれかのバリアントがセンチネルで終わっている場合に true を返します。
func (a SlideAsset) Failed() bool {
	for _, p := range a.ImagePaths {
		if p == GenerationFailed {
			return true
		}
	}
	return false
}

// Deck は1テーマ分のカルーセル全体を表します。
type Deck struct {
	Theme    string        `json:"theme"`
	Template Template      `json:"template"`
	Slides   []SlideRecord `json:"slides"`
}

// Title はプレビューやログに使う表示用タイトルを返します。
func (d Deck) Title() string {
	if d.Theme == "" {
		return "untitled deck"
	}
	return d.Theme
}

// Assets は []SlideAsset のエイリアスで、集計用のヘルパーを提供します。
type Assets []SlideAsset

// FailedCount はセンチネルを含むスライド数を返します。
func (as Assets) FailedCount() int {
	count := 0
	for _, a := range as {
		if a.Failed() {
			count++
		}
	}
	return count
}
