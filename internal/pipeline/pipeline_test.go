package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/internal/runner"
	"github.com/shouni/go-carousel-kit/pkg/domain"
	"github.com/shouni/go-carousel-kit/pkg/imaging"
	"github.com/shouni/go-carousel-kit/pkg/ledger"
	"github.com/shouni/go-carousel-kit/pkg/parser"
	"github.com/shouni/go-carousel-kit/pkg/prompts"
	"github.com/shouni/go-carousel-kit/pkg/publisher"

	"golang.org/x/time/rate"
)

// diskWriter はローカルディスクへ直接書き込むテスト用のOutputWriterなのだ。
type diskWriter struct{}

func (diskWriter) Write(_ context.Context, path string, r io.Reader, _ string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// newOfflinePipeline は、外部APIを一切呼ばない構成のPipelineを組み立てるのだ。
func newOfflinePipeline(t *testing.T, outputDir, ledgerFile string) *Pipeline {
	t.Helper()

	opts := config.RunOptions{
		OutputDir:  outputDir,
		LedgerFile: ledgerFile,
		Variants:   2,
		Offline:    true,
	}
	cfg := &config.Config{Options: opts}

	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("プロンプトビルダーの構築に失敗したのだ: %v", err)
	}

	writer := diskWriter{}
	return &Pipeline{
		cfg:           cfg,
		scriptRunner:  runner.NewDeckScriptRunner(*cfg, pb, nil, true),
		imageRunner:   runner.NewSlideImageRunner(nil, prompts.NewImagePromptBuilder(""), writer, opts.Variants, true),
		publishRunner: runner.NewDefaultPublishRunner(opts, publisher.NewDeckPublisher(writer, nil), nil, ""),
		slideParser:   parser.NewSlideBlockParser(),
		led:           ledger.New(ledgerFile),
		limiter:       rate.NewLimiter(rate.Every(time.Millisecond), 1),
		prompter:      bufio.NewReader(strings.NewReader("")),
	}
}

func TestPipeline_ExecuteThemeOffline(t *testing.T) {
	tmp := t.TempDir()
	p := newOfflinePipeline(t, tmp, filepath.Join(tmp, "processed_themes.txt"))

	theme := "dnd items by month"
	if err := p.ExecuteTheme(context.Background(), theme); err != nil {
		t.Fatalf("オフライン実行に失敗したのだ: %v", err)
	}

	deckDir := filepath.Join(tmp, "dnd_items_by_month")

	t.Run("マニフェストに全スライドが揃うのだ", func(t *testing.T) {
		f, err := os.Open(filepath.Join(deckDir, "slides.csv"))
		if err != nil {
			t.Fatalf("マニフェストが開けないのだ: %v", err)
		}
		defer f.Close()

		rows, err := publisher.ReadManifest(f)
		if err != nil {
			t.Fatalf("マニフェストの読み戻しに失敗したのだ: %v", err)
		}
		if len(rows) != 13 {
			t.Fatalf("期待行数 13, 実際の行数 %d なのだ", len(rows))
		}
		for _, row := range rows {
			if len(row.ImagePaths) != 2 {
				t.Fatalf("スライド %d の画像列数が %d なのだ", row.Ordinal, len(row.ImagePaths))
			}
			for _, path := range row.ImagePaths {
				if path == domain.GenerationFailed {
					t.Errorf("スライド %d にセンチネルが混ざっているのだ", row.Ordinal)
				}
			}
		}
	})

	t.Run("プレースホルダー画像がディスクに揃うのだ", func(t *testing.T) {
		files, err := filepath.Glob(filepath.Join(deckDir, "images", "*.png"))
		if err != nil {
			t.Fatalf("画像の列挙に失敗したのだ: %v", err)
		}
		if len(files) != 26 {
			t.Fatalf("期待枚数 26, 実際の枚数 %d なのだ", len(files))
		}

		data, err := os.ReadFile(files[0])
		if err != nil {
			t.Fatalf("画像が読めないのだ: %v", err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("PNGとしてデコードできないのだ: %v", err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != imaging.DefaultWidth || bounds.Dy() != imaging.DefaultHeight {
			t.Errorf("期待サイズ %dx%d, 実際のサイズ %dx%d なのだ",
				imaging.DefaultWidth, imaging.DefaultHeight, bounds.Dx(), bounds.Dy())
		}
	})

	t.Run("成功したテーマは台帳に記録されるのだ", func(t *testing.T) {
		processed, err := p.led.Load()
		if err != nil {
			t.Fatalf("台帳の読み込みに失敗したのだ: %v", err)
		}
		if !ledger.Contains(processed, theme) {
			t.Error("台帳にテーマが記録されていないのだ")
		}
	})

	t.Run("2回目の計画は空になるのだ", func(t *testing.T) {
		processed, err := p.led.Load()
		if err != nil {
			t.Fatalf("台帳の読み込みに失敗したのだ: %v", err)
		}
		if plan := planThemes([]string{theme}, processed, 0); len(plan) != 0 {
			t.Errorf("期待件数 0, 実際の件数 %d なのだ", len(plan))
		}
	})
}
