package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shouni/go-carousel-kit/pkg/asset"
	"github.com/shouni/go-carousel-kit/pkg/domain"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string // 全テーマ共通の出力ベースディレクトリ（ローカル or gs://）
	Variants  int    // マニフェストの画像列数
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	DeckDir      string // テーマごとの出力ディレクトリ
	ManifestPath string // 生成された slides.csv のパス
	MarkdownPath string // 生成されたプレビュー Markdown のパス
	HTMLPath     string // 生成された HTML のパス（変換を行わない構成では空）
}

// DeckPublisher は成果物の永続化とフォーマット変換を担います。
type DeckPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewDeckPublisher creates and returns a new instance of DeckPublisher with the specified writer and HTML runner.
// htmlRunner が nil の場合、HTML変換はスキップされます。
func NewDeckPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *DeckPublisher {
	return &DeckPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish はマニフェストCSVの書き出しとプレビューの生成を実行するのだ！
// マニフェストの書き込み失敗はエラーとして返し、プレビュー（Markdown/HTML）の
// 失敗は警告ログに留めて処理を続行する。画像ファイル自体は生成段階で
// 書き込み済みであることを前提とする。
func (p *DeckPublisher) Publish(ctx context.Context, deck domain.Deck, assets domain.Assets, opts Options) (PublishResult, error) {
	result := PublishResult{}

	// 1. テーマごとの出力ディレクトリを解決
	deckDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.ThemeDirName(deck.Theme))
	if err != nil {
		return result, fmt.Errorf("出力ディレクトリの解決に失敗しました: %w", err)
	}
	result.DeckDir = deckDir

	// 2. マニフェストCSVの書き出し
	manifestPath, err := asset.ResolveOutputPath(deckDir, asset.DefaultManifestName)
	if err != nil {
		return result, fmt.Errorf("マニフェストパスの解決に失敗しました: %w", err)
	}

	var csvBuf bytes.Buffer
	records := BuildManifestRecords(deck.Theme, assets, opts.Variants)
	if err := WriteManifest(&csvBuf, records); err != nil {
		return result, err
	}
	if err := p.writer.Write(ctx, manifestPath, bytes.NewReader(csvBuf.Bytes()), "text/csv; charset=utf-8"); err != nil {
		return result, fmt.Errorf("マニフェストの書き込みに失敗しました: %w", err)
	}
	result.ManifestPath = manifestPath

	// 3. プレビューMarkdownの構築と書き出し（ベストエフォート）
	content := buildMarkdown(deck, assets)
	markdownPath, err := asset.ResolveOutputPath(deckDir, asset.DefaultPreviewName)
	if err != nil {
		slog.WarnContext(ctx, "プレビューパスの解決に失敗しました", "error", err)
		return result, nil
	}
	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		slog.WarnContext(ctx, "プレビューMarkdownの書き込みに失敗しました", "path", markdownPath, "error", err)
		return result, nil
	}
	result.MarkdownPath = markdownPath

	// 4. HTML変換と保存（ベストエフォート）
	if p.htmlRunner != nil {
		slog.Info("Converting deck preview to HTML", "title", deck.Title())
		htmlBuffer, err := p.htmlRunner.Run(ctx, deck.Title(), []byte(content))
		if err != nil {
			slog.WarnContext(ctx, "HTMLの変換に失敗しました", "error", err)
			return result, nil
		}

		htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			slog.WarnContext(ctx, "HTMLの書き込みに失敗しました", "path", htmlPath, "error", err)
			return result, nil
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}
