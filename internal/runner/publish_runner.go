package runner

import (
	"context"
	"log/slog"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/pkg/asset"
	"github.com/shouni/go-carousel-kit/pkg/domain"
	"github.com/shouni/go-carousel-kit/pkg/gdrive"
	"github.com/shouni/go-carousel-kit/pkg/publisher"
)

// PublishRunner はデッキ成果物のパブリッシュ処理のインターフェースです。
type PublishRunner interface {
	Run(ctx context.Context, deck domain.Deck, assets domain.Assets) (publisher.PublishResult, error)
}

// DefaultPublishRunner は pkg/publisher と pkg/gdrive を利用した標準実装です。
// uploader が nil の場合、Google Drive へのアップロードはスキップされます。
type DefaultPublishRunner struct {
	options        config.RunOptions
	publisher      *publisher.DeckPublisher
	uploader       *gdrive.Uploader
	parentFolderID string
}

func NewDefaultPublishRunner(
	options config.RunOptions,
	pub *publisher.DeckPublisher,
	up *gdrive.Uploader,
	parentFolderID string,
) *DefaultPublishRunner {
	return &DefaultPublishRunner{
		options:        options,
		publisher:      pub,
		uploader:       up,
		parentFolderID: parentFolderID,
	}
}

func (pr *DefaultPublishRunner) Run(ctx context.Context, deck domain.Deck, assets domain.Assets) (publisher.PublishResult, error) {
	// internal/config の値を pkg/publisher 用の構造体に詰め替えます。
	opts := publisher.Options{
		OutputDir: pr.options.OutputDir,
		Variants:  pr.options.Variants,
	}

	result, err := pr.publisher.Publish(ctx, deck, assets, opts)
	if err != nil {
		return result, err
	}

	if pr.uploader != nil {
		pr.uploadDeck(ctx, deck, assets, result)
	}
	return result, nil
}

// uploadDeck はマニフェストと生成画像をテーマ名のDriveフォルダへアップロードするのだ。
// アップロードはベストエフォートで、失敗はログに残して飛ばすだけなのだ。
func (pr *DefaultPublishRunner) uploadDeck(ctx context.Context, deck domain.Deck, assets domain.Assets, result publisher.PublishResult) {
	folderID, err := pr.uploader.EnsureFolder(ctx, asset.ThemeDirName(deck.Theme), pr.parentFolderID)
	if err != nil {
		slog.WarnContext(ctx, "Driveフォルダの解決に失敗したのだ", "theme", deck.Theme, "error", err)
		return
	}

	targets := []string{result.ManifestPath}
	if result.MarkdownPath != "" {
		targets = append(targets, result.MarkdownPath)
	}
	if result.HTMLPath != "" {
		targets = append(targets, result.HTMLPath)
	}
	for _, a := range assets {
		for _, p := range a.ImagePaths {
			if p != domain.GenerationFailed {
				targets = append(targets, p)
			}
		}
	}

	uploaded := 0
	for _, target := range targets {
		if _, err := pr.uploader.UploadFile(ctx, folderID, target); err != nil {
			slog.WarnContext(ctx, "Driveへのアップロードに失敗したのだ", "file", target, "error", err)
			continue
		}
		uploaded++
	}
	slog.InfoContext(ctx, "Driveへのアップロードが完了したのだ",
		"theme", deck.Theme, "folder_id", folderID, "uploaded", uploaded, "total", len(targets))
}
