package gdrive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// folderMimeType は Drive 上のフォルダを表す MIME タイプです。
const folderMimeType = "application/vnd.google-apps.folder"

// Uploader は Google Drive への成果物アップロードを担います。
type Uploader struct {
	srv *drive.Service
}

// NewUploader は認可フローを経て Drive サービスを初期化します。
func NewUploader(ctx context.Context, credentialsFile, tokenFile string) (*Uploader, error) {
	client, err := NewOAuthClient(ctx, credentialsFile, tokenFile)
	if err != nil {
		return nil, err
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("Driveサービスの初期化に失敗しました: %w", err)
	}
	return &Uploader{srv: srv}, nil
}

// EnsureFolder は親フォルダ直下から名前でフォルダを探し、
// 見つかればそのID、無ければ作成して新しいIDを返します。
// 同名フォルダが複数ある場合は最初の1件を使います。
func (u *Uploader) EnsureFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := u.srv.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("フォルダ '%s' の検索に失敗しました: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
	}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := u.srv.Files.Create(meta).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("フォルダ '%s' の作成に失敗しました: %w", name, err)
	}
	return created.Id, nil
}

// UploadFile はローカルファイルを指定フォルダにアップロードし、ファイルIDを返します。
func (u *Uploader) UploadFile(ctx context.Context, folderID, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("アップロード対象 '%s' を開けませんでした: %w", localPath, err)
	}
	defer f.Close()

	meta := &drive.File{
		Name: filepath.Base(localPath),
	}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := u.srv.Files.Create(meta).Media(f).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("'%s' のアップロードに失敗しました: %w", localPath, err)
	}
	return created.Id, nil
}

// escapeQuery は Drive の検索クエリ内で使う文字列リテラルをエスケープします。
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
