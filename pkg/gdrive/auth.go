package gdrive

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
)

// NewOAuthClient は認可済みのHTTPクライアントを構築します。
// credentialsFile は OAuth クライアントシークレット(JSON)、tokenFile は
// 取得済みトークンのキャッシュです。キャッシュが無い・読めない場合は
// 対話フロー（認可URLの表示とコード入力）でトークンを取得して保存します。
// クライアントシークレットが読めない場合は設定エラーとして即座に失敗します。
func NewOAuthClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("認証情報 '%s' を読めませんでした: %w", credentialsFile, err)
	}

	config, err := google.ConfigFromJSON(b, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("認証情報の解析に失敗しました: %w", err)
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}

	return config.Client(ctx, tok), nil
}

// tokenFromFile はキャッシュ済みトークンを読み込みます。
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("トークンファイル '%s' の解析に失敗しました: %w", path, err)
	}
	return tok, nil
}

// getTokenFromWeb は対話フローでトークンを取得します。
// 認可URLをユーザーに提示し、リダイレクト先に表示されるコードを標準入力から受け取ります。
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("🔑 ブラウザで以下のURLを開いて、アプリを認可してください:")
	fmt.Println(authURL)
	fmt.Print("表示された認可コードを貼り付けてください: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("認可コードの読み取りに失敗しました: %w", err)
	}
	authCode := strings.TrimSpace(line)
	if authCode == "" {
		return nil, fmt.Errorf("認可コードが入力されませんでした")
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("認可コードの交換に失敗しました: %w", err)
	}
	return tok, nil
}

// saveToken はトークンをキャッシュファイルに保存します。
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("トークンファイル '%s' を作成できませんでした: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("トークンの保存に失敗しました: %w", err)
	}
	fmt.Printf("💾 トークンを保存しました: %s\n", path)
	return nil
}
