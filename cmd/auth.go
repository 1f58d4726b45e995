package cmd

import (
	"fmt"

	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/pkg/gdrive"

	"github.com/spf13/cobra"
)

// authCmd は、Google Drive のOAuth認可フローを事前に済ませるためのコマンドなのだ。
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Google Drive の認可を済ませてトークンを保存するのだ。",
	Long: `認可URLをブラウザで開き、表示されたコードを貼り付けることで
トークンファイルを作成するのだ。一度済ませておけば、以後の --upload は
保存済みトークンだけで動くのだよ。`,
	RunE: authCommand,
}

func authCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.LoadConfig()

	if _, err := gdrive.NewOAuthClient(ctx, cfg.DriveCredentialsFile, cfg.DriveTokenFile); err != nil {
		return fmt.Errorf("Drive認可に失敗したのだ: %w", err)
	}

	fmt.Printf("✅ Drive認可が完了したのだ（トークン: %s）。--upload で使えるのだよ！\n", cfg.DriveTokenFile)
	return nil
}
