package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shouni/go-carousel-kit/internal/builder"
	"github.com/shouni/go-carousel-kit/internal/config"
	"github.com/shouni/go-carousel-kit/internal/runner"
	"github.com/shouni/go-carousel-kit/pkg/asset"
	"github.com/shouni/go-carousel-kit/pkg/domain"
	"github.com/shouni/go-carousel-kit/pkg/ledger"
	"github.com/shouni/go-carousel-kit/pkg/parser"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"golang.org/x/time/rate"
)

// Pipeline は、テーマを1件ずつカルーセルデッキに変換していく司令塔なのだ。
// すべてのフェーズを直列で回すので、APIのクォータにも優しいのだよ。
type Pipeline struct {
	cfg           *config.Config
	appCtx        *builder.AppContext
	scriptRunner  runner.ScriptRunner
	imageRunner   runner.ImageRunner
	publishRunner runner.PublishRunner
	slideParser   parser.Parser
	led           *ledger.Ledger
	limiter       *rate.Limiter
	prompter      *bufio.Reader
}

// New は、設定から全フェーズのRunnerを組み立てたPipelineを返すのだ。
// 初期化中のエラーはすべて設定ミス扱いで、そのまま致命的エラーになるのだ。
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return nil, err
	}

	scriptRunner, err := builder.BuildScriptRunner(appCtx)
	if err != nil {
		return nil, fmt.Errorf("ScriptRunnerの構築に失敗したのだ: %w", err)
	}
	imageRunner, err := builder.BuildImageRunner(appCtx)
	if err != nil {
		return nil, fmt.Errorf("ImageRunnerの構築に失敗したのだ: %w", err)
	}
	publishRunner, err := builder.BuildPublishRunner(ctx, appCtx)
	if err != nil {
		return nil, fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	return &Pipeline{
		cfg:           cfg,
		appCtx:        appCtx,
		scriptRunner:  scriptRunner,
		imageRunner:   imageRunner,
		publishRunner: publishRunner,
		slideParser:   parser.NewSlideBlockParser(),
		led:           ledger.New(cfg.Options.LedgerFile),
		limiter:       rate.NewLimiter(rate.Every(config.DefaultThemeInterval), 1),
		prompter:      bufio.NewReader(os.Stdin),
	}, nil
}

// ExecuteBatch は、入力CSVの全テーマをバッチ処理するのだ。
// 台帳に記録済みのテーマは飛ばすので、同じCSVで何度実行しても安全なのだ。
func (p *Pipeline) ExecuteBatch(ctx context.Context) error {
	themes, err := readThemes(ctx, p.appCtx.Reader, p.cfg.Options.InputFile)
	if err != nil {
		return err
	}

	processed, err := p.led.Load()
	if err != nil {
		return fmt.Errorf("台帳 '%s' の読み込みに失敗したのだ: %w", p.led.Path(), err)
	}

	pending := planThemes(themes, processed, 0)
	skipped := len(themes) - len(pending)

	limit := p.cfg.Options.Limit
	if limit == 0 {
		if limit, err = p.promptThemeCap(len(pending)); err != nil {
			return err
		}
	}
	plan := planThemes(themes, processed, limit)

	if len(plan) == 0 {
		fmt.Println("✅ 未処理のテーマはないのだ。全部終わっているのだよ！")
		return nil
	}

	fmt.Printf("🚀 %d 件のテーマを処理するのだ（全 %d 件、処理済み %d 件）\n", len(plan), len(themes), skipped)

	succeeded, failed := 0, 0
	for _, theme := range plan {
		// テーマ間の間隔はレートリミッターで一定に保つのだ
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := p.processTheme(ctx, theme); err != nil {
			slog.ErrorContext(ctx, "テーマの処理に失敗したのだ", "theme", theme, "error", err)
			failed++
			continue
		}
		succeeded++
	}

	fmt.Println("\n📊 ==== バッチ処理のまとめなのだ ====")
	fmt.Printf("   処理対象: %d 件\n", len(plan))
	fmt.Printf("   ✅ 成功: %d 件\n", succeeded)
	fmt.Printf("   ❌ 失敗: %d 件\n", failed)
	fmt.Printf("   ⏭️  スキップ（処理済み）: %d 件\n", skipped)
	return nil
}

// ExecuteTheme は、単一テーマだけを処理するのだ。
// 引数が空のときは対話的にテーマを尋ねるのだよ。
func (p *Pipeline) ExecuteTheme(ctx context.Context, theme string) error {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		var err error
		if theme, err = p.promptTheme(); err != nil {
			return err
		}
	}

	if err := p.processTheme(ctx, theme); err != nil {
		return err
	}

	fmt.Printf("✨ テーマ '%s' の処理が完了したのだ！\n", theme)
	return nil
}

// processTheme は1テーマ分の生成処理なのだ。パニックもここで捕まえてエラーに
// 変換するので、1テーマの暴走がバッチ全体を道連れにすることはないのだ。
func (p *Pipeline) processTheme(ctx context.Context, theme string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("テーマ処理中にパニックが発生したのだ: %v", r)
		}
	}()
	return p.runTheme(ctx, theme)
}

// runTheme は分類 → 原稿生成 → 解析 → 画像生成 → 保存の本流なのだ。
func (p *Pipeline) runTheme(ctx context.Context, theme string) error {
	tpl := domain.ClassifyTheme(theme)
	slog.InfoContext(ctx, "Phase 1: デッキ原稿を生成するのだ...",
		"theme", theme, "template", tpl.Name, "slides", tpl.SlideCount)

	script, err := p.scriptRunner.Run(ctx, theme, tpl)
	if err != nil {
		return err
	}

	records, err := p.slideParser.ParseDeck(script, tpl)
	if err != nil {
		return fmt.Errorf("原稿の解析に失敗したのだ: %w", err)
	}
	deck := domain.Deck{Theme: theme, Template: tpl, Slides: records}

	slog.InfoContext(ctx, "Phase 2: スライド画像を生成するのだ...", "slides", len(records))
	deckDir, err := asset.ResolveOutputPath(p.cfg.Options.OutputDir, asset.ThemeDirName(theme))
	if err != nil {
		return fmt.Errorf("出力ディレクトリの解決に失敗したのだ: %w", err)
	}
	imageDir, err := asset.ResolveOutputPath(deckDir, asset.DefaultImageDir)
	if err != nil {
		return fmt.Errorf("画像ディレクトリの解決に失敗したのだ: %w", err)
	}
	assets, err := p.imageRunner.Run(ctx, deck, imageDir)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Phase 3: 保存と公開を開始するのだ...")
	result, err := p.publishRunner.Run(ctx, deck, assets)
	if err != nil {
		return err
	}

	// 完全成功のときだけ台帳に記録するのだ。センチネルが混ざったテーマは
	// 再実行の候補として残しておくのだよ。
	if n := assets.FailedCount(); n > 0 {
		return fmt.Errorf("画像 %d 枚が生成できなかったのだ", n)
	}
	if err := p.led.Append(theme); err != nil {
		return fmt.Errorf("台帳への記録に失敗したのだ: %w", err)
	}

	slog.InfoContext(ctx, "テーマの処理が完了したのだ", "theme", theme, "manifest", result.ManifestPath)
	return nil
}

// promptThemeCap は、今回処理するテーマ数を対話的に尋ねるのだ。
// 空Enterは「全部」の意味で 0 を返すのだ。
func (p *Pipeline) promptThemeCap(pending int) (int, error) {
	for {
		fmt.Printf("📝 未処理のテーマが %d 件あるのだ。何件処理する？（空Enterで全部）: ", pending)
		line, err := p.prompter.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("対話入力の読み取りに失敗したのだ: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			fmt.Println("⚠️  0以上の整数を入力してほしいのだ")
			continue
		}
		return n, nil
	}
}

// promptTheme は、処理するテーマを対話的に尋ねるのだ。
func (p *Pipeline) promptTheme() (string, error) {
	fmt.Print("📝 生成するテーマを入力してほしいのだ: ")
	line, err := p.prompter.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("対話入力の読み取りに失敗したのだ: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("テーマが入力されなかったのだ")
	}
	return line, nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// オフライン実行ではAIクライアントを初期化しないのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	var aiClient gemini.GenerativeModel
	if !cfg.Options.Offline {
		var err error
		aiClient, err = builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create ai client: %w", err)
		}
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}
