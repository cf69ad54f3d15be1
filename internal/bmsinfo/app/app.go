// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-bms/internal/bmsinfo/config"
	"github.com/shiroemons/go-bms/internal/bmsinfo/fileutil"
	"github.com/shiroemons/go-bms/internal/bmsinfo/interfaces"
	"github.com/shiroemons/go-bms/pkg/bms"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config *config.Config
	logger *config.DebugLogger
	fs     interfaces.FileSystem
	out    io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Output     io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトの出力先を設定
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &App{
		config: cfg,
		logger: config.NewDebugLogger(cfg.DebugMode),
		fs:     fs,
		out:    out,
	}
}

// fileReport は1ファイル分の解析結果です
type fileReport struct {
	path     string
	encoding bms.Encoding
	header   *bms.Header
	diags    []bms.Diagnostic
	missing  []missingResource
	err      error
}

// missingResource は実体の見つからなかった参照リソースです
type missingResource struct {
	family bms.Family
	id     bms.Identifier
	name   string
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	targets, err := a.collectTargets()
	if err != nil {
		return err
	}

	var reports []fileReport
	for _, path := range targets {
		// ファイルごとにキャンセルを確認する
		if err := ctx.Err(); err != nil {
			return err
		}
		a.logger.Printf("解析中: %s\n", path)
		reports = append(reports, a.processFile(path))
	}

	// 出力の生成
	var output string
	if a.config.JSONOutput {
		output = a.renderJSON(reports)
	} else {
		output = a.renderText(reports)
	}

	// 出力先の決定
	if a.config.OutputPath != "" {
		if err := fileutil.SaveToFile(a.config.OutputPath, output); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFile, err)
		}
		a.logger.Printf("保存しました: %s\n", a.config.OutputPath)
		return nil
	}

	_, err = io.WriteString(a.out, output)
	return err
}

// collectTargets は引数から解析対象のBMSファイル一覧を組み立てます
func (a *App) collectTargets() ([]string, error) {
	if len(a.config.Paths) == 0 {
		return nil, ErrNoInput
	}

	var targets []string
	for _, path := range a.config.Paths {
		info, err := a.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
		}
		if !info.IsDir() {
			targets = append(targets, path)
			continue
		}
		found, err := fileutil.FindBmsFiles(a.fs, path)
		if err != nil {
			return nil, err
		}
		targets = append(targets, found...)
	}

	if len(targets) == 0 {
		return nil, ErrNoBmsFiles
	}
	return targets, nil
}

// processFile は1ファイルを解析してレポートを作ります。
// 文字コード判別失敗などのエラーもレポートに記録し、他のファイルの
// 解析は継続します。
func (a *App) processFile(path string) fileReport {
	report := fileReport{path: path}

	data, err := a.fs.ReadFile(path)
	if err != nil {
		report.err = fmt.Errorf("%w: %w", ErrReadFile, err)
		return report
	}

	text, enc, err := bms.DecodeText(data)
	if err != nil {
		report.err = fmt.Errorf("%w: %w", ErrParseHeader, err)
		return report
	}
	report.encoding = enc

	report.header, report.diags = bms.ParseHeaderText(text)

	if a.config.CheckResources {
		report.missing = a.checkResources(filepath.Dir(path), report.header)
	}

	return report
}

// checkResources は参照されているWAV/BMPの実体を候補拡張子の優先順で探し、
// どの候補も存在しないものを返します
func (a *App) checkResources(dir string, header *bms.Header) []missingResource {
	var missing []missingResource

	wav := header.Wav()
	for _, id := range wav.IDs() {
		name, _ := wav.Lookup(id)
		if name == "" {
			continue
		}
		if _, ok := fileutil.FindResource(a.fs, dir, bms.AudioCandidates(name)); !ok {
			missing = append(missing, missingResource{family: bms.FamilyWav, id: id, name: name})
		}
	}

	bmp := header.Bmp()
	for _, id := range bmp.IDs() {
		name, _ := bmp.Lookup(id)
		if name == "" {
			continue
		}
		if _, ok := fileutil.FindResource(a.fs, dir, bms.ImageCandidates(name)); !ok {
			missing = append(missing, missingResource{family: bms.FamilyBmp, id: id, name: name})
		}
	}

	return missing
}

// renderText はテキスト形式のレポートを生成します
func (a *App) renderText(reports []fileReport) string {
	var b strings.Builder

	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "File: %s\n", r.path)
		if r.err != nil {
			fmt.Fprintf(&b, "  エラー: %v\n", r.err)
			continue
		}

		h := r.header
		fmt.Fprintf(&b, "  Encoding:   %s\n", r.encoding)
		fmt.Fprintf(&b, "  Title:      %s\n", h.Title())
		if h.Subtitle() != "" {
			fmt.Fprintf(&b, "  Subtitle:   %s\n", h.Subtitle())
		}
		fmt.Fprintf(&b, "  Artist:     %s\n", h.Artist())
		if h.Subartist() != "" {
			fmt.Fprintf(&b, "  Subartist:  %s\n", h.Subartist())
		}
		if h.Maker() != "" {
			fmt.Fprintf(&b, "  Maker:      %s\n", h.Maker())
		}
		fmt.Fprintf(&b, "  Genre:      %s\n", h.Genre())
		fmt.Fprintf(&b, "  Player:     %s\n", h.Player())
		fmt.Fprintf(&b, "  BPM:        %g\n", h.BPM())
		fmt.Fprintf(&b, "  PlayLevel:  %d\n", h.PlayLevel())
		fmt.Fprintf(&b, "  Difficulty: %s\n", h.Difficulty())
		fmt.Fprintf(&b, "  Rank:       %s (±%gms)\n", h.Rank(), h.NewJudgeResolver(nil).BaseWindow())
		fmt.Fprintf(&b, "  Total:      %g\n", h.Total())
		fmt.Fprintf(&b, "  Tables:     WAV=%d BMP=%d BPM=%d STOP=%d EXRANK=%d\n",
			h.Wav().Len(), h.Bmp().Len(), h.ExtendedBPM().Len(), h.Stop().Len(), h.ExRank().Len())

		if len(r.missing) > 0 {
			b.WriteString("  Missing resources:\n")
			for _, m := range r.missing {
				fmt.Fprintf(&b, "    #%s%s %s\n", m.family, m.id, m.name)
			}
		}

		if len(r.diags) > 0 {
			b.WriteString("  Diagnostics:\n")
			for _, d := range r.diags {
				fmt.Fprintf(&b, "    %s\n", d)
			}
		}
	}

	return b.String()
}
