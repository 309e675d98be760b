// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/text/language"

	"github.com/shiroemons/go-phirks/internal/phirks/archive"
	"github.com/shiroemons/go-phirks/internal/phirks/config"
	"github.com/shiroemons/go-phirks/internal/phirks/fileutil"
	"github.com/shiroemons/go-phirks/internal/phirks/interfaces"
	"github.com/shiroemons/go-phirks/internal/phirks/models"
	"github.com/shiroemons/go-phirks/internal/phirks/report"
	"github.com/shiroemons/go-phirks/pkg/chart"
	"github.com/shiroemons/go-phirks/pkg/record"
	"github.com/shiroemons/go-phirks/pkg/rks"
	"github.com/shiroemons/go-phirks/pkg/summary"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config   *config.Config
	logger   *config.DebugLogger
	loader   interfaces.SaveLoader
	finder   interfaces.SaveFileFinder
	fs       interfaces.FileSystem
	renderer *report.Renderer
	out      io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem     interfaces.FileSystem
	SaveLoader     interfaces.SaveLoader
	SaveFileFinder interfaces.SaveFileFinder
	Logger         *config.DebugLogger
	Output         io.Writer // レポートの出力先（既定は標準出力）
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = config.NewDebugLogger(cfg.DebugMode)
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのSaveLoaderを設定
	var loader interfaces.SaveLoader
	if opts.SaveLoader != nil {
		loader = opts.SaveLoader
	} else {
		loader = archive.NewLoaderWithFactory(logger, fs, &archive.DefaultEntryExtractor{}, &archive.DefaultRecordDecryptor{})
	}

	// デフォルトのSaveFileFinderを設定
	var finder interfaces.SaveFileFinder
	if opts.SaveFileFinder != nil {
		finder = opts.SaveFileFinder
	} else {
		finder = fileutil.NewSaveFileFinderWithFS(fs)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &App{
		config:   cfg,
		logger:   logger,
		loader:   loader,
		finder:   finder,
		fs:       fs,
		renderer: report.NewRenderer(language.Japanese),
		out:      out,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	savePath, err := a.resolveSavePath(ctx)
	if err != nil {
		return err
	}

	extractedData, err := a.processSave(ctx, savePath)
	if err != nil {
		return err
	}

	table, err := a.loadCharts(ctx)
	if err != nil {
		return err
	}

	// 出力の生成
	var output string
	if a.config.SongQuery != "" {
		output, err = a.songOutput(extractedData, table)
	} else {
		output, err = a.b19Output(extractedData, table)
	}
	if err != nil {
		return err
	}

	// ファイルに保存
	if a.config.OutputDir != "" {
		if err := a.saveOutput(extractedData.InputFile, output); err != nil {
			return err
		}
	}

	// 標準出力にも表示
	fmt.Fprint(a.out, output)

	return nil
}

// resolveSavePath は読み込むセーブファイルを決めます
func (a *App) resolveSavePath(ctx context.Context) (string, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if a.config.SavePath != "" {
		return a.config.SavePath, nil
	}

	savePath, err := a.finder.Find()
	if err != nil {
		return "", err
	}
	if savePath == "" {
		return "", ErrNoSaveFile
	}
	a.logger.Printf("自動検出したセーブファイル %s を使用します\n", filepath.Base(savePath))
	return savePath, nil
}

// processSave はセーブファイルとサマリーを読み込みます
func (a *App) processSave(ctx context.Context, savePath string) (models.ExtractedData, error) {
	a.logger.Printf("セーブファイル %s からデータを読み込みます...\n", savePath)

	save, err := a.loader.LoadSave(ctx, savePath)
	if err != nil {
		return models.ExtractedData{}, err
	}

	sum, err := a.loadSummary()
	if err != nil {
		return models.ExtractedData{}, err
	}

	return models.ExtractedData{
		Save:      save,
		Summary:   sum,
		InputFile: savePath,
	}, nil
}

// loadSummary は設定されたサマリーを解析します
// 値が既存ファイルのパスならその内容を、そうでなければ値そのものをbase64として扱います
func (a *App) loadSummary() (*summary.Summary, error) {
	value := a.config.Summary
	if value == "" {
		return nil, nil
	}

	if a.fs.FileExists(value) {
		data, err := a.fs.ReadFile(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseSummary, value, err)
		}
		a.logger.Printf("サマリーをファイル %s から読み込みます\n", value)
		value = string(data)
	}

	sum, err := summary.ParseBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseSummary, err)
	}
	a.logger.Printf("サマリー: %s (課題モード %s Lv.%d)\n", sum.Avatar, sum.Challenge.Rank, sum.Challenge.Level)
	return sum, nil
}

// loadCharts は曲メタデータを読み込みます
func (a *App) loadCharts(ctx context.Context) (*chart.Table, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if a.config.ChartsPath == "" {
		return nil, ErrNoChartTable
	}

	data, err := a.fs.ReadFile(a.config.ChartsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCharts, a.config.ChartsPath, err)
	}
	table, err := chart.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCharts, a.config.ChartsPath, err)
	}
	a.logger.Printf("曲メタデータ %s から %d 曲を読み込みました\n", a.config.ChartsPath, table.Len())
	return table, nil
}

// b19Output はB19レポートを生成します
func (a *App) b19Output(data models.ExtractedData, table *chart.Table) (string, error) {
	plays := rks.Pair(data.Save, table)
	for _, p := range plays {
		if p.Info == nil {
			a.logger.Printf("曲 %s の譜面情報がありません\n", p.Song.ID)
		}
	}

	result, err := rks.Aggregate(plays)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAggregate, err)
	}

	rep := report.BuildB19(data.InputFile, result, data.Summary)
	if a.config.JSONOutput {
		return encodeJSON(rep)
	}
	return a.renderer.RenderB19(rep), nil
}

// songOutput は検索した曲のスコアカードを生成します
func (a *App) songOutput(data models.ExtractedData, table *chart.Table) (string, error) {
	matches := table.Search(a.config.SongQuery)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", chart.ErrSongNotFound, a.config.SongQuery)
	}

	info := matches[0]
	a.logger.Printf("%q に %d 曲が一致しました。%s を表示します\n", a.config.SongQuery, len(matches), info.ID)

	song, ok := data.Save.Find(info.ID)
	if !ok {
		song = record.Song{ID: info.ID}
	}

	rep := report.BuildSongReport(data.InputFile, info, song, matches)
	if a.config.JSONOutput {
		return encodeJSON(rep)
	}
	return a.renderer.RenderSong(rep), nil
}

// saveOutput はレポートを出力ディレクトリに保存します
// テキストはBOM付き、JSONはBOMなしで保存します
func (a *App) saveOutput(inputFile, output string) error {
	var err error
	var outputPath string
	if a.config.JSONOutput {
		outputPath = filepath.Join(a.config.OutputDir, fileutil.GenerateOutputFilename(inputFile, ".json"))
		err = fileutil.SaveToFile(a.fs, outputPath, []byte(output))
	} else {
		outputPath = filepath.Join(a.config.OutputDir, fileutil.GenerateOutputFilename(inputFile, ".txt"))
		err = fileutil.SaveToFileWithBOM(a.fs, outputPath, output)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}
	a.logger.Printf("データを %s に保存しました\n", outputPath)
	return nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeJSON, err)
	}
	return string(data) + "\n", nil
}
