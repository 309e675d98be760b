// Package config はphirksコマンドの設定管理を行います
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/shiroemons/go-phirks/internal/phirks/interfaces"
)

const Version = "0.1.0"

// 設定の既定値を与える環境変数
const (
	EnvSave      = "PHIRKS_SAVE"
	EnvCharts    = "PHIRKS_CHARTS"
	EnvSummary   = "PHIRKS_SUMMARY"
	EnvOutputDir = "PHIRKS_OUTPUT_DIR"
	EnvDebug     = "PHIRKS_DEBUG"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	SavePath    string
	ChartsPath  string
	Summary     string // base64文字列、またはそれを保存したファイルのパス
	SongQuery   string
	OutputDir   string // 空ならファイルに保存しない
	JSONOutput  bool
	DebugMode   bool
	ShowVersion bool
}

// LoadEnv は .env ファイルから環境変数を読み込みます
// ファイルが無い場合は何もしません。既に設定済みの環境変数は上書きしません。
func LoadEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrLoadEnv, err)
	}
	return nil
}

// ParseFlags はコマンドライン引数を解析して設定を返します
// 各フラグの既定値は環境変数から取ります
func ParseFlags() *Config {
	if err := LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "警告: %v\n", err)
	}

	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  --save string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to the save archive (env "+EnvSave+")")
		fmt.Fprintln(flag.CommandLine.Output(), "  -s string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to the save archive (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --charts string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to the song metadata JSON (env "+EnvCharts+")")
		fmt.Fprintln(flag.CommandLine.Output(), "  -c string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tpath to the song metadata JSON (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --summary string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tbase64 summary blob or a file containing it (env "+EnvSummary+")")
		fmt.Fprintln(flag.CommandLine.Output(), "  -m string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tbase64 summary blob or a file containing it (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --song string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow the score card of a song instead of the B19 report")
		fmt.Fprintln(flag.CommandLine.Output(), "  -q string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow the score card of a song (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --json")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tprint the report as JSON")
		fmt.Fprintln(flag.CommandLine.Output(), "  -j\tprint the report as JSON (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput directory for the report file (env "+EnvOutputDir+")")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	// セーブファイル
	save := getEnv(EnvSave, "")
	flag.StringVar(&config.SavePath, "save", save, "path to the save archive")
	flag.StringVar(&config.SavePath, "s", save, "path to the save archive (shorthand)")

	// 曲メタデータ
	charts := getEnv(EnvCharts, "")
	flag.StringVar(&config.ChartsPath, "charts", charts, "path to the song metadata JSON")
	flag.StringVar(&config.ChartsPath, "c", charts, "path to the song metadata JSON (shorthand)")

	// サマリー
	sum := getEnv(EnvSummary, "")
	flag.StringVar(&config.Summary, "summary", sum, "base64 summary blob or a file containing it")
	flag.StringVar(&config.Summary, "m", sum, "base64 summary blob or a file containing it (shorthand)")

	// 曲検索
	flag.StringVar(&config.SongQuery, "song", "", "show the score card of a song")
	flag.StringVar(&config.SongQuery, "q", "", "show the score card of a song (shorthand)")

	// JSON出力
	flag.BoolVar(&config.JSONOutput, "json", false, "print the report as JSON")
	flag.BoolVar(&config.JSONOutput, "j", false, "print the report as JSON (shorthand)")

	// 出力ディレクトリ
	flag.StringVar(&config.OutputDir, "o", getEnv(EnvOutputDir, ""), "output directory for the report file")

	// デバッグモード
	debug := getEnvAsBool(EnvDebug, false)
	flag.BoolVar(&config.DebugMode, "debug", debug, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", debug, "enable debug output (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(name string, showVersion bool) {
	if showVersion {
		fmt.Printf("%s version %s\n", name, Version)
		os.Exit(0)
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	out     io.Writer
}

var _ interfaces.Logger = (*DebugLogger)(nil)

// NewDebugLogger は標準エラー出力に書き出すDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerWithWriter(enabled, os.Stderr)
}

// NewDebugLoggerWithWriter は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerWithWriter(enabled bool, w io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, out: w}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(d.out, format, a...)
	}
}
