// Package config はbmsinfoコマンドの設定管理を行います
package config

import (
	"flag"
	"fmt"
	"os"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	Paths          []string // 解析対象のBMSファイルまたはディレクトリ
	OutputPath     string
	JSONOutput     bool
	CheckResources bool
	DebugMode      bool
	ShowVersion    bool
}

// ParseFlags はコマンドライン引数を解析して設定を返します
func ParseFlags() *Config {
	config := &Config{}

	// カスタムUsage関数を設定（ダブルハイフン表示）
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s: [flags] <bms file or directory>...\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "  -o string")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput file for the report (default: stdout)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --json")
		fmt.Fprintln(flag.CommandLine.Output(), "    \toutput the report as JSON")
		fmt.Fprintln(flag.CommandLine.Output(), "  -j\toutput the report as JSON (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --resources")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tcheck that referenced WAV/BMP resources exist")
		fmt.Fprintln(flag.CommandLine.Output(), "  -r\tcheck that referenced WAV/BMP resources exist (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --debug")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tenable debug output")
		fmt.Fprintln(flag.CommandLine.Output(), "  -d\tenable debug output (shorthand)")
		fmt.Fprintln(flag.CommandLine.Output(), "  --version")
		fmt.Fprintln(flag.CommandLine.Output(), "    \tshow version information")
		fmt.Fprintln(flag.CommandLine.Output(), "  -v\tshow version information (shorthand)")
	}

	// 出力先
	flag.StringVar(&config.OutputPath, "o", "", "output file for the report (default: stdout)")

	// JSON出力
	flag.BoolVar(&config.JSONOutput, "json", false, "output the report as JSON")
	flag.BoolVar(&config.JSONOutput, "j", false, "output the report as JSON (shorthand)")

	// リソース存在チェック
	flag.BoolVar(&config.CheckResources, "resources", false, "check that referenced WAV/BMP resources exist")
	flag.BoolVar(&config.CheckResources, "r", false, "check that referenced WAV/BMP resources exist (shorthand)")

	// デバッグモード
	flag.BoolVar(&config.DebugMode, "debug", false, "enable debug output")
	flag.BoolVar(&config.DebugMode, "d", false, "enable debug output (shorthand)")

	// バージョン表示
	flag.BoolVar(&config.ShowVersion, "version", false, "show version information")
	flag.BoolVar(&config.ShowVersion, "v", false, "show version information (shorthand)")

	flag.Parse()

	config.Paths = flag.Args()

	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("bmsinfo version %s\n", Version)
		os.Exit(0)
	}
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
}

// NewDebugLogger は新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return &DebugLogger{enabled: enabled}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Printf(format, a...)
	}
}
