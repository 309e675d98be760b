package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags はフラグと引数をテスト用に差し替えます
func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	oldCommandLine := flag.CommandLine
	t.Cleanup(func() {
		os.Args = oldArgs
		flag.CommandLine = oldCommandLine
	})

	flag.CommandLine = flag.NewFlagSet(args[0], flag.ContinueOnError)
	os.Args = args
}

func TestParseFlags(t *testing.T) {
	resetFlags(t, "cmd", "-save", "test.save", "-c", "charts.json", "-m", "AAAA", "-q", "Glaciaxion", "-j", "-o", "/tmp", "-d")

	cfg := ParseFlags()

	if cfg.SavePath != "test.save" {
		t.Errorf("Expected SavePath 'test.save', got '%s'", cfg.SavePath)
	}
	if cfg.ChartsPath != "charts.json" {
		t.Errorf("Expected ChartsPath 'charts.json', got '%s'", cfg.ChartsPath)
	}
	if cfg.Summary != "AAAA" {
		t.Errorf("Expected Summary 'AAAA', got '%s'", cfg.Summary)
	}
	if cfg.SongQuery != "Glaciaxion" {
		t.Errorf("Expected SongQuery 'Glaciaxion', got '%s'", cfg.SongQuery)
	}
	if !cfg.JSONOutput {
		t.Error("Expected JSONOutput to be true")
	}
	if cfg.OutputDir != "/tmp" {
		t.Errorf("Expected OutputDir '/tmp', got '%s'", cfg.OutputDir)
	}
	if !cfg.DebugMode {
		t.Error("Expected DebugMode to be true")
	}
}

func TestParseFlags_EnvDefaults(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantSave   string
		wantCharts string
		wantDebug  bool
	}{
		{
			name:       "環境変数が既定値になる",
			args:       []string{"cmd"},
			wantSave:   "env.save",
			wantCharts: "env.json",
			wantDebug:  true,
		},
		{
			name:       "フラグが環境変数より優先される",
			args:       []string{"cmd", "-s", "flag.save", "--debug=false"},
			wantSave:   "flag.save",
			wantCharts: "env.json",
			wantDebug:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSave, "env.save")
			t.Setenv(EnvCharts, "env.json")
			t.Setenv(EnvDebug, "true")
			resetFlags(t, tt.args...)

			cfg := ParseFlags()

			if cfg.SavePath != tt.wantSave {
				t.Errorf("SavePath = %q, want %q", cfg.SavePath, tt.wantSave)
			}
			if cfg.ChartsPath != tt.wantCharts {
				t.Errorf("ChartsPath = %q, want %q", cfg.ChartsPath, tt.wantCharts)
			}
			if cfg.DebugMode != tt.wantDebug {
				t.Errorf("DebugMode = %v, want %v", cfg.DebugMode, tt.wantDebug)
			}
			if cfg.OutputDir != "" {
				t.Errorf("OutputDir = %q, want empty", cfg.OutputDir)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	const key = "PHIRKS_TEST_LOADENV"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv(key); got != "from-dotenv" {
		t.Errorf("Expected %s='from-dotenv', got '%s'", key, got)
	}

	// 存在しないファイルはエラーにしない
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Expected nil for missing file, got %v", err)
	}
}

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer

	// デバッグモード有効
	logger := NewDebugLoggerWithWriter(true, &buf)
	logger.Printf("test message %d\n", 123)

	if !strings.Contains(buf.String(), "test message 123") {
		t.Errorf("Expected debug output to contain 'test message 123', got '%s'", buf.String())
	}

	// デバッグモード無効
	buf.Reset()
	logger = NewDebugLoggerWithWriter(false, &buf)
	logger.Printf("should not appear\n")

	if buf.Len() != 0 {
		t.Error("Debug output should not appear when debug mode is disabled")
	}
}
