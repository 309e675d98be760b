// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shiroemons/go-phirks/internal/phirks/interfaces"
)

var (
	// SaveFilePattern はセーブファイルとして扱うファイル名のパターン
	SaveFilePattern = regexp.MustCompile(`(?i)^[^.].*\.(?:save|zip)$`)
)

// FileExists はファイルが存在するか確認します
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// utf8BOM はテキストレポートの先頭に付けるUTF-8 BOM
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SaveToFile は出力先ディレクトリを作成してからファイルに保存します
func SaveToFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}

// SaveToFileWithBOM はUTF-8 BOMありでファイルに保存します
func SaveToFileWithBOM(fs interfaces.FileSystem, outputPath string, content string) error {
	data := make([]byte, 0, len(utf8BOM)+len(content))
	data = append(data, utf8BOM...)
	data = append(data, content...)
	return SaveToFile(fs, outputPath, data)
}

// GenerateOutputFilename は入力ファイル名から出力ファイル名を生成します
// ext は先頭のドットを含む拡張子です（例: ".txt"）
func GenerateOutputFilename(inputPath, ext string) string {
	// ファイル名の部分だけを取得（拡張子なし）
	baseName := filepath.Base(inputPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	// rks_XXX.txt 形式の名前を生成
	return fmt.Sprintf("rks_%s%s", baseName, ext)
}

// IsSaveFile はファイル名がセーブファイルのパターンに一致するか判定します
func IsSaveFile(filename string) bool {
	return SaveFilePattern.MatchString(filepath.Base(filename))
}
