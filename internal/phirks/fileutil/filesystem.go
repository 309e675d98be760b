package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-phirks/internal/phirks/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists はファイルが存在するか確認します
func (fs *OSFileSystem) FileExists(filename string) bool {
	return FileExists(filename)
}

// ReadFile はファイルを読み込みます
func (fs *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// MkdirAll はディレクトリを作成します
func (fs *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry
	}
	return result, nil
}

// Getwd は現在の作業ディレクトリを取得します
func (fs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Executable は実行ファイルのパスを取得します
func (fs *OSFileSystem) Executable() (string, error) {
	return os.Executable()
}

// SaveFileFinder はセーブファイルの検索を行います
type SaveFileFinder struct {
	fs interfaces.FileSystem
}

// NewSaveFileFinder はOSファイルシステムを使うSaveFileFinderを作成します
func NewSaveFileFinder() *SaveFileFinder {
	return NewSaveFileFinderWithFS(NewOSFileSystem())
}

// NewSaveFileFinderWithFS はファイルシステムを指定してSaveFileFinderを作成します
func NewSaveFileFinderWithFS(fs interfaces.FileSystem) *SaveFileFinder {
	return &SaveFileFinder{fs: fs}
}

// Find はカレントディレクトリ、次に実行ファイルと同じディレクトリからセーブファイルを検索します
// 見つからなければ空文字列を返します
func (f *SaveFileFinder) Find() (string, error) {
	// カレントディレクトリを取得
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}

	// まずカレントディレクトリを検索
	saveFiles, err := f.findInDir(currentDir)
	if err != nil {
		return "", err
	}

	// カレントディレクトリで見つかった場合は他のディレクトリは検索しない
	if len(saveFiles) == 0 {
		// 実行ファイルのパスを取得
		execPath, err := f.fs.Executable()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrGetExecutablePath, err)
		}

		execDir := filepath.Dir(execPath)
		if execDir != currentDir {
			saveFiles, err = f.findInDir(execDir)
			if err != nil {
				return "", err
			}
		}
	}

	switch len(saveFiles) {
	case 0:
		return "", nil
	case 1:
		return saveFiles[0], nil
	default:
		return "", f.createMultipleFilesError(saveFiles)
	}
}

// findInDir は指定されたディレクトリ内のセーブファイルを検索します
func (f *SaveFileFinder) findInDir(dir string) ([]string, error) {
	var saveFiles []string

	files, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if IsSaveFile(file.Name()) {
			saveFiles = append(saveFiles, filepath.Join(dir, file.Name()))
		}
	}

	return saveFiles, nil
}

// createMultipleFilesError は複数のセーブファイルが見つかった場合のエラーを生成します
func (f *SaveFileFinder) createMultipleFilesError(saveFiles []string) error {
	fileNames := make([]string, len(saveFiles))
	for i, path := range saveFiles {
		fileNames[i] = filepath.Base(path)
	}
	return fmt.Errorf("%w: %s", ErrMultipleSaveFiles, strings.Join(fileNames, ", "))
}
