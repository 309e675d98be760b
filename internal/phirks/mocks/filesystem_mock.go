// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shiroemons/go-phirks/internal/phirks/interfaces"
)

// MockFileSystem はメモリ上のファイルを扱うファイルシステムモック
//
// Error を設定するとすべての操作がそのエラーを返します。
// WriteError は書き込み系の操作だけに返すエラーです。
type MockFileSystem struct {
	Files      map[string][]byte
	Dirs       map[string]bool
	WorkingDir string
	ExecPath   string
	Error      error
	WriteError error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:      make(map[string][]byte),
		Dirs:       make(map[string]bool),
		WorkingDir: "/test/dir",
		ExecPath:   "/test/exec/program",
	}
}

func (m *MockFileSystem) FileExists(filename string) bool {
	_, ok := m.Files[filename]
	return ok
}

func (m *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	data, ok := m.Files[filename]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(filename string, data []byte, _ uint32) error {
	if err := m.writeErr(); err != nil {
		return err
	}
	m.Files[filename] = slices.Clone(data)
	return nil
}

func (m *MockFileSystem) MkdirAll(path string, _ uint32) error {
	if err := m.writeErr(); err != nil {
		return err
	}
	for dir := path; !m.Dirs[dir]; dir = filepath.Dir(dir) {
		m.Dirs[dir] = true
		if dir == filepath.Dir(dir) {
			break
		}
	}
	return nil
}

// ReadDir は dirname 直下のファイルとディレクトリを名前順に返します
// 直下にファイルがあるディレクトリは Dirs に登録がなくても存在するものとして扱います
func (m *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if m.Error != nil {
		return nil, m.Error
	}

	var entries []interfaces.DirEntry
	for path := range m.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path)})
		}
	}
	for path := range m.Dirs {
		if path != dirname && filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}
	if len(entries) == 0 && !m.Dirs[dirname] {
		return nil, errors.New("directory not found: " + dirname)
	}

	slices.SortFunc(entries, func(a, b interfaces.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (m *MockFileSystem) Getwd() (string, error) {
	return m.WorkingDir, m.Error
}

func (m *MockFileSystem) Executable() (string, error) {
	return m.ExecPath, m.Error
}

func (m *MockFileSystem) writeErr() error {
	if m.Error != nil {
		return m.Error
	}
	return m.WriteError
}

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

func (e *MockDirEntry) Name() string { return e.name }
func (e *MockDirEntry) IsDir() bool  { return e.isDir }
