package savearc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ZipEntry はZIPアーカイブ内のエントリを表します
type ZipEntry struct {
	file *zip.File
}

// GetEntryName はエントリ名を取得します
func (e *ZipEntry) GetEntryName() string {
	return e.file.Name
}

// GetOriginalSize は展開後のサイズを取得します
func (e *ZipEntry) GetOriginalSize() uint64 {
	return e.file.UncompressedSize64
}

// GetCompressedSize は圧縮後のサイズを取得します
func (e *ZipEntry) GetCompressedSize() uint64 {
	return e.file.CompressedSize64
}

// Extract はエントリを展開して w に書き出します
func (e *ZipEntry) Extract(w io.Writer) error {
	rc, err := e.file.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrArchiveRead, e.file.Name, err)
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrArchiveRead, e.file.Name, err)
	}
	return nil
}

// ZipArchive はメモリ上に展開したZIPアーカイブを表します
type ZipArchive struct {
	reader   *zip.Reader
	entries  []ZipEntry
	curIndex int
}

// NewZipArchive は新しいZipArchiveを作成します
func NewZipArchive() *ZipArchive {
	return &ZipArchive{
		entries:  make([]ZipEntry, 0),
		curIndex: -1,
	}
}

// Open はアーカイブファイルを読み込んで開きます
func (a *ZipArchive) Open(filename string) (bool, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return false, err
	}
	return a.OpenBytes(data)
}

// OpenBytes はメモリ上のアーカイブを開きます
func (a *ZipArchive) OpenBytes(data []byte) (bool, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrArchiveFormat, err)
	}

	a.reader = reader
	a.entries = make([]ZipEntry, 0, len(reader.File))
	for _, f := range reader.File {
		a.entries = append(a.entries, ZipEntry{file: f})
	}
	a.curIndex = -1

	return true, nil
}

// Close はアーカイブを閉じます
func (a *ZipArchive) Close() error {
	a.reader = nil
	a.entries = nil
	a.curIndex = -1
	return nil
}

// EnumFirst は最初のエントリに移動します
func (a *ZipArchive) EnumFirst() bool {
	if len(a.entries) == 0 {
		return false
	}
	a.curIndex = 0
	return true
}

// EnumNext は次のエントリに移動します
func (a *ZipArchive) EnumNext() bool {
	if a.curIndex < 0 || a.curIndex+1 >= len(a.entries) {
		return false
	}
	a.curIndex++
	return true
}

func (a *ZipArchive) current() *ZipEntry {
	if a.curIndex < 0 || a.curIndex >= len(a.entries) {
		return nil
	}
	return &a.entries[a.curIndex]
}

// GetEntryName は現在のエントリ名を取得します
func (a *ZipArchive) GetEntryName() string {
	if e := a.current(); e != nil {
		return e.GetEntryName()
	}
	return ""
}

// GetOriginalSize は現在のエントリの展開後サイズを取得します
func (a *ZipArchive) GetOriginalSize() uint64 {
	if e := a.current(); e != nil {
		return e.GetOriginalSize()
	}
	return 0
}

// GetCompressedSize は現在のエントリの圧縮後サイズを取得します
func (a *ZipArchive) GetCompressedSize() uint64 {
	if e := a.current(); e != nil {
		return e.GetCompressedSize()
	}
	return 0
}

// GetEntry は現在のエントリを取得します
func (a *ZipArchive) GetEntry() ArchiveEntry {
	if e := a.current(); e != nil {
		return e
	}
	return nil
}

// Extract は現在のエントリを展開して w に書き出します
func (a *ZipArchive) Extract(w io.Writer) error {
	e := a.current()
	if e == nil {
		return ErrNotOpened
	}
	return e.Extract(w)
}

var _ Archive = (*ZipArchive)(nil)
