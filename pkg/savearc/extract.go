package savearc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

// maxPrealloc はヘッダのサイズ値を信用して事前確保する上限です
const maxPrealloc = 16 << 20

// ExtractGameRecord はアーカイブから gameRecord エントリの生データを取り出します
func ExtractGameRecord(data []byte) ([]byte, error) {
	return ExtractEntry(data, GameRecordEntry)
}

// ExtractEntry はアーカイブから名前が完全一致する最初のエントリを読み込みます
// 読み込みに失敗した場合、途中までのデータは返しません
func ExtractEntry(data []byte, name string) ([]byte, error) {
	archive := NewZipArchive()
	if _, err := archive.OpenBytes(data); err != nil {
		return nil, err
	}
	defer archive.Close()

	if !archive.EnumFirst() {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	for do := true; do; do = archive.EnumNext() {
		if archive.GetEntryName() != name {
			continue
		}

		var buf bytes.Buffer
		if size := archive.GetOriginalSize(); size <= maxPrealloc {
			buf.Grow(int(size))
		}
		if err := archive.Extract(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// Entry は WriteArchive に渡すエントリです
type Entry struct {
	Name string
	Data []byte
}

// WriteArchive は entries を順番通りにZIPアーカイブとして w に書き出します
func WriteArchive(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		header := &zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: time.Unix(0, 0).UTC(),
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("エントリ %s の作成に失敗しました: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("エントリ %s の書き込みに失敗しました: %w", e.Name, err)
		}
	}
	return zw.Close()
}
