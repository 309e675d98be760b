package savearc

import "errors"

var (
	// ErrArchiveFormat はデータがZIPアーカイブとして読めない場合のエラー
	ErrArchiveFormat = errors.New("ZIPアーカイブとして読み込めません")

	// ErrEntryNotFound は指定されたエントリがアーカイブ内に存在しない場合のエラー
	ErrEntryNotFound = errors.New("エントリが見つかりません")

	// ErrArchiveRead はエントリの読み込み中にエラーが発生した場合のエラー
	ErrArchiveRead = errors.New("エントリの読み込みに失敗しました")

	// ErrNotOpened はアーカイブを開く前に操作した場合のエラー
	ErrNotOpened = errors.New("アーカイブが開かれていません")
)
