package archive

import "errors"

var (
	// ErrEmptyFile はファイルサイズが0の場合のエラー
	ErrEmptyFile = errors.New("ファイルサイズが0です")

	// ErrExtractFailed は gameRecord の取り出しに失敗した場合のエラー
	ErrExtractFailed = errors.New("gameRecordの取り出しに失敗しました")

	// ErrDecryptFailed は gameRecord の復号に失敗した場合のエラー
	ErrDecryptFailed = errors.New("gameRecordの復号に失敗しました")

	// ErrParseFailed はプレイ記録の解析に失敗した場合のエラー
	ErrParseFailed = errors.New("プレイ記録の解析に失敗しました")
)
