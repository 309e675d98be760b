package chart

import "errors"

var (
	// ErrInvalidTable は曲メタデータを解析できない場合のエラー
	ErrInvalidTable = errors.New("曲メタデータの形式が不正です")

	// ErrSongNotFound は曲が見つからない場合のエラー
	ErrSongNotFound = errors.New("曲が見つかりません")
)
