package record

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptRecord は長さフィールドがバッファを超えるなど記録が壊れている場合のエラー
	ErrCorruptRecord = errors.New("プレイ記録が壊れています")

	// ErrEncode は記録をバイト列に変換できない場合のエラー
	ErrEncode = errors.New("プレイ記録を書き出せません")
)

// CorruptRecordError は壊れた記録の位置と理由を保持します
type CorruptRecordError struct {
	Offset int    // 問題の曲エントリの開始位置
	Reason string // 理由
}

// Error はエラーメッセージを返します
func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("%v (オフセット %d): %s", ErrCorruptRecord, e.Offset, e.Reason)
}

// Unwrap は ErrCorruptRecord を返します
func (e *CorruptRecordError) Unwrap() error {
	return ErrCorruptRecord
}

func corrupt(offset int, format string, a ...any) error {
	return &CorruptRecordError{Offset: offset, Reason: fmt.Sprintf(format, a...)}
}
