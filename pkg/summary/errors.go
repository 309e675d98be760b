package summary

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedSummary はフィールドに必要なバイト数が残っていない場合のエラー
	ErrTruncatedSummary = errors.New("サマリーのデータが不足しています")

	// ErrInvalidBase64 はサマリー文字列をbase64としてデコードできない場合のエラー
	ErrInvalidBase64 = errors.New("サマリーのbase64デコードに失敗しました")
)

// TruncatedError はどのフィールドで不足したかを保持します
type TruncatedError struct {
	Field  string // フィールド名
	Offset int    // フィールドの開始位置
	Need   int    // 必要なバイト数
	Have   int    // 残りのバイト数
}

// Error はエラーメッセージを返します
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%v: %s (オフセット %d): %d バイト必要ですが残り %d バイトです",
		ErrTruncatedSummary, e.Field, e.Offset, e.Need, e.Have)
}

// Unwrap は ErrTruncatedSummary を返します
func (e *TruncatedError) Unwrap() error {
	return ErrTruncatedSummary
}
