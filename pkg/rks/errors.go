package rks

import "errors"

// ErrNoPerfectRecord は精度100%の記録が1件もない場合のエラー
var ErrNoPerfectRecord = errors.New("精度100%の記録がありません")
