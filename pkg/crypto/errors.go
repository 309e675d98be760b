package crypto

import "errors"

// ErrDecryption は復号に失敗した場合のエラー（鍵違い、破損、ブロック長不一致）
var ErrDecryption = errors.New("gameRecord の復号に失敗しました")
