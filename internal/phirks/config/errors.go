package config

import "errors"

// ErrLoadEnv は .env ファイルの読み込みに失敗した場合のエラー
var ErrLoadEnv = errors.New(".envファイルの読み込みに失敗しました")
