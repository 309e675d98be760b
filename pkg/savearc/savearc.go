// Package savearc はセーブデータのアーカイブ（ZIP形式）を読み書きするためのパッケージです。
//
// アーカイブには暗号化されたプレイ記録 gameRecord のほか、
// 設定やユーザー情報などのエントリが含まれます。
//
// 基本的な使い方:
//
//	archive := savearc.NewZipArchive()
//	if ok, err := archive.Open("save.zip"); ok {
//	    defer archive.Close()
//	    for archive.EnumFirst(); ; {
//	        name := archive.GetEntryName()
//	        // エントリを処理...
//	        if !archive.EnumNext() {
//	            break
//	        }
//	    }
//	}
package savearc

import "io"

// GameRecordEntry はプレイ記録が格納されるエントリ名です
const GameRecordEntry = "gameRecord"

// Archive はセーブアーカイブの基本インターフェース
type Archive interface {
	// Open はアーカイブファイルを開きます
	Open(filename string) (bool, error)

	// OpenBytes はメモリ上のアーカイブを開きます
	OpenBytes(data []byte) (bool, error)

	// Close はアーカイブを閉じます
	Close() error

	// EnumFirst は最初のエントリに移動します
	EnumFirst() bool

	// EnumNext は次のエントリに移動します
	EnumNext() bool

	// GetEntryName は現在のエントリ名を取得します
	GetEntryName() string

	// GetOriginalSize は展開後のサイズを取得します
	GetOriginalSize() uint64

	// GetCompressedSize は圧縮後のサイズを取得します
	GetCompressedSize() uint64

	// GetEntry は現在のエントリを取得します
	GetEntry() ArchiveEntry

	// Extract は現在のエントリを w に書き出します
	Extract(w io.Writer) error
}

// ArchiveEntry はアーカイブ内のエントリを表すインターフェース
type ArchiveEntry interface {
	GetEntryName() string
	GetOriginalSize() uint64
	GetCompressedSize() uint64
	Extract(w io.Writer) error
}
