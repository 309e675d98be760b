package archive

import (
	"github.com/shiroemons/go-phirks/pkg/crypto"
	"github.com/shiroemons/go-phirks/pkg/savearc"
)

// EntryExtractor はアーカイブのバイト列から名前の一致するエントリを取り出すインターフェース
type EntryExtractor interface {
	ExtractEntry(data []byte, name string) ([]byte, error)
}

// RecordDecryptor は暗号化された gameRecord を復号するインターフェース
type RecordDecryptor interface {
	DecryptRecord(raw []byte) ([]byte, error)
}

// DefaultEntryExtractor はZIPアーカイブからエントリを取り出すデフォルト実装
type DefaultEntryExtractor struct{}

func (e *DefaultEntryExtractor) ExtractEntry(data []byte, name string) ([]byte, error) {
	return savearc.ExtractEntry(data, name)
}

// DefaultRecordDecryptor は固定鍵のAES-256-CBCで復号するデフォルト実装
type DefaultRecordDecryptor struct{}

func (d *DefaultRecordDecryptor) DecryptRecord(raw []byte) ([]byte, error) {
	return crypto.DecryptRecord(raw)
}
