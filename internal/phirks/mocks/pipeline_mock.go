package mocks

// MockEntryExtractor はアーカイブからのエントリ取り出しのモック実装です
type MockEntryExtractor struct {
	Data      []byte
	Error     error
	LastEntry string
}

// ExtractEntry はモック実装です
func (e *MockEntryExtractor) ExtractEntry(data []byte, name string) ([]byte, error) {
	e.LastEntry = name
	if e.Error != nil {
		return nil, e.Error
	}
	return e.Data, nil
}

// MockRecordDecryptor は gameRecord 復号のモック実装です
// Plain が nil の場合は入力の2バイト目以降をそのまま返します
type MockRecordDecryptor struct {
	Plain []byte
	Error error
}

// DecryptRecord はモック実装です
func (d *MockRecordDecryptor) DecryptRecord(raw []byte) ([]byte, error) {
	if d.Error != nil {
		return nil, d.Error
	}
	if d.Plain != nil {
		return d.Plain, nil
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw[1:], nil
}
