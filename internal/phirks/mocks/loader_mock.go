package mocks

import (
	"context"

	"github.com/shiroemons/go-phirks/pkg/record"
)

// MockSaveLoader はSaveLoaderのモック実装です
type MockSaveLoader struct {
	Save      record.DecodedSave
	Error     error
	CallCount int
	LastPath  string
}

// LoadSave はモック実装です
func (m *MockSaveLoader) LoadSave(ctx context.Context, savePath string) (record.DecodedSave, error) {
	m.CallCount++
	m.LastPath = savePath
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Save, nil
}

// MockSaveFileFinder はSaveFileFinderのモック実装です
type MockSaveFileFinder struct {
	FoundFile string
	Error     error
}

// Find はモック実装です
func (m *MockSaveFileFinder) Find() (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	return m.FoundFile, nil
}
