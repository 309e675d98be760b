// Package archive はセーブファイルの読み込みを行います
package archive

import (
	"context"
	"fmt"

	apperrors "github.com/shiroemons/go-phirks/internal/phirks/errors"
	"github.com/shiroemons/go-phirks/internal/phirks/fileutil"
	"github.com/shiroemons/go-phirks/internal/phirks/interfaces"
	"github.com/shiroemons/go-phirks/pkg/record"
	"github.com/shiroemons/go-phirks/pkg/savearc"
)

// Loader はセーブファイルから gameRecord を取り出し、復号して解析します
type Loader struct {
	logger    interfaces.Logger
	fs        interfaces.FileSystem
	extractor EntryExtractor
	decryptor RecordDecryptor
}

// NewLoader は新しいLoaderを作成します
func NewLoader(logger interfaces.Logger) *Loader {
	return NewLoaderWithFactory(logger, fileutil.NewOSFileSystem(), &DefaultEntryExtractor{}, &DefaultRecordDecryptor{})
}

// NewLoaderWithFactory は各段の実装を指定してLoaderを作成します
func NewLoaderWithFactory(logger interfaces.Logger, fs interfaces.FileSystem, extractor EntryExtractor, decryptor RecordDecryptor) *Loader {
	return &Loader{
		logger:    logger,
		fs:        fs,
		extractor: extractor,
		decryptor: decryptor,
	}
}

// LoadSave はセーブファイルを読み込んでプレイ記録を返します
func (l *Loader) LoadSave(ctx context.Context, savePath string) (record.DecodedSave, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := l.fs.ReadFile(savePath)
	if err != nil {
		return nil, apperrors.NewArchiveError("読み込み", savePath, err)
	}
	if len(data) == 0 {
		return nil, apperrors.NewArchiveError("読み込み", savePath, ErrEmptyFile)
	}
	l.logger.Printf("セーブファイル %s を読み込みました（%d バイト）\n", savePath, len(data))

	save, err := l.DecodeSave(ctx, data)
	if err != nil {
		return nil, apperrors.NewArchiveError("デコード", savePath, err)
	}
	return save, nil
}

// DecodeSave はセーブファイルの内容からプレイ記録を取り出します
func (l *Loader) DecodeSave(ctx context.Context, data []byte) (record.DecodedSave, error) {
	raw, err := l.extractor.ExtractEntry(data, savearc.GameRecordEntry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	l.logger.Printf("エントリ %s を展開しました（%d バイト）\n", savearc.GameRecordEntry, len(raw))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	plain, err := l.decryptor.DecryptRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptFailed, err)
	}
	l.logger.Printf("gameRecord を復号しました（%d バイト）\n", len(plain))

	save := record.DecodedSave{}
	scanner := record.NewScanner(plain)
	for scanner.Scan() {
		// コンテキストのキャンセルチェック
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		save = append(save, scanner.Song())
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewParseError(savearc.GameRecordEntry, fmt.Errorf("%w: %w", ErrParseFailed, err))
	}
	l.logger.Printf("%d 曲分のプレイ記録を解析しました\n", len(save))

	return save, nil
}
