// Package record は復号済みの gameRecord ストリームを曲ごとの記録に変換します
//
// ストリームの構造:
//
//	[曲数 (1〜2バイト)]
//	繰り返し:
//	  [名前長 n (1バイト)] [曲ID (n-2バイト, UTF-8)] [予約 (2バイト)]
//	  [ブロック長 m (1バイト)] [スコアブロック (mバイト)]
//
// スコアブロックは「スコアあり」ビットマスク、「フルコンボ」ビットマスクの順に並び、
// その後にビットが立っている難易度ごとに int32 スコアと float32 精度が続きます。
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// startOffset は先頭の曲数フィールドを読み飛ばした位置を返します
// 先頭バイトを符号付きで見て負なら曲数は2バイトです
func startOffset(buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	pos := 0
	if int8(buf[0]) < 0 {
		pos = 1
	}
	return pos + 1
}

// Scanner はストリームから曲の記録を1件ずつ読み出します
type Scanner struct {
	buf  []byte
	pos  int
	song Song
	err  error
}

// NewScanner は新しいScannerを作成します
func NewScanner(buf []byte) *Scanner {
	s := &Scanner{buf: buf}
	s.Reset()
	return s
}

// Reset は先頭から読み直せるように状態を戻します
func (s *Scanner) Reset() {
	s.pos = startOffset(s.buf)
	s.song = Song{}
	s.err = nil
}

// Scan は次の曲を読み込みます。終端またはエラーで false を返します
func (s *Scanner) Scan() bool {
	if s.err != nil || s.pos >= len(s.buf) {
		return false
	}

	song, next, err := decodeSong(s.buf, s.pos)
	if err != nil {
		s.err = err
		s.song = Song{}
		return false
	}

	s.song = song
	s.pos = next
	return true
}

// Song は直前の Scan で読み込んだ曲を返します
func (s *Scanner) Song() Song {
	return s.song
}

// Err は読み込み中に発生したエラーを返します
func (s *Scanner) Err() error {
	return s.err
}

// All はストリーム中の曲を順に返すイテレータです
// エラーが発生した場合は最後にゼロ値の Song とエラーを1回だけ返します
func All(buf []byte) iter.Seq2[Song, error] {
	return func(yield func(Song, error) bool) {
		s := NewScanner(buf)
		for s.Scan() {
			if !yield(s.Song(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(Song{}, err)
		}
	}
}

// Parse はストリーム全体を解析します
// エラーの場合は途中までの結果を返しません
func Parse(buf []byte) (DecodedSave, error) {
	save := DecodedSave{}
	s := NewScanner(buf)
	for s.Scan() {
		save = append(save, s.Song())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return save, nil
}

// decodeSong は pos から始まる1曲分を読み込み、次の曲の位置を返します
func decodeSong(buf []byte, pos int) (Song, int, error) {
	start := pos

	nameLength := int(buf[pos])
	pos++
	if nameLength < 2 {
		return Song{}, 0, corrupt(start, "名前長 %d が予約領域より短いです", nameLength)
	}
	if pos+nameLength > len(buf) {
		return Song{}, 0, corrupt(start, "名前長 %d がバッファ終端を超えています", nameLength)
	}
	id, err := decodeName(buf[pos : pos+nameLength-2])
	if err != nil {
		return Song{}, 0, corrupt(start, "曲IDを読み込めません: %v", err)
	}
	pos += nameLength

	if pos >= len(buf) {
		return Song{}, 0, corrupt(start, "曲 %q のスコアブロック長がありません", id)
	}
	scoreLength := int(buf[pos])
	pos++
	if pos+scoreLength > len(buf) {
		return Song{}, 0, corrupt(start, "曲 %q のスコアブロック長 %d がバッファ終端を超えています", id, scoreLength)
	}
	levels, err := decodeScoreBlock(buf[pos : pos+scoreLength])
	if err != nil {
		return Song{}, 0, corrupt(start, "曲 %q: %v", id, err)
	}
	pos += scoreLength

	return Song{ID: id, Record: levels}, pos, nil
}

// decodeName は曲IDをUTF-8として読み込みます（不正なバイト列は U+FFFD に置換）
func decodeName(b []byte) (string, error) {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeScoreBlock はスコアブロックを難易度ごとの記録に変換します
func decodeScoreBlock(block []byte) (SongRecord, error) {
	if len(block) < 2 {
		return nil, errors.New("スコアブロックにビットマスクがありません")
	}

	hasScore := block[0]
	fullCombo := block[1]
	offset := 2

	record := SongRecord{}
	for _, d := range Difficulties {
		bit := d.Bit()
		if hasScore&bit != bit {
			continue
		}
		if offset+8 > len(block) {
			return nil, fmt.Errorf("%s のスコアがスコアブロックを超えています", d)
		}
		record = append(record, Level{
			Difficulty: d,
			Record: LevelRecord{
				Score:     int32(binary.LittleEndian.Uint32(block[offset:])),
				Accuracy:  math.Float32frombits(binary.LittleEndian.Uint32(block[offset+4:])),
				FullCombo: fullCombo&bit == bit,
			},
		})
		offset += 8
	}

	return record, nil
}
