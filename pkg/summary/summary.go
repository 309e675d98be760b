// Package summary はセーブデータのサマリー（固定レイアウトのバイナリ）を解析します
//
// レイアウト（リトルエンディアン）:
//
//	u8  saveVersion
//	i16 challengeModeRaw
//	f32 rks
//	u8  gameVersion
//	u8  avatarLength
//	utf8[avatarLength] avatar
//	EZ, HD, IN, AT の順に: i16 cleared, i16 fullCombo, i16 allPerfect
package summary

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/shiroemons/go-phirks/pkg/record"
)

// Aggregate は難易度ごとのクリア状況の集計です
type Aggregate struct {
	Cleared    int16 `json:"cleared"`
	FullCombo  int16 `json:"fullCombo"`
	AllPerfect int16 `json:"allPerfect"`
}

// Summary はサマリーの内容です
type Summary struct {
	SaveVersion  uint8        `json:"saveVersion"`
	Challenge    Challenge    `json:"challengeMode"`
	Rks          float32      `json:"rks"`
	GameVersion  uint8        `json:"gameVersion"`
	Avatar       string       `json:"avatar"`
	Difficulties [4]Aggregate `json:"difficulties"` // EZ, HD, IN, AT の順
}

// Aggregate は指定した難易度の集計を返します
func (s *Summary) Aggregate(d record.Difficulty) Aggregate {
	if !d.Valid() {
		return Aggregate{}
	}
	return s.Difficulties[d]
}

// ParseBase64 は標準base64でエンコードされたサマリーを解析します
func ParseBase64(encoded string) (*Summary, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}
	return Parse(data)
}

// Parse はサマリーのバイト列を解析します
func Parse(data []byte) (*Summary, error) {
	r := &reader{data: data}
	s := &Summary{}

	var err error
	if s.SaveVersion, err = r.u8("saveVersion"); err != nil {
		return nil, err
	}
	rawChallenge, err := r.i16("challengeModeRaw")
	if err != nil {
		return nil, err
	}
	s.Challenge = DecodeChallenge(rawChallenge)
	if s.Rks, err = r.f32("rks"); err != nil {
		return nil, err
	}
	if s.GameVersion, err = r.u8("gameVersion"); err != nil {
		return nil, err
	}
	avatarLength, err := r.u8("avatarLength")
	if err != nil {
		return nil, err
	}
	avatar, err := r.bytes("avatar", int(avatarLength))
	if err != nil {
		return nil, err
	}
	s.Avatar = string(avatar)

	for _, d := range record.Difficulties {
		agg := &s.Difficulties[d]
		if agg.Cleared, err = r.i16(d.String() + ".cleared"); err != nil {
			return nil, err
		}
		if agg.FullCombo, err = r.i16(d.String() + ".fullCombo"); err != nil {
			return nil, err
		}
		if agg.AllPerfect, err = r.i16(d.String() + ".allPerfect"); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Encode は Summary を Parse で読めるバイト列に変換します
func Encode(s *Summary) ([]byte, error) {
	if len(s.Avatar) > math.MaxUint8 {
		return nil, fmt.Errorf("アバター名が長すぎます: %d バイト", len(s.Avatar))
	}

	buf := []byte{s.SaveVersion}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(s.Challenge.Raw()))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(s.Rks))
	buf = append(buf, s.GameVersion, byte(len(s.Avatar)))
	buf = append(buf, s.Avatar...)
	for _, agg := range s.Difficulties {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(agg.Cleared))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(agg.FullCombo))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(agg.AllPerfect))
	}
	return buf, nil
}

// reader は固定レイアウトを先頭から順に読み込みます
type reader struct {
	data []byte
	off  int
}

func (r *reader) take(field string, n int) ([]byte, error) {
	if r.off+n > len(r.data) {
		return nil, &TruncatedError{Field: field, Offset: r.off, Need: n, Have: len(r.data) - r.off}
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8(field string) (uint8, error) {
	b, err := r.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) i16(field string) (int16, error) {
	b, err := r.take(field, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (r *reader) f32(field string) (float32, error) {
	b, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) bytes(field string, n int) ([]byte, error) {
	b, err := r.take(field, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}
