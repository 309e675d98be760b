package record

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reservedSuffix は名前フィールド末尾の予約2バイトに書き込む値です
const reservedSuffix = ".0"

// maxSongs は2バイトの曲数フィールドで表せる上限です
const maxSongs = 1 << 14

// Encode は DecodedSave を Parse で読めるストリームに変換します
func Encode(save DecodedSave) ([]byte, error) {
	if len(save) >= maxSongs {
		return nil, fmt.Errorf("%w: 曲数 %d が上限を超えています", ErrEncode, len(save))
	}

	buf := binary.AppendUvarint(nil, uint64(len(save)))
	for _, song := range save {
		var err error
		buf, err = appendSong(buf, song)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func appendSong(buf []byte, song Song) ([]byte, error) {
	nameLength := len(song.ID) + len(reservedSuffix)
	if nameLength > math.MaxUint8 {
		return nil, fmt.Errorf("%w: 曲ID %q が長すぎます", ErrEncode, song.ID)
	}
	buf = append(buf, byte(nameLength))
	buf = append(buf, song.ID...)
	buf = append(buf, reservedSuffix...)

	var hasScore, fullCombo byte
	var scores []byte
	for _, d := range Difficulties {
		level, ok := song.Record.Get(d)
		if !ok {
			continue
		}
		hasScore |= d.Bit()
		if level.FullCombo {
			fullCombo |= d.Bit()
		}
		scores = binary.LittleEndian.AppendUint32(scores, uint32(level.Score))
		scores = binary.LittleEndian.AppendUint32(scores, math.Float32bits(level.Accuracy))
	}
	for _, l := range song.Record {
		if !l.Difficulty.Valid() {
			return nil, fmt.Errorf("%w: 曲 %q に不明な難易度 %d があります", ErrEncode, song.ID, int(l.Difficulty))
		}
	}

	buf = append(buf, byte(2+len(scores)), hasScore, fullCombo)
	return append(buf, scores...), nil
}
