package record

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

type scoreEntry struct {
	score    int32
	accuracy float32
}

// songBytes は1曲分のエントリを組み立てます
func songBytes(id string, hasScore, fullCombo byte, scores ...scoreEntry) []byte {
	buf := []byte{byte(len(id) + 2)}
	buf = append(buf, id...)
	buf = append(buf, '.', '0')

	block := []byte{hasScore, fullCombo}
	for _, s := range scores {
		block = binary.LittleEndian.AppendUint32(block, uint32(s.score))
		block = binary.LittleEndian.AppendUint32(block, math.Float32bits(s.accuracy))
	}
	buf = append(buf, byte(len(block)))
	return append(buf, block...)
}

func stream(header []byte, songs ...[]byte) []byte {
	buf := append([]byte{}, header...)
	for _, s := range songs {
		buf = append(buf, s...)
	}
	return buf
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want DecodedSave
	}{
		{
			name: "空データ",
			data: []byte{},
			want: DecodedSave{},
		},
		{
			name: "曲数のみ",
			data: []byte{0x00},
			want: DecodedSave{},
		},
		{
			name: "負の先頭バイトのみ",
			data: []byte{0x80},
			want: DecodedSave{},
		},
		{
			name: "EZとHD、EZのみフルコンボ",
			data: stream([]byte{0x01},
				songBytes("Glaciaxion.SunsetRay", 0b0011, 0b0001,
					scoreEntry{1000000, 100}, scoreEntry{985000, 99.5})),
			want: DecodedSave{
				{
					ID: "Glaciaxion.SunsetRay",
					Record: SongRecord{
						{Difficulty: EZ, Record: LevelRecord{Score: 1000000, Accuracy: 100, FullCombo: true}},
						{Difficulty: HD, Record: LevelRecord{Score: 985000, Accuracy: 99.5, FullCombo: false}},
					},
				},
			},
		},
		{
			name: "全難易度",
			data: stream([]byte{0x01},
				songBytes("Rrharil.TeamGrimoire", 0b1111, 0b1010,
					scoreEntry{1, 0}, scoreEntry{2, 70}, scoreEntry{3, 80}, scoreEntry{4, 90})),
			want: DecodedSave{
				{
					ID: "Rrharil.TeamGrimoire",
					Record: SongRecord{
						{Difficulty: EZ, Record: LevelRecord{Score: 1, Accuracy: 0}},
						{Difficulty: HD, Record: LevelRecord{Score: 2, Accuracy: 70, FullCombo: true}},
						{Difficulty: IN, Record: LevelRecord{Score: 3, Accuracy: 80}},
						{Difficulty: AT, Record: LevelRecord{Score: 4, Accuracy: 90, FullCombo: true}},
					},
				},
			},
		},
		{
			name: "INのみ（間の難易度はバイトを消費しない）",
			data: stream([]byte{0x01},
				songBytes("a", 0b0100, 0b0100, scoreEntry{999999, 99.99})),
			want: DecodedSave{
				{ID: "a", Record: SongRecord{
					{Difficulty: IN, Record: LevelRecord{Score: 999999, Accuracy: 99.99, FullCombo: true}},
				}},
			},
		},
		{
			name: "記録なしの曲",
			data: stream([]byte{0x01}, songBytes("empty", 0, 0)),
			want: DecodedSave{{ID: "empty", Record: SongRecord{}}},
		},
		{
			name: "2バイトの曲数フィールド",
			data: stream([]byte{0x80, 0x01},
				songBytes("x", 0b0001, 0, scoreEntry{500000, 75}),
				songBytes("y", 0b1000, 0, scoreEntry{700000, 85})),
			want: DecodedSave{
				{ID: "x", Record: SongRecord{{Difficulty: EZ, Record: LevelRecord{Score: 500000, Accuracy: 75}}}},
				{ID: "y", Record: SongRecord{{Difficulty: AT, Record: LevelRecord{Score: 700000, Accuracy: 85}}}},
			},
		},
		{
			name: "未定義のビットは無視",
			data: stream([]byte{0x01}, songBytes("sp", 0b10001, 0b10000, scoreEntry{1000, 50})),
			want: DecodedSave{
				{ID: "sp", Record: SongRecord{{Difficulty: EZ, Record: LevelRecord{Score: 1000, Accuracy: 50}}}},
			},
		},
		{
			name: "不正なUTF-8は置換文字になる",
			data: stream([]byte{0x01}, songBytes("a\xffb", 0, 0)),
			want: DecodedSave{{ID: "a\uFFFDb", Record: SongRecord{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.data)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			assertSave(t, got, tt.want)
		})
	}
}

func assertSave(t *testing.T, got, want DecodedSave) {
	t.Helper()
	if got == nil {
		t.Fatal("Parse() = nil")
	}
	if len(got) != len(want) {
		t.Fatalf("曲数 = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("[%d] ID = %q, want %q", i, got[i].ID, want[i].ID)
		}
		if len(got[i].Record) != len(want[i].Record) {
			t.Errorf("[%d] 難易度数 = %d, want %d", i, len(got[i].Record), len(want[i].Record))
			continue
		}
		for j := range want[i].Record {
			if got[i].Record[j] != want[i].Record[j] {
				t.Errorf("[%d][%d] = %+v, want %+v", i, j, got[i].Record[j], want[i].Record[j])
			}
		}
	}
}

func TestParse_Corrupt(t *testing.T) {
	valid := songBytes("song", 0b0001, 0, scoreEntry{1, 1})

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "名前長がバッファを超える",
			data: []byte{0x01, 0x20, 'a', 'b'},
		},
		{
			name: "名前長が2未満",
			data: []byte{0x01, 0x01, 0x02, 0x00, 0x00},
		},
		{
			name: "スコアブロック長がない",
			data: []byte{0x01, 0x03, 'a', '.', '0'},
		},
		{
			name: "スコアブロック長がバッファを超える",
			data: []byte{0x01, 0x03, 'a', '.', '0', 0x0A, 0x01, 0x00},
		},
		{
			name: "スコアがブロックを超える",
			data: []byte{0x01, 0x03, 'a', '.', '0', 0x04, 0x01, 0x00, 0x00, 0x00},
		},
		{
			name: "ビットマスクがない",
			data: []byte{0x01, 0x03, 'a', '.', '0', 0x01, 0x01},
		},
		{
			name: "正常な曲の後に壊れた曲",
			data: stream([]byte{0x02}, valid, []byte{0x09, 'x'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.data)
			if !errors.Is(err, ErrCorruptRecord) {
				t.Fatalf("Parse() error = %v, want ErrCorruptRecord", err)
			}
			var corruptErr *CorruptRecordError
			if !errors.As(err, &corruptErr) {
				t.Errorf("CorruptRecordError ではない: %T", err)
			}
			if got != nil {
				t.Errorf("エラー時に部分的な結果が返された: %+v", got)
			}
		})
	}
}

func TestScanner(t *testing.T) {
	data := stream([]byte{0x03},
		songBytes("a", 0b0001, 0, scoreEntry{1, 1}),
		songBytes("b", 0b0010, 0, scoreEntry{2, 2}),
		songBytes("c", 0b0100, 0, scoreEntry{3, 3}),
	)

	s := NewScanner(data)
	var ids []string
	for s.Scan() {
		ids = append(ids, s.Song().ID)
	}
	if s.Err() != nil {
		t.Fatalf("Err() = %v", s.Err())
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("ids = %v", ids)
	}

	// Reset 後は最初から読み直せる
	s.Reset()
	if !s.Scan() || s.Song().ID != "a" {
		t.Errorf("Reset 後の最初の曲 = %q, want %q", s.Song().ID, "a")
	}
}

func TestScanner_StopsOnError(t *testing.T) {
	data := stream([]byte{0x02}, songBytes("ok", 0, 0), []byte{0x10})

	s := NewScanner(data)
	if !s.Scan() {
		t.Fatal("最初の曲を読めない")
	}
	if s.Scan() {
		t.Fatal("壊れた曲で Scan() = true")
	}
	if !errors.Is(s.Err(), ErrCorruptRecord) {
		t.Errorf("Err() = %v, want ErrCorruptRecord", s.Err())
	}
	if s.Scan() {
		t.Error("エラー後に Scan() = true")
	}
}

func TestAll(t *testing.T) {
	data := stream([]byte{0x02},
		songBytes("a", 0, 0),
		songBytes("b", 0, 0),
	)

	count := 0
	for song, err := range All(data) {
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		count++
		if song.ID != "a" {
			t.Errorf("最初の曲 = %q", song.ID)
		}
		break
	}
	if count != 1 {
		t.Errorf("途中終了後の件数 = %d, want 1", count)
	}

	var gotErr error
	for _, err := range All([]byte{0x01, 0x05}) {
		gotErr = err
	}
	if !errors.Is(gotErr, ErrCorruptRecord) {
		t.Errorf("All() error = %v, want ErrCorruptRecord", gotErr)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	save := DecodedSave{
		{ID: "Spasmodic.姜米條", Record: SongRecord{
			{Difficulty: IN, Record: LevelRecord{Score: 991234, Accuracy: 99.12, FullCombo: true}},
			{Difficulty: AT, Record: LevelRecord{Score: 912345, Accuracy: 97.5}},
		}},
		{ID: "Cipher.ZodiacSystem", Record: SongRecord{}},
	}

	data, err := Encode(save)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertSave(t, got, save)
}

func TestEncode_ManySongs(t *testing.T) {
	save := make(DecodedSave, 200)
	for i := range save {
		save[i] = Song{ID: "s", Record: SongRecord{}}
	}

	data, err := Encode(save)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	// 128曲以上では曲数フィールドが2バイトになり、先頭バイトが負になる
	if int8(data[0]) >= 0 {
		t.Errorf("先頭バイト = 0x%02X, 負の値になるはず", data[0])
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 200 {
		t.Errorf("曲数 = %d, want 200", len(got))
	}
}

func TestEncode_Errors(t *testing.T) {
	long := make([]byte, 254)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name string
		save DecodedSave
	}{
		{name: "長すぎる曲ID", save: DecodedSave{{ID: string(long)}}},
		{name: "不明な難易度", save: DecodedSave{{ID: "a", Record: SongRecord{{Difficulty: Difficulty(7)}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.save); !errors.Is(err, ErrEncode) {
				t.Errorf("Encode() error = %v, want ErrEncode", err)
			}
		})
	}
}

func TestDecodedSave_Find(t *testing.T) {
	save := DecodedSave{
		{ID: "a", Record: SongRecord{{Difficulty: EZ, Record: LevelRecord{Score: 1}}}},
		{ID: "b"},
		{ID: "a", Record: SongRecord{{Difficulty: EZ, Record: LevelRecord{Score: 2}}}},
	}

	song, ok := save.Find("a")
	if !ok {
		t.Fatal("Find(a) が見つからない")
	}
	if l, _ := song.Record.Get(EZ); l.Score != 2 {
		t.Errorf("重複IDは後勝ち: Score = %d, want 2", l.Score)
	}
	if _, ok := save.Find("z"); ok {
		t.Error("存在しないIDが見つかった")
	}
}
