// Package chart は曲と譜面定数のテーブルを扱います
//
// テーブルは外部の曲メタデータ（JSON）から読み込みます。
// 各曲の譜面定数は RKS の計算に使用されます。
package chart

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/shiroemons/go-phirks/pkg/record"
)

// Chart は1難易度分の譜面情報です
type Chart struct {
	Level      float64 `json:"level"`
	Difficulty float64 `json:"difficulty"` // 譜面定数
	Combo      int     `json:"combo"`
	Charter    string  `json:"charter"`
}

// SongInfo は曲の情報です
type SongInfo struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	Artist       string                      `json:"artist"`
	Charts       map[record.Difficulty]Chart `json:"chart"`
	Illustration string                      `json:"illustration"`
	Thumbnail    string                      `json:"thumbnail"`
	Illustrator  string                      `json:"illustrator"`
}

// Chart は指定した難易度の譜面情報を返します
func (s *SongInfo) Chart(d record.Difficulty) (Chart, bool) {
	c, ok := s.Charts[d]
	return c, ok
}

// Table は曲IDで引ける曲情報のテーブルです
type Table struct {
	songs []*SongInfo
	byID  map[string]*SongInfo
}

// NewTable は曲情報の一覧からテーブルを作成します
// 同じIDの曲は後のものが優先されます
func NewTable(songs []SongInfo) *Table {
	t := &Table{
		songs: make([]*SongInfo, 0, len(songs)),
		byID:  make(map[string]*SongInfo, len(songs)),
	}
	index := make(map[string]int, len(songs))
	for i := range songs {
		song := songs[i]
		if j, exists := index[song.ID]; exists {
			t.songs[j] = &song
		} else {
			index[song.ID] = len(t.songs)
			t.songs = append(t.songs, &song)
		}
		t.byID[song.ID] = &song
	}
	return t
}

// Get は曲IDに一致する曲情報を返します
func (t *Table) Get(id string) (*SongInfo, bool) {
	s, ok := t.byID[id]
	return s, ok
}

// Difficulty は曲IDと難易度から譜面定数を返します
func (t *Table) Difficulty(id string, d record.Difficulty) (float64, bool) {
	s, ok := t.byID[id]
	if !ok {
		return 0, false
	}
	c, ok := s.Charts[d]
	if !ok {
		return 0, false
	}
	return c.Difficulty, true
}

// Songs はテーブル内の曲をID順に返します
func (t *Table) Songs() []*SongInfo {
	out := make([]*SongInfo, len(t.songs))
	copy(out, t.songs)
	return out
}

// Len は曲数を返します
func (t *Table) Len() int {
	return len(t.songs)
}

// flexNumber は数値と数値文字列の両方を受け付けます
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("数値として解釈できません: %s", data)
	}
	*n = flexNumber(v)
	return nil
}

type rawChart struct {
	Level      flexNumber `json:"level"`
	Difficulty flexNumber `json:"difficulty"`
	Combo      flexNumber `json:"combo"`
	Charter    string     `json:"charter"`
}

type rawSong struct {
	ID              string              `json:"id"`
	Song            string              `json:"song"`
	Composer        string              `json:"composer"`
	Chart           map[string]rawChart `json:"chart"`
	Illustration    string              `json:"illustration"`
	IllustrationBig string              `json:"illustration_big"`
	Illustrator     string              `json:"illustrator"`
}

// Load は曲メタデータのJSONを読み込みます
//
// JSONは任意のキーから曲情報へのオブジェクトで、各曲は song, composer, chart などを持ちます。
// id がない曲は曲名と作曲者から InternalName で曲IDを生成します。
// 同じ曲IDになる曲が複数ある場合はJSON上で先に現れたものを使います。
// EZ, HD, IN, AT 以外の難易度は無視します。
func Load(r io.Reader) (*Table, error) {
	raw, err := decodeSongs(json.NewDecoder(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	songs := make([]SongInfo, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, kv := range raw {
		rs := kv.song
		id := rs.ID
		if id == "" {
			id = InternalName(rs.Song, rs.Composer)
		}
		if id == "" {
			return nil, fmt.Errorf("%w: %s: 曲IDを決定できません", ErrInvalidTable, kv.key)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		info := SongInfo{
			ID:           id,
			Name:         rs.Song,
			Artist:       rs.Composer,
			Charts:       make(map[record.Difficulty]Chart, len(rs.Chart)),
			Illustration: rs.IllustrationBig,
			Thumbnail:    rs.Illustration,
			Illustrator:  rs.Illustrator,
		}
		for code, rc := range rs.Chart {
			d, ok := record.ParseDifficulty(code)
			if !ok {
				continue
			}
			info.Charts[d] = Chart{
				Level:      float64(rc.Level),
				Difficulty: float64(rc.Difficulty),
				Combo:      int(rc.Combo),
				Charter:    rc.Charter,
			}
		}
		songs = append(songs, info)
	}

	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].ID < songs[j].ID
	})

	return NewTable(songs), nil
}

type keyedSong struct {
	key  string
	song rawSong
}

// decodeSongs はトップレベルのオブジェクトをキーの出現順に読み込みます
func decodeSongs(dec *json.Decoder) ([]keyedSong, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("オブジェクトではありません: %v", tok)
	}

	var songs []keyedSong
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("キーが文字列ではありません: %v", tok)
		}
		var rs rawSong
		if err := dec.Decode(&rs); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		songs = append(songs, keyedSong{key: key, song: rs})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return songs, nil
}

// LoadFile は曲メタデータのJSONファイルを読み込みます
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

const (
	nameStripChars   = " .,&/?|\\~`<>:;'\"[]{}+=*@#$%^&()-"
	artistStripChars = " .,&/?|\\~`<>:;'\"[]{}+=*@#$%^&()"
)

// InternalName は曲名と作曲者からセーブデータ上の曲IDを生成します
// 例: "Glaciaxion", "SunsetRay" -> "Glaciaxion.SunsetRay"
func InternalName(name, artist string) string {
	n := stripChars(name, nameStripChars)
	a := stripChars(artist, artistStripChars)
	if n == "" && a == "" {
		return ""
	}
	return n + "." + a
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}
