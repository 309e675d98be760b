package record

// LevelRecord は1曲1難易度分のプレイ結果です
type LevelRecord struct {
	Score     int32   `json:"score"`
	Accuracy  float32 `json:"accuracy"`
	FullCombo bool    `json:"fullCombo"`
}

// Level は難易度とその結果の組です
type Level struct {
	Difficulty Difficulty  `json:"difficulty"`
	Record     LevelRecord `json:"record"`
}

// SongRecord はプレイ済みの難易度だけを EZ, HD, IN, AT の順に保持します
type SongRecord []Level

// Get は指定した難易度の結果を返します
func (r SongRecord) Get(d Difficulty) (LevelRecord, bool) {
	for _, l := range r {
		if l.Difficulty == d {
			return l.Record, true
		}
	}
	return LevelRecord{}, false
}

// Song は曲IDとその記録です
type Song struct {
	ID     string     `json:"id"`
	Record SongRecord `json:"record"`
}

// DecodedSave はストリーム順に並んだ曲の記録です
type DecodedSave []Song

// Find は id に一致する曲を返します
// 同じIDが複数ある場合は後ろにあるものを優先します
func (s DecodedSave) Find(id string) (Song, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].ID == id {
			return s[i], true
		}
	}
	return Song{}, false
}
