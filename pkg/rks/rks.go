// Package rks はプレイ記録と譜面定数からランキングスコア（RKS）を計算します
package rks

import (
	"cmp"
	"slices"

	"github.com/shiroemons/go-phirks/pkg/chart"
	"github.com/shiroemons/go-phirks/pkg/record"
)

const (
	// MinAccuracy はRKSが付く精度の下限です
	MinAccuracy = 70

	// BestCount は集計に使う上位の件数です
	BestCount = 19
)

// Play は曲の記録と、その曲の譜面情報の組です
type Play struct {
	Song record.Song
	Info *chart.SongInfo // 譜面情報がない曲は nil
}

// Entry は1譜面分のRKSです
type Entry struct {
	SongID     string             `json:"songId"`
	Difficulty record.Difficulty  `json:"difficulty"`
	Record     record.LevelRecord `json:"record"`
	Song       *chart.SongInfo    `json:"-"`
	Chart      chart.Chart        `json:"chart"`
	Rks        float64            `json:"rks"`
}

// Result は Aggregate の結果です
type Result struct {
	BestPhi Entry   `json:"bestPhi"`
	B19     []Entry `json:"b19"`
	Rks     float64 `json:"rks"`
}

// ComputeRks は1譜面分のRKSを計算します
// 精度が70未満なら0、それ以外は ((精度-55)/45)^2 * 譜面定数
func ComputeRks(level record.LevelRecord, difficulty float64) float64 {
	acc := float64(level.Accuracy)
	if acc < MinAccuracy {
		return 0
	}
	x := (acc - 55) / 45
	return x * x * difficulty
}

// Pair はセーブデータの各曲にテーブルの譜面情報を対応付けます
func Pair(save record.DecodedSave, table *chart.Table) []Play {
	plays := make([]Play, 0, len(save))
	for _, song := range save {
		var info *chart.SongInfo
		if table != nil {
			info, _ = table.Get(song.ID)
		}
		plays = append(plays, Play{Song: song, Info: info})
	}
	return plays
}

// BestEntries は全曲全難易度のRKSを計算し、降順に並べて返します
// RKSが同じ場合は曲順・難易度順を保ちます。譜面定数が分からない譜面は含みません
func BestEntries(plays []Play) []Entry {
	var entries []Entry
	for _, p := range plays {
		if p.Info == nil {
			continue
		}
		for _, level := range p.Song.Record {
			c, ok := p.Info.Chart(level.Difficulty)
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				SongID:     p.Song.ID,
				Difficulty: level.Difficulty,
				Record:     level.Record,
				Song:       p.Info,
				Chart:      c,
				Rks:        ComputeRks(level.Record, c.Difficulty),
			})
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Rks, a.Rks)
	})
	return entries
}

// Aggregate はプレイヤーのRKSを計算します
//
// BestPhi は精度100%の譜面のうちRKSが最も高いもの、B19 は全譜面の上位19件です。
// B19 から BestPhi を除外はしません。
// RKS は BestPhi と B19 の合計20件の平均で、B19 が19件に満たない分は0として扱います。
func Aggregate(plays []Play) (*Result, error) {
	entries := BestEntries(plays)

	phiIndex := slices.IndexFunc(entries, func(e Entry) bool {
		return e.Record.Accuracy == 100
	})
	if phiIndex < 0 {
		return nil, ErrNoPerfectRecord
	}
	phi := entries[phiIndex]

	n := min(BestCount, len(entries))
	b19 := make([]Entry, n)
	copy(b19, entries[:n])

	sum := phi.Rks
	for _, e := range b19 {
		sum += e.Rks
	}

	return &Result{
		BestPhi: phi,
		B19:     b19,
		Rks:     sum / float64(BestCount+1),
	}, nil
}
