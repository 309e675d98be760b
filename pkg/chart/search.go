package chart

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"
)

// similarityThreshold はあいまい検索で候補とみなす類似度の下限です
const similarityThreshold = 0.8

// Search は曲名・作曲者・曲IDから曲を検索します
//
// まず大文字小文字を区別しない部分一致で探し、見つからなければ
// Jaro-Winkler 類似度による候補を類似度の高い順に返します。
func (t *Table) Search(query string) []*SongInfo {
	fold := cases.Fold()
	q := strings.TrimSpace(fold.String(query))
	if q == "" {
		return nil
	}

	// 完全一致する曲IDは最優先
	if s, ok := t.byID[strings.TrimSpace(query)]; ok {
		return []*SongInfo{s}
	}

	var matches []*SongInfo
	for _, s := range t.songs {
		if strings.Contains(fold.String(s.Name), q) ||
			strings.Contains(fold.String(s.Artist), q) ||
			strings.Contains(fold.String(s.ID), q) {
			matches = append(matches, s)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	type candidate struct {
		song  *SongInfo
		score float64
	}
	jw := metrics.NewJaroWinkler()
	var candidates []candidate
	for _, s := range t.songs {
		score := strutil.Similarity(q, fold.String(s.Name), jw)
		if score >= similarityThreshold {
			candidates = append(candidates, candidate{song: s, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	for _, c := range candidates {
		matches = append(matches, c.song)
	}
	return matches
}
