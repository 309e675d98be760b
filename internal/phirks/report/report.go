// Package report はRKSの計算結果からレポートを組み立てて整形します
package report

import (
	"github.com/shiroemons/go-phirks/internal/phirks/models"
	"github.com/shiroemons/go-phirks/pkg/chart"
	"github.com/shiroemons/go-phirks/pkg/record"
	"github.com/shiroemons/go-phirks/pkg/rks"
	"github.com/shiroemons/go-phirks/pkg/summary"
)

// BuildB19 は集計結果からB19レポートを作成します
// sum が nil の場合はプレイヤー情報を含めません
func BuildB19(inputFile string, result *rks.Result, sum *summary.Summary) models.B19Report {
	rep := models.B19Report{
		InputFile: inputFile,
		Rks:       result.Rks,
		BestPhi:   scoreLine(0, result.BestPhi),
		B19:       make([]models.ScoreLine, 0, len(result.B19)),
	}
	for i, e := range result.B19 {
		rep.B19 = append(rep.B19, scoreLine(i+1, e))
	}
	if sum != nil {
		rep.Player = &models.Player{
			Avatar:      sum.Avatar,
			Challenge:   sum.Challenge,
			DisplayRks:  sum.Rks,
			GameVersion: sum.GameVersion,
			SaveVersion: sum.SaveVersion,
		}
	}
	return rep
}

func scoreLine(rank int, e rks.Entry) models.ScoreLine {
	name := e.SongID
	if e.Song != nil && e.Song.Name != "" {
		name = e.Song.Name
	}
	return models.ScoreLine{
		Rank:       rank,
		SongID:     e.SongID,
		Name:       name,
		Difficulty: e.Difficulty,
		Constant:   e.Chart.Difficulty,
		Score:      e.Record.Score,
		Accuracy:   e.Record.Accuracy,
		FullCombo:  e.Record.FullCombo,
		Grade:      rks.GradeOf(e.Record),
		Rks:        e.Rks,
	}
}

// BuildSongReport は1曲分のスコアカードを作成します
// 譜面があるか、記録がある難易度だけを含めます
func BuildSongReport(inputFile string, info *chart.SongInfo, song record.Song, candidates []*chart.SongInfo) models.SongReport {
	rep := models.SongReport{
		InputFile:   inputFile,
		SongID:      info.ID,
		Name:        info.Name,
		Artist:      info.Artist,
		Illustrator: info.Illustrator,
	}

	for _, d := range record.Difficulties {
		c, hasChart := info.Chart(d)
		level, played := song.Record.Get(d)
		if !hasChart && !played {
			continue
		}

		card := models.LevelCard{
			Difficulty: d,
			Level:      c.Level,
			Constant:   c.Difficulty,
			Combo:      c.Combo,
			Charter:    c.Charter,
			Played:     played,
		}
		if played {
			card.Score = level.Score
			card.Accuracy = level.Accuracy
			card.FullCombo = level.FullCombo
			card.Grade = rks.GradeOf(level)
			card.Rks = rks.ComputeRks(level, c.Difficulty)
		}
		rep.Levels = append(rep.Levels, card)
	}

	for _, c := range candidates {
		if c.ID != info.ID {
			rep.Candidates = append(rep.Candidates, c.ID)
		}
	}
	return rep
}
