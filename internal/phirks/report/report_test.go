package report

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/shiroemons/go-phirks/pkg/chart"
	"github.com/shiroemons/go-phirks/pkg/record"
	"github.com/shiroemons/go-phirks/pkg/rks"
	"github.com/shiroemons/go-phirks/pkg/summary"
)

var glaciaxion = &chart.SongInfo{
	ID:          "Glaciaxion.SunsetRay",
	Name:        "Glaciaxion",
	Artist:      "SunsetRay",
	Illustrator: "Rolling Cat",
	Charts: map[record.Difficulty]chart.Chart{
		record.EZ: {Level: 1, Difficulty: 1.5, Combo: 200, Charter: "A"},
		record.HD: {Level: 6, Difficulty: 6.5, Combo: 400, Charter: "B"},
		record.IN: {Level: 12, Difficulty: 12.7, Combo: 700, Charter: "C"},
	},
}

func testResult() *rks.Result {
	phi := rks.Entry{
		SongID:     glaciaxion.ID,
		Difficulty: record.IN,
		Record:     record.LevelRecord{Score: 1000000, Accuracy: 100, FullCombo: true},
		Song:       glaciaxion,
		Chart:      glaciaxion.Charts[record.IN],
		Rks:        12.7,
	}
	noName := rks.Entry{
		SongID:     "Unknown.Artist",
		Difficulty: record.HD,
		Record:     record.LevelRecord{Score: 930000, Accuracy: 95},
		Chart:      chart.Chart{Difficulty: 10},
		Rks:        7.9,
	}
	return &rks.Result{
		BestPhi: phi,
		B19:     []rks.Entry{phi, noName},
		Rks:     (12.7 + 12.7 + 7.9) / 20,
	}
}

func TestBuildB19(t *testing.T) {
	sum := &summary.Summary{
		SaveVersion: 1,
		Challenge:   summary.Challenge{Rank: summary.RankRed, Level: 5},
		Rks:         1.66,
		GameVersion: 90,
		Avatar:      "Glaciaxion",
	}

	rep := BuildB19("player.save", testResult(), sum)

	if rep.InputFile != "player.save" {
		t.Errorf("InputFile = %q", rep.InputFile)
	}
	if rep.BestPhi.Rank != 0 || rep.BestPhi.Grade != rks.GradePhi {
		t.Errorf("unexpected bestPhi line: %+v", rep.BestPhi)
	}
	if len(rep.B19) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(rep.B19))
	}
	if rep.B19[0].Rank != 1 || rep.B19[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", rep.B19[0].Rank, rep.B19[1].Rank)
	}
	if rep.B19[0].Name != "Glaciaxion" {
		t.Errorf("Name = %q, want Glaciaxion", rep.B19[0].Name)
	}
	// 曲情報が無い場合は曲IDを表示名にする
	if rep.B19[1].Name != "Unknown.Artist" {
		t.Errorf("Name = %q, want Unknown.Artist", rep.B19[1].Name)
	}
	if rep.B19[1].Grade != rks.GradeS || rep.B19[1].Constant != 10 {
		t.Errorf("unexpected line: %+v", rep.B19[1])
	}
	if rep.Player == nil || rep.Player.Avatar != "Glaciaxion" || rep.Player.Challenge.Level != 5 {
		t.Errorf("unexpected player: %+v", rep.Player)
	}

	if rep := BuildB19("x", testResult(), nil); rep.Player != nil {
		t.Error("Player should be nil without a summary")
	}
}

func TestBuildSongReport(t *testing.T) {
	song := record.Song{
		ID: glaciaxion.ID,
		Record: record.SongRecord{
			{Difficulty: record.EZ, Record: record.LevelRecord{Score: 1000000, Accuracy: 100, FullCombo: true}},
			{Difficulty: record.AT, Record: record.LevelRecord{Score: 500000, Accuracy: 60}},
		},
	}
	other := &chart.SongInfo{ID: "Glaciaxion.Remix"}

	rep := BuildSongReport("player.save", glaciaxion, song, []*chart.SongInfo{glaciaxion, other})

	tests := []struct {
		name       string
		idx        int
		difficulty record.Difficulty
		played     bool
		rks        float64
	}{
		{"EZは記録あり", 0, record.EZ, true, 1.5},
		{"HDは未プレイ", 1, record.HD, false, 0},
		{"INは未プレイ", 2, record.IN, false, 0},
		{"ATは譜面が無くても記録があれば含む", 3, record.AT, true, 0},
	}

	if len(rep.Levels) != len(tests) {
		t.Fatalf("Expected %d levels, got %d", len(tests), len(rep.Levels))
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := rep.Levels[tt.idx]
			if l.Difficulty != tt.difficulty || l.Played != tt.played || l.Rks != tt.rks {
				t.Errorf("unexpected level: %+v", l)
			}
		})
	}

	if len(rep.Candidates) != 1 || rep.Candidates[0] != "Glaciaxion.Remix" {
		t.Errorf("Candidates = %v", rep.Candidates)
	}
}

func TestRenderer_RenderB19(t *testing.T) {
	sum := &summary.Summary{Challenge: summary.Challenge{Rank: summary.RankGold, Level: 48}, Avatar: "Cipher"}
	out := NewRenderer(language.Japanese).RenderB19(BuildB19("player.save", testResult(), sum))

	for _, want := range []string{
		"プレイヤー: Cipher",
		"課題モード: gold Lv.48",
		"RKS: 1.6650",
		"1,000,000",
		"930,000",
		"Glaciaxion",
		"Unknown.Artist",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "2 ") {
		t.Errorf("last line should be rank 2: %q", last)
	}
}

func TestRenderer_RenderSong(t *testing.T) {
	song := record.Song{ID: glaciaxion.ID, Record: record.SongRecord{
		{Difficulty: record.IN, Record: record.LevelRecord{Score: 983456, Accuracy: 99.12}},
	}}
	rep := BuildSongReport("player.save", glaciaxion, song, []*chart.SongInfo{glaciaxion, {ID: "Other"}})

	out := NewRenderer(language.English).RenderSong(rep)

	for _, want := range []string{
		"曲名: Glaciaxion",
		"作曲: SunsetRay",
		"Lv.12",
		"983,456",
		"99.12%",
		"未プレイ",
		"他の候補: Other",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{12, "12"},
		{0, "0"},
		{15.5, "15.5"},
	}
	for _, tt := range tests {
		if got := formatLevel(tt.level); got != tt.want {
			t.Errorf("formatLevel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
