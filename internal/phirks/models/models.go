// Package models はphirksコマンドで使用するデータモデルを定義します
package models

import (
	"github.com/shiroemons/go-phirks/pkg/record"
	"github.com/shiroemons/go-phirks/pkg/rks"
	"github.com/shiroemons/go-phirks/pkg/summary"
)

// ExtractedData はセーブファイルから取り出したデータを表します
type ExtractedData struct {
	Save      record.DecodedSave
	Summary   *summary.Summary // サマリーが指定されていない場合は nil
	InputFile string
}

// Player はサマリーから得たプレイヤー情報です
type Player struct {
	Avatar      string            `json:"avatar"`
	Challenge   summary.Challenge `json:"challenge"`
	DisplayRks  float32           `json:"displayRks"` // ゲーム内に表示されているRKS
	GameVersion uint8             `json:"gameVersion"`
	SaveVersion uint8             `json:"saveVersion"`
}

// ScoreLine はレポートの1行分です
type ScoreLine struct {
	Rank       int               `json:"rank"` // 0 は bestPhi の行
	SongID     string            `json:"songId"`
	Name       string            `json:"name"`
	Difficulty record.Difficulty `json:"difficulty"`
	Constant   float64           `json:"constant"`
	Score      int32             `json:"score"`
	Accuracy   float32           `json:"accuracy"`
	FullCombo  bool              `json:"fullCombo"`
	Grade      rks.Grade         `json:"grade"`
	Rks        float64           `json:"rks"`
}

// B19Report は上位19譜面とbestPhiからなるレポートです
type B19Report struct {
	InputFile string      `json:"inputFile"`
	Player    *Player     `json:"player,omitempty"`
	Rks       float64     `json:"rks"`
	BestPhi   ScoreLine   `json:"bestPhi"`
	B19       []ScoreLine `json:"b19"`
}

// LevelCard は曲カードの1難易度分です
type LevelCard struct {
	Difficulty record.Difficulty `json:"difficulty"`
	Level      float64           `json:"level"`
	Constant   float64           `json:"constant"`
	Combo      int               `json:"combo"`
	Charter    string            `json:"charter"`
	Played     bool              `json:"played"`
	Score      int32             `json:"score,omitempty"`
	Accuracy   float32           `json:"accuracy,omitempty"`
	FullCombo  bool              `json:"fullCombo,omitempty"`
	Grade      rks.Grade         `json:"grade,omitempty"`
	Rks        float64           `json:"rks,omitempty"`
}

// SongReport は1曲分のスコアカードです
type SongReport struct {
	InputFile   string      `json:"inputFile"`
	SongID      string      `json:"songId"`
	Name        string      `json:"name"`
	Artist      string      `json:"artist"`
	Illustrator string      `json:"illustrator"`
	Levels      []LevelCard `json:"levels"`
	Candidates  []string    `json:"candidates,omitempty"` // 他に一致した曲ID
}
