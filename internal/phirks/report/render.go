package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shiroemons/go-phirks/internal/phirks/models"
)

const separator = "------------------------------------------------------------"

// Renderer はレポートをテキストに整形します
type Renderer struct {
	printer *message.Printer
}

// NewRenderer は数値の書式に tag の地域設定を使うRendererを作成します
func NewRenderer(tag language.Tag) *Renderer {
	return &Renderer{printer: message.NewPrinter(tag)}
}

// RenderB19 はB19レポートを整形します
func (r *Renderer) RenderB19(rep models.B19Report) string {
	var builder strings.Builder

	if rep.Player != nil {
		builder.WriteString(fmt.Sprintf("プレイヤー: %s\n", rep.Player.Avatar))
		builder.WriteString(fmt.Sprintf("課題モード: %s Lv.%d\n", rep.Player.Challenge.Rank, rep.Player.Challenge.Level))
		builder.WriteString(fmt.Sprintf("表示RKS: %.2f\n", rep.Player.DisplayRks))
	}
	builder.WriteString(fmt.Sprintf("RKS: %.4f\n", rep.Rks))
	builder.WriteString(separator + "\n")
	builder.WriteString(fmt.Sprintf("%-4s %-3s %5s %9s %8s %-2s %8s  %s\n", "順位", "難易度", "定数", "スコア", "精度", "評価", "RKS", "曲名"))
	builder.WriteString(separator + "\n")

	builder.WriteString(r.scoreLine(rep.BestPhi))
	for _, line := range rep.B19 {
		builder.WriteString(r.scoreLine(line))
	}

	return builder.String()
}

func (r *Renderer) scoreLine(line models.ScoreLine) string {
	rank := "φ"
	if line.Rank > 0 {
		rank = fmt.Sprintf("%d", line.Rank)
	}
	return fmt.Sprintf("%-4s %-3s %5.1f %9s %7.2f%% %-2s %8.4f  %s\n",
		rank, line.Difficulty, line.Constant, r.score(line.Score), line.Accuracy, line.Grade, line.Rks, line.Name)
}

// RenderSong は曲のスコアカードを整形します
func (r *Renderer) RenderSong(rep models.SongReport) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("曲名: %s\n", rep.Name))
	builder.WriteString(fmt.Sprintf("作曲: %s\n", rep.Artist))
	builder.WriteString(fmt.Sprintf("イラスト: %s\n", rep.Illustrator))
	builder.WriteString(fmt.Sprintf("ID: %s\n", rep.SongID))
	builder.WriteString(separator + "\n")

	for _, l := range rep.Levels {
		head := fmt.Sprintf("%-3s Lv.%-4s 定数 %4.1f %4d combo", l.Difficulty, formatLevel(l.Level), l.Constant, l.Combo)
		if !l.Played {
			builder.WriteString(head + "  未プレイ\n")
			continue
		}
		builder.WriteString(fmt.Sprintf("%s  %9s %7.2f%% %-2s %8.4f\n", head, r.score(l.Score), l.Accuracy, l.Grade, l.Rks))
	}

	if len(rep.Candidates) > 0 {
		builder.WriteString(separator + "\n")
		builder.WriteString(fmt.Sprintf("他の候補: %s\n", strings.Join(rep.Candidates, ", ")))
	}

	return builder.String()
}

// score はスコアを桁区切り付きで整形します
func (r *Renderer) score(score int32) string {
	return r.printer.Sprintf("%d", score)
}

func formatLevel(level float64) string {
	if level == float64(int(level)) {
		return fmt.Sprintf("%d", int(level))
	}
	return fmt.Sprintf("%g", level)
}
