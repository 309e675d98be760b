package rks

import "github.com/shiroemons/go-phirks/pkg/record"

// Grade は評価ランクです
type Grade string

const (
	GradePhi       Grade = "φ"
	GradeFullCombo Grade = "FC"
	GradeV         Grade = "V"
	GradeS         Grade = "S"
	GradeA         Grade = "A"
	GradeB         Grade = "B"
	GradeC         Grade = "C"
	GradeF         Grade = "F"
)

// MaxScore は理論値のスコアです
const MaxScore = 1000000

// GradeOf はスコアとフルコンボから評価ランクを決めます
func GradeOf(level record.LevelRecord) Grade {
	switch {
	case level.Score == MaxScore:
		return GradePhi
	case level.FullCombo:
		return GradeFullCombo
	case level.Score >= 960000:
		return GradeV
	case level.Score >= 920000:
		return GradeS
	case level.Score >= 880000:
		return GradeA
	case level.Score >= 820000:
		return GradeB
	case level.Score >= 700000:
		return GradeC
	default:
		return GradeF
	}
}
