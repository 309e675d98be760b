package summary

import "fmt"

// ChallengeRank は課題モードのランクです
type ChallengeRank int

const (
	RankNone ChallengeRank = iota
	RankGreen
	RankBlue
	RankRed
	RankGold
	RankRainbow
)

var rankNames = [...]string{"none", "green", "blue", "red", "gold", "rainbow"}

// Known はランク表に存在する値かどうかを返します
func (r ChallengeRank) Known() bool {
	return r >= RankNone && int(r) < len(rankNames)
}

func (r ChallengeRank) String() string {
	if !r.Known() {
		return fmt.Sprintf("unknown(%d)", int(r))
	}
	return rankNames[r]
}

// MarshalText はランク名に変換します
func (r ChallengeRank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Challenge は課題モードのランクとレベルです
type Challenge struct {
	Rank  ChallengeRank `json:"rank"`
	Level int           `json:"level"`
}

// DecodeChallenge は raw を level = raw mod 100、rank = (raw - level) / 100 に分解します
func DecodeChallenge(raw int16) Challenge {
	level := int(raw) % 100
	return Challenge{
		Rank:  ChallengeRank((int(raw) - level) / 100),
		Level: level,
	}
}

// Raw は DecodeChallenge の逆変換です
func (c Challenge) Raw() int16 {
	return int16(int(c.Rank)*100 + c.Level)
}
