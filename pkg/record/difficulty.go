package record

import "fmt"

// Difficulty は譜面の難易度区分です
type Difficulty int

// 難易度はこの順番で記録されます
const (
	EZ Difficulty = iota
	HD
	IN
	AT
)

// Difficulties はスコアブロックを読む順番に並べた難易度一覧です
var Difficulties = [...]Difficulty{EZ, HD, IN, AT}

var difficultyNames = [...]string{"EZ", "HD", "IN", "AT"}

// Bit はビットマスク上の値を返します（EZ=1, HD=2, IN=4, AT=8）
func (d Difficulty) Bit() byte {
	return 1 << uint(d)
}

// Valid は定義済みの難易度かどうかを返します
func (d Difficulty) Valid() bool {
	return d >= EZ && d <= AT
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// MarshalText は難易度を "EZ" などの文字列に変換します
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("不明な難易度です: %d", int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText は "EZ" などの文字列から難易度を復元します
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, ok := ParseDifficulty(string(text))
	if !ok {
		return fmt.Errorf("不明な難易度です: %q", text)
	}
	*d = parsed
	return nil
}

// ParseDifficulty は難易度名を解析します
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if difficultyNames[d] == s {
			return d, true
		}
	}
	return 0, false
}
