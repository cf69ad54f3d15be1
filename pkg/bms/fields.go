package bms

// Player は演奏形態（#PLAYER）を表します。
type Player int

const (
	PlayerSingle Player = iota + 1 // 1: シングルプレイ
	PlayerCouple                   // 2: カップルプレイ
	PlayerDouble                   // 3: ダブルプレイ
	PlayerBattle                   // 4: バトルプレイ（ほとんど使われない）
)

// playerFromOrdinal はオペランドの数値を Player に変換します。
func playerFromOrdinal(n int) (Player, bool) {
	if n < 1 || n > 4 {
		return 0, false
	}
	return Player(n), true
}

// String は演奏形態名を返します。
func (p Player) String() string {
	switch p {
	case PlayerSingle:
		return "SINGLE"
	case PlayerCouple:
		return "COUPLE"
	case PlayerDouble:
		return "DOUBLE"
	case PlayerBattle:
		return "BATTLE"
	}
	return "unknown"
}

// Rank は判定ランク（#RANK）を表します。
type Rank int

const (
	RankVeryHard Rank = iota // 0
	RankHard                 // 1
	RankNormal               // 2
	RankEasy                 // 3
)

// rankFromOrdinal はオペランドの数値を Rank に変換します。
func rankFromOrdinal(n int) (Rank, bool) {
	if n < 0 || n > 3 {
		return 0, false
	}
	return Rank(n), true
}

// Window はランクに対応する判定幅（±ミリ秒）を返します。
func (r Rank) Window() float64 {
	switch r {
	case RankVeryHard:
		return 8
	case RankHard:
		return 15
	case RankEasy:
		return 21
	}
	return NormalWindow
}

// String はランク名を返します。
func (r Rank) String() string {
	switch r {
	case RankVeryHard:
		return "VERYHARD"
	case RankHard:
		return "HARD"
	case RankNormal:
		return "NORMAL"
	case RankEasy:
		return "EASY"
	}
	return "unknown"
}

// Difficulty は難易度区分（#DIFFICULTY）を表します。
type Difficulty int

const (
	DifficultyUnknown Difficulty = iota // 未指定
	DifficultyBeginner
	DifficultyNormal
	DifficultyHyper
	DifficultyAnother
	DifficultyInsane
)

// difficultyFromOrdinal はオペランドの数値を Difficulty に変換します。
func difficultyFromOrdinal(n int) (Difficulty, bool) {
	if n < 1 || n > 5 {
		return 0, false
	}
	return Difficulty(n), true
}

// String は難易度名を返します。
func (d Difficulty) String() string {
	switch d {
	case DifficultyBeginner:
		return "BEGINNER"
	case DifficultyNormal:
		return "NORMAL"
	case DifficultyHyper:
		return "HYPER"
	case DifficultyAnother:
		return "ANOTHER"
	case DifficultyInsane:
		return "INSANE"
	}
	return "unknown"
}

// 未指定フィールドの確定時に用いるデフォルト値。
// BMS には正式な仕様がなく、デフォルトは実装間で揺れのある慣習値です
// （#TOTAL は 160 と 100 で実装が分かれるなど）。方針の変更が一箇所で
// 済むよう、ここに名前付き定数としてまとめています。
const (
	DefaultPlayer    = PlayerSingle
	DefaultRank      = RankNormal
	DefaultTotal     = 160.0
	DefaultPlayLevel = 3
	DefaultBPM       = 130.0
	DefaultVolwav    = 100
	DefaultLNType    = 1
)

// scalar は単一値フィールドの未設定・設定済みを表すホルダーです。
// オペランドが解釈できなかったフィールドは未設定のまま Diagnostic を残し、
// 確定時にデフォルト値へ置き換えます。
type scalar[T any] struct {
	value T
	set   bool
}

// store は明示的な値を記録します。
func (s *scalar[T]) store(v T) {
	s.value = v
	s.set = true
}

// or は設定済みなら値を、未設定ならデフォルト値を返します。
func (s scalar[T]) or(def T) T {
	if s.set {
		return s.value
	}
	return def
}
