package bms

import "sort"

// NormalWindow は判定幅の基準となる RANK: NORMAL の ±18 ミリ秒です。
// #DEFEXRANK と #EXRANKxx のパーセント値は、現在の #RANK が何であっても
// 常にこの値に対する割合として解釈されます。
const NormalWindow = 18.0

// RankEvent はタイムライン上で発火する EXRANK イベントです。
// Position の単位（小節位置など）はタイムライン解析器の定義に従い、
// この型は大小関係のみを利用します。
type RankEvent struct {
	Position float64
	ID       Identifier
}

// rankChange は解決済みの判定幅の切り替え点です。
type rankChange struct {
	position float64
	window   float64
}

// JudgeResolver は譜面位置ごとの実効判定幅を解決します。
// EXRANK による変更は次の EXRANK イベントまで有効で、小節の終わりで
// 自動的に元へ戻ることはありません（リセットには明示的なイベントが必要）。
type JudgeResolver struct {
	base    float64
	changes []rankChange
}

// NewJudgeResolver はタイムライン上の EXRANK イベント列から JudgeResolver を
// 作成します。基準の判定幅は #RANK（未指定なら NORMAL）から取りますが、
// #DEFEXRANK があれば譜面全体の基準を 18ms × パーセント値 で上書きします。
// ExRank テーブルに未登録の Identifier を参照するイベントは無視します。
func (h *Header) NewJudgeResolver(events []RankEvent) *JudgeResolver {
	base := h.rank.Window()
	if h.hasDefExRank {
		base = NormalWindow * h.defExRank / 100
	}

	r := &JudgeResolver{base: base}
	for _, ev := range events {
		pct, ok := h.exRank.Lookup(ev.ID)
		if !ok {
			continue
		}
		r.changes = append(r.changes, rankChange{
			position: ev.Position,
			window:   NormalWindow * pct / 100,
		})
	}
	sort.SliceStable(r.changes, func(i, j int) bool {
		return r.changes[i].position < r.changes[j].position
	})
	return r
}

// BaseWindow は EXRANK イベント発火前の基準判定幅（±ミリ秒）を返します。
func (r *JudgeResolver) BaseWindow() float64 {
	return r.base
}

// WindowAt は指定位置での実効判定幅（±ミリ秒）を返します。
// 位置が完全に一致する場合、EXRANK イベントはその位置の判定より先に
// 適用されます（同一位置では BPM 変更が STOP より先という本フォーマットの
// 優先順をランク変更にも揃えたもの）。
func (r *JudgeResolver) WindowAt(position float64) float64 {
	w := r.base
	for _, c := range r.changes {
		if c.position > position {
			break
		}
		w = c.window
	}
	return w
}
