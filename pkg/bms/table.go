package bms

import "sort"

// Family は索引系ディレクティブのファミリ名です。
type Family string

const (
	FamilyWav    Family = "WAV"
	FamilyBmp    Family = "BMP"
	FamilyBpm    Family = "BPM"
	FamilyStop   Family = "STOP"
	FamilyExRank Family = "EXRANK"
)

// indexedTable は Identifier をキーとする構築中のテーブルです。
// 5つのファミリ（WAV/BMP/BPM/STOP/EXRANK）で共有する汎用実装で、
// 挿入順には意味を持ちません。
type indexedTable[V any] struct {
	family  Family
	entries map[Identifier]V
}

func newIndexedTable[V any](family Family) *indexedTable[V] {
	return &indexedTable[V]{
		family:  family,
		entries: make(map[Identifier]V),
	}
}

// insert は値を登録します。同じ Identifier への再定義は先勝ちとし、
// 登録済みだった場合は値を変更せず false を返します。
func (t *indexedTable[V]) insert(id Identifier, v V) bool {
	if _, ok := t.entries[id]; ok {
		return false
	}
	t.entries[id] = v
	return true
}

// view は確定後の読み取り専用ビューを返します。
func (t *indexedTable[V]) view() Table[V] {
	return Table[V]{entries: t.entries}
}

// Table は確定済みの索引テーブルへの読み取り専用ビューです。
type Table[V any] struct {
	entries map[Identifier]V
}

// Lookup は Identifier に対応する値を返します。
// 未登録は呼び出し側（タイムライン解析器）が扱うべき状態で、エラーではありません。
func (t Table[V]) Lookup(id Identifier) (V, bool) {
	v, ok := t.entries[id]
	return v, ok
}

// Len は登録されている件数を返します。
func (t Table[V]) Len() int {
	return len(t.entries)
}

// IDs は登録済みの Identifier を36進数の通し番号順で返します。
func (t Table[V]) IDs() []Identifier {
	ids := make([]Identifier, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Index() < ids[j].Index() })
	return ids
}
