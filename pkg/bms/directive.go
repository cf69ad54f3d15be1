package bms

import "strings"

// lineKind は1行の分類結果です。
type lineKind int

const (
	lineSkip    lineKind = iota // 空行・コメント・チャンネルデータなど
	lineFixed                   // 固定名ディレクティブ（#TITLE など）
	lineIndexed                 // 索引系ディレクティブ（#WAV0A など）
)

// indexedFamilies は索引系ディレクティブのファミリを長い順に並べたものです。
// 最長一致で分類することで、#EXRANKxx が EX + RANK と誤分類されるのを防ぎます。
var indexedFamilies = []Family{FamilyExRank, FamilyStop, FamilyWav, FamilyBmp, FamilyBpm}

// directive は1行をディレクティブ名とオペランドに分解した結果です。
type directive struct {
	kind    lineKind
	name    string     // 大文字化したディレクティブ名（索引系はファミリ名）
	id      Identifier // kind == lineIndexed のときのみ有効
	operand string
}

// splitDirective は1行をディレクティブに分解します。
// `#` で始まらない行・空行・チャンネルデータ行（#xxxxx:...）は lineSkip に
// 分類されます。チャンネルデータはタイムライン解析器の担当で、ここでは
// 警告も出しません。
func splitDirective(line string) directive {
	line = strings.TrimSpace(line)
	if line == "" || line[0] != '#' {
		return directive{kind: lineSkip}
	}
	body := line[1:]

	if isChannelLine(body) {
		return directive{kind: lineSkip}
	}

	name := body
	var operand string
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		name = body[:i]
		operand = strings.TrimSpace(body[i+1:])
	}
	if name == "" {
		return directive{kind: lineSkip}
	}
	name = strings.ToUpper(name)

	// 索引系: ファミリ名 + 2文字インデックス（区切りなし）
	for _, fam := range indexedFamilies {
		if len(name) == len(fam)+2 && strings.HasPrefix(name, string(fam)) {
			id, ok := ParseIdentifier(name[len(fam):])
			if !ok {
				// 英数字以外のインデックスは未知のディレクティブ扱い
				break
			}
			return directive{kind: lineIndexed, name: string(fam), id: id, operand: operand}
		}
	}

	return directive{kind: lineFixed, name: name, operand: operand}
}

// isChannelLine は小節番号＋チャンネルのデータ行（#00111:0203..）かを判定します。
func isChannelLine(body string) bool {
	if len(body) < 7 || body[5] != ':' {
		return false
	}
	for i := 0; i < 5; i++ {
		if body[i] < '0' || body[i] > '9' {
			return false
		}
	}
	return true
}
