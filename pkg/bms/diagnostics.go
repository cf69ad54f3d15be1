package bms

import "fmt"

// DiagnosticKind は解析中に記録される問題の種類です。
type DiagnosticKind int

const (
	// DiagUnknownDirective は未知のディレクティブ名（不正なインデックスを含む）
	DiagUnknownDirective DiagnosticKind = iota

	// DiagMalformedOperand は解釈できないオペランド
	DiagMalformedOperand

	// DiagDuplicateIndex は索引の二重定義
	DiagDuplicateIndex
)

// Diagnostic は解析を中断しない問題の記録です。
// 行の読み込み順に収集され、Header とあわせて呼び出し側に渡されます。
type Diagnostic struct {
	Kind   DiagnosticKind
	Name   string     // 対象のディレクティブ名またはフィールド名
	Family Family     // DiagDuplicateIndex の対象ファミリ
	ID     Identifier // DiagDuplicateIndex の対象インデックス
	Raw    string     // 問題のあった生のテキスト
}

// String は人間向けのメッセージを返します。
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagUnknownDirective:
		return fmt.Sprintf("未知のディレクティブです: #%s", d.Name)
	case DiagMalformedOperand:
		return fmt.Sprintf("#%s のオペランドを解釈できません: %q", d.Name, d.Raw)
	case DiagDuplicateIndex:
		return fmt.Sprintf("#%s%s が二重に定義されています（最初の定義を使用します）", d.Family, d.ID)
	}
	return fmt.Sprintf("diagnostic(%d)", int(d.Kind))
}
