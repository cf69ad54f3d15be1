package bms

import "strings"

// titleDelimiters は暗黙サブタイトルを囲む区切り文字の組です。
// 全角チルダと全角・半角のダブルクォートのみを対象とし、角括弧などの
// 他の慣習は明示的な #SUBTITLE があるため扱いません。
var titleDelimiters = []struct {
	open, close rune
}{
	{'～', '～'},
	{'"', '"'},
	{'＂', '＂'},
}

// splitImplicitSubtitle はタイトルと暗黙サブタイトルを分離します。
// 明示的な SUBTITLE が空でなければそのまま使い、タイトルには手を付けません。
// そうでなければタイトル末尾の ～...～ または "..." をサブタイトルとして
// 切り出します。末尾を閉じ記号で終える組だけが対象で、対応する開き記号は
// 右から探した最後の出現を使います。
func splitImplicitSubtitle(title, subtitle string) (string, string) {
	if subtitle != "" {
		return title, subtitle
	}

	runes := []rune(title)
	if len(runes) < 3 {
		return title, ""
	}

	last := runes[len(runes)-1]
	for _, d := range titleDelimiters {
		if last != d.close {
			continue
		}
		for i := len(runes) - 2; i >= 0; i-- {
			if runes[i] == d.open {
				head := trimTitle(string(runes[:i]))
				sub := string(runes[i+1 : len(runes)-1])
				return head, sub
			}
		}
	}

	return title, ""
}

// trimTitle は前後の空白（全角スペースを含む）を取り除きます。
func trimTitle(s string) string {
	return strings.Trim(strings.TrimSpace(s), "　")
}
