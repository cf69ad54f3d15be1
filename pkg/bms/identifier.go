package bms

// Identifier は索引系ディレクティブ（#WAVxx など）の2文字のインデックスです。
// 使える文字は英数字36種（0-9, A-Z）の2桁で、1ファミリにつき 36×36 = 1296
// 個の枠があります。大文字小文字は区別せず、大文字に正規化して保持します。
type Identifier string

// ParseIdentifier は2文字のトークンを正規化して Identifier を返します。
// 長さが2でない、または英数字以外を含む場合は false を返します。
func ParseIdentifier(s string) (Identifier, bool) {
	if len(s) != 2 {
		return "", false
	}
	var buf [2]byte
	for i := 0; i < 2; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		default:
			return "", false
		}
		buf[i] = c
	}
	return Identifier(buf[:]), true
}

// Index は36進数としての通し番号（0〜1295）を返します。
func (id Identifier) Index() int {
	if len(id) != 2 {
		return -1
	}
	return base36(id[0])*36 + base36(id[1])
}

// String は正規化済みの2文字表現を返します。
func (id Identifier) String() string {
	return string(id)
}

func base36(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return int(c-'A') + 10
}
