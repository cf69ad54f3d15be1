package bms

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding は入力ファイルの文字コードを表します。
// BMS ファイルは文字コードを自己申告しないため、バイト列から推定します。
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingShiftJIS
	EncodingEUCJP
	EncodingISO2022JP
)

// String は文字コード名を返します。
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingShiftJIS:
		return "Shift_JIS"
	case EncodingEUCJP:
		return "EUC-JP"
	case EncodingISO2022JP:
		return "ISO-2022-JP"
	}
	return "unknown"
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}

	// iso2022Escape は ISO-2022-JP の漢字シフトシーケンス。ISO-2022-JP は
	// 7bit のみを使うため UTF-8 としても正当になってしまい、先に判定が必要。
	iso2022Escape = []byte{0x1B, '$'}
)

// DetectEncoding はバイト列の文字コードを推定します。
// BOM → ISO-2022-JP のエスケープ → NUL バイト分布による UTF-16 判定 →
// UTF-8 厳密判定 → 日本語系候補のデコード試行（Shift_JIS 優先）の順に試し、
// どの候補でも不正なシーケンスが残る場合は ErrEncodingUndetectable を返します。
// NUL は UTF-8 として正当なバイトのため、BOM なし UTF-16 の判定は
// UTF-8 判定より先に行う必要があります。
func DetectEncoding(data []byte) (Encoding, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8, nil
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE, nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE, nil
	}

	if bytes.Contains(data, iso2022Escape) {
		return EncodingISO2022JP, nil
	}

	if looksUTF16(data) {
		for _, enc := range utf16Candidates(data) {
			text, err := decodeWith(data, enc)
			if err == nil && !strings.ContainsRune(text, utf8.RuneError) {
				return enc, nil
			}
		}
	}

	if utf8.Valid(data) {
		return EncodingUTF8, nil
	}

	for _, enc := range []Encoding{EncodingShiftJIS, EncodingEUCJP, EncodingISO2022JP} {
		text, err := decodeWith(data, enc)
		if err == nil && !strings.ContainsRune(text, utf8.RuneError) {
			return enc, nil
		}
	}

	return EncodingUnknown, ErrEncodingUndetectable
}

// DecodeText はバイト列の文字コードを推定してUTF-8文字列に変換します。
func DecodeText(data []byte) (string, Encoding, error) {
	enc, err := DetectEncoding(data)
	if err != nil {
		return "", EncodingUnknown, err
	}

	data = stripBOM(data, enc)
	text, err := decodeWith(data, enc)
	if err != nil {
		return "", enc, err
	}
	// BOMなしUTF-16と判定した場合でも先頭のBOM文字は取り除く
	text = strings.TrimPrefix(text, "\uFEFF")
	return text, enc, nil
}

// looksUTF16 はNULバイトの比率からBOMなしUTF-16の可能性を判定します。
// ヘッダ行の大半はASCIIなので、UTF-16ならバイトのほぼ半数がNULになります。
func looksUTF16(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	nul := bytes.Count(data, []byte{0})
	return nul*3 >= len(data)
}

// utf16Candidates はNULバイトの偏りから試すエンディアンの優先順を決めます。
// ASCII主体のテキストではLEはNULが奇数オフセットに、BEは偶数オフセットに
// 並ぶため、多数側のエンディアンを先に試します。
func utf16Candidates(data []byte) []Encoding {
	even, odd := 0, 0
	for i, b := range data {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			even++
		} else {
			odd++
		}
	}
	if even > odd {
		return []Encoding{EncodingUTF16BE, EncodingUTF16LE}
	}
	return []Encoding{EncodingUTF16LE, EncodingUTF16BE}
}

// stripBOM は判定済みの文字コードに対応するBOMを取り除きます。
func stripBOM(data []byte, enc Encoding) []byte {
	switch enc {
	case EncodingUTF8:
		return bytes.TrimPrefix(data, bomUTF8)
	case EncodingUTF16BE:
		return bytes.TrimPrefix(data, bomUTF16BE)
	case EncodingUTF16LE:
		return bytes.TrimPrefix(data, bomUTF16LE)
	}
	return data
}

// decodeWith は指定した文字コードでUTF-8に変換します。
func decodeWith(data []byte, enc Encoding) (string, error) {
	text, _, err := transform.String(decoderFor(enc), string(data))
	if err != nil {
		return "", err
	}
	return text, nil
}

// decoderFor は文字コードに対応するデコーダを返します。
func decoderFor(enc Encoding) *encoding.Decoder {
	switch enc {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingShiftJIS:
		return japanese.ShiftJIS.NewDecoder()
	case EncodingEUCJP:
		return japanese.EUCJP.NewDecoder()
	case EncodingISO2022JP:
		return japanese.ISO2022JP.NewDecoder()
	}
	return unicode.UTF8.NewDecoder()
}
