// Package bms は BMS 系フォーマットの譜面ファイルのヘッダ部を解析します。
//
// `#` で始まるディレクティブ行を型付きのフィールドと索引テーブル
// （WAV/BMP/BPM/STOP/EXRANK）に組み立て、判定ランクの解決と暗黙サブタイトルの
// 抽出までを行います。チャンネルデータ（タイムライン）の解析、音声・画像の
// デコード、ファイルの存在確認は扱いません。
package bms

import (
	"bufio"
	"strconv"
	"strings"
)

const (
	scannerInitialBufSize = 10000
	scannerMaxBufSize     = 1000000
)

// Header は確定済みのヘッダ情報です。
// 確定時に未設定のフィールドへデフォルト値が適用されており、以後は
// 変更されません。複数ゴルーチンから同時に参照しても安全です。
type Header struct {
	player       Player
	rank         Rank
	defExRank    float64
	hasDefExRank bool
	total        float64
	volwav       int
	stagefile    string
	banner       string
	backBmp      string
	playLevel    int
	difficulty   Difficulty
	title        string
	subtitle     string
	artist       string
	subartist    string
	maker        string
	genre        string
	bpm          float64
	lnType       int
	lnObj        Identifier
	hasLNObj     bool

	wav    Table[string]
	bmp    Table[string]
	exBPM  Table[float64]
	stop   Table[int64]
	exRank Table[float64]
}

// ParseHeader はバイト列の文字コードを判別してヘッダを解析します。
// 文字コードを判別できない場合のみエラーを返し、それ以外の問題は
// Diagnostic として返して解析を続行します。
func ParseHeader(data []byte) (*Header, []Diagnostic, error) {
	text, _, err := DecodeText(data)
	if err != nil {
		return nil, nil, err
	}
	header, diags := ParseHeaderText(text)
	return header, diags, nil
}

// ParseHeaderText はデコード済みのテキストからヘッダを解析します。
// 入力が途中で終わっていても、読めた範囲にデフォルト値を適用した
// 整合的な Header を返します。
func ParseHeaderText(text string) (*Header, []Diagnostic) {
	p := newHeaderParser()

	scanner := bufio.NewScanner(strings.NewReader(text))
	buf := make([]byte, scannerInitialBufSize)
	scanner.Buffer(buf, scannerMaxBufSize)
	for scanner.Scan() {
		p.parseLine(scanner.Text())
	}

	return p.finalize()
}

// headerParser は解析中の可変状態を保持します。
type headerParser struct {
	player     scalar[Player]
	rank       scalar[Rank]
	defExRank  scalar[float64]
	total      scalar[float64]
	volwav     scalar[int]
	stagefile  scalar[string]
	banner     scalar[string]
	backBmp    scalar[string]
	playLevel  scalar[int]
	difficulty scalar[Difficulty]
	title      scalar[string]
	subtitle   scalar[string]
	artist     scalar[string]
	subartist  scalar[string]
	maker      scalar[string]
	genre      scalar[string]
	bpm        scalar[float64]
	lnType     scalar[int]
	lnObj      scalar[Identifier]

	wav    *indexedTable[string]
	bmp    *indexedTable[string]
	exBPM  *indexedTable[float64]
	stop   *indexedTable[int64]
	exRank *indexedTable[float64]

	diags []Diagnostic
}

func newHeaderParser() *headerParser {
	return &headerParser{
		wav:    newIndexedTable[string](FamilyWav),
		bmp:    newIndexedTable[string](FamilyBmp),
		exBPM:  newIndexedTable[float64](FamilyBpm),
		stop:   newIndexedTable[int64](FamilyStop),
		exRank: newIndexedTable[float64](FamilyExRank),
	}
}

// parseLine は1行を解析して状態を更新します。どの行でも解析は中断しません。
func (p *headerParser) parseLine(line string) {
	d := splitDirective(line)
	switch d.kind {
	case lineFixed:
		p.parseFixed(d)
	case lineIndexed:
		p.parseIndexed(d)
	}
}

// parseFixed は固定名ディレクティブを対応するフィールドへ振り分けます。
func (p *headerParser) parseFixed(d directive) {
	switch d.name {
	case "PLAYER":
		storeOrdinal(p, d, &p.player, playerFromOrdinal)
	case "RANK":
		storeOrdinal(p, d, &p.rank, rankFromOrdinal)
	case "DIFFICULTY":
		storeOrdinal(p, d, &p.difficulty, difficultyFromOrdinal)
	case "DEFEXRANK":
		// 判定幅 0 以下は意味を成さないので不正扱い
		if f, ok := parseFloatOperand(d.operand); ok && f > 0 {
			p.defExRank.store(f)
		} else {
			p.malformed(d)
		}
	case "TOTAL":
		storeFloat(p, d, &p.total)
	case "BPM":
		storeFloat(p, d, &p.bpm)
	case "VOLWAV":
		storeInt(p, d, &p.volwav)
	case "PLAYLEVEL":
		storeInt(p, d, &p.playLevel)
	case "LNTYPE":
		if n, ok := parseIntOperand(d.operand); ok && (n == 1 || n == 2) {
			p.lnType.store(n)
		} else {
			p.malformed(d)
		}
	case "LNOBJ":
		if id, ok := ParseIdentifier(d.operand); ok {
			p.lnObj.store(id)
		} else {
			p.malformed(d)
		}
	case "TITLE":
		p.title.store(trimTitle(d.operand))
	case "SUBTITLE":
		p.subtitle.store(d.operand)
	case "ARTIST":
		p.artist.store(d.operand)
	case "SUBARTIST":
		p.subartist.store(d.operand)
	case "MAKER":
		p.maker.store(d.operand)
	case "GENRE":
		p.genre.store(d.operand)
	case "STAGEFILE":
		p.stagefile.store(d.operand)
	case "BANNER":
		p.banner.store(d.operand)
	case "BACKBMP":
		p.backBmp.store(d.operand)
	default:
		p.diags = append(p.diags, Diagnostic{
			Kind: DiagUnknownDirective,
			Name: d.name,
			Raw:  d.operand,
		})
	}
}

// parseIndexed は索引系ディレクティブを対応するテーブルへ振り分けます。
func (p *headerParser) parseIndexed(d directive) {
	switch Family(d.name) {
	case FamilyWav:
		insertEntry(p, p.wav, d, d.operand)
	case FamilyBmp:
		insertEntry(p, p.bmp, d, d.operand)
	case FamilyBpm:
		// 負の BPM（逆スクロール）も許容する
		if f, ok := parseFloatOperand(d.operand); ok {
			insertEntry(p, p.exBPM, d, f)
		} else {
			p.malformed(d)
		}
	case FamilyStop:
		// 単位は 1/192 小節。小数部はゼロ方向へ切り捨てる
		if f, ok := parseFloatOperand(d.operand); ok && f >= 0 {
			insertEntry(p, p.stop, d, int64(f))
		} else {
			p.malformed(d)
		}
	case FamilyExRank:
		if f, ok := parseFloatOperand(d.operand); ok && f >= 0 {
			insertEntry(p, p.exRank, d, f)
		} else {
			p.malformed(d)
		}
	}
}

// finalize は未設定フィールドへデフォルト値を適用して Header を確定します。
func (p *headerParser) finalize() (*Header, []Diagnostic) {
	if !p.title.set {
		// TITLE はデフォルトが定義されていない。空文字を採用して記録を残す
		p.diags = append(p.diags, Diagnostic{
			Kind: DiagMalformedOperand,
			Name: "TITLE",
		})
	}
	title, subtitle := splitImplicitSubtitle(p.title.or(""), p.subtitle.or(""))

	h := &Header{
		player:       p.player.or(DefaultPlayer),
		rank:         p.rank.or(DefaultRank),
		defExRank:    p.defExRank.or(0),
		hasDefExRank: p.defExRank.set,
		total:        p.total.or(DefaultTotal),
		volwav:       p.volwav.or(DefaultVolwav),
		stagefile:    p.stagefile.or(""),
		banner:       p.banner.or(""),
		backBmp:      p.backBmp.or(""),
		playLevel:    p.playLevel.or(DefaultPlayLevel),
		difficulty:   p.difficulty.or(DifficultyUnknown),
		title:        title,
		subtitle:     subtitle,
		artist:       p.artist.or(""),
		subartist:    p.subartist.or(""),
		maker:        p.maker.or(""),
		genre:        p.genre.or(""),
		bpm:          p.bpm.or(DefaultBPM),
		lnType:       p.lnType.or(DefaultLNType),
		lnObj:        p.lnObj.or(""),
		hasLNObj:     p.lnObj.set,

		wav:    p.wav.view(),
		bmp:    p.bmp.view(),
		exBPM:  p.exBPM.view(),
		stop:   p.stop.view(),
		exRank: p.exRank.view(),
	}
	return h, p.diags
}

// malformed はオペランド不正の Diagnostic を記録します。
func (p *headerParser) malformed(d directive) {
	name := d.name
	if d.kind == lineIndexed {
		name += d.id.String()
	}
	p.diags = append(p.diags, Diagnostic{
		Kind: DiagMalformedOperand,
		Name: name,
		Raw:  d.operand,
	})
}

// storeOrdinal は整数オペランドを列挙型へ変換して格納します。
func storeOrdinal[T any](p *headerParser, d directive, s *scalar[T], conv func(int) (T, bool)) {
	if n, ok := parseIntOperand(d.operand); ok {
		if v, ok := conv(n); ok {
			s.store(v)
			return
		}
	}
	p.malformed(d)
}

func storeInt(p *headerParser, d directive, s *scalar[int]) {
	if n, ok := parseIntOperand(d.operand); ok {
		s.store(n)
		return
	}
	p.malformed(d)
}

func storeFloat(p *headerParser, d directive, s *scalar[float64]) {
	if f, ok := parseFloatOperand(d.operand); ok {
		s.store(f)
		return
	}
	p.malformed(d)
}

// insertEntry はテーブルへ値を登録し、二重定義なら Diagnostic を記録します。
func insertEntry[V any](p *headerParser, t *indexedTable[V], d directive, v V) {
	if !t.insert(d.id, v) {
		p.diags = append(p.diags, Diagnostic{
			Kind:   DiagDuplicateIndex,
			Name:   string(t.family) + d.id.String(),
			Family: t.family,
			ID:     d.id,
			Raw:    d.operand,
		})
	}
}

func parseIntOperand(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFloatOperand(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Player は演奏形態を返します。
func (h *Header) Player() Player { return h.player }

// Rank は判定ランクを返します。
func (h *Header) Rank() Rank { return h.rank }

// DefExRank は #DEFEXRANK のパーセント値を返します。未指定なら false です。
func (h *Header) DefExRank() (float64, bool) { return h.defExRank, h.hasDefExRank }

// Total はゲージ回復量（#TOTAL）を返します。
func (h *Header) Total() float64 { return h.total }

// Volwav は音量（#VOLWAV）を返します。
func (h *Header) Volwav() int { return h.volwav }

// Stagefile はロード画面画像のファイル名を返します。
func (h *Header) Stagefile() string { return h.stagefile }

// Banner はバナー画像のファイル名を返します。
func (h *Header) Banner() string { return h.banner }

// BackBmp は背景画像のファイル名を返します。
func (h *Header) BackBmp() string { return h.backBmp }

// PlayLevel は表示用レベル（#PLAYLEVEL）を返します。
func (h *Header) PlayLevel() int { return h.playLevel }

// Difficulty は難易度区分を返します。
func (h *Header) Difficulty() Difficulty { return h.difficulty }

// Title はサブタイトル分離後のタイトルを返します。
func (h *Header) Title() string { return h.title }

// Subtitle は明示的な #SUBTITLE、なければタイトルから抽出した
// 暗黙サブタイトルを返します。どちらもなければ空文字です。
func (h *Header) Subtitle() string { return h.subtitle }

// Artist はアーティスト名を返します。
func (h *Header) Artist() string { return h.artist }

// Subartist はサブアーティスト名を返します。
func (h *Header) Subartist() string { return h.subartist }

// Maker は制作者名（#MAKER）を返します。
func (h *Header) Maker() string { return h.maker }

// Genre はジャンルを返します。
func (h *Header) Genre() string { return h.genre }

// BPM は初期 BPM（#BPM）を返します。
func (h *Header) BPM() float64 { return h.bpm }

// LNType はロングノートの記法種別（#LNTYPE）を返します。
func (h *Header) LNType() int { return h.lnType }

// LNObj はロングノート終端として扱うキー音の Identifier を返します。
// #LNOBJ が未指定なら false です。
func (h *Header) LNObj() (Identifier, bool) { return h.lnObj, h.hasLNObj }

// Wav はキー音テーブル（#WAVxx → ファイル名）を返します。
func (h *Header) Wav() Table[string] { return h.wav }

// Bmp は画像テーブル（#BMPxx → ファイル名）を返します。
func (h *Header) Bmp() Table[string] { return h.bmp }

// ExtendedBPM は拡張 BPM テーブル（#BPMxx → BPM 値）を返します。
func (h *Header) ExtendedBPM() Table[float64] { return h.exBPM }

// Stop はスクロール停止テーブル（#STOPxx → 1/192 小節単位の停止時間）を返します。
func (h *Header) Stop() Table[int64] { return h.stop }

// ExRank は判定幅テーブル（#EXRANKxx → NORMAL 比のパーセント値）を返します。
func (h *Header) ExRank() Table[float64] { return h.exRank }
