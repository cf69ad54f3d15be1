package bms

import (
	"strings"
	"testing"
)

func TestParseHeaderText_Defaults(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n")

	if header.Player() != PlayerSingle {
		t.Errorf("Expected default player SINGLE, got %v", header.Player())
	}
	if header.Rank() != RankNormal {
		t.Errorf("Expected default rank NORMAL, got %v", header.Rank())
	}
	if header.Rank().Window() != 18 {
		t.Errorf("Expected default judge window 18ms, got %v", header.Rank().Window())
	}
	if header.Total() != 160.0 {
		t.Errorf("Expected default total 160.0, got %v", header.Total())
	}
	if header.PlayLevel() != 3 {
		t.Errorf("Expected default playlevel 3, got %d", header.PlayLevel())
	}
	if header.BPM() != 130.0 {
		t.Errorf("Expected default bpm 130.0, got %v", header.BPM())
	}
	if header.Volwav() != 100 {
		t.Errorf("Expected default volwav 100, got %d", header.Volwav())
	}
	if header.Difficulty() != DifficultyUnknown {
		t.Errorf("Expected default difficulty unknown, got %v", header.Difficulty())
	}
	if header.LNType() != 1 {
		t.Errorf("Expected default lntype 1, got %d", header.LNType())
	}
	if header.Genre() != "" || header.Artist() != "" || header.Subtitle() != "" {
		t.Error("Expected empty string defaults for text fields")
	}
	if _, ok := header.DefExRank(); ok {
		t.Error("Expected no DEFEXRANK")
	}
	if _, ok := header.LNObj(); ok {
		t.Error("Expected no LNOBJ")
	}
}

func TestParseHeaderText_MissingTitle(t *testing.T) {
	header, diags := ParseHeaderText("#ARTIST someone\n")

	if header.Title() != "" {
		t.Errorf("Expected empty title, got %q", header.Title())
	}
	if countDiags(diags, DiagMalformedOperand) != 1 {
		t.Errorf("Expected 1 diagnostic for missing title, got %d", countDiags(diags, DiagMalformedOperand))
	}
}

func TestParseHeaderText_Fields(t *testing.T) {
	text := strings.Join([]string{
		"*---------------------- HEADER FIELD",
		"",
		"#PLAYER 1",
		"#GENRE Techno",
		"#TITLE Fragment",
		"#SUBTITLE another mix",
		"#ARTIST composer feat. vocal",
		"#SUBARTIST obj: someone",
		"#MAKER someone else",
		"#BPM 185.5",
		"#PLAYLEVEL 11",
		"#RANK 3",
		"#DIFFICULTY 4",
		"#TOTAL 350",
		"#VOLWAV 80",
		"#STAGEFILE stage.png",
		"#BANNER banner.png",
		"#BACKBMP back.bmp",
		"#LNTYPE 1",
		"#LNOBJ ZZ",
	}, "\r\n")

	header, diags := ParseHeaderText(text)
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}

	if header.Player() != PlayerSingle {
		t.Errorf("Expected player SINGLE, got %v", header.Player())
	}
	if header.Genre() != "Techno" {
		t.Errorf("Expected genre 'Techno', got %q", header.Genre())
	}
	if header.Title() != "Fragment" {
		t.Errorf("Expected title 'Fragment', got %q", header.Title())
	}
	if header.Subtitle() != "another mix" {
		t.Errorf("Expected subtitle 'another mix', got %q", header.Subtitle())
	}
	if header.Artist() != "composer feat. vocal" {
		t.Errorf("Expected artist, got %q", header.Artist())
	}
	if header.Subartist() != "obj: someone" {
		t.Errorf("Expected subartist, got %q", header.Subartist())
	}
	if header.Maker() != "someone else" {
		t.Errorf("Expected maker, got %q", header.Maker())
	}
	if header.BPM() != 185.5 {
		t.Errorf("Expected bpm 185.5, got %v", header.BPM())
	}
	if header.PlayLevel() != 11 {
		t.Errorf("Expected playlevel 11, got %d", header.PlayLevel())
	}
	if header.Rank() != RankEasy {
		t.Errorf("Expected rank EASY, got %v", header.Rank())
	}
	if header.Difficulty() != DifficultyAnother {
		t.Errorf("Expected difficulty ANOTHER, got %v", header.Difficulty())
	}
	if header.Total() != 350 {
		t.Errorf("Expected total 350, got %v", header.Total())
	}
	if header.Volwav() != 80 {
		t.Errorf("Expected volwav 80, got %d", header.Volwav())
	}
	if header.Stagefile() != "stage.png" || header.Banner() != "banner.png" || header.BackBmp() != "back.bmp" {
		t.Error("Expected image fields to be stored verbatim")
	}
	if id, ok := header.LNObj(); !ok || id != Identifier("ZZ") {
		t.Errorf("Expected LNOBJ ZZ, got %v (%v)", id, ok)
	}
}

func TestParseHeaderText_CaseInsensitiveDirectives(t *testing.T) {
	header, diags := ParseHeaderText("#title lower case\n#playlevel 7\n#wav0a a.wav\n")
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}
	if header.Title() != "lower case" {
		t.Errorf("Expected title 'lower case', got %q", header.Title())
	}
	if header.PlayLevel() != 7 {
		t.Errorf("Expected playlevel 7, got %d", header.PlayLevel())
	}
	if name, ok := header.Wav().Lookup(Identifier("0A")); !ok || name != "a.wav" {
		t.Errorf("Expected wav 0A = a.wav, got %q (%v)", name, ok)
	}
}

func TestParseHeaderText_IndexedTables(t *testing.T) {
	text := strings.Join([]string{
		"#TITLE x",
		"#WAV0A kick.wav",
		"#WAVZZ snare.ogg",
		"#BMP01 miss.bmp",
		"#BPM01 92.5",
		"#BPM02 -120",
		"#STOP11 96.7",
		"#EXRANKAA 48",
	}, "\n")

	header, diags := ParseHeaderText(text)
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}

	if header.Wav().Len() != 2 {
		t.Errorf("Expected 2 wav entries, got %d", header.Wav().Len())
	}
	if name, _ := header.Wav().Lookup(Identifier("ZZ")); name != "snare.ogg" {
		t.Errorf("Expected wav ZZ = snare.ogg, got %q", name)
	}
	if bpm, _ := header.ExtendedBPM().Lookup(Identifier("01")); bpm != 92.5 {
		t.Errorf("Expected BPM01 92.5, got %v", bpm)
	}
	// 負のBPMも保持される
	if bpm, _ := header.ExtendedBPM().Lookup(Identifier("02")); bpm != -120 {
		t.Errorf("Expected BPM02 -120, got %v", bpm)
	}
	// 小数部は切り捨て
	if d, _ := header.Stop().Lookup(Identifier("11")); d != 96 {
		t.Errorf("Expected STOP11 96, got %d", d)
	}
	if pct, _ := header.ExRank().Lookup(Identifier("AA")); pct != 48 {
		t.Errorf("Expected EXRANKAA 48, got %v", pct)
	}
	if _, ok := header.Wav().Lookup(Identifier("00")); ok {
		t.Error("Expected lookup miss for unregistered identifier")
	}
}

func TestParseHeaderText_DuplicateIndexFirstWins(t *testing.T) {
	text := "#TITLE x\n#WAV0A a.wav\n#WAV0A b.wav\n"
	header, diags := ParseHeaderText(text)

	if name, _ := header.Wav().Lookup(Identifier("0A")); name != "a.wav" {
		t.Errorf("Expected first definition a.wav to win, got %q", name)
	}
	if n := countDiags(diags, DiagDuplicateIndex); n != 1 {
		t.Errorf("Expected exactly 1 DuplicateIndex diagnostic, got %d", n)
	}
}

func TestParseHeaderText_MalformedOperands(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "PLAYLEVELが数値でない", line: "#PLAYLEVEL abc"},
		{name: "PLAYERの範囲外", line: "#PLAYER 9"},
		{name: "RANKの範囲外", line: "#RANK 4"},
		{name: "DIFFICULTYの範囲外", line: "#DIFFICULTY 6"},
		{name: "TOTALが数値でない", line: "#TOTAL xx"},
		{name: "STOPが負", line: "#STOP01 -10"},
		{name: "LNTYPEの範囲外", line: "#LNTYPE 3"},
		{name: "LNOBJが3文字", line: "#LNOBJ ZZZ"},
		{name: "DEFEXRANKがゼロ", line: "#DEFEXRANK 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := ParseHeaderText("#TITLE x\n" + tt.line + "\n")
			if n := countDiags(diags, DiagMalformedOperand); n != 1 {
				t.Errorf("Expected exactly 1 MalformedOperand diagnostic, got %d (%v)", n, diags)
			}
		})
	}
}

func TestParseHeaderText_MalformedFallsBackToDefault(t *testing.T) {
	header, diags := ParseHeaderText("#TITLE x\n#PLAYLEVEL abc\n")
	if header.PlayLevel() != 3 {
		t.Errorf("Expected default playlevel 3, got %d", header.PlayLevel())
	}
	if n := countDiags(diags, DiagMalformedOperand); n != 1 {
		t.Errorf("Expected exactly 1 MalformedOperand diagnostic, got %d", n)
	}
}

func TestParseHeaderText_UnknownDirective(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "未知の名前", line: "#NOSUCHTHING 1"},
		{name: "英数字以外のインデックス", line: "#WAV0% a.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, diags := ParseHeaderText("#TITLE x\n" + tt.line + "\n#ARTIST a\n")
			if n := countDiags(diags, DiagUnknownDirective); n != 1 {
				t.Errorf("Expected exactly 1 UnknownDirective diagnostic, got %d (%v)", n, diags)
			}
			// 後続の行の解析は続行される
			if header.Artist() != "a" {
				t.Errorf("Expected parsing to continue, artist = %q", header.Artist())
			}
		})
	}
}

func TestParseHeaderText_SkipsNonDirectiveLines(t *testing.T) {
	text := strings.Join([]string{
		"",
		"*---------------------- MAIN DATA FIELD",
		"random garbage",
		"#TITLE x",
		"#00111:01020304",
		"#00103:0.75",
	}, "\n")

	_, diags := ParseHeaderText(text)
	if len(diags) != 0 {
		t.Errorf("Expected channel data and comments to be skipped silently, got %v", diags)
	}
}

func TestParseHeader_ShiftJIS(t *testing.T) {
	// "#TITLE メモリー" をShift-JISで表現したもの
	data := append([]byte("#TITLE "), 0x83, 0x81, 0x83, 0x82, 0x83, 0x8A, 0x81, 0x5B)
	header, diags, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}
	if header.Title() != "メモリー" {
		t.Errorf("Expected title 'メモリー', got %q", header.Title())
	}
}

func TestParseHeader_BomlessUTF16LE(t *testing.T) {
	// BOMなしUTF-16LEのASCIIヘッダはバイト列としてはUTF-8としても正当だが、
	// UTF-8と誤判定するとディレクティブがNUL混じりに崩れてしまう
	data := encodeUTF16LE("#TITLE BOSS\n#BPM 185\n")
	header, diags, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}
	if header.Title() != "BOSS" {
		t.Errorf("Expected title 'BOSS', got %q", header.Title())
	}
	if header.BPM() != 185 {
		t.Errorf("Expected BPM 185, got %v", header.BPM())
	}
}

func TestParseHeader_UndetectableEncoding(t *testing.T) {
	_, _, err := ParseHeader([]byte{'#', 'T', 0x81})
	if err == nil {
		t.Fatal("Expected an error for undetectable encoding")
	}
}

func TestTableIDs_Sorted(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n#WAVZZ z.wav\n#WAV0A a.wav\n#WAV10 b.wav\n")
	ids := header.Wav().IDs()
	expected := []Identifier{"0A", "10", "ZZ"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %d ids, got %d", len(expected), len(ids))
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Expected ids[%d] = %v, got %v", i, expected[i], ids[i])
		}
	}
}

func TestSplitDirective(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    lineKind
		dirName string
		id      Identifier
		operand string
	}{
		{name: "固定名", line: "#TITLE foo bar", kind: lineFixed, dirName: "TITLE", operand: "foo bar"},
		{name: "タブ区切り", line: "#GENRE\tTechno", kind: lineFixed, dirName: "GENRE", operand: "Techno"},
		{name: "索引系", line: "#WAV0A a.wav", kind: lineIndexed, dirName: "WAV", id: "0A", operand: "a.wav"},
		{name: "EXRANKは最長一致", line: "#EXRANKAA 50", kind: lineIndexed, dirName: "EXRANK", id: "AA", operand: "50"},
		{name: "BPMはオペランド付きなら固定名", line: "#BPM 150", kind: lineFixed, dirName: "BPM", operand: "150"},
		{name: "BPMxxは索引系", line: "#BPM0A 150", kind: lineIndexed, dirName: "BPM", id: "0A", operand: "150"},
		{name: "チャンネル行はスキップ", line: "#00211:0101", kind: lineSkip},
		{name: "非ディレクティブ行はスキップ", line: "; comment", kind: lineSkip},
		{name: "空行はスキップ", line: "   ", kind: lineSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := splitDirective(tt.line)
			if d.kind != tt.kind {
				t.Fatalf("Expected kind %v, got %v", tt.kind, d.kind)
			}
			if tt.kind == lineSkip {
				return
			}
			if d.name != tt.dirName {
				t.Errorf("Expected name %q, got %q", tt.dirName, d.name)
			}
			if d.id != tt.id {
				t.Errorf("Expected id %q, got %q", tt.id, d.id)
			}
			if d.operand != tt.operand {
				t.Errorf("Expected operand %q, got %q", tt.operand, d.operand)
			}
		})
	}
}

func countDiags(diags []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
