package bms

import (
	"math"
	"testing"
)

func TestRankWindow(t *testing.T) {
	tests := []struct {
		rank     Rank
		expected float64
	}{
		{RankVeryHard, 8},
		{RankHard, 15},
		{RankNormal, 18},
		{RankEasy, 21},
	}

	for _, tt := range tests {
		if w := tt.rank.Window(); w != tt.expected {
			t.Errorf("Expected %v window %vms, got %v", tt.rank, tt.expected, w)
		}
	}
}

func TestJudgeResolver_ExRankEvents(t *testing.T) {
	text := "#TITLE x\n#RANK 2\n#EXRANKAA 48\n#EXRANKCC 100\n"
	header, diags := ParseHeaderText(text)
	if len(diags) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diags)
	}

	r := header.NewJudgeResolver([]RankEvent{
		{Position: 4.0, ID: "AA"},
		{Position: 12.0, ID: "CC"},
	})

	// AA発火前は#RANK 2 (NORMAL) の18ms
	if w := r.WindowAt(0); w != 18 {
		t.Errorf("Expected 18ms before first event, got %v", w)
	}
	// AA〜CCの間は 18 × 0.48 = 8.64ms
	if w := r.WindowAt(8.0); math.Abs(w-8.64) > 1e-9 {
		t.Errorf("Expected 8.64ms between events, got %v", w)
	}
	// CC以降は 18 × 1.00 = 18ms
	if w := r.WindowAt(20.0); w != 18 {
		t.Errorf("Expected 18ms after last event, got %v", w)
	}
}

func TestJudgeResolver_SamePositionAppliesBeforeJudgment(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n#EXRANK0A 50\n")
	r := header.NewJudgeResolver([]RankEvent{{Position: 4.0, ID: "0A"}})

	// 位置が完全に一致する場合、ランク変更が先に適用される
	if w := r.WindowAt(4.0); w != 9 {
		t.Errorf("Expected 9ms at the event position itself, got %v", w)
	}
	if w := r.WindowAt(3.999); w != 18 {
		t.Errorf("Expected 18ms just before the event, got %v", w)
	}
}

func TestJudgeResolver_DefExRankOverridesBase(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n#RANK 0\n#DEFEXRANK 200\n")
	r := header.NewJudgeResolver(nil)

	// DEFEXRANKは#RANKに関係なくNORMAL基準(18ms)に対する割合
	if w := r.BaseWindow(); w != 36 {
		t.Errorf("Expected 36ms base window, got %v", w)
	}
}

func TestJudgeResolver_NoAutoReset(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n#EXRANK0A 25\n")
	r := header.NewJudgeResolver([]RankEvent{{Position: 1.0, ID: "0A"}})

	// 小節の終わりでは戻らず、次のイベントまで有効
	if w := r.WindowAt(100.0); w != 4.5 {
		t.Errorf("Expected 4.5ms to remain in force, got %v", w)
	}
}

func TestJudgeResolver_UnknownIdentifierIgnored(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n#EXRANK0A 50\n")
	r := header.NewJudgeResolver([]RankEvent{
		{Position: 1.0, ID: "XX"}, // 未定義
		{Position: 2.0, ID: "0A"},
	})

	if w := r.WindowAt(1.5); w != 18 {
		t.Errorf("Expected unknown identifier to be ignored, got %v", w)
	}
	if w := r.WindowAt(2.0); w != 9 {
		t.Errorf("Expected 9ms after the defined event, got %v", w)
	}
}

func TestJudgeResolver_EventsOutOfOrder(t *testing.T) {
	header, _ := ParseHeaderText("#TITLE x\n#EXRANK0A 50\n#EXRANK0B 100\n")
	r := header.NewJudgeResolver([]RankEvent{
		{Position: 8.0, ID: "0B"},
		{Position: 2.0, ID: "0A"},
	})

	if w := r.WindowAt(4.0); w != 9 {
		t.Errorf("Expected events to be sorted by position, got %v", w)
	}
	if w := r.WindowAt(9.0); w != 18 {
		t.Errorf("Expected 18ms after the later event, got %v", w)
	}
}
