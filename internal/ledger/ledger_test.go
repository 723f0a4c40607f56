package ledger

import "testing"

func TestFee(t *testing.T) {
	tests := []struct {
		name  string
		gross int64
		want  int64
	}{
		{"small donation 3%", 10_000, 300},              // ₱100 -> ₱3
		{"just under tier boundary", 99_900, 2_997},     // ₱999 -> 3%
		{"at tier boundary 5%", 100_000, 5_000},         // ₱1,000 -> ₱50
		{"above tier boundary", 150_000, 7_500},         // ₱1,500 -> ₱75
		{"large donation", 50_000_000, 2_500_000},       // ₱500,000 -> ₱25,000
		{"one centavo", 1, 0},                           // truncates to zero
		{"odd amount truncates", 33_333, 999},           // 33,333 * 300 / 10,000
		{"odd amount above tier", 123_456, 6_172},       // 123,456 * 500 / 10,000
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fee(tt.gross); got != tt.want {
				t.Errorf("Fee(%d) = %d, want %d", tt.gross, got, tt.want)
			}
		})
	}
}

func TestNet(t *testing.T) {
	tests := []struct {
		gross int64
		want  int64
	}{
		{100_000, 95_000}, // ₱1,000 gross credits ₱950
		{99_900, 96_903},  // ₱999 gross credits ₱969.03
		{10_000, 9_700},
	}

	for _, tt := range tests {
		if got := Net(tt.gross); got != tt.want {
			t.Errorf("Net(%d) = %d, want %d", tt.gross, got, tt.want)
		}
	}

	// Fee + Net must always reassemble the gross amount.
	for _, gross := range []int64{1, 99, 99_900, 100_000, 123_456, 50_000_000} {
		if Fee(gross)+Net(gross) != gross {
			t.Errorf("Fee(%d)+Net(%d) = %d, want %d", gross, gross, Fee(gross)+Net(gross), gross)
		}
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		gross int64
		want  int64
	}{
		{100_000, 10},  // ₱1,000 earns 10 points
		{9_999, 0},     // under ₱100 earns nothing
		{10_000, 1},    // exactly ₱100
		{19_999, 1},    // truncates
		{1_000_000, 100},
	}

	for _, tt := range tests {
		if got := Points(tt.gross); got != tt.want {
			t.Errorf("Points(%d) = %d, want %d", tt.gross, got, tt.want)
		}
	}
}

func TestHighValue(t *testing.T) {
	tests := []struct {
		gross int64
		want  bool
	}{
		{49_999_999, false},
		{50_000_000, true}, // ₱500,000 exactly
		{50_000_001, true},
		{100_000, false},
	}

	for _, tt := range tests {
		if got := HighValue(tt.gross); got != tt.want {
			t.Errorf("HighValue(%d) = %v, want %v", tt.gross, got, tt.want)
		}
	}
}
