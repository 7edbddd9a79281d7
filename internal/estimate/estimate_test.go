package estimate

import (
	"testing"

	"github.com/akulij/zkparser/internal/report"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		activity, reach int
		want            Range
	}{
		{0, 0, Range{}},
		{0, 1, Range{}},
		{0, 2, Range{}},
		{1, 0, Range{}},
		{1, 1, Range{500, 800}},
		{1, 2, Range{800, 1200}},
		{2, 0, Range{500, 800}},
		{2, 1, Range{800, 1200}},
		{2, 2, Range{1200, 1600}},
		{3, 0, Range{800, 1200}},
		{3, 1, Range{1200, 1600}},
		{3, 2, Range{1600, 3000}},
		{4, 0, Range{1200, 1600}},
		{4, 1, Range{1600, 3000}},
		{4, 2, Range{3000, 6000}},
		{5, 0, Range{1600, 3000}},
		{5, 1, Range{3000, 6000}},
		{5, 2, Range{6000, 8000}},
		{6, 2, Range{}},
		{5, 3, Range{}},
		{-1, 0, Range{}},
	}

	for _, tt := range tests {
		if got := Lookup(tt.activity, tt.reach); got != tt.want {
			t.Errorf("Lookup(%d, %d) = %v, want %v", tt.activity, tt.reach, got, tt.want)
		}
	}
}

func TestLookupNonEmptyCells(t *testing.T) {
	nonEmpty := 0
	for a := 0; a <= MaxActivity; a++ {
		for r := 0; r <= MaxReach; r++ {
			if Lookup(a, r) != (Range{}) {
				nonEmpty++
			}
		}
	}
	// row 0 and cell 1x0 are empty
	if nonEmpty != 14 {
		t.Errorf("expected 14 non-empty cells, got %d", nonEmpty)
	}
}

func TestScores(t *testing.T) {
	tests := []struct {
		name         string
		era          report.Era
		lite         report.Lite
		wantActivity int
		wantReach    int
	}{
		{
			name: "inactive wallet",
		},
		{
			name: "thresholds are exclusive",
			era: report.Era{
				Balance:              0.005,
				Transactions:         10,
				InternalTransactions: 2,
				AggregateETH:         1,
				Protocols:            3,
			},
		},
		{
			name: "everything",
			era: report.Era{
				Balance:              0.3,
				Transactions:         80,
				InternalTransactions: 12,
				AggregateETH:         25,
				Protocols:            9,
				NativeBridgeUsed:     true,
			},
			lite:         report.Lite{Transactions: 4},
			wantActivity: 5,
			wantReach:    2,
		},
		{
			name:         "lite activity only",
			lite:         report.Lite{Transactions: 1},
			wantActivity: 1,
		},
		{
			name:      "bridge only",
			era:       report.Era{NativeBridgeUsed: true},
			wantReach: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity, reach := Scores(&tt.era, &tt.lite)
			if activity != tt.wantActivity || reach != tt.wantReach {
				t.Errorf("Scores() = (%d, %d), want (%d, %d)", activity, reach, tt.wantActivity, tt.wantReach)
			}
		})
	}
}

func TestRewardRange(t *testing.T) {
	era := &report.Era{
		Balance:              0.25,
		Transactions:         42,
		InternalTransactions: 1,
		AggregateETH:         0.5,
		Protocols:            6,
		NativeBridgeUsed:     false,
	}
	lite := &report.Lite{Transactions: 7}

	// activity 3, reach 1
	want := Range{1200, 1600}
	if got := RewardRange(era, lite); got != want {
		t.Errorf("RewardRange() = %v, want %v", got, want)
	}
	if got := want.String(); got != "1200-1600" {
		t.Errorf("String() = %q", got)
	}
}
