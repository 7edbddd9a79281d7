// Package estimate derives a zkSync airdrop reward range from a wallet's ERA
// and lite reports.
package estimate

import (
	"fmt"

	"github.com/akulij/zkparser/internal/report"
)

// Score thresholds
const (
	minBalance          = 0.005
	minTransactions     = 10
	minInternal         = 2
	minAggregateETH     = 1.0
	minProtocols        = 3
	minLiteTransactions = 0
)

// Highest possible scores
const (
	MaxActivity = 5
	MaxReach    = 2
)

// Range is an inclusive reward estimate in tokens
type Range struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Low, r.High)
}

// rewards is indexed by [activity][reach]; unset cells are the zero Range
var rewards = [MaxActivity + 1][MaxReach + 1]Range{
	1: {1: {500, 800}, 2: {800, 1200}},
	2: {{500, 800}, {800, 1200}, {1200, 1600}},
	3: {{800, 1200}, {1200, 1600}, {1600, 3000}},
	4: {{1200, 1600}, {1600, 3000}, {3000, 6000}},
	5: {{1600, 3000}, {3000, 6000}, {6000, 8000}},
}

// Scores returns the activity score (0-5) and the reach score (0-2) of a wallet.
func Scores(era *report.Era, lite *report.Lite) (activity, reach int) {
	for _, ok := range []bool{
		era.Balance > minBalance,
		era.Transactions > minTransactions,
		era.InternalTransactions > minInternal,
		era.AggregateETH > minAggregateETH,
		lite.Transactions > minLiteTransactions,
	} {
		if ok {
			activity++
		}
	}
	if era.Protocols > minProtocols {
		reach++
	}
	if era.NativeBridgeUsed {
		reach++
	}
	return activity, reach
}

// Lookup returns the reward range for a pair of scores. Scores outside the
// table yield the zero Range.
func Lookup(activity, reach int) Range {
	if activity < 0 || activity > MaxActivity || reach < 0 || reach > MaxReach {
		return Range{}
	}
	return rewards[activity][reach]
}

// RewardRange estimates the reward of the wallet both reports describe
func RewardRange(era *report.Era, lite *report.Lite) Range {
	return Lookup(Scores(era, lite))
}
