package reporting

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jakechorley/baddersbot/pkg/core/model"
)

// PlayerBalance reports how far a player's allocation count sits from the
// month's mean
type PlayerBalance struct {
	Player model.Player
	Count  int
	Delta  float64 // count minus mean; positive = over-allocated
}

// BalanceReport lists over- and under-allocated players relative to the
// mean allocation count
type BalanceReport struct {
	Mean           float64
	OverAllocated  []PlayerBalance
	UnderAllocated []PlayerBalance
}

// BuildBalanceReport computes the over/under-allocated player lists.
// Players more than tolerance away from the mean are flagged; both lists
// are ordered worst-first.
func BuildBalanceReport(players []model.Player, allocations []model.Allocation, tolerance float64) BalanceReport {
	counts := make(map[string]int)
	for _, a := range allocations {
		if a.Active() {
			counts[a.PlayerID]++
		}
	}

	values := make([]float64, len(players))
	for i, p := range players {
		values[i] = float64(counts[p.ID])
	}

	report := BalanceReport{}
	if len(values) > 0 {
		report.Mean = stat.Mean(values, nil)
	}

	for _, p := range players {
		delta := float64(counts[p.ID]) - report.Mean
		balance := PlayerBalance{Player: p, Count: counts[p.ID], Delta: delta}
		switch {
		case delta > tolerance:
			report.OverAllocated = append(report.OverAllocated, balance)
		case delta < -tolerance:
			report.UnderAllocated = append(report.UnderAllocated, balance)
		}
	}

	sort.Slice(report.OverAllocated, func(i, j int) bool {
		return report.OverAllocated[i].Delta > report.OverAllocated[j].Delta
	})
	sort.Slice(report.UnderAllocated, func(i, j int) bool {
		return report.UnderAllocated[i].Delta < report.UnderAllocated[j].Delta
	})

	return report
}
