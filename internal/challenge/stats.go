package challenge

import (
	"math"

	"github.com/shopspring/decimal"
)

// Stats is a point-in-time summary of the deposits.
type Stats struct {
	Completed  int
	Remaining  int
	Percent    float64
	Total      float64
	Average    float64
	Min        float64 // meaningful only when HasAmounts
	Max        float64
	HasAmounts bool
}

// CompletedCount returns the number of completed slots.
func (s State) CompletedCount() int {
	n := 0
	for _, d := range s.Deposits {
		if d.Done() {
			n++
		}
	}
	return n
}

// RemainingCount returns the number of slots still pending.
func (s State) RemainingCount() int {
	return SlotCount - s.CompletedCount()
}

// Percent returns the completed share of the challenge rounded to one decimal.
func (s State) Percent() float64 {
	return math.Round(float64(s.CompletedCount())/SlotCount*100*10) / 10
}

// TotalAmount sums the completed amounts. The sum is carried out in decimal
// so that currency values like 0.1 + 0.2 add up to 0.3.
func (s State) TotalAmount() float64 {
	total := decimal.Zero
	for _, d := range s.Deposits {
		if d.Done() {
			total = total.Add(decimal.NewFromFloat(d.Completion.Amount))
		}
	}
	return total.InexactFloat64()
}

// AvgAmount returns the mean completed amount, or 0 when nothing is completed.
func (s State) AvgAmount() float64 {
	n := s.CompletedCount()
	if n == 0 {
		return 0
	}
	return s.TotalAmount() / float64(n)
}

// MinAmount returns the smallest completed amount; ok is false when nothing
// is completed.
func (s State) MinAmount() (min float64, ok bool) {
	for _, d := range s.Deposits {
		if !d.Done() {
			continue
		}
		if !ok || d.Completion.Amount < min {
			min, ok = d.Completion.Amount, true
		}
	}
	return min, ok
}

// MaxAmount returns the largest completed amount; ok is false when nothing
// is completed.
func (s State) MaxAmount() (max float64, ok bool) {
	for _, d := range s.Deposits {
		if !d.Done() {
			continue
		}
		if !ok || d.Completion.Amount > max {
			max, ok = d.Completion.Amount, true
		}
	}
	return max, ok
}

// Summary computes every statistic at once.
func (s State) Summary() Stats {
	st := Stats{
		Completed: s.CompletedCount(),
		Remaining: s.RemainingCount(),
		Percent:   s.Percent(),
		Total:     s.TotalAmount(),
		Average:   s.AvgAmount(),
	}
	st.Min, st.HasAmounts = s.MinAmount()
	st.Max, _ = s.MaxAmount()
	return st
}
