package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withAmounts(amounts ...float64) State {
	st := NewState()
	for i, a := range amounts {
		st.Deposits[i].Completion = &Completion{Amount: a, Date: "2026-01-01"}
	}
	return st
}

func TestStatsEmpty(t *testing.T) {
	st := NewState()
	assert.Equal(t, 0, st.CompletedCount())
	assert.Equal(t, 200, st.RemainingCount())
	assert.Equal(t, 0.0, st.Percent())
	assert.Equal(t, 0.0, st.TotalAmount())
	assert.Equal(t, 0.0, st.AvgAmount())

	_, ok := st.MinAmount()
	assert.False(t, ok)
	_, ok = st.MaxAmount()
	assert.False(t, ok)
	assert.False(t, st.Summary().HasAmounts)
}

func TestStatsAmounts(t *testing.T) {
	st := withAmounts(10, 2.5, 40)
	assert.Equal(t, 3, st.CompletedCount())
	assert.Equal(t, 197, st.RemainingCount())
	assert.Equal(t, 52.5, st.TotalAmount())
	assert.Equal(t, 17.5, st.AvgAmount())

	min, ok := st.MinAmount()
	assert.True(t, ok)
	assert.Equal(t, 2.5, min)
	max, ok := st.MaxAmount()
	assert.True(t, ok)
	assert.Equal(t, 40.0, max)
}

func TestStatsPercent(t *testing.T) {
	amounts := make([]float64, 50)
	for i := range amounts {
		amounts[i] = 1
	}
	assert.Equal(t, 25.0, withAmounts(amounts...).Percent())
	assert.Equal(t, 0.5, withAmounts(1).Percent())
	assert.Equal(t, 1.5, withAmounts(1, 1, 1).Percent())
}

func TestTotalAmountIsExact(t *testing.T) {
	assert.Equal(t, 0.3, withAmounts(0.1, 0.2).TotalAmount())
}

func TestSummary(t *testing.T) {
	s := withAmounts(4, 6).Summary()
	assert.Equal(t, Stats{
		Completed:  2,
		Remaining:  198,
		Percent:    1,
		Total:      10,
		Average:    5,
		Min:        4,
		Max:        6,
		HasAmounts: true,
	}, s)
}
