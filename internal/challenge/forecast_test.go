package challenge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDates(start string, dates ...string) State {
	st := NewState()
	st.StartDate = start
	for i, d := range dates {
		st.Deposits[i].Completion = &Completion{Amount: float64(i + 1), Date: d}
	}
	return st
}

func TestForecastNeedsStartDate(t *testing.T) {
	f := withDates("", "2026-01-01", "2026-01-02").Forecast()
	assert.False(t, f.Possible)
	assert.Equal(t, ReasonNoStartDate, f.Reason)
}

func TestForecastNeedsTwoDeposits(t *testing.T) {
	f := withDates("2026-01-01").Forecast()
	assert.False(t, f.Possible)
	assert.Equal(t, ReasonTooFewDeposits, f.Reason)

	f = withDates("2026-01-01", "2026-01-05").Forecast()
	assert.False(t, f.Possible)
	assert.Equal(t, ReasonTooFewDeposits, f.Reason)
}

func TestForecastSameDay(t *testing.T) {
	f := withDates("2026-01-01", "2026-01-10", "2026-01-10").Forecast()
	require.True(t, f.Possible)
	assert.Equal(t, 2.0, f.DepositsPerDay)
	assert.False(t, math.IsInf(f.DepositsPerDay, 0))
	// 198 remaining at 2/day -> 99 days after 2026-01-10.
	assert.Equal(t, "2026-04-19", f.ETA)
}

func TestForecastPace(t *testing.T) {
	// Unsorted input; span 2026-01-01..2026-01-11 is 10 days for 5 deposits.
	f := withDates("2026-01-01", "2026-01-11", "2026-01-01", "2026-01-05", "2026-01-03", "2026-01-08").Forecast()
	require.True(t, f.Possible)
	assert.Equal(t, 0.5, f.DepositsPerDay)
	// 195 remaining at 0.5/day -> 390 days after 2026-01-11.
	assert.Equal(t, "2027-02-05", f.ETA)
}

func TestForecastRoundsUpDays(t *testing.T) {
	// 3 deposits over 2 days = 1.5/day; 197 / 1.5 = 131.33 -> 132 days.
	f := withDates("2026-03-01", "2026-03-01", "2026-03-02", "2026-03-03").Forecast()
	require.True(t, f.Possible)
	assert.Equal(t, 1.5, f.DepositsPerDay)
	assert.Equal(t, "2026-07-13", f.ETA)
}

func TestForecastCrossesLeapDay(t *testing.T) {
	st := NewState()
	st.StartDate = "2028-02-01"
	for i := range st.Deposits {
		st.Deposits[i].Completion = &Completion{Amount: 1, Date: "2028-02-27"}
	}
	st.Deposits[0].Completion.Date = "2028-02-28"
	st.Deposits[199] = Deposit{ID: 200}

	f := st.Forecast()
	require.True(t, f.Possible)
	// 199 deposits over 1 day, 1 remaining -> 1 day after 2028-02-28.
	assert.Equal(t, "2028-02-29", f.ETA)
}

func TestForecastFinished(t *testing.T) {
	st := NewState()
	st.StartDate = "2026-01-01"
	for i := range st.Deposits {
		st.Deposits[i].Completion = &Completion{Amount: 1, Date: "2026-01-02"}
	}
	st.Deposits[0].Completion.Date = "2026-01-01"

	f := st.Forecast()
	require.True(t, f.Possible)
	assert.Equal(t, "2026-01-02", f.ETA)
}

func TestForecastUnparseableCalendarDate(t *testing.T) {
	f := withDates("2026-01-01", "2026-01-01", "2026-13-99").Forecast()
	assert.False(t, f.Possible)
	assert.Equal(t, ReasonInsufficientData, f.Reason)
}

func TestForecastSpanBeyondDurationRange(t *testing.T) {
	// 1700-01-01 to 2100-01-01 is 146097 days, more than a time.Duration holds.
	f := withDates("1700-01-01", "1700-01-01", "2100-01-01").Forecast()
	require.True(t, f.Possible)
	assert.InDelta(t, 2.0/146097, f.DepositsPerDay, 1e-15)
}
