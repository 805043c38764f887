package challenge

import (
	"math"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Reasons reported when a forecast cannot be made.
const (
	ReasonNoStartDate      = "start date not set"
	ReasonTooFewDeposits   = "need at least 2 dated deposits"
	ReasonInsufficientData = "insufficient data"
)

// Forecast estimates when the challenge will be finished at the average pace
// observed between the first and last dated deposits.
type Forecast struct {
	Possible       bool
	DepositsPerDay float64
	ETA            string // YYYY-MM-DD, set when Possible
	Reason         string // set when not Possible
}

// Forecast computes the completion estimate. Day arithmetic is done on UTC
// calendar dates.
func (s State) Forecast() Forecast {
	var dates []string
	for _, d := range s.Deposits {
		if d.Done() && d.Completion.Date != "" {
			dates = append(dates, d.Completion.Date)
		}
	}

	if s.StartDate == "" {
		return Forecast{Reason: ReasonNoStartDate}
	}
	if len(dates) < 2 {
		return Forecast{Reason: ReasonTooFewDeposits}
	}

	// YYYY-MM-DD sorts chronologically as text.
	sort.Strings(dates)
	first, err := time.Parse(dateLayout, dates[0])
	if err != nil {
		return Forecast{Reason: ReasonInsufficientData}
	}
	last, err := time.Parse(dateLayout, dates[len(dates)-1])
	if err != nil {
		return Forecast{Reason: ReasonInsufficientData}
	}

	// Unix seconds, not time.Duration, which overflows past ~292 years.
	diffDays := math.Max(1, math.Round(float64(last.Unix()-first.Unix())/86400))
	perDay := float64(len(dates)) / diffDays
	if math.IsInf(perDay, 0) || math.IsNaN(perDay) || perDay <= 0 {
		return Forecast{Reason: ReasonInsufficientData}
	}

	daysToFinish := int(math.Ceil(float64(s.RemainingCount()) / perDay))
	eta := last.AddDate(0, 0, daysToFinish)

	return Forecast{
		Possible:       true,
		DepositsPerDay: perDay,
		ETA:            eta.Format(dateLayout),
	}
}
