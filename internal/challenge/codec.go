package challenge

import "encoding/json"

type wireState struct {
	StartDate *string       `json:"startDate"`
	Deposits  []wireDeposit `json:"deposits"`
}

type wireDeposit struct {
	ID     int      `json:"id"`
	Done   bool     `json:"done"`
	Amount *float64 `json:"amount,omitempty"`
	Date   *string  `json:"date,omitempty"`
	Note   *string  `json:"note,omitempty"`
}

func toWire(s State) wireState {
	w := wireState{Deposits: make([]wireDeposit, len(s.Deposits))}
	if s.StartDate != "" {
		start := s.StartDate
		w.StartDate = &start
	}
	for i, d := range s.Deposits {
		wd := wireDeposit{ID: d.ID, Done: d.Done()}
		if c := d.Completion; c != nil {
			amount, date, note := c.Amount, c.Date, c.Note
			wd.Amount, wd.Date, wd.Note = &amount, &date, &note
		}
		w.Deposits[i] = wd
	}
	return w
}

// Encode serializes s in the compact stored form.
func Encode(s State) ([]byte, error) {
	return json.Marshal(toWire(s))
}

// EncodeIndent serializes s pretty-printed with two-space indentation, the
// form handed to users on export.
func EncodeIndent(s State) ([]byte, error) {
	return json.MarshalIndent(toWire(s), "", "  ")
}
