// Package challenge holds the 200-deposit savings challenge: the slot model,
// schema validation of stored and imported JSON, derived statistics, the
// completion forecast and the Tracker that owns the live state.
package challenge

// SlotCount is the fixed number of deposit slots in the challenge.
const SlotCount = 200

// Completion is the data recorded when a slot is completed.
type Completion struct {
	Amount float64
	Date   string // YYYY-MM-DD
	Note   string
}

// Deposit is one slot. A nil Completion means the slot is pending.
type Deposit struct {
	ID         int
	Completion *Completion
}

// Done reports whether the slot has been completed.
func (d Deposit) Done() bool { return d.Completion != nil }

// State is the full persisted snapshot.
type State struct {
	StartDate string // empty when the challenge has not started
	Deposits  []Deposit
}

// NewState returns 200 pending slots and no start date.
func NewState() State {
	deposits := make([]Deposit, SlotCount)
	for i := range deposits {
		deposits[i] = Deposit{ID: i + 1}
	}
	return State{Deposits: deposits}
}

// Clone returns a deep copy so callers never share Completion pointers with
// the live state.
func (s State) Clone() State {
	out := State{StartDate: s.StartDate, Deposits: make([]Deposit, len(s.Deposits))}
	for i, d := range s.Deposits {
		out.Deposits[i] = d.clone()
	}
	return out
}

func (d Deposit) clone() Deposit {
	if d.Completion == nil {
		return Deposit{ID: d.ID}
	}
	c := *d.Completion
	return Deposit{ID: d.ID, Completion: &c}
}

// slotIndex returns the index of id, or -1 when no slot carries it.
func (s State) slotIndex(id int) int {
	if id >= 1 && id <= len(s.Deposits) && s.Deposits[id-1].ID == id {
		return id - 1
	}
	for i, d := range s.Deposits {
		if d.ID == id {
			return i
		}
	}
	return -1
}
