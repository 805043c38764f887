package challenge

import (
	"fmt"
	"math"
	"strings"
)

// Persister is the durable side of the Tracker.
type Persister interface {
	// Load returns the stored state, or false when nothing usable is stored.
	Load() (State, bool)
	Save(State) error
	// Clear removes the stored state entirely.
	Clear() error
}

// Tracker owns the live challenge state. Every mutation validates its input,
// applies the change to a copy, persists the copy and only then makes it the
// live state, so a failed save leaves the tracker unchanged.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	state   State
	persist Persister
}

// NewTracker returns a tracker holding the fresh state. A nil Persister keeps
// everything in memory.
func NewTracker(p Persister) *Tracker {
	return &Tracker{state: NewState(), persist: p}
}

// InitFromStorage hydrates the tracker from durable storage. It must be
// called once at startup; when nothing valid is stored the defaults are kept.
func (t *Tracker) InitFromStorage() {
	if t.persist == nil {
		return
	}
	if st, ok := t.persist.Load(); ok {
		t.state = st
	}
}

// State returns a copy of the live state.
func (t *Tracker) State() State { return t.state.Clone() }

// StartDate returns the start date, or "" when it is not set.
func (t *Tracker) StartDate() string { return t.state.StartDate }

// Deposits returns a copy of all 200 slots in id order.
func (t *Tracker) Deposits() []Deposit { return t.state.Clone().Deposits }

// Deposit returns a copy of the slot with the given id.
func (t *Tracker) Deposit(id int) (Deposit, error) {
	i := t.state.slotIndex(id)
	if i < 0 {
		return Deposit{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	return t.state.Deposits[i].clone(), nil
}

// Stats summarizes the current deposits.
func (t *Tracker) Stats() Stats { return t.state.Summary() }

// Forecast estimates the completion date from the current pace.
func (t *Tracker) Forecast() Forecast { return t.state.Forecast() }

// SetStartDate replaces the start date; "" clears it.
func (t *Tracker) SetStartDate(date string) error {
	if date != "" && !IsValidISODate(date) {
		return fmt.Errorf("start date %q: %w", date, ErrInvalidDate)
	}
	next := t.state.Clone()
	next.StartDate = date
	return t.commit(next)
}

// ConfirmDeposit marks the slot as completed with the given data. A slot that
// is already completed is overwritten.
func (t *Tracker) ConfirmDeposit(id int, amount float64, date, note string) error {
	i, err := t.checkInput(id, amount, date)
	if err != nil {
		return err
	}
	next := t.state.Clone()
	next.Deposits[i].Completion = &Completion{Amount: amount, Date: date, Note: strings.TrimSpace(note)}
	return t.commit(next)
}

// UpdateDeposit rewrites the data of a completed slot.
func (t *Tracker) UpdateDeposit(id int, amount float64, date, note string) error {
	i, err := t.checkInput(id, amount, date)
	if err != nil {
		return err
	}
	if !t.state.Deposits[i].Done() {
		return fmt.Errorf("%w: %d", ErrNotCompleted, id)
	}
	next := t.state.Clone()
	next.Deposits[i].Completion = &Completion{Amount: amount, Date: date, Note: strings.TrimSpace(note)}
	return t.commit(next)
}

// UndoDeposit returns the slot to pending, discarding its amount, date and note.
func (t *Tracker) UndoDeposit(id int) error {
	i := t.state.slotIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	next := t.state.Clone()
	next.Deposits[i] = Deposit{ID: id}
	return t.commit(next)
}

// ResetAll replaces the state with the fresh one and erases the stored copy.
func (t *Tracker) ResetAll() error {
	if t.persist != nil {
		if err := t.persist.Clear(); err != nil {
			return fmt.Errorf("clear state: %w", err)
		}
	}
	t.state = NewState()
	return nil
}

// ExportJSON returns the state as pretty-printed JSON.
func (t *Tracker) ExportJSON() (string, error) {
	data, err := EncodeIndent(t.state)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// ImportJSON replaces the whole state with the one in text.
func (t *Tracker) ImportJSON(text string) error {
	st, err := Decode([]byte(text))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return t.commit(st)
}

func (t *Tracker) checkInput(id int, amount float64, date string) (int, error) {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	i := t.state.slotIndex(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	if !IsValidISODate(date) {
		return -1, fmt.Errorf("date %q: %w", date, ErrInvalidDate)
	}
	return i, nil
}

func (t *Tracker) commit(next State) error {
	if t.persist != nil {
		if err := t.persist.Save(next); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	t.state = next
	return nil
}
