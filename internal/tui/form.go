package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sadopc/desafio200/internal/challenge"
)

// depositForm confirms a pending slot or edits a completed one. Field values
// live behind pointers so they survive the value copies bubbletea makes.
type depositForm struct {
	form    *huh.Form
	id      int
	editing bool

	amount *string
	date   *string
	note   *string
}

// newDepositForm prefills from d. Pending slots default to their own id as
// the amount and today as the date.
func newDepositForm(d challenge.Deposit, today string) depositForm {
	amount, date, note := formatAmountInput(float64(d.ID)), today, ""
	if c := d.Completion; c != nil {
		amount, date, note = formatAmountInput(c.Amount), c.Date, c.Note
	}
	f := depositForm{
		id:      d.ID,
		editing: d.Done(),
		amount:  &amount,
		date:    &date,
		note:    &note,
	}

	title := fmt.Sprintf("Deposit #%d", d.ID)
	if f.editing {
		title = fmt.Sprintf("Edit deposit #%d", d.ID)
	}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Amount (R$)").Value(f.amount).Validate(validateAmount),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(f.date).Validate(validateDate),
			huh.NewInput().Title("Note").Placeholder("optional").Value(f.note),
		).Title(title),
	).WithShowHelp(true).WithShowErrors(true)
	return f
}

func (f depositForm) init() tea.Cmd { return f.form.Init() }

// update forwards msg to the form. done reports whether the form left its
// normal state, either completed or aborted.
func (f depositForm) update(msg tea.Msg) (depositForm, tea.Cmd, bool) {
	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}
	return f, cmd, f.form.State != huh.StateNormal
}

func (f depositForm) completed() bool { return f.form.State == huh.StateCompleted }

// submit writes the form values through the tracker.
func (f depositForm) submit(t *challenge.Tracker) (string, error) {
	amount, err := parseAmount(*f.amount)
	if err != nil {
		return "", err
	}
	if f.editing {
		if err := t.UpdateDeposit(f.id, amount, *f.date, *f.note); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deposit #%d updated", f.id), nil
	}
	if err := t.ConfirmDeposit(f.id, amount, *f.date, *f.note); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deposit #%d confirmed", f.id), nil
}

func (f depositForm) view() string { return f.form.View() }
