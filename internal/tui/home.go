package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/sadopc/desafio200/internal/format"
)

const gridColumns = 20

type homeModel struct {
	tracker *challenge.Tracker
	now     func() time.Time
	width   int
	height  int

	cursor   int // index into the slot list
	progress progress.Model

	formActive bool
	form       depositForm
}

func newHomeModel(t *challenge.Tracker, now func() time.Time) homeModel {
	return homeModel{
		tracker:  t,
		now:      now,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (h *homeModel) setSize(width, height int) {
	h.width = width
	h.height = height
	h.progress.Width = clamp(width-8, 20, gridColumns*4)
}

func (h homeModel) selectedID() int { return h.cursor + 1 }

func (h homeModel) update(msg tea.Msg) (homeModel, tea.Cmd) {
	if h.formActive {
		return h.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		last := challenge.SlotCount - 1
		switch {
		case key.Matches(msg, keys.Left):
			h.cursor = clamp(h.cursor-1, 0, last)
		case key.Matches(msg, keys.Right):
			h.cursor = clamp(h.cursor+1, 0, last)
		case key.Matches(msg, keys.Up):
			h.cursor = clamp(h.cursor-gridColumns, 0, last)
		case key.Matches(msg, keys.Down):
			h.cursor = clamp(h.cursor+gridColumns, 0, last)
		case key.Matches(msg, keys.Enter):
			return h.showForm()
		case key.Matches(msg, keys.Undo):
			return h, undoDeposit(h.tracker, h.selectedID())
		}
	}
	return h, nil
}

func (h homeModel) showForm() (homeModel, tea.Cmd) {
	d, err := h.tracker.Deposit(h.selectedID())
	if err != nil {
		return h, statusCmd(describeError(err), true)
	}
	h.form = newDepositForm(d, format.TodayISO(h.now()))
	h.formActive = true
	return h, h.form.init()
}

func (h homeModel) updateForm(msg tea.Msg) (homeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		h.formActive = false
		return h, nil
	}

	f, cmd, done := h.form.update(msg)
	h.form = f
	if !done {
		return h, cmd
	}
	h.formActive = false
	if !f.completed() {
		return h, nil
	}
	text, err := f.submit(h.tracker)
	if err != nil {
		return h, statusCmd(describeError(err), true)
	}
	return h, statusCmd(text, false)
}

// undoDeposit reverts a completed slot. Pending slots are left alone.
func undoDeposit(t *challenge.Tracker, id int) tea.Cmd {
	d, err := t.Deposit(id)
	if err != nil {
		return statusCmd(describeError(err), true)
	}
	if !d.Done() {
		return statusCmd(fmt.Sprintf("Deposit #%d is still pending", id), true)
	}
	if err := t.UndoDeposit(id); err != nil {
		return statusCmd(describeError(err), true)
	}
	return statusCmd(fmt.Sprintf("Deposit #%d undone", id), false)
}

func (h homeModel) view() string {
	w := h.width - 4

	if h.formActive {
		return activePanelStyle.Width(w).Render(h.form.view())
	}

	st := h.tracker.Stats()
	title := titleStyle.Render("200 deposits challenge")
	bar := h.progress.ViewAs(st.Percent / 100)
	counter := fmt.Sprintf("%s %s",
		bigNumberStyle.Render(fmt.Sprintf("%d/%d", st.Completed, challenge.SlotCount)),
		mutedStyle.Render(format.Percent(st.Percent)),
	)

	grid := h.renderGrid()
	side := h.renderSummary(st)

	var body string
	if w >= lipgloss.Width(grid)+lipgloss.Width(side)+4 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", side)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, grid, "", side)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", counter, bar, "", body, "", h.renderSelected(),
	))
}

func (h homeModel) renderGrid() string {
	deposits := h.tracker.Deposits()
	var rows []string
	for start := 0; start < len(deposits); start += gridColumns {
		var cells []string
		for i := start; i < min(start+gridColumns, len(deposits)); i++ {
			style := slotPendingStyle
			if deposits[i].Done() {
				style = slotDoneStyle
			}
			if i == h.cursor {
				style = slotCursorStyle
			}
			cells = append(cells, style.Render(fmt.Sprintf("%4d", deposits[i].ID)))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

func (h homeModel) renderSummary(st challenge.Stats) string {
	row := func(label, value string) string {
		return fmt.Sprintf("%s %s", lipgloss.NewStyle().Width(12).Render(label), highlightStyle.Render(value))
	}

	start := mutedStyle.Render("not set")
	if sd := h.tracker.StartDate(); sd != "" {
		start = highlightStyle.Render(format.DateBR(sd))
	}

	rows := []string{
		titleStyle.Render("Summary"),
		row("Saved", format.BRL(st.Total)),
		row("Remaining", fmt.Sprintf("%d", st.Remaining)),
		fmt.Sprintf("%s %s", lipgloss.NewStyle().Width(12).Render("Started"), start),
	}
	if st.HasAmounts {
		rows = append(rows,
			row("Average", format.BRL(st.Average)),
			row("Smallest", format.BRL(st.Min)),
			row("Largest", format.BRL(st.Max)),
		)
	}
	rows = append(rows, "", titleStyle.Render("Forecast"), h.renderForecast())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (h homeModel) renderForecast() string {
	fc := h.tracker.Forecast()
	if !fc.Possible {
		return mutedStyle.Render(forecastReason(fc.Reason))
	}
	eta := format.DateBR(fc.ETA)
	if rel := format.Relative(fc.ETA, h.now()); rel != "" {
		eta += " (" + rel + ")"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%.2f deposits/day", fc.DepositsPerDay),
		successStyle.Render("Done by "+eta),
	)
}

func forecastReason(reason string) string {
	switch reason {
	case challenge.ReasonNoStartDate:
		return "Set a start date in Settings"
	case challenge.ReasonTooFewDeposits:
		return "Needs at least 2 dated deposits"
	}
	return "Not enough data yet"
}

func (h homeModel) renderSelected() string {
	d, err := h.tracker.Deposit(h.selectedID())
	if err != nil {
		return ""
	}
	if !d.Done() {
		return mutedStyle.Render(fmt.Sprintf("#%d pending, suggested %s", d.ID, format.BRL(float64(d.ID))))
	}
	c := d.Completion
	line := fmt.Sprintf("#%d %s on %s", d.ID, format.BRL(c.Amount), format.DateBR(c.Date))
	if c.Note != "" {
		line += "  " + mutedStyle.Render(c.Note)
	}
	return successStyle.Render(line)
}
