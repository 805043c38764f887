package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/sadopc/desafio200/internal/format"
)

const chartWeeks = 8

type historyModel struct {
	tracker *challenge.Tracker
	now     func() time.Time
	width   int
	height  int

	cursor int

	formActive bool
	form       depositForm
}

func newHistoryModel(t *challenge.Tracker, now func() time.Time) historyModel {
	return historyModel{tracker: t, now: now}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

// completed returns the completed deposits, most recent date first.
func completed(deposits []challenge.Deposit) []challenge.Deposit {
	var out []challenge.Deposit
	for _, d := range deposits {
		if d.Done() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completion.Date != out[j].Completion.Date {
			return out[i].Completion.Date > out[j].Completion.Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive {
		return h.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		entries := completed(h.tracker.Deposits())
		h.cursor = clamp(h.cursor, 0, max(0, len(entries)-1))
		switch {
		case key.Matches(msg, keys.Up):
			h.cursor = clamp(h.cursor-1, 0, max(0, len(entries)-1))
		case key.Matches(msg, keys.Down):
			h.cursor = clamp(h.cursor+1, 0, max(0, len(entries)-1))
		case key.Matches(msg, keys.Enter):
			if len(entries) > 0 {
				h.form = newDepositForm(entries[h.cursor], format.TodayISO(h.now()))
				h.formActive = true
				return h, h.form.init()
			}
		case key.Matches(msg, keys.Undo):
			if len(entries) > 0 {
				return h, undoDeposit(h.tracker, entries[h.cursor].ID)
			}
		}
	}
	return h, nil
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
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

type weekTotal struct {
	start time.Time
	total float64
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

// weeklyTotals sums deposit amounts into the n Monday-based weeks ending with
// the week that contains today. Dates are compared as UTC calendar days.
func weeklyTotals(deposits []challenge.Deposit, today time.Time, n int) []weekTotal {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	first := weekStart(day).AddDate(0, 0, -7*(n-1))

	weeks := make([]weekTotal, n)
	for i := range weeks {
		weeks[i].start = first.AddDate(0, 0, 7*i)
	}
	for _, d := range deposits {
		if !d.Done() {
			continue
		}
		t, err := time.Parse("2006-01-02", d.Completion.Date)
		if err != nil || t.Before(first) {
			continue
		}
		i := int(t.Sub(first).Hours()/24) / 7
		if i < n {
			weeks[i].total += d.Completion.Amount
		}
	}
	return weeks
}

func (h historyModel) buildChart(weeks []weekTotal) barchart.Model {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := barchart.New(chartWidth, 10)

	var bars []barchart.BarData
	for _, wk := range weeks {
		bars = append(bars, barchart.BarData{
			Label: wk.start.Format("02/01"),
			Values: []barchart.BarValue{{
				Name:  "R$",
				Value: wk.total,
				Style: lipgloss.NewStyle().Foreground(colorSecondary),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (h historyModel) view() string {
	w := h.width - 4

	if h.formActive {
		return activePanelStyle.Width(w).Render(h.form.view())
	}

	deposits := h.tracker.Deposits()
	entries := completed(deposits)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ",
		mutedStyle.Render(fmt.Sprintf("last %d weeks", chartWeeks)),
	)
	weeks := weeklyTotals(deposits, h.now(), chartWeeks)
	chart := mutedStyle.Render("  Nothing saved in this period")
	for _, wk := range weeks {
		if wk.total > 0 {
			chart = h.buildChart(weeks).View()
			break
		}
	}
	nav := mutedStyle.Render("  ↑/↓: select  enter: edit  u: undo")

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header, "", chart, "", h.renderList(entries, w), "", nav,
	))
}

func (h historyModel) renderList(entries []challenge.Deposit, w int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("  No deposits yet")
	}

	// Rows left after the chart and chrome.
	visible := max(3, h.height-22)
	cursor := clamp(h.cursor, 0, len(entries)-1)
	first := clamp(cursor-visible/2, 0, max(0, len(entries)-visible))
	last := min(len(entries), first+visible)

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-5s %-11s %14s  %s", "#", "Date", "Amount", "Note")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 54))),
	}
	for i := first; i < last; i++ {
		d := entries[i]
		line := fmt.Sprintf("%-5d %-11s %14s  %s",
			d.ID, format.DateBR(d.Completion.Date), format.BRL(d.Completion.Amount), d.Completion.Note)
		if i == cursor {
			rows = append(rows, selectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+line))
		}
	}
	return strings.Join(rows, "\n")
}
