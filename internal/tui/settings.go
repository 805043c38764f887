package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/sadopc/desafio200/internal/format"
)

type settingsForm int

const (
	formStartDate settingsForm = iota
	formImport
	formReset
)

type settingsModel struct {
	tracker *challenge.Tracker
	info    Options
	width   int
	height  int

	formActive bool
	form       *huh.Form
	formKind   settingsForm

	// Form values as pointers (survive value copies)
	startDate  *string
	importPath *string
	confirm    *bool
}

func newSettingsModel(t *challenge.Tracker, info Options) settingsModel {
	sd, ip, ok := "", "", false
	return settingsModel{
		tracker:    t,
		info:       info,
		startDate:  &sd,
		importPath: &ip,
		confirm:    &ok,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.StartDate), key.Matches(msg, keys.Enter):
			return s.showStartDateForm()
		case key.Matches(msg, keys.Import):
			return s.showImportForm()
		case key.Matches(msg, keys.Reset):
			return s.showResetForm()
		}
	}
	return s, nil
}

func (s settingsModel) showStartDateForm() (settingsModel, tea.Cmd) {
	*s.startDate = s.tracker.StartDate()
	if *s.startDate == "" {
		*s.startDate = format.TodayISO(s.info.now())
	}
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Description("Leave empty to clear").
				Value(s.startDate).
				Validate(validateOptionalDate),
		).Title("Challenge"),
	).WithShowHelp(true).WithShowErrors(true)
	return s.activate(formStartDate)
}

func (s settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	*s.importPath = ""
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File to import").
				Description("Replaces all current deposits").
				Placeholder(filepath.Join(s.info.ExportDir, "desafio200-export.json")).
				Value(s.importPath).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("enter a path")
					}
					return nil
				}),
		).Title("Import"),
	).WithShowHelp(true).WithShowErrors(true)
	return s.activate(formImport)
}

func (s settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*s.confirm = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Erase all deposits and the start date?").
				Affirmative("Reset").
				Negative("Cancel").
				Value(s.confirm),
		),
	).WithShowHelp(true)
	return s.activate(formReset)
}

func (s settingsModel) activate(kind settingsForm) (settingsModel, tea.Cmd) {
	s.formKind = kind
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.formActive = false
		return s, s.apply()
	case huh.StateAborted:
		s.formActive = false
		return s, nil
	}
	return s, cmd
}

func (s settingsModel) apply() tea.Cmd {
	switch s.formKind {
	case formStartDate:
		date := strings.TrimSpace(*s.startDate)
		if err := s.tracker.SetStartDate(date); err != nil {
			return statusCmd(describeError(err), true)
		}
		if date == "" {
			return statusCmd("Start date cleared", false)
		}
		return statusCmd("Start date set to "+format.DateBR(date), false)

	case formImport:
		path := expandHome(strings.TrimSpace(*s.importPath))
		data, err := os.ReadFile(path)
		if err != nil {
			return statusCmd(fmt.Sprintf("Import error: %v", err), true)
		}
		if err := s.tracker.ImportJSON(string(data)); err != nil {
			return statusCmd(describeError(err), true)
		}
		return statusCmd("Imported "+path, false)

	case formReset:
		if !*s.confirm {
			return nil
		}
		if err := s.tracker.ResetAll(); err != nil {
			return statusCmd(describeError(err), true)
		}
		return statusCmd("All deposits erased", false)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	start := "not set"
	if sd := s.tracker.StartDate(); sd != "" {
		start = format.DateBR(sd)
	}

	settings := []struct{ label, value string }{
		{"Start date", start},
		{"Storage backend", s.info.Backend},
		{"Location", s.info.Location},
		{"Storage key", s.info.StorageKey},
		{"Export folder", s.info.ExportDir},
	}

	rows := []string{title, ""}
	for _, st := range settings {
		label := lipgloss.NewStyle().Width(24).Render(st.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(st.value)))
	}
	rows = append(rows, "", mutedStyle.Render("  s: start date  i: import  r: reset  e: export"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// now falls back to the wall clock when no clock was injected.
func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
