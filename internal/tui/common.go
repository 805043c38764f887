package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/desafio200/internal/challenge"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewHistory
	viewSettings
)

var viewNames = []string{"Home", "History", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

// --- Helpers ---

// parseAmount accepts both "12.50" and "12,50".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("enter a number")
	}
	if !(v > 0) || v > 1e12 {
		return 0, errors.New("amount must be positive")
	}
	return v, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}

func validateDate(s string) error {
	if !challenge.IsValidISODate(s) {
		return errors.New("use YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("not a calendar date")
	}
	return nil
}

// validateOptionalDate allows clearing the field.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

func formatAmountInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func describeError(err error) string {
	var verr *challenge.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid file: %s", verr.Error())
	case errors.Is(err, challenge.ErrInvalidFile):
		return "Invalid file"
	}
	return fmt.Sprintf("Error: %v", err)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
