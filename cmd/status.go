package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/sadopc/desafio200/internal/format"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C63FF"))
	labelStyle   = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("#666666"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print progress, totals and the completion forecast",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	printStatus(cmd.OutOrStdout(), e.tracker)
	return nil
}

func printStatus(w io.Writer, t *challenge.Tracker) {
	st := t.Stats()
	row := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	fmt.Fprintln(w, "  "+headingStyle.Render("200 deposits challenge"))
	fmt.Fprintln(w)
	row("Progress", fmt.Sprintf("%d/%d (%s)", st.Completed, challenge.SlotCount, format.Percent(st.Percent)))
	row("Saved", format.BRL(st.Total))
	row("Remaining", fmt.Sprintf("%d", st.Remaining))
	if st.HasAmounts {
		row("Average", format.BRL(st.Average))
		row("Smallest", format.BRL(st.Min))
		row("Largest", format.BRL(st.Max))
	}
	if sd := t.StartDate(); sd != "" {
		row("Started", format.DateBR(sd))
	} else {
		row("Started", "not set (run `desafio200 start`)")
	}

	fc := t.Forecast()
	if !fc.Possible {
		row("Forecast", fc.Reason)
		return
	}
	eta := format.DateBR(fc.ETA)
	if rel := format.Relative(fc.ETA, now()); rel != "" {
		eta += " (" + rel + ")"
	}
	row("Pace", fmt.Sprintf("%.2f deposits/day", fc.DepositsPerDay))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Forecast"), goodStyle.Render(eta))
}
