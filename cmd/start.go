package cmd

import (
	"fmt"

	"github.com/sadopc/desafio200/internal/format"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagClear bool

var startCmd = &cobra.Command{
	Use:   "start [date]",
	Short: "Set the challenge start date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStart,
}

func init() {
	startCmd.Flags().BoolVar(&flagClear, "clear", false, "Remove the start date")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	date := format.TodayISO(now())
	if len(args) == 1 {
		date = args[0]
	}
	if flagClear {
		date = ""
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.tracker.SetStartDate(date); err != nil {
		return err
	}
	log.WithField("date", date).Info("start date set")

	if date == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Start date cleared")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Challenge started on %s\n", format.DateBR(date))
	return nil
}
