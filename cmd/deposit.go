package cmd

import (
	"fmt"

	"github.com/sadopc/desafio200/internal/format"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDate string
	flagNote string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <id> [amount]",
	Short: "Mark a deposit as done (amount defaults to the id)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runConfirm,
}

var updateCmd = &cobra.Command{
	Use:   "update <id> <amount>",
	Short: "Change the amount, date or note of a completed deposit",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

var undoCmd = &cobra.Command{
	Use:   "undo <id>",
	Short: "Return a deposit to pending",
	Args:  cobra.ExactArgs(1),
	RunE:  runUndo,
}

func init() {
	for _, c := range []*cobra.Command{confirmCmd, updateCmd} {
		c.Flags().StringVar(&flagDate, "date", "", "Deposit date YYYY-MM-DD (default today)")
		c.Flags().StringVar(&flagNote, "note", "", "Free-form note")
	}
	rootCmd.AddCommand(confirmCmd, updateCmd, undoCmd)
}

func runConfirm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount := float64(id)
	if len(args) == 2 {
		if amount, err = parseAmount(args[1]); err != nil {
			return err
		}
	}
	date := flagDate
	if date == "" {
		date = format.TodayISO(now())
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.tracker.ConfirmDeposit(id, amount, date, flagNote); err != nil {
		return err
	}
	log.WithFields(log.Fields{"id": id, "amount": amount, "date": date}).Info("deposit confirmed")
	fmt.Fprintf(cmd.OutOrStdout(), "Deposit #%d confirmed: %s on %s\n", id, format.BRL(amount), format.DateBR(date))
	return nil
}

// runUpdate keeps the stored date and note unless the flags are given.
func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	d, err := e.tracker.Deposit(id)
	if err != nil {
		return err
	}
	date, note := format.TodayISO(now()), ""
	if d.Completion != nil {
		date, note = d.Completion.Date, d.Completion.Note
	}
	if cmd.Flags().Changed("date") {
		date = flagDate
	}
	if cmd.Flags().Changed("note") {
		note = flagNote
	}

	if err := e.tracker.UpdateDeposit(id, amount, date, note); err != nil {
		return err
	}
	log.WithFields(log.Fields{"id": id, "amount": amount, "date": date}).Info("deposit updated")
	fmt.Fprintf(cmd.OutOrStdout(), "Deposit #%d updated: %s on %s\n", id, format.BRL(amount), format.DateBR(date))
	return nil
}

func runUndo(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.tracker.UndoDeposit(id); err != nil {
		return err
	}
	log.WithField("id", id).Info("deposit undone")
	fmt.Fprintf(cmd.OutOrStdout(), "Deposit #%d is pending again\n", id)
	return nil
}
