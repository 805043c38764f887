package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sadopc/desafio200/internal/export"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagCSV bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the state to a JSON file (or CSV with --csv); \"-\" prints JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the whole state with an exported JSON file; \"-\" reads stdin",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagCSV, "csv", false, "Export completed deposits as CSV")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if len(args) == 1 && args[0] == "-" {
		text, err := e.tracker.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	ext := "json"
	if flagCSV {
		ext = "csv"
	}
	path := export.DefaultPath(e.cfg.ExportDir(), now(), ext)
	if len(args) == 1 {
		path = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	state := e.tracker.State()
	if flagCSV {
		err = export.ToCSV(state, path)
	} else {
		err = export.ToJSON(state, path)
	}
	if err != nil {
		return err
	}
	log.WithField("path", path).Info("state exported")
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading import file: %w", err)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.tracker.ImportJSON(string(data)); err != nil {
		log.WithError(err).Warn("import rejected")
		return err
	}
	st := e.tracker.Stats()
	log.WithFields(log.Fields{"file": args[0], "completed": st.Completed}).Info("state imported")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d completed deposits\n", st.Completed)
	return nil
}
