package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sadopc/desafio200/internal/challenge"
)

// ToCSV writes one row per completed deposit, in id order.
func ToCSV(s challenge.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Amount", "Note"}); err != nil {
		return err
	}

	for _, d := range s.Deposits {
		if !d.Done() {
			continue
		}
		row := []string{
			strconv.Itoa(d.ID),
			d.Completion.Date,
			strconv.FormatFloat(d.Completion.Amount, 'f', 2, 64),
			d.Completion.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FileName is the default export file name for the given day and extension.
func FileName(now time.Time, ext string) string {
	return fmt.Sprintf("desafio200-export-%s.%s", now.Format("2006-01-02"), ext)
}

// DefaultPath joins dir with FileName.
func DefaultPath(dir string, now time.Time, ext string) string {
	return filepath.Join(dir, FileName(now, ext))
}
