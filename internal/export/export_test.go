package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() challenge.State {
	s := challenge.NewState()
	s.StartDate = "2026-01-01"
	s.Deposits[0].Completion = &challenge.Completion{Amount: 1, Date: "2026-01-01", Note: "first"}
	s.Deposits[49].Completion = &challenge.Completion{Amount: 50.5, Date: "2026-01-03"}
	s.Deposits[199].Completion = &challenge.Completion{Amount: 200, Date: "2026-01-09", Note: `with "quotes", commas`}
	return s
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "CSV should be valid")
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, ToCSV(sampleState(), path))

	records := readCSV(t, path)
	// header + 3 completed deposits
	require.Len(t, records, 4)
	assert.Equal(t, []string{"ID", "Date", "Amount", "Note"}, records[0])
	assert.Equal(t, []string{"1", "2026-01-01", "1.00", "first"}, records[1])
	assert.Equal(t, []string{"50", "2026-01-03", "50.50", ""}, records[2])
	assert.Equal(t, `with "quotes", commas`, records[3][3])
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, ToCSV(challenge.NewState(), path))
	assert.Len(t, readCSV(t, path), 1, "header only")
}

func TestToCSVBadPath(t *testing.T) {
	assert.Error(t, ToCSV(challenge.NewState(), "/nonexistent/dir/file.csv"))
}

// ============================================================
// JSON
// ============================================================

func TestToJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	want := sampleState()
	require.NoError(t, ToJSON(want, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := challenge.Decode(data)
	require.NoError(t, err, "exported file should import cleanly")

	assert.Equal(t, want.StartDate, got.StartDate)
	assert.Equal(t, 3, got.CompletedCount())
	require.NotNil(t, got.Deposits[49].Completion)
	assert.Equal(t, 50.5, got.Deposits[49].Completion.Amount)
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	require.NoError(t, ToJSON(challenge.NewState(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ", "JSON should be indented with spaces")
}

func TestToJSONBadPath(t *testing.T) {
	assert.Error(t, ToJSON(challenge.NewState(), "/nonexistent/dir/file.json"))
}

// ============================================================
// File names
// ============================================================

func TestFileName(t *testing.T) {
	now := time.Date(2026, 2, 3, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "desafio200-export-2026-02-03.csv", FileName(now, "csv"))
	assert.Equal(t, filepath.Join("/tmp/x", "desafio200-export-2026-02-03.json"), DefaultPath("/tmp/x", now, "json"))
}
