package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sadopc/desafio200/internal/challenge"
	"github.com/sadopc/desafio200/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2026, 1, 14, 9, 30, 0, 0, time.Local) }
	t.Cleanup(func() { now = prev })
}

// writeConfig creates a config that keeps everything under a temp dir.
func writeConfig(t *testing.T, backend string) (string, config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = backend
	switch backend {
	case config.BackendFile:
		cfg.Storage.Path = filepath.Join(dir, "data")
	case config.BackendRedis:
		mr := miniredis.RunT(t)
		cfg.Storage.RedisURL = "redis://" + mr.Addr() + "/0"
	default:
		cfg.Storage.Path = filepath.Join(dir, "state.db")
	}
	cfg.Log.Level = "debug"
	cfg.Log.File = filepath.Join(dir, "desafio200.log")
	cfg.Display.ExportDir = filepath.Join(dir, "exports")

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.Save(path, cfg))
	return path, cfg
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func exportedState(t *testing.T, cfgPath string) challenge.State {
	t.Helper()
	out, err := runCLI(t, cfgPath, "export", "-")
	require.NoError(t, err)
	st, err := challenge.Decode([]byte(out))
	require.NoError(t, err)
	return st
}

func TestConfirmAndStatus(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	out, err := runCLI(t, cfgPath, "confirm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deposit #1 confirmed")

	_, err = runCLI(t, cfgPath, "confirm", "2", "5", "--date", "2026-01-10", "--note", "pix")
	require.NoError(t, err)

	out, err = runCLI(t, cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "2/200")
	assert.Contains(t, out, "R$ 6,00")
	assert.Contains(t, out, challenge.ReasonNoStartDate)

	st := exportedState(t, cfgPath)
	require.True(t, st.Deposits[0].Done())
	assert.Equal(t, 1.0, st.Deposits[0].Completion.Amount, "amount defaults to the id")
	assert.Equal(t, "2026-01-14", st.Deposits[0].Completion.Date, "date defaults to today")
	assert.Equal(t, "pix", st.Deposits[1].Completion.Note)
}

func TestStatusShowsForecast(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendFile)

	for _, args := range [][]string{
		{"start", "2026-01-01"},
		{"confirm", "1", "--date", "2026-01-01"},
		{"confirm", "2", "--date", "2026-01-03"},
	} {
		_, err := runCLI(t, cfgPath, args...)
		require.NoError(t, err, args)
	}

	out, err := runCLI(t, cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Pace")
	assert.Contains(t, out, "01/01/2026")
}

func TestUpdateKeepsDateAndNote(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "confirm", "3", "--date", "2026-01-02", "--note", "first")
	require.NoError(t, err)
	_, err = runCLI(t, cfgPath, "update", "3", "7,5")
	require.NoError(t, err)

	c := exportedState(t, cfgPath).Deposits[2].Completion
	require.NotNil(t, c)
	assert.Equal(t, 7.5, c.Amount)
	assert.Equal(t, "2026-01-02", c.Date)
	assert.Equal(t, "first", c.Note)

	_, err = runCLI(t, cfgPath, "update", "3", "8", "--note", "")
	require.NoError(t, err)
	assert.Equal(t, "", exportedState(t, cfgPath).Deposits[2].Completion.Note)
}

func TestUpdatePendingFails(t *testing.T) {
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "update", "4", "4")
	assert.ErrorIs(t, err, challenge.ErrNotCompleted)
}

func TestConfirmRejectsBadInput(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "confirm", "201")
	assert.ErrorIs(t, err, challenge.ErrUnknownID)

	_, err = runCLI(t, cfgPath, "confirm", "1", "0")
	assert.ErrorIs(t, err, challenge.ErrInvalidAmount)

	_, err = runCLI(t, cfgPath, "confirm", "1", "--date", "14/01/2026")
	assert.ErrorIs(t, err, challenge.ErrInvalidDate)

	_, err = runCLI(t, cfgPath, "confirm", "one")
	assert.Error(t, err)

	assert.Equal(t, 0, exportedState(t, cfgPath).CompletedCount())
}

func TestUndo(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendRedis)

	_, err := runCLI(t, cfgPath, "confirm", "10")
	require.NoError(t, err)
	_, err = runCLI(t, cfgPath, "undo", "10")
	require.NoError(t, err)

	assert.False(t, exportedState(t, cfgPath).Deposits[9].Done())
}

func TestStartAndClear(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	out, err := runCLI(t, cfgPath, "start")
	require.NoError(t, err)
	assert.Contains(t, out, "14/01/2026")
	assert.Equal(t, "2026-01-14", exportedState(t, cfgPath).StartDate)

	_, err = runCLI(t, cfgPath, "start", "--clear")
	require.NoError(t, err)
	assert.Equal(t, "", exportedState(t, cfgPath).StartDate)

	_, err = runCLI(t, cfgPath, "start", "yesterday")
	assert.ErrorIs(t, err, challenge.ErrInvalidDate)
}

func TestExportImportAcrossBackends(t *testing.T) {
	fixClock(t)
	fileCfg, _ := writeConfig(t, config.BackendFile)
	redisCfg, _ := writeConfig(t, config.BackendRedis)

	_, err := runCLI(t, fileCfg, "start", "2026-01-01")
	require.NoError(t, err)
	_, err = runCLI(t, fileCfg, "confirm", "50", "--note", "moved")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.json")
	_, err = runCLI(t, fileCfg, "export", path)
	require.NoError(t, err)

	out, err := runCLI(t, redisCfg, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 completed deposits")

	st := exportedState(t, redisCfg)
	assert.Equal(t, "2026-01-01", st.StartDate)
	require.True(t, st.Deposits[49].Done())
	assert.Equal(t, "moved", st.Deposits[49].Completion.Note)
}

func TestExportCSVToDefaultPath(t *testing.T) {
	fixClock(t)
	cfgPath, cfg := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "confirm", "1")
	require.NoError(t, err)
	_, err = runCLI(t, cfgPath, "export", "--csv")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.Display.ExportDir, "desafio200-export-2026-01-14.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ID,Date,Amount,Note\n1,2026-01-14,1.00,\n", string(data))
}

func TestImportInvalidKeepsState(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "confirm", "1")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"startDate": null, "deposits": []}`), 0o644))

	_, err = runCLI(t, cfgPath, "import", bad)
	assert.ErrorIs(t, err, challenge.ErrInvalidFile)
	assert.Equal(t, 1, exportedState(t, cfgPath).CompletedCount())

	_, err = runCLI(t, cfgPath, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestResetRequiresYes(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendFile)

	_, err := runCLI(t, cfgPath, "confirm", "1")
	require.NoError(t, err)

	_, err = runCLI(t, cfgPath, "reset")
	require.Error(t, err)
	assert.Equal(t, 1, exportedState(t, cfgPath).CompletedCount())

	_, err = runCLI(t, cfgPath, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 0, exportedState(t, cfgPath).CompletedCount())
}

func TestBackendOverride(t *testing.T) {
	cfgPath, _ := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "--backend", "postgres", "status")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	fixClock(t)
	cfgPath, cfg := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "confirm", "1")
	require.NoError(t, err)

	out, err := runCLI(t, cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: loaded")
	assert.Contains(t, out, cfg.Storage.Path)
	assert.Contains(t, out, "desafio-200-depositos:v1")
}

func TestConfigInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	_, err := runCLI(t, path, "--backend", "file", "config", "--init")
	require.NoError(t, err)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
}

func TestLogFileWritten(t *testing.T) {
	fixClock(t)
	cfgPath, cfg := writeConfig(t, config.BackendSQLite)

	_, err := runCLI(t, cfgPath, "confirm", "5")
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "deposit confirmed")
	assert.Contains(t, string(data), "id=5")
}

func TestParseHelpers(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	_, err = parseID("4.2")
	assert.Error(t, err)

	v, err := parseAmount("12,50")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)
	_, err = parseAmount("R$ 3")
	assert.Error(t, err)
}

func TestLogOutputRestoredAfterClose(t *testing.T) {
	fixClock(t)
	cfgPath, _ := writeConfig(t, config.BackendSQLite)
	flagConfig, flagBackend = cfgPath, ""
	t.Cleanup(func() { flagConfig = "" })

	e, err := openEnv()
	require.NoError(t, err)
	assert.NotEqual(t, os.Stderr, log.StandardLogger().Out, "logs go to the file while open")

	require.NoError(t, e.Close())
	assert.Equal(t, os.Stderr, log.StandardLogger().Out)
	log.Info("after close")
}
