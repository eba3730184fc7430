package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
)

func TestHistoryCmd_Use(t *testing.T) {
	assert.Equal(t, "history", historyCmd.Use)
}

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestHistoryCmd_NoRuns(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetCommandFlags(historyCmd, "limit")
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No runs recorded.")
}

func TestHistoryCmd_ListsRuns(t *testing.T) {
	_, _, runs, cleanup := setupTestServices()
	defer cleanup()
	runs.runs = []domain.RunRecord{
		{
			ID:         "run-1",
			StartedAt:  time.Now(),
			Mode:       "keywords (number-aware)",
			Criteria:   "80",
			Hits:       1,
			ReportPath: "search_results_20260829_103000.txt",
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetCommandFlags(historyCmd, "limit")
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "keywords (number-aware)")
	assert.Contains(t, buf.String(), "search_results_20260829_103000.txt")
	assert.Equal(t, 20, runs.lastLimit)
}

func TestHistoryCmd_HonoursLimitFlag(t *testing.T) {
	_, _, runs, cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"history", "-n", "5"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetCommandFlags(historyCmd, "limit")
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 5, runs.lastLimit)
}
