package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driving"
)

// mockScanner records the options of the last Scan call.
type mockScanner struct {
	lastOpts driving.ScanOptions
	summary  *driving.ScanSummary
	err      error
}

func (m *mockScanner) Scan(_ context.Context, opts driving.ScanOptions) (*driving.ScanSummary, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

// mockMaintainer records which roots were inspected or purged.
type mockMaintainer struct {
	infos      []driving.CacheInfo
	inspected  string
	purgedRoot string
	err        error
}

func (m *mockMaintainer) Inspect(cacheRoot, _ string) ([]driving.CacheInfo, error) {
	m.inspected = cacheRoot
	return m.infos, m.err
}

func (m *mockMaintainer) Purge(cacheRoot string) error {
	m.purgedRoot = cacheRoot
	return m.err
}

// mockRunStore serves canned history records.
type mockRunStore struct {
	runs      []domain.RunRecord
	lastLimit int
}

func (m *mockRunStore) Record(_ context.Context, run domain.RunRecord) error {
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunStore) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	m.lastLimit = limit
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockRunStore) Close() error { return nil }

// mapSettings is an in-memory config store.
type mapSettings map[string]any

func (m mapSettings) GetString(key string) string {
	v, _ := m[key].(string)
	return v
}

func (m mapSettings) GetStringSlice(key string) []string {
	v, _ := m[key].([]string)
	return v
}

func (m mapSettings) GetBool(key string) bool {
	v, _ := m[key].(bool)
	return v
}

func (m mapSettings) Set(key string, value any) error {
	m[key] = value
	return nil
}

// setupTestServices wires mock services into the command tree and
// returns the mocks plus a cleanup restoring the previous wiring.
func setupTestServices() (*mockScanner, *mockMaintainer, *mockRunStore, func()) {
	prevScanner := scannerService
	prevCache := cacheService
	prevRuns := runStore
	prevSettings := settings

	scanner := &mockScanner{summary: &driving.ScanSummary{
		RunID:      "test-run",
		Hits:       2,
		Sources:    3,
		ReportPath: "search_results_20260829_103000.txt",
	}}
	maintainer := &mockMaintainer{}
	runs := &mockRunStore{}

	scannerService = scanner
	cacheService = maintainer
	runStore = runs
	settings = nil

	return scanner, maintainer, runs, func() {
		scannerService = prevScanner
		cacheService = prevCache
		runStore = prevRuns
		settings = prevSettings
	}
}

// resetCommandFlags restores the named flags of cmd to their defaults
// and clears the changed markers, so flag state does not leak between
// tests.
func resetCommandFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
}
