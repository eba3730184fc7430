package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/auditgrep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/auditgrep/internal/core/domain"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driving"
	"github.com/custodia-labs/auditgrep/internal/logger"
)

// Built-in defaults, overridable by config file and flags (flags win).
const (
	defaultAuditDir  = "./audit"
	defaultCacheRoot = ".cache"
	defaultReportDir = "."
)

var defaultExtensions = []string{"csv"}

var (
	searchRegex   string
	searchNumbers bool
	searchDir     string
	searchCache   string
	searchNoCache bool
	searchExts    []string
	searchReport  string
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the audit directory for matching lines",
	Long: `Scans every immediate child of the audit directory: zip archives are
searched through the snapshot cache, other files with a target extension
are searched directly. All given terms must match a line (logical AND).

With --numbers, digit-only terms match only as delimited numbers: "80"
hits "status 80 ok" but not "10.80.1.5" or "1980-01-01".

With --regex, the pattern is searched anywhere in each line and any
keyword terms are ignored.`,
	RunE: runSearch,
}

func init() {
	addScanFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

// addScanFlags registers the flags shared by search and watch.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&searchRegex, "regex", "e", "", "regular expression pattern (takes priority over terms)")
	cmd.Flags().BoolVarP(&searchNumbers, "numbers", "n", false, "match digit-only terms as delimited numbers")
	cmd.Flags().StringVarP(&searchDir, "dir", "d", defaultAuditDir, "audit directory to scan")
	cmd.Flags().StringVar(&searchCache, "cache-root", defaultCacheRoot, "snapshot cache root")
	cmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "stream archive entries instead of using the cache")
	cmd.Flags().StringSliceVarP(&searchExts, "ext", "x", defaultExtensions, "target file extensions")
	cmd.Flags().StringVarP(&searchReport, "report-dir", "o", defaultReportDir, "directory for report files")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if scannerService == nil {
		return errors.New("scanner service not configured")
	}

	opts, err := buildScanOptions(cmd, args)
	if err != nil {
		return err
	}

	summary, err := scannerService.Scan(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printSummary(cmd, summary)
	return nil
}

// buildScanOptions merges flags, config-file values and built-in
// defaults (in that order) into one run's options.
func buildScanOptions(cmd *cobra.Command, args []string) (driving.ScanOptions, error) {
	spec, err := buildSpec(args)
	if err != nil {
		return driving.ScanOptions{}, err
	}

	cacheRoot := stringOption(cmd, "cache-root", file.KeyCacheRoot, defaultCacheRoot)
	if boolOption(cmd, "no-cache", file.KeyNoCache) {
		cacheRoot = ""
	}

	return driving.ScanOptions{
		AuditDir:   stringOption(cmd, "dir", file.KeyAuditDir, defaultAuditDir),
		CacheRoot:  cacheRoot,
		ReportDir:  stringOption(cmd, "report-dir", file.KeyReportDir, defaultReportDir),
		Extensions: domain.NormaliseExtensions(sliceOption(cmd, "ext", file.KeyExtensions, defaultExtensions)),
		Spec:       spec,
	}, nil
}

// buildSpec constructs the match specification. Regex takes priority;
// keyword terms given alongside a pattern are ignored.
func buildSpec(terms []string) (domain.MatchSpec, error) {
	if searchRegex != "" {
		if len(terms) > 0 {
			logger.Warn("Ignoring keyword terms, regex pattern takes priority")
		}
		return domain.NewRegex(searchRegex)
	}
	if len(terms) == 0 {
		return domain.MatchSpec{}, domain.ErrNoCriteria
	}
	if searchNumbers {
		return domain.NewNumberAware(terms), nil
	}
	return domain.NewLiteral(terms), nil
}

func printSummary(cmd *cobra.Command, summary *driving.ScanSummary) {
	cmd.Printf("Matched %d line(s) across %d source(s)", summary.Hits, summary.Sources)
	if summary.Skipped > 0 {
		cmd.Printf(" (%d skipped)", summary.Skipped)
	}
	cmd.Println()
	cmd.Printf("Report: %s\n", summary.ReportPath)
}

// stringOption resolves a string flag against the config store: an
// explicitly set flag wins, then the config value, then the default.
func stringOption(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if settings != nil {
		if v := settings.GetString(key); v != "" {
			return v
		}
	}
	return fallback
}

func boolOption(cmd *cobra.Command, flag, key string) bool {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetBool(flag)
		return v
	}
	if settings != nil {
		return settings.GetBool(key)
	}
	return false
}

func sliceOption(cmd *cobra.Command, flag, key string, fallback []string) []string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetStringSlice(flag)
		return v
	}
	if settings != nil {
		if v := settings.GetStringSlice(key); len(v) > 0 {
			return v
		}
	}
	return fallback
}
