// Package cli implements the cobra command tree for auditgrep.
//
// Commands receive their services through SetConfig before Execute is
// called; the package never constructs adapters itself.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/auditgrep/internal/core/ports/driven"
	"github.com/custodia-labs/auditgrep/internal/core/ports/driving"
	"github.com/custodia-labs/auditgrep/internal/logger"
)

// version is the CLI version, overridable at build time via -ldflags.
var version = "0.2.0"

// Config holds the wired services the commands use.
type Config struct {
	Scanner  driving.Scanner
	Cache    driving.CacheMaintainer
	Runs     driven.RunStore
	Settings driven.ConfigStore
}

var (
	scannerService driving.Scanner
	cacheService   driving.CacheMaintainer
	runStore       driven.RunStore
	settings       driven.ConfigStore
)

// SetConfig injects the wired services. Call before Execute.
func SetConfig(c *Config) {
	if c == nil {
		return
	}
	scannerService = c.Scanner
	cacheService = c.Cache
	runStore = c.Runs
	settings = c.Settings
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "auditgrep",
	Short: "Search audit files and zip archives for matching lines",
	Long: `auditgrep searches every file and zip archive in an audit directory
for lines matching AND-combined keywords, number-aware keywords, or a
regular expression, and writes a timestamped report of the hits.

Archive contents are extracted once into a snapshot cache keyed by the
archive's size and modification time, so repeated searches over large
unchanged archives skip re-decompression.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
