package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/auditgrep/internal/adapters/driven/config/file"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and prune the snapshot cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List snapshots and their validity",
	RunE:  runCacheStatus,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all snapshots from the cache root",
	RunE:  runCachePurge,
}

var (
	cacheAuditDir string
	cacheRootFlag string
	purgeRootFlag string
)

func init() {
	cacheStatusCmd.Flags().StringVarP(&cacheAuditDir, "dir", "d", defaultAuditDir, "audit directory to check against")
	cacheStatusCmd.Flags().StringVar(&cacheRootFlag, "cache-root", defaultCacheRoot, "snapshot cache root")
	cachePurgeCmd.Flags().StringVar(&purgeRootFlag, "cache-root", defaultCacheRoot, "snapshot cache root")
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStatus(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return errors.New("cache service not configured")
	}

	auditDir := stringOption(cmd, "dir", file.KeyAuditDir, defaultAuditDir)
	cacheRoot := stringOption(cmd, "cache-root", file.KeyCacheRoot, defaultCacheRoot)

	infos, err := cacheService.Inspect(cacheRoot, auditDir)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		cmd.Println("Cache is empty.")
		return nil
	}

	for _, info := range infos {
		cmd.Printf("%-10s %s\n", info.State, info.Archive)
	}
	return nil
}

func runCachePurge(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return errors.New("cache service not configured")
	}

	cacheRoot := stringOption(cmd, "cache-root", file.KeyCacheRoot, defaultCacheRoot)
	if err := cacheService.Purge(cacheRoot); err != nil {
		return err
	}
	cmd.Println("Cache purged.")
	return nil
}
