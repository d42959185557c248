package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the ember disk cache",
	Long:  "Remove cached check results stored by --disk-cache runs.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().String("cache-dir", "", "override disk cache location")
}

func runClean(cmd *cobra.Command, _ []string) error {
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	// Открытие создаёт каталог, если его не было, поэтому DropAll
	// срабатывает и на пустом кэше.
	cache, err := openCheckCache(cacheDir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
	return nil
}
