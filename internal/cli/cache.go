package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It removes cached
// layouts, artifacts, and probe results; the next run recomputes everything.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cached layouts, artifacts, and probe results",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			files, bytes, err := clearCacheDir(dir)
			if err != nil {
				return err
			}
			if files == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached files (%d bytes)", files, bytes)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearCacheDir removes every file under dir and prunes the emptied
// subdirectories, keeping dir itself. Unreadable entries are skipped so a
// partially cleared cache still reports what was removed.
func clearCacheDir(dir string) (files int, bytes int64, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || path == dir || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			bytes += info.Size()
		}
		if os.Remove(path) == nil {
			files++
		}
		return nil
	})
	if err != nil {
		return files, bytes, err
	}

	// Subdirectories are namespaces (layout/, artifact/, ...); drop the
	// empty ones.
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr == nil && path != dir && d.IsDir() {
			os.Remove(path)
		}
		return nil
	})

	return files, bytes, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
