package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svfmt/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk formatting cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached formatting results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cache, err := driver.OpenDiskCache("svfmt")
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			// An already-empty cache is not a failure.
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}

		quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
