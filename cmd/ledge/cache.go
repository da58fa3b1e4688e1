package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledge/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk parse cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached parse artifact",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenDiskCache("ledge")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		if !quietMode(cmd) {
			fmt.Fprintln(os.Stdout, "parse cache cleared")
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
