package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-evaluate tracked watchlist items",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		processed, err := a.scanner.RefreshTracked(cmd.Context(), a.cfg.Scan.ScoreThreshold)
		if err != nil {
			return err
		}
		fmt.Printf("Refreshed %d tracked item(s).\n", processed)
		return nil
	},
}
