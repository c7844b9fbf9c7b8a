package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan and print the strong matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		matches, err := a.scanner.Run(cmd.Context(), a.scanParams())
		if err != nil {
			return err
		}

		if scanJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(matches)
		}

		if len(matches) == 0 {
			fmt.Println("No strong matches.")
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%-6s score %5.1f  close %8.2f\n", m.Meta.Symbol, m.Score.Score, m.Indicators.Close)
			for _, hit := range m.Score.Why {
				fmt.Printf("        %s: %s\n", hit.Label, hit.Value)
			}
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "print results as JSON")
}
