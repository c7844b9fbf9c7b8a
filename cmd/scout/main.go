package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Swing-trade screener for US equities",
	Long: `SwingScout screens a US equity universe for upside swing setups:
uptrends coming out of volatility compression, confirmed by a breakout
and a volume surge. It serves an HTTP API, runs scheduled scans and
tracks watchlist candidates until they trigger.`,
}

func main() {
	// A missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, scanCmd, refreshCmd)
}
