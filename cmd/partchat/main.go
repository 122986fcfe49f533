package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd is the partchat entry point
var rootCmd = &cobra.Command{
	Use:   "partchat",
	Short: "Chat assistant for refrigerator and dishwasher parts",
	Long: `partchat answers questions about refrigerator and dishwasher parts:
installation, compatibility, troubleshooting and product search.

Available subcommands:
  serve - Run the HTTP API
  seed  - Load the demo catalog into the database
  ask   - Run a single conversation turn from the terminal`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
