package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tiffinbox",
	Short: "Food ordering backend with menu, coupon, and order management",
	Long: `Tiffinbox is a self-hosted food ordering backend.

It serves a menu catalog, prices orders with GST and VAT, applies
percentage coupons, and records checkouts.

Quick start:
  tiffinbox serve   # Start the API server
  tiffinbox seed    # Load demo menu and coupons

Management:
  tiffinbox version # Print version information`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tiffinbox.yaml", "config file path")
}
