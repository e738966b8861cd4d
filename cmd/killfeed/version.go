package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evetools/killfeed/bootstrap"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("killfeed %s\n", bootstrap.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
