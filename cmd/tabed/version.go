package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the build via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tabed version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tabed", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
