package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mudswarm",
	Short: "Mudswarm - AmbonMUD load generation harness",
	Long:  `Drives swarms of simulated players against an AmbonMUD server over websockets.`,
}

func Execute() error {
	return rootCmd.Execute()
}
