package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ambonmud/swarm/internal/area"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert ROM .are files to YAML areas",
	Long: `Parse every ROM-format .are file in the input directory and write one
YAML area definition per file into the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		inputDir, _ := cmd.Flags().GetString("input-dir")
		outputDir, _ := cmd.Flags().GetString("output-dir")

		if err := area.Convert(inputDir, outputDir, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	convertCmd.Flags().String("input-dir", "", "directory holding .are files")
	convertCmd.Flags().String("output-dir", "", "directory to write YAML areas into")
	_ = convertCmd.MarkFlagRequired("input-dir")
	_ = convertCmd.MarkFlagRequired("output-dir")
	rootCmd.AddCommand(convertCmd)
}
