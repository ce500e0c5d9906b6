package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medvault-org/medvault/reports"
)

var (
	exportUserId string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's document archive as a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(generator *reports.Generator) error {
			return exportArchive(generator, exportUserId, exportOutput)
		})
	},
}

func exportArchive(generator *reports.Generator, userId string, output string) error {
	file, err := generator.Archive(context.TODO(), userId)
	if err != nil {
		return err
	}

	if err := file.Save(output); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", output)

	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportUserId, "user", "u", "", "User id owning the archive")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "archive.xlsx", "Output file")
	_ = exportCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(exportCmd)
}
