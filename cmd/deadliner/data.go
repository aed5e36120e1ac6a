package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/XiaoChennnng/Deadliner-Client/models"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a full backup document to a local JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		backup, err := a.service.ExportData(cmd.Context())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding backup: %w", err)
		}
		if err = os.WriteFile(args[0], data, 0o600); err != nil {
			return err
		}

		fmt.Printf("Exported %d tasks and %d categories to %s\n",
			len(backup.Tasks), len(backup.Categories), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace local data from a backup document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var backup models.Backup
		if err = json.Unmarshal(data, &backup); err != nil {
			return fmt.Errorf("error decoding backup: %w", err)
		}

		report, err := a.service.ImportData(cmd.Context(), backup)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d tasks (%d skipped), %d categories (%d skipped)\n",
			report.TasksImported, report.TasksSkipped,
			report.CategoriesImported, report.CategoriesSkipped)
		return nil
	},
}
