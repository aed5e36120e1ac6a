package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "WebDAV backup and restore",
}

func init() {
	syncCmd.AddCommand(syncTestCmd, syncBackupCmd, syncRestoreCmd)
}

var syncTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the configured WebDAV credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result := a.service.TestWebDAV(cmd.Context())
		if !result.Success {
			return fmt.Errorf("connection test failed: %s", result.Error)
		}

		fmt.Println("Connection OK")
		return nil
	},
}

var syncBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a backup and a mobile snapshot to the WebDAV server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.service.BackupNow(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Uploaded %d items to %s and %s\n",
			report.ItemsSynced, report.RemotePath, report.SnapshotPath)
		return nil
	},
}

var syncRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace local data from the WebDAV server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.service.RestoreFromRemote(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Restored from %s: %d tasks (%d skipped), %d categories (%d skipped)\n",
			report.Source,
			report.Import.TasksImported, report.Import.TasksSkipped,
			report.Import.CategoriesImported, report.Import.CategoriesSkipped)
		return nil
	},
}
