package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task and category counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		info, err := a.service.StorageInfo(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Database:   %s\n", info.DatabasePath)
		fmt.Printf("Settings:   %s\n", info.SettingsPaths.Settings)
		fmt.Printf("Tasks:      %d (%d completed, %d archived)\n",
			info.Stats.TotalTasks, info.Stats.CompletedTasks, info.Stats.ArchivedTasks)
		fmt.Printf("Habits:     %d\n", info.Stats.Habits)
		fmt.Printf("Categories: %d\n", info.Stats.Categories)
		return nil
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Permanently delete every task and check-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("purge deletes all tasks permanently, pass --yes to confirm")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err = a.service.PurgeAllTasks(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("All tasks purged")
		return nil
	},
}

func init() {
	purgeCmd.Flags().Bool("yes", false, "confirm permanent deletion")
}
