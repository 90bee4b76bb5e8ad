package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newActivateDueCommand(configPath *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "activate-due",
		Short: "Book due recurring rules and complete every pending entry dated up to today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			today := a.scheduler.Today()
			if date != "" {
				today, err = time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}

			summary, err := a.scheduler.RunOnce(cmd.Context(), today)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.String())
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "run as of this day (YYYY-MM-DD) instead of today")

	return cmd
}
