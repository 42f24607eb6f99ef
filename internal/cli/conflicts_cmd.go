package cli

import (
	"fmt"

	"github.com/alexanderramin/foreman/internal/cli/formatter"
	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Inspect employee double-bookings",
	}
	cmd.AddCommand(newConflictsCheckCmd(app))
	return cmd
}

func newConflictsCheckCmd(app *App) *cobra.Command {
	var (
		crew            []string
		start, end, ign string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report which of the given employees are booked in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			startDate, err := domain.ParseDate(start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate := startDate
			if end != "" {
				if endDate, err = domain.ParseDate(end); err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
			}

			exclude := ""
			if ign != "" {
				if exclude, err = resolveScheduleID(ctx, app, ign); err != nil {
					return err
				}
			}

			conflicts := app.Schedules.CheckConflicts(ctx, crew, startDate, endDate, exclude)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConflicts(conflicts))
			if len(conflicts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&crew, "crew", nil, "Employee IDs (comma separated)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, defaults to start)")
	cmd.Flags().StringVar(&ign, "exclude", "", "Schedule to leave out, e.g. the one being edited")
	_ = cmd.MarkFlagRequired("crew")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
