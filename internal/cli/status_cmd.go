package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/foreman/internal/cli/formatter"
	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show storage and collection summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			schedules, err := app.Schedules.List(ctx)
			if err != nil {
				return err
			}

			counts := make(map[domain.ScheduleStatus]int)
			linked := 0
			for _, s := range schedules {
				counts[s.Status]++
				if s.HasPredecessor() {
					linked++
				}
			}

			var b strings.Builder
			line := func(label, value string) {
				fmt.Fprintf(&b, "%s %s\n", formatter.Dim(fmt.Sprintf("%-12s", label)), value)
			}

			if app.Config != nil {
				line("backend", app.Config.Storage.Backend)
				line("path", app.Config.Storage.Path)
			}
			if app.Meta != nil {
				meta, err := app.Meta.Meta(ctx)
				if err != nil {
					return err
				}
				line("revision", fmt.Sprintf("%d", meta.Revision))
				if !meta.SavedAt.IsZero() {
					line("saved", meta.SavedAt.Local().Format("2006-01-02 15:04:05"))
				}
			}
			line("schedules", fmt.Sprintf("%d", len(schedules)))
			line("linked", fmt.Sprintf("%d", linked))
			for _, st := range []domain.ScheduleStatus{
				domain.ScheduleScheduled,
				domain.ScheduleInProgress,
				domain.ScheduleCompleted,
				domain.ScheduleCancelled,
			} {
				line("", fmt.Sprintf("%s  %d", formatter.StatusPill(st), counts[st]))
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Status", strings.TrimRight(b.String(), "\n")))
			return nil
		},
	}
}
