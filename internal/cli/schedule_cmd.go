package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/foreman/internal/cli/formatter"
	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/spf13/cobra"
)

// resolveScheduleID accepts a full id or an unambiguous id prefix.
func resolveScheduleID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("schedule ID is required")
	}

	schedules, err := app.Schedules.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range schedules {
		if s.ID == input {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &domain.NotFoundError{ID: input}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("schedule ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"s"},
		Short:   "Manage work schedules",
	}

	cmd.AddCommand(
		newScheduleAddCmd(app),
		newScheduleUpdateCmd(app),
		newScheduleRemoveCmd(app),
		newScheduleShowCmd(app),
		newScheduleListCmd(app),
		newScheduleDependentsCmd(app),
	)

	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var (
		title, job, start, end, after, status, notes string
		crew                                         []string
		lag, duration                                int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a schedule",
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

			in := domain.ScheduleInput{
				Title:       title,
				JobID:       job,
				EmployeeIDs: crew,
				StartDate:   startDate,
				EndDate:     endDate,
				Notes:       notes,
			}
			if after != "" {
				predID, err := resolveScheduleID(ctx, app, after)
				if err != nil {
					return err
				}
				in.PredecessorID = &predID
			}
			if cmd.Flags().Changed("lag") {
				in.PredecessorLag = &lag
			}
			if cmd.Flags().Changed("duration") {
				useDuration := true
				in.Duration = &duration
				in.UseDuration = &useDuration
			}
			if cmd.Flags().Changed("status") {
				st := domain.ScheduleStatus(status)
				in.Status = &st
			}

			created, err := app.Schedules.Create(ctx, in)
			if err != nil {
				return describeError(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created schedule %s %s\n", created.Title, formatter.TruncID(created.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Schedule title")
	cmd.Flags().StringVar(&job, "job", "", "Job ID")
	cmd.Flags().StringSliceVar(&crew, "crew", nil, "Employee IDs (comma separated)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, defaults to start)")
	cmd.Flags().StringVar(&after, "after", "", "Predecessor schedule ID or prefix")
	cmd.Flags().IntVar(&lag, "lag", domain.DefaultPredecessorLag, "Days to wait after the predecessor ends")
	cmd.Flags().IntVar(&duration, "duration", domain.DefaultDuration, "Fixed length in days; cascades keep it")
	cmd.Flags().StringVar(&status, "status", "", "Initial status")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newScheduleUpdateCmd(app *App) *cobra.Command {
	var (
		title, job, start, end, after, status, notes string
		crew                                         []string
		lag, duration                                int
		detach, spanMode                             bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a schedule; dependents follow date changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveScheduleID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var patch domain.SchedulePatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("job") {
				patch.JobID = &job
			}
			if flags.Changed("crew") {
				patch.EmployeeIDs = &crew
			}
			if flags.Changed("start") {
				d, err := domain.ParseDate(start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				patch.StartDate = &d
			}
			if flags.Changed("end") {
				d, err := domain.ParseDate(end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				patch.EndDate = &d
			}
			if flags.Changed("status") {
				st := domain.ScheduleStatus(status)
				patch.Status = &st
			}
			if flags.Changed("after") {
				predID, err := resolveScheduleID(ctx, app, after)
				if err != nil {
					return err
				}
				patch.PredecessorID = &predID
			}
			patch.ClearPredecessor = detach
			if flags.Changed("lag") {
				patch.PredecessorLag = &lag
			}
			if flags.Changed("duration") {
				useDuration := true
				patch.Duration = &duration
				patch.UseDuration = &useDuration
			}
			if spanMode {
				useDuration := false
				patch.UseDuration = &useDuration
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}

			res, err := app.Schedules.Update(ctx, id, patch)
			if err != nil {
				return describeError(cmd.ErrOrStderr(), err)
			}

			out := cmd.OutOrStdout()
			if !res.Changed {
				fmt.Fprintf(out, "Nothing to update for %s\n", res.Schedule.Title)
				return nil
			}
			fmt.Fprintf(out, "Updated schedule %s %s\n", res.Schedule.Title, formatter.TruncID(res.Schedule.ID))
			if len(res.Shifts) > 0 {
				fmt.Fprintln(out, formatter.FormatShifts(res.Shifts))
			}
			if w := formatter.FormatWarnings(res.Warnings); w != "" {
				fmt.Fprint(out, w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Schedule title")
	cmd.Flags().StringVar(&job, "job", "", "Job ID")
	cmd.Flags().StringSliceVar(&crew, "crew", nil, "Replace the crew (comma separated)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&after, "after", "", "Predecessor schedule ID or prefix")
	cmd.Flags().BoolVar(&detach, "detach", false, "Remove the predecessor link")
	cmd.Flags().IntVar(&lag, "lag", 0, "Days to wait after the predecessor ends")
	cmd.Flags().IntVar(&duration, "duration", 0, "Fixed length in days; cascades keep it")
	cmd.Flags().BoolVar(&spanMode, "keep-span", false, "Cascades keep the current span instead of a fixed duration")
	cmd.Flags().StringVar(&status, "status", "", "scheduled, in-progress, completed or cancelled")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagsMutuallyExclusive("after", "detach")
	cmd.MarkFlagsMutuallyExclusive("duration", "keep-span")

	return cmd
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a schedule; its dependents keep their dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveScheduleID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force && app.interactive() {
				s, err := app.Schedules.Get(ctx, id)
				if err != nil {
					return err
				}
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %q?", s.Title)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			res, err := app.Schedules.Delete(ctx, id)
			if err != nil {
				return describeError(cmd.ErrOrStderr(), err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed schedule %s %s\n", res.Deleted.Title, formatter.TruncID(res.Deleted.ID))
			if len(res.Unlinked) > 0 {
				fmt.Fprintf(out, "%s %d dependent(s) no longer have a predecessor\n",
					formatter.StyleYellow.Render("!"), len(res.Unlinked))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show schedule details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveScheduleID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Schedules.Get(ctx, id)
			if err != nil {
				return err
			}

			var pred *domain.Schedule
			if s.HasPredecessor() {
				// A dangling reference is shown as a bare id.
				pred, _ = app.Schedules.Get(ctx, *s.PredecessorID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleDetail(*s, pred))
			return nil
		},
	}
}

func newScheduleListCmd(app *App) *cobra.Command {
	var employee, job string
	var active bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List schedules by start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.Schedules.List(cmd.Context())
			if err != nil {
				return err
			}

			filtered := schedules[:0]
			for _, s := range schedules {
				if employee != "" && !s.AssignedTo(employee) {
					continue
				}
				if job != "" && s.JobID != job {
					continue
				}
				if active && !s.Status.BooksEmployees() {
					continue
				}
				filtered = append(filtered, s)
			}

			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No schedules found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScheduleList(filtered))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "Only schedules that book this employee")
	cmd.Flags().StringVar(&job, "job", "", "Only schedules for this job")
	cmd.Flags().BoolVar(&active, "active", false, "Hide completed and cancelled schedules")

	return cmd
}

func newScheduleDependentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dependents ID",
		Short: "Show everything that moves when this schedule moves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveScheduleID(ctx, app, args[0])
			if err != nil {
				return err
			}
			root, err := app.Schedules.Get(ctx, id)
			if err != nil {
				return err
			}
			deps, err := app.Schedules.Dependents(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderTree(formatter.DependencyTree(*root, deps)))
			if len(deps) == 0 {
				fmt.Fprintln(out, formatter.Dim("No dependents."))
			}
			return nil
		},
	}
}

// describeError prints the specifics of a rejected mutation and returns err
// for the exit status.
func describeError(w io.Writer, err error) error {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		fmt.Fprintln(w, formatter.StyleRed.Render("Employees already booked:"))
		fmt.Fprint(w, formatter.FormatConflicts(conflictErr.Conflicts))
	}
	return err
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
