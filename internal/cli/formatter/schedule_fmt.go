package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/scheduler"
)

// FormatScheduleList renders schedules as a table in the order given.
func FormatScheduleList(schedules []domain.Schedule) string {
	headers := []string{"ID", "TITLE", "JOB", "DATES", "CREW", "STATUS", "AFTER"}
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		after := Dim("--")
		if s.HasPredecessor() {
			after = TruncID(*s.PredecessorID)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			StyleFg.Render(s.Title),
			StylePurple.Render(s.JobID),
			DateRange(s.StartDate, s.EndDate),
			Crew(s.EmployeeIDs),
			StatusPill(s.Status),
			after,
		})
	}
	return RenderBox("Schedules", RenderTable(headers, rows))
}

// FormatScheduleDetail renders one schedule. predecessor may be nil.
func FormatScheduleDetail(s domain.Schedule, predecessor *domain.Schedule) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}

	b.WriteString(Bold(s.Title) + "  " + StatusPill(s.Status) + "\n\n")
	field("id", s.ID)
	field("job", StylePurple.Render(s.JobID))
	field("dates", DateRange(s.StartDate, s.EndDate))
	field("crew", Crew(s.EmployeeIDs))

	switch {
	case predecessor != nil:
		field("after", fmt.Sprintf("%s %s", predecessor.Title, TruncID(predecessor.ID)))
		field("lag", fmt.Sprintf("%dd", s.PredecessorLag))
	case s.HasPredecessor():
		field("after", *s.PredecessorID)
		field("lag", fmt.Sprintf("%dd", s.PredecessorLag))
	}
	if s.UseDuration {
		field("duration", fmt.Sprintf("%dd (fixed)", s.Duration))
	}
	if s.Notes != "" {
		field("notes", StyleFg.Render(s.Notes))
	}
	field("updated", s.UpdatedAt.Format("2006-01-02 15:04"))

	return RenderBox("Schedule", strings.TrimRight(b.String(), "\n"))
}

// FormatShifts lists the dependents a cascade moved.
func FormatShifts(shifts []scheduler.Shift) string {
	if len(shifts) == 0 {
		return Dim("No dependents moved.")
	}
	headers := []string{"ID", "TITLE", "FROM", "TO", "SHIFT", ""}
	rows := make([][]string, 0, len(shifts))
	for _, sh := range shifts {
		kind := Dim("indirect")
		if sh.Direct {
			kind = "direct"
		}
		rows = append(rows, []string{
			TruncID(sh.ScheduleID),
			sh.Title,
			DateRange(sh.OldStart, sh.OldEnd),
			DateRange(sh.NewStart, sh.NewEnd),
			DayDelta(sh.NewStart.DaysSince(sh.OldStart)),
			kind,
		})
	}
	return Header(fmt.Sprintf("Cascade: %d moved", len(shifts))) + "\n" + RenderTable(headers, rows)
}

// FormatConflicts renders the employee/schedule pairs of a double-booking.
func FormatConflicts(conflicts []domain.Conflict) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("No conflicts.")
	}
	headers := []string{"EMPLOYEE", "SCHEDULE", "TITLE", "DATES"}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			StyleRed.Render(c.EmployeeID),
			TruncID(c.ScheduleID),
			c.ScheduleTitle,
			DateRange(c.StartDate, c.EndDate),
		})
	}
	return RenderTable(headers, rows)
}

// FormatWarnings renders advisory double-bookings introduced by a cascade.
func FormatWarnings(warnings []scheduler.CascadeWarning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleYellowBold.Render(fmt.Sprintf("⚠ %d cascaded schedule(s) now double-book crew", len(warnings))))
	b.WriteString("\n")
	for _, w := range warnings {
		fmt.Fprintf(&b, "%s\n%s", Bold(w.ScheduleID), FormatConflicts(w.Conflicts))
	}
	return b.String()
}
