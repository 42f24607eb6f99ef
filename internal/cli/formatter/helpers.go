package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator for a schedule.
func StatusPill(status domain.ScheduleStatus) string {
	style := StatusColor(status)
	switch status {
	case domain.ScheduleScheduled:
		return style.Render("○ Scheduled")
	case domain.ScheduleInProgress:
		return style.Render("● In Progress")
	case domain.ScheduleCompleted:
		return style.Render("✔ Completed")
	case domain.ScheduleCancelled:
		return style.Render("✖ Cancelled")
	default:
		return style.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateRange renders an inclusive range as "2024-03-01 → 2024-03-03 (3d)".
func DateRange(start, end domain.Date) string {
	days := end.DaysSince(start) + 1
	if start.Equal(end) {
		return fmt.Sprintf("%s %s", start, Dim("(1d)"))
	}
	return fmt.Sprintf("%s → %s %s", start, end, Dim(fmt.Sprintf("(%dd)", days)))
}

// Crew lists employee ids, or a dim placeholder for an empty crew.
func Crew(ids []string) string {
	if len(ids) == 0 {
		return StyleDim.Render("--")
	}
	return strings.Join(ids, ", ")
}

// DayDelta renders a signed day shift like "+2d" or "-1d".
func DayDelta(days int) string {
	switch {
	case days > 0:
		return StyleYellow.Render(fmt.Sprintf("+%dd", days))
	case days < 0:
		return StyleBlue.Render(fmt.Sprintf("%dd", days))
	default:
		return Dim("0d")
	}
}
