package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// ancestorsLast[i] is true when the ancestor at level i+1 was the last
	// child of its parent, so no pipe is drawn under it.
	ancestorsLast []bool
	Status        domain.ScheduleStatus
	Detail        string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// DependencyTree lays out root and its transitive dependents depth-first,
// children in the order they appear in deps.
func DependencyTree(root domain.Schedule, deps []domain.Schedule) []TreeItem {
	children := make(map[string][]domain.Schedule)
	for _, d := range deps {
		if d.HasPredecessor() {
			children[*d.PredecessorID] = append(children[*d.PredecessorID], d)
		}
	}

	items := []TreeItem{{
		Title:  root.Title,
		Status: root.Status,
		Detail: DateRange(root.StartDate, root.EndDate),
	}}

	seen := map[string]bool{root.ID: true}
	var walk func(id string, level int, ancestorsLast []bool)
	walk = func(id string, level int, ancestorsLast []bool) {
		kids := children[id]
		for i, kid := range kids {
			if seen[kid.ID] {
				continue
			}
			seen[kid.ID] = true
			last := i == len(kids)-1
			items = append(items, TreeItem{
				Title:         kid.Title,
				Level:         level,
				IsLast:        last,
				ancestorsLast: ancestorsLast,
				Status:        kid.Status,
				Detail:        fmt.Sprintf("lag %d · %s", kid.PredecessorLag, DateRange(kid.StartDate, kid.EndDate)),
			})
			walk(kid.ID, level+1, append(append([]bool(nil), ancestorsLast...), last))
		}
	}
	walk(root.ID, 1, nil)
	return items
}

// RenderTree renders items as an indented tree with box-drawing connectors.
// Completed items get a green check, in-progress items an amber marker, and
// details are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 0; i < item.Level-1; i++ {
				if i < len(item.ancestorsLast) && item.ancestorsLast[i] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		marker := ""
		switch item.Status {
		case domain.ScheduleCompleted:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.ScheduleInProgress:
			marker = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case domain.ScheduleCancelled:
			marker = StyleDim.Render("✖ ")
			title = Dim(title)
		}

		content := StyleDim.Render(prefix.String()) + marker + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ ") + item.Detail + StyleBlue.Render(" ]")
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		b.WriteString(li.content)
		if li.badge != "" {
			pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
			b.WriteString(strings.Repeat(" ", pad) + "  " + li.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
