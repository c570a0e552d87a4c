package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitlog/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func Title(s string) string {
	return titleStyle.Render(s)
}

func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Table renders rows under headers with a light border
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func Minutes(m int) string {
	return fmt.Sprintf("%d min", m)
}

func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// HabitMinutes describes a best-habit result, or "-" when there is none
func HabitMinutes(hm *models.HabitMinutes) string {
	if hm == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", hm.Habit.Name, Minutes(hm.Minutes))
}

// LogRows renders logs as table rows: id, date, minutes, note
func LogRows(logs []models.Log) [][]string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			fmt.Sprint(l.ID),
			l.Date,
			fmt.Sprint(l.Minutes),
			OrDash(l.NoteOrEmpty()),
		})
	}
	return rows
}

var LogHeaders = []string{"ID", "Date", "Minutes", "Note"}
