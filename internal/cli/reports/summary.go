package reports

import (
	"fmt"
	"io"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type SummaryCmd struct {
	Month bool `help:"Summarize the current calendar month instead of the week."`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	if c.Month {
		m, err := ctx.Tracker.MonthSummary()
		if err != nil {
			return err
		}
		renderMonth(ctx.Stdout(), m)
		return nil
	}

	d, err := ctx.Tracker.Dashboard()
	if err != nil {
		return err
	}
	renderDashboard(ctx.Stdout(), d)
	return nil
}

func renderDashboard(out io.Writer, d tracker.Dashboard) {
	fmt.Fprintf(out, "%s %s\n\n", cli.Title("This week"), cli.Muted(d.Week.String()))

	streak := "-"
	if d.LongestStreak != nil {
		streak = fmt.Sprintf("%s (%d day(s))", d.LongestStreak.Habit.Name, d.LongestStreak.Streak)
	}
	longest := "-"
	if d.LongestLog != nil {
		longest = fmt.Sprintf("%s, %s on %s", d.LongestLog.HabitName, cli.Minutes(d.LongestLog.Minutes), d.LongestLog.Date)
	}

	fmt.Fprintf(out, "Habits:          %d\n", len(d.Habits))
	fmt.Fprintf(out, "Total minutes:   %s\n", cli.Minutes(d.WeekMinutes))
	fmt.Fprintf(out, "Best habit:      %s\n", cli.HabitMinutes(d.BestHabit))
	fmt.Fprintf(out, "Longest session: %s\n", longest)
	fmt.Fprintf(out, "Longest streak:  %s\n", streak)
}

func renderMonth(out io.Writer, m tracker.MonthSummary) {
	fmt.Fprintf(out, "%s %s\n", cli.Title("This month"), cli.Muted(m.Month.String()))
	if len(m.Habits) == 0 {
		fmt.Fprintln(out, "No habits yet.")
		return
	}

	rows := make([][]string, 0, len(m.Habits))
	for _, hm := range m.Habits {
		rows = append(rows, []string{fmt.Sprint(hm.Habit.ID), hm.Habit.Name, fmt.Sprint(hm.Minutes)})
	}
	fmt.Fprintln(out, cli.Table([]string{"ID", "Habit", "Minutes"}, rows))
	fmt.Fprintf(out, "Total minutes:   %s\n", cli.Minutes(m.TotalMinutes))
	fmt.Fprintf(out, "Best habit:      %s\n", cli.HabitMinutes(m.BestHabit))
}
