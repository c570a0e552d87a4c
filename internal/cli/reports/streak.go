package reports

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
)

type StreakCmd struct {
	HabitID int64 `arg:"" optional:"" help:"Habit ID (default: the habit with the longest current streak)."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.HabitID == 0 {
		best, err := ctx.Tracker.LongestStreakAcrossHabits()
		if err != nil {
			return err
		}
		if best == nil {
			fmt.Fprintln(out, "No habit has a current streak.")
			return nil
		}
		fmt.Fprintf(out, "Longest current streak: %s, %d day(s)\n", best.Habit.Name, best.Streak)
		return nil
	}

	h, err := ctx.Tracker.GetHabit(c.HabitID)
	if err != nil {
		return err
	}
	n, err := ctx.Tracker.CurrentStreak(h.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d day(s)\n", h.Name, n)
	return nil
}
