package habits

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits, newest first."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit and this week's logs."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its logs."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name (must be unique)."`
	Goal string `help:"Optional goal, e.g. '30 minutes a day'." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.CreateHabit(c.Name, c.Goal)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Added habit %d: %s\n", h.ID, h.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.ListHabits()
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if len(habits) == 0 {
		fmt.Fprintln(out, "No habits yet. Add one with 'habitlog habit add NAME'.")
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			fmt.Sprint(h.ID),
			h.Name,
			cli.OrDash(h.GoalOrEmpty()),
			h.CreatedAt.Local().Format(constants.DateFormat),
		})
	}
	fmt.Fprintln(out, cli.Table([]string{"ID", "Name", "Goal", "Created"}, rows))
	return nil
}

type HabitShowCmd struct {
	ID int64 `arg:"" help:"Habit ID."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	d, err := ctx.Tracker.HabitDetail(c.ID)
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	fmt.Fprintln(out, cli.Title(d.Habit.Name))
	if goal := d.Habit.GoalOrEmpty(); goal != "" {
		fmt.Fprintf(out, "Goal:            %s\n", goal)
	}
	fmt.Fprintf(out, "Current streak:  %d day(s)\n", d.CurrentStreak)
	fmt.Fprintf(out, "This week:       %s  %s\n", cli.Minutes(d.WeekMinutes), cli.Muted(d.Week.String()))
	fmt.Fprintln(out)

	if len(d.WeekLogs) == 0 {
		fmt.Fprintln(out, "No logs this week.")
		return nil
	}
	fmt.Fprintln(out, cli.Table(cli.LogHeaders, cli.LogRows(d.WeekLogs)))
	return nil
}

type HabitDeleteCmd struct {
	ID  int64 `arg:"" help:"Habit ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.GetHabit(c.ID)
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Delete habit %q and all of its logs?", h.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := ctx.Tracker.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Deleted habit %d: %s\n", h.ID, h.Name)
	return nil
}
