package logs

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/models"
)

type LogCmd struct {
	Add    LogAddCmd    `cmd:"" help:"Record minutes spent on a habit."`
	Edit   LogEditCmd   `cmd:"" help:"Change a log's date, minutes or note."`
	Delete LogDeleteCmd `cmd:"" help:"Delete a log."`
	List   LogListCmd   `cmd:"" help:"List every log of a habit."`
	Range  LogRangeCmd  `cmd:"" help:"List logs between two dates (default: this week)."`
}

type LogAddCmd struct {
	HabitID int64  `arg:"" help:"Habit ID."`
	Minutes int    `arg:"" help:"Minutes spent (must be positive)."`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note    string `help:"Optional note." default:""`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	// fail with NotFound rather than a foreign key violation
	h, err := ctx.Tracker.GetHabit(c.HabitID)
	if err != nil {
		return err
	}

	l, err := ctx.Tracker.CreateLog(h.ID, c.Date, c.Minutes, c.Note)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Logged %s of %s on %s (log %d)\n", cli.Minutes(l.Minutes), h.Name, l.Date, l.ID)
	return nil
}

type LogEditCmd struct {
	LogID     int64  `arg:"" help:"Log ID."`
	Date      string `help:"New date in YYYY-MM-DD format." default:""`
	Minutes   int    `help:"New minutes." default:"0"`
	Note      string `help:"New note." default:"" xor:"note"`
	ClearNote bool   `help:"Remove the note." xor:"note"`
}

// Patch builds the edit from the flags that were set. Zero minutes means
// unchanged since zero is never a valid length.
func (c *LogEditCmd) Patch() models.LogPatch {
	var p models.LogPatch
	if c.Date != "" {
		date := c.Date
		p.Date = &date
	}
	if c.Minutes != 0 {
		minutes := c.Minutes
		p.Minutes = &minutes
	}
	switch {
	case c.ClearNote:
		empty := ""
		p.Note = &empty
	case c.Note != "":
		note := c.Note
		p.Note = &note
	}
	return p
}

func (c *LogEditCmd) Run(ctx *cli.Context) error {
	patch := c.Patch()
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change: pass --date, --minutes, --note or --clear-note")
	}

	l, err := ctx.Tracker.UpdateLog(c.LogID, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Updated log %d: %s, %s\n", l.ID, l.Date, cli.Minutes(l.Minutes))
	return nil
}

type LogDeleteCmd struct {
	LogID int64 `arg:"" help:"Log ID."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.DeleteLog(c.LogID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "✓ Deleted log %d\n", c.LogID)
	return nil
}

type LogListCmd struct {
	HabitID int64 `arg:"" help:"Habit ID."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.GetHabit(c.HabitID)
	if err != nil {
		return err
	}
	logs, err := ctx.Tracker.ListLogs(h.ID)
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	fmt.Fprintln(out, cli.Title(h.Name))
	if len(logs) == 0 {
		fmt.Fprintln(out, "No logs yet.")
		return nil
	}
	fmt.Fprintln(out, cli.Table(cli.LogHeaders, cli.LogRows(logs)))
	return nil
}

type LogRangeCmd struct {
	Habit int64  `help:"Only this habit's logs." default:"0"`
	Start string `help:"First date, YYYY-MM-DD (default: Monday of this week)." default:""`
	End   string `help:"Last date, YYYY-MM-DD (default: Sunday of this week)." default:""`
}

func (c *LogRangeCmd) Range(ctx *cli.Context) models.Range {
	r := ctx.Tracker.WeekRange()
	if c.Start != "" {
		r.Start = c.Start
	}
	if c.End != "" {
		r.End = c.End
	}
	return r
}

func (c *LogRangeCmd) Run(ctx *cli.Context) error {
	r := c.Range(ctx)
	out := ctx.Stdout()

	if c.Habit != 0 {
		h, err := ctx.Tracker.GetHabit(c.Habit)
		if err != nil {
			return err
		}
		logs, err := ctx.Tracker.LogsInRangeForHabit(h.ID, r)
		if err != nil {
			return err
		}
		total, err := ctx.Tracker.MinutesForHabitInRange(h.ID, r)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", cli.Title(h.Name), cli.Muted(r.String()))
		if len(logs) > 0 {
			fmt.Fprintln(out, cli.Table(cli.LogHeaders, cli.LogRows(logs)))
		}
		fmt.Fprintf(out, "Total: %s\n", cli.Minutes(total))
		return nil
	}

	logs, err := ctx.Tracker.LogsInRange(r)
	if err != nil {
		return err
	}
	total, err := ctx.Tracker.TotalMinutesInRange(r)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", cli.Title("All habits"), cli.Muted(r.String()))
	if len(logs) > 0 {
		rows := make([][]string, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, []string{
				fmt.Sprint(l.ID),
				l.Date,
				l.HabitName,
				fmt.Sprint(l.Minutes),
				cli.OrDash(l.NoteOrEmpty()),
			})
		}
		fmt.Fprintln(out, cli.Table([]string{"ID", "Date", "Habit", "Minutes", "Note"}, rows))
	}
	fmt.Fprintf(out, "Total: %s\n", cli.Minutes(total))
	return nil
}
