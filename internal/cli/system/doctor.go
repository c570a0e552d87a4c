package system

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/utils"
)

type DoctorCmd struct{}

// errWarning marks a check whose failure is reported but not fatal
var errWarning = errors.New("warning")

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{"Schema version", true, checkSchemaVersion},
	{"Migrations complete", true, checkMigrationsComplete},
	{"Backups present", false, checkBackupsPresent},
	{"Data integrity", true, checkIntegrity},
	{"Clock/timezone", false, checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false

	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		report(out, "Database reachable", err)
		hasError = true
		dbReachable = false
	} else {
		report(out, "Database reachable", nil)
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		report(out, c.name, err)
		if err != nil && !errors.Is(err, errWarning) {
			hasError = true
		}
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func report(out io.Writer, name string, err error) {
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ %s: OK\n", name)
	case errors.Is(err, errWarning):
		fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(out, "   %v\n", err)
	default:
		fmt.Fprintf(out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(out, "   Error: %v\n", err)
	}
}

func warn(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{errWarning}, args...)...)
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return ctx.Store.Ping()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return warn("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return warn("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkIntegrity(ctx *cli.Context) error {
	r, err := ctx.Store.CheckIntegrity()
	if err != nil {
		return fmt.Errorf("failed to check integrity: %w", err)
	}
	if !r.OK() {
		return fmt.Errorf("found %d orphaned log(s), %d log(s) with a malformed date, %d log(s) with non-positive minutes",
			r.OrphanedLogs, r.BadDates, r.BadMinutes)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	tz := ctx.Config.Timezone
	if tz == "" {
		tz = constants.DefaultTimezone
	}
	if _, err := utils.LoadLocation(tz); err != nil {
		return fmt.Errorf("timezone %q is not valid: %w", tz, err)
	}

	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
