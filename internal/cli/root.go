package cli

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type Context struct {
	Store    storage.Provider
	Tracker  *tracker.Service
	Config   config.Config
	Target   config.Target
	Registry *prometheus.Registry

	// Out receives command output; nil means stdout
	Out io.Writer
	// Confirm asks a yes/no question; nil means an interactive prompt
	Confirm func(title string) (bool, error)
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Ask asks the user to confirm a destructive action
func (c *Context) Ask(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// IsSQLite reports whether the selected database is a local SQLite file
func (c *Context) IsSQLite() bool {
	return !c.Target.IsPostgres()
}
