package habits

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/cli"
	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
)

var fixedNow = time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store: store,
		Tracker: tracker.New(store,
			tracker.WithLocation(time.UTC),
			tracker.WithClock(func() time.Time { return fixedNow }),
		),
		Out: out,
	}
	return ctx, out
}

func TestHabitAddAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&HabitAddCmd{Name: "Reading", Goal: "20 pages"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&HabitAddCmd{Name: "Running"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added habit 1: Reading") {
		t.Errorf("unexpected add output: %q", out.String())
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	listing := out.String()
	for _, want := range []string{"Reading", "Running", "20 pages"} {
		if !strings.Contains(listing, want) {
			t.Errorf("list output missing %q:\n%s", want, listing)
		}
	}
	if strings.Index(listing, "Running") > strings.Index(listing, "Reading") {
		t.Errorf("newest habit should be listed first:\n%s", listing)
	}
}

func TestHabitAddDuplicate(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&HabitAddCmd{Name: "Reading"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	err := (&HabitAddCmd{Name: "Reading"}).Run(ctx)
	if !errors.Is(err, apperrors.ErrConstraintViolation) {
		t.Errorf("duplicate add error = %v, want ErrConstraintViolation", err)
	}
}

func TestHabitListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No habits yet") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHabitShow(t *testing.T) {
	ctx, out := setupTestContext(t)
	h, err := ctx.Tracker.CreateHabit("Reading", "daily")
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	for _, date := range []string{"2024-01-03", "2024-01-04", "2024-01-05"} {
		if _, err := ctx.Tracker.CreateLog(h.ID, date, 20, ""); err != nil {
			t.Fatalf("CreateLog failed: %v", err)
		}
	}

	if err := (&HabitShowCmd{ID: h.ID}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Reading", "Goal:            daily", "Current streak:  3 day(s)", "60 min", "2024-01-04"} {
		if !strings.Contains(got, want) {
			t.Errorf("show output missing %q:\n%s", want, got)
		}
	}
}

func TestHabitShowMissing(t *testing.T) {
	ctx, _ := setupTestContext(t)
	err := (&HabitShowCmd{ID: 42}).Run(ctx)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("show error = %v, want ErrNotFound", err)
	}
}

func TestHabitDelete(t *testing.T) {
	tests := []struct {
		name        string
		yes         bool
		answer      bool
		wantDeleted bool
		wantOutput  string
	}{
		{"yes flag skips prompt", true, false, true, "Deleted habit"},
		{"confirmed", false, true, true, "Deleted habit"},
		{"declined", false, false, false, "Cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			asked := false
			ctx.Confirm = func(string) (bool, error) {
				asked = true
				return tt.answer, nil
			}

			h, err := ctx.Tracker.CreateHabit("Reading", "")
			if err != nil {
				t.Fatalf("CreateHabit failed: %v", err)
			}
			if _, err := ctx.Tracker.CreateLog(h.ID, "2024-01-05", 10, ""); err != nil {
				t.Fatalf("CreateLog failed: %v", err)
			}

			if err := (&HabitDeleteCmd{ID: h.ID, Yes: tt.yes}).Run(ctx); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if asked == tt.yes {
				t.Errorf("prompt shown = %v with --yes = %v", asked, tt.yes)
			}
			if !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("output %q missing %q", out.String(), tt.wantOutput)
			}

			_, err = ctx.Tracker.GetHabit(h.ID)
			if deleted := errors.Is(err, apperrors.ErrNotFound); deleted != tt.wantDeleted {
				t.Errorf("habit deleted = %v, want %v", deleted, tt.wantDeleted)
			}
		})
	}
}

func TestHabitDeleteMissing(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Confirm = func(string) (bool, error) {
		t.Fatal("should not prompt for a missing habit")
		return false, nil
	}
	err := (&HabitDeleteCmd{ID: 7}).Run(ctx)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("delete error = %v, want ErrNotFound", err)
	}
}
