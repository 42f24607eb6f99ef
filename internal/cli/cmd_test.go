package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/alexanderramin/foreman/internal/config"
	"github.com/alexanderramin/foreman/internal/domain"
	"github.com/alexanderramin/foreman/internal/repository"
	"github.com/alexanderramin/foreman/internal/service"
	"github.com/alexanderramin/foreman/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory SQLite store.
func testApp(t *testing.T, seed ...domain.Schedule) (*App, *repository.KVScheduleRepo) {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewKVScheduleRepo(repository.NewSQLiteKV(testutil.NewTestDB(t)))
	if len(seed) > 0 {
		require.NoError(t, repo.Save(ctx, seed))
	}
	store := service.NewScheduleStore(repo)
	require.NoError(t, store.Load(ctx))

	return &App{
		Schedules: service.NewScheduleService(store, service.Options{FlagCascadeConflicts: true}),
		Meta:      repo,
		Config:    config.Default(),
		Logger:    zerolog.Nop(),
	}, repo
}

// executeCmd runs a cobra command against app and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(func(context.Context, *config.Config, zerolog.Logger) (*App, func() error, error) {
		return app, nil, nil
	})
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func TestScheduleAdd(t *testing.T) {
	app, repo := testApp(t)

	out, err := executeCmd(t, app, "schedule", "add",
		"--title", "Pour footings", "--job", "job-9",
		"--crew", "alice,bob", "--start", "2024-03-01", "--end", "2024-03-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Created schedule Pour footings")

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, []string{"alice", "bob"}, saved[0].EmployeeIDs)
	assert.Equal(t, "job-9", saved[0].JobID)
	assert.False(t, saved[0].UseDuration)
}

func TestScheduleAdd_ConflictPrintsPairs(t *testing.T) {
	existing := testutil.NewTestSchedule("Frame", testutil.WithID("frame-1"),
		testutil.WithEmployees("alice"),
		testutil.WithDates("2024-03-01", "2024-03-03"),
	)
	app, _ := testApp(t, existing)

	out, err := executeCmd(t, app, "schedule", "add",
		"--title", "Roof", "--crew", "alice", "--start", "2024-03-03")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, out, "Employees already booked")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Frame")
}

func TestScheduleAdd_AfterWithDuration(t *testing.T) {
	pred := testutil.NewTestSchedule("Excavate", testutil.WithID("exc-123456"))
	app, repo := testApp(t, pred)

	_, err := executeCmd(t, app, "schedule", "add",
		"--title", "Footings", "--start", "2024-03-02",
		"--after", "exc", "--lag", "1", "--duration", "3")
	require.NoError(t, err)

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	var footings domain.Schedule
	for _, s := range saved {
		if s.Title == "Footings" {
			footings = s
		}
	}
	require.NotNil(t, footings.PredecessorID)
	assert.Equal(t, "exc-123456", *footings.PredecessorID)
	assert.Equal(t, 1, footings.PredecessorLag)
	assert.Equal(t, 3, footings.Duration)
	assert.True(t, footings.UseDuration)
}

func TestScheduleUpdate_PrintsCascade(t *testing.T) {
	a := testutil.NewTestSchedule("Excavate", testutil.WithID("aaaa"), testutil.WithDates("2024-03-01", "2024-03-02"))
	b := testutil.NewTestSchedule("Footings", testutil.WithID("bbbb"),
		testutil.WithDates("2024-03-03", "2024-03-04"),
		testutil.WithPredecessor("aaaa", 0),
	)
	app, _ := testApp(t, a, b)

	out, err := executeCmd(t, app, "schedule", "update", "aaaa", "--end", "2024-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated schedule Excavate")
	assert.Contains(t, out, "CASCADE: 1 MOVED")
	assert.Contains(t, out, "Footings")
	assert.Contains(t, out, "+2d")
}

func TestScheduleUpdate_NoChange(t *testing.T) {
	a := testutil.NewTestSchedule("Excavate", testutil.WithID("aaaa"))
	app, _ := testApp(t, a)

	out, err := executeCmd(t, app, "schedule", "update", "aaaa", "--title", "Excavate")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to update")
}

func TestScheduleUpdate_CycleRejected(t *testing.T) {
	a := testutil.NewTestSchedule("A", testutil.WithID("aaaa"))
	b := testutil.NewTestSchedule("B", testutil.WithID("bbbb"), testutil.WithPredecessor("aaaa", 0))
	app, _ := testApp(t, a, b)

	_, err := executeCmd(t, app, "schedule", "update", "aaaa", "--after", "bbbb")
	assert.ErrorIs(t, err, domain.ErrCycle)
}

func TestScheduleUpdate_AfterAndDetachExclusive(t *testing.T) {
	a := testutil.NewTestSchedule("A", testutil.WithID("aaaa"))
	app, _ := testApp(t, a)

	_, err := executeCmd(t, app, "schedule", "update", "aaaa", "--after", "aaaa", "--detach")
	assert.Error(t, err)
}

func TestScheduleRemove_ReportsUnlinked(t *testing.T) {
	a := testutil.NewTestSchedule("A", testutil.WithID("aaaa"))
	b := testutil.NewTestSchedule("B", testutil.WithID("bbbb"), testutil.WithPredecessor("aaaa", 0))
	app, repo := testApp(t, a, b)

	out, err := executeCmd(t, app, "schedule", "rm", "aaaa")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed schedule A")
	assert.Contains(t, out, "1 dependent(s)")

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Nil(t, saved[0].PredecessorID)
}

func TestScheduleRemove_InteractiveAbort(t *testing.T) {
	a := testutil.NewTestSchedule("A", testutil.WithID("aaaa"))
	app, repo := testApp(t, a)
	app.IsInteractive = func() bool { return true }

	root := NewRootCmd(func(context.Context, *config.Config, zerolog.Logger) (*App, func() error, error) {
		return app, nil, nil
	})
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(bytes.NewBufferString("n\n"))
	root.SetArgs([]string{"schedule", "rm", "aaaa"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "Aborted.")
	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestScheduleResolve_AmbiguousPrefix(t *testing.T) {
	a := testutil.NewTestSchedule("A", testutil.WithID("ab-1"))
	b := testutil.NewTestSchedule("B", testutil.WithID("ab-2"))
	app, _ := testApp(t, a, b)

	_, err := executeCmd(t, app, "schedule", "show", "ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = executeCmd(t, app, "schedule", "show", "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScheduleShowAndList(t *testing.T) {
	a := testutil.NewTestSchedule("Excavate", testutil.WithID("aaaa"),
		testutil.WithEmployees("alice"),
		testutil.WithDates("2024-03-01", "2024-03-02"),
	)
	b := testutil.NewTestSchedule("Footings", testutil.WithID("bbbb"),
		testutil.WithDates("2024-03-03", "2024-03-04"),
		testutil.WithPredecessor("aaaa", 0),
		testutil.WithStatus(domain.ScheduleCancelled),
	)
	app, _ := testApp(t, a, b)

	out, err := executeCmd(t, app, "schedule", "show", "bbbb")
	require.NoError(t, err)
	assert.Contains(t, out, "Footings")
	assert.Contains(t, out, "Excavate")

	out, err = executeCmd(t, app, "schedule", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Excavate")
	assert.Contains(t, out, "Footings")

	out, err = executeCmd(t, app, "schedule", "list", "--active")
	require.NoError(t, err)
	assert.NotContains(t, out, "Footings")

	out, err = executeCmd(t, app, "schedule", "list", "--employee", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedules found.")
}

func TestScheduleDependents(t *testing.T) {
	a := testutil.NewTestSchedule("Excavate", testutil.WithID("aaaa"))
	b := testutil.NewTestSchedule("Footings", testutil.WithID("bbbb"), testutil.WithPredecessor("aaaa", 0))
	c := testutil.NewTestSchedule("Walls", testutil.WithID("cccc"), testutil.WithPredecessor("bbbb", 0))
	app, _ := testApp(t, a, b, c)

	out, err := executeCmd(t, app, "schedule", "dependents", "aaaa")
	require.NoError(t, err)
	assert.Contains(t, out, "└─ Footings")
	assert.Contains(t, out, "└─ Walls")
	assert.NotContains(t, out, "├─")

	out, err = executeCmd(t, app, "schedule", "dependents", "cccc")
	require.NoError(t, err)
	assert.Contains(t, out, "No dependents.")
}

func TestConflictsCheck(t *testing.T) {
	a := testutil.NewTestSchedule("Excavate", testutil.WithID("aaaa"),
		testutil.WithEmployees("alice"),
		testutil.WithDates("2024-03-01", "2024-03-02"),
	)
	app, _ := testApp(t, a)

	out, err := executeCmd(t, app, "conflicts", "check", "--crew", "alice,bob", "--start", "2024-03-02", "--end", "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Excavate")
	assert.NotContains(t, out, "bob")

	out, err = executeCmd(t, app, "conflicts", "check", "--crew", "alice", "--start", "2024-03-02", "--exclude", "aaaa")
	require.NoError(t, err)
	assert.Contains(t, out, "No conflicts.")
}

func TestExport(t *testing.T) {
	a := testutil.NewTestSchedule("Excavate", testutil.WithID("aaaa"), testutil.WithDates("2024-03-01", "2024-03-02"))
	app, _ := testApp(t, a)

	out, err := executeCmd(t, app, "export")
	require.NoError(t, err)
	var doc exportDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Schedules, 1)
	assert.Equal(t, "2024-03-02", doc.Schedules[0].EndDate.String())

	out, err = executeCmd(t, app, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "startDate:")
	var ydoc exportDocument
	require.NoError(t, yaml.Unmarshal([]byte(out), &ydoc))
	require.Len(t, ydoc.Schedules, 1)
	assert.Equal(t, "aaaa", ydoc.Schedules[0].ID)

	_, err = executeCmd(t, app, "export", "--format", "csv")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	a := testutil.NewTestSchedule("A", testutil.WithID("aaaa"))
	b := testutil.NewTestSchedule("B", testutil.WithID("bbbb"), testutil.WithPredecessor("aaaa", 0))
	app, _ := testApp(t, a, b)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "revision")
	assert.Regexp(t, `schedules\s+2`, out)
	assert.Regexp(t, `linked\s+1`, out)
}

func TestRootCmd_InvalidConfigFile(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "--config", "/nonexistent/foreman.yaml", "schedule", "list")
	assert.Error(t, err)
}

func TestNewLogger_JSONLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImport_YAMLChain(t *testing.T) {
	app, repo := testApp(t)
	path := writeImportFile(t, "job.yaml", `
defaults:
  job_id: job-42
  crew: [alice]
schedules:
  - ref: exc
    title: Excavate
    start_date: "2024-03-01"
    end_date: "2024-03-02"
  - ref: ftg
    title: Footings
    start_date: "2024-03-03"
    after: exc
    crew: [bob]
`)

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 schedule(s)")

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	byTitle := map[string]domain.Schedule{}
	for _, s := range saved {
		byTitle[s.Title] = s
	}
	require.NotNil(t, byTitle["Footings"].PredecessorID)
	assert.Equal(t, byTitle["Excavate"].ID, *byTitle["Footings"].PredecessorID)
	assert.Equal(t, "job-42", byTitle["Footings"].JobID)
}

func TestImport_DryRunAndInvalid(t *testing.T) {
	app, repo := testApp(t)

	valid := writeImportFile(t, "ok.json", `{"schedules":[{"ref":"a","title":"A","start_date":"2024-03-01"}]}`)
	out, err := executeCmd(t, app, "import", "--dry-run", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 1 schedule(s)")

	invalid := writeImportFile(t, "bad.json", `{"schedules":[{"ref":"a","title":"","start_date":"tomorrow"}]}`)
	out, err = executeCmd(t, app, "import", invalid)
	require.Error(t, err)
	assert.Contains(t, out, "2 problem(s)")

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestImport_StopsOnConflict(t *testing.T) {
	app, repo := testApp(t)
	path := writeImportFile(t, "clash.json", `{"schedules":[
		{"ref":"a","title":"A","crew":["alice"],"start_date":"2024-03-01"},
		{"ref":"b","title":"B","crew":["alice"],"start_date":"2024-03-01"}
	]}`)

	out, err := executeCmd(t, app, "import", path)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, out, "Imported 1 of 2")

	saved, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}
