package analysis

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupsense/affinity-backend-go/internal/database"
	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
	"github.com/groupsense/affinity-backend-go/internal/service"
)

type runnerEnv struct {
	db        *sql.DB
	users     *repository.UserRepository
	events    *repository.EventRepository
	snapshots *repository.SnapshotRepository
	groups    *repository.GroupRepository
	runs      *repository.RunRepository
	runner    *Runner
}

func newRunnerEnv(t *testing.T) *runnerEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	env := &runnerEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		events:    repository.NewEventRepository(db),
		snapshots: repository.NewSnapshotRepository(db),
		groups:    repository.NewGroupRepository(db),
		runs:      repository.NewRunRepository(db),
	}

	matrix := service.NewMatrixService(env.users, env.events, env.snapshots)
	discovery := service.NewDiscoveryService(env.users, env.groups, 500, 10*time.Second)
	env.runner = NewRunner(env.runs, env.snapshots, env.groups, matrix, discovery)

	return env
}

func (e *runnerEnv) seedTriangle(t *testing.T) {
	t.Helper()

	users := map[string]string{
		"alice": models.GenderFemale,
		"bob":   models.GenderMale,
		"carol": models.GenderFemale,
	}
	ids := map[string]int64{}
	for name, gender := range users {
		u := &models.User{Username: name, PasswordHash: "x", Gender: gender}
		require.NoError(t, e.users.Create(u))
		ids[name] = u.ID
	}

	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	weights := map[string]map[string]int{
		"alice": {"bob": 40, "carol": 42},
		"bob":   {"alice": 40, "carol": 45},
		"carol": {"alice": 42, "bob": 45},
	}
	for name, neighbors := range weights {
		require.NoError(t, e.events.InsertInteraction(&models.InteractionRecord{
			UserID:    ids[name],
			Timestamp: ts,
			Neighbors: neighbors,
		}))
	}
}

func TestRunOnceCompletes(t *testing.T) {
	env := newRunnerEnv(t)
	env.seedTriangle(t)

	run, err := env.runner.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.GroupsFound)
	assert.Empty(t, run.BandsSkipped)
	require.NotEmpty(t, run.SnapshotID)
	require.NotNil(t, run.CompletedAt)

	groups, err := env.groups.ListBySnapshot(run.SnapshotID)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	latest, err := env.snapshots.GetLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.SnapshotID, latest.ID)
}

func TestRunOnceReplacesPriorVersions(t *testing.T) {
	env := newRunnerEnv(t)
	env.seedTriangle(t)

	first, err := env.runner.RunOnce(context.Background())
	require.NoError(t, err)
	second, err := env.runner.RunOnce(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.SnapshotID, second.SnapshotID)

	// Only the latest version's rows survive
	stale, err := env.groups.ListBySnapshot(first.SnapshotID)
	require.NoError(t, err)
	assert.Empty(t, stale)

	current, err := env.groups.ListBySnapshot(second.SnapshotID)
	require.NoError(t, err)
	assert.Len(t, current, 1)

	latest, err := env.snapshots.GetLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.SnapshotID, latest.ID)
}

func TestRunOnceEmptyDatabase(t *testing.T) {
	env := newRunnerEnv(t)

	run, err := env.runner.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Zero(t, run.GroupsFound)
}

func TestRunOnceMarksFailure(t *testing.T) {
	env := newRunnerEnv(t)
	env.seedTriangle(t)

	// Snapshot persistence cannot succeed without its table
	_, err := env.db.Exec("DROP TABLE snapshots")
	require.NoError(t, err)

	_, err = env.runner.RunOnce(context.Background())
	require.Error(t, err)

	runs, err := env.runs.List(10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStatusFailed, runs[0].Status)
	assert.NotEmpty(t, runs[0].ErrorMessage)
}

func TestRunRecordsAreListedNewestFirst(t *testing.T) {
	env := newRunnerEnv(t)

	first, err := env.runner.RunOnce(context.Background())
	require.NoError(t, err)
	second, err := env.runner.RunOnce(context.Background())
	require.NoError(t, err)

	runs, err := env.runs.List(10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}
