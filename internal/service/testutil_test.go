package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/groupsense/affinity-backend-go/internal/database"
	"github.com/groupsense/affinity-backend-go/internal/geofence"
	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
	"github.com/groupsense/affinity-backend-go/internal/spatial"
)

type testEnv struct {
	users     *repository.UserRepository
	events    *repository.EventRepository
	visits    *repository.DensityRepository
	snapshots *repository.SnapshotRepository
	groups    *repository.GroupRepository
	resolver  *geofence.Resolver

	auth      *AuthService
	density   *DensityService
	ingest    *IngestService
	matrix    *MatrixService
	discovery *DiscoveryService
	query     *QueryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrationManager(db).RunMigrations())

	env := &testEnv{
		users:     repository.NewUserRepository(db),
		events:    repository.NewEventRepository(db),
		visits:    repository.NewDensityRepository(db),
		snapshots: repository.NewSnapshotRepository(db),
		groups:    repository.NewGroupRepository(db),
		resolver: geofence.NewResolver([]geofence.Region{
			{
				Name:  "campus",
				Label: "Main Campus",
				Polygon: []spatial.Point{
					{Lat: 0, Lon: 0},
					{Lat: 0, Lon: 10},
					{Lat: 10, Lon: 10},
					{Lat: 10, Lon: 0},
				},
			},
		}),
	}

	env.auth = NewAuthService(env.users, "test-secret")
	env.density = NewDensityService(env.visits, env.resolver)
	env.ingest = NewIngestService(env.users, env.events, env.density, env.resolver)
	env.matrix = NewMatrixService(env.users, env.events, env.snapshots)
	env.discovery = NewDiscoveryService(env.users, env.groups, 500, 10*time.Second)
	env.query = NewQueryService(env.users, env.matrix, env.snapshots, env.groups)

	return env
}

func (e *testEnv) createUser(t *testing.T, username, gender string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Gender:       gender,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) addInteraction(t *testing.T, userID int64, ts time.Time, neighbors map[string]int) {
	t.Helper()

	require.NoError(t, e.events.InsertInteraction(&models.InteractionRecord{
		UserID:    userID,
		Timestamp: ts,
		Neighbors: neighbors,
	}))
}

// seedTriangle registers alice/bob/carol and reports the pairwise weights
// alice-bob=40, bob-carol=45, alice-carol=42 from both sides of each pair
func (e *testEnv) seedTriangle(t *testing.T) (alice, bob, carol *models.User) {
	t.Helper()

	alice = e.createUser(t, "alice", models.GenderFemale)
	bob = e.createUser(t, "bob", models.GenderMale)
	carol = e.createUser(t, "carol", models.GenderFemale)

	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	e.addInteraction(t, alice.ID, ts, map[string]int{"bob": 40, "carol": 42})
	e.addInteraction(t, bob.ID, ts, map[string]int{"alice": 40, "carol": 45})
	e.addInteraction(t, carol.ID, ts, map[string]int{"alice": 42, "bob": 45})

	return alice, bob, carol
}
