// Package analysis runs the daily batch job: rebuild the affinity snapshot
// from the interaction log, then discover and classify groups per weight
// band. Batch runs are serialized; event ingestion and read queries may
// proceed concurrently.
package analysis

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
	"github.com/groupsense/affinity-backend-go/internal/service"
)

// Runner executes tracked analysis runs. At most one run is in flight at a
// time; a second trigger while one is running is rejected.
type Runner struct {
	runs      *repository.RunRepository
	snapshots *repository.SnapshotRepository
	groups    *repository.GroupRepository
	matrices  *service.MatrixService
	discovery *service.DiscoveryService

	mu sync.Mutex
}

// NewRunner creates a new batch runner
func NewRunner(
	runs *repository.RunRepository,
	snapshots *repository.SnapshotRepository,
	groups *repository.GroupRepository,
	matrices *service.MatrixService,
	discovery *service.DiscoveryService,
) *Runner {
	return &Runner{
		runs:      runs,
		snapshots: snapshots,
		groups:    groups,
		matrices:  matrices,
		discovery: discovery,
	}
}

// RunOnce executes one complete batch run synchronously: snapshot rebuild,
// group discovery, pruning of prior versions. Returns ErrRunInProgress when
// a run is already executing.
func (r *Runner) RunOnce(ctx context.Context) (*models.AnalysisRun, error) {
	if !r.mu.TryLock() {
		return nil, service.ErrRunInProgress
	}
	defer r.mu.Unlock()

	run, err := r.runs.Create()
	if err != nil {
		return nil, err
	}
	if err := r.runs.MarkAsRunning(run.ID); err != nil {
		return nil, err
	}

	snapshotID, err := r.execute(ctx, run)
	if err != nil {
		if markErr := r.runs.MarkAsFailed(run.ID, err.Error()); markErr != nil {
			log.Printf("Failed to mark run %d as failed: %v", run.ID, markErr)
		}
		return nil, err
	}

	log.Printf("Analysis run %d completed: snapshot %s", run.ID, snapshotID)
	return r.runs.GetByID(run.ID)
}

// TriggerAsync starts a run in the background, returning its pending row.
// The returned run can be polled by id.
func (r *Runner) TriggerAsync(ctx context.Context) (*models.AnalysisRun, error) {
	if !r.mu.TryLock() {
		return nil, service.ErrRunInProgress
	}

	run, err := r.runs.Create()
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if err := r.runs.MarkAsRunning(run.ID); err != nil {
		r.mu.Unlock()
		return nil, err
	}

	go func() {
		defer r.mu.Unlock()
		if _, err := r.execute(ctx, run); err != nil {
			log.Printf("Analysis run %d failed: %v", run.ID, err)
			if markErr := r.runs.MarkAsFailed(run.ID, err.Error()); markErr != nil {
				log.Printf("Failed to mark run %d as failed: %v", run.ID, markErr)
			}
		}
	}()

	return run, nil
}

func (r *Runner) execute(ctx context.Context, run *models.AnalysisRun) (string, error) {
	snapshot, err := r.matrices.BuildDailySnapshot()
	if err != nil {
		return "", err
	}

	result, err := r.discovery.DiscoverGroups(ctx, snapshot)
	if err != nil {
		return "", err
	}

	// Replace policy: once the new snapshot's groups are in place, rows
	// from older versions are dropped so queries never mix versions.
	if err := r.groups.PruneOthers(snapshot.ID); err != nil {
		return "", err
	}
	if err := r.snapshots.PruneOthers(snapshot.ID); err != nil {
		return "", err
	}

	skipped := strings.Join(result.BandsSkipped, ",")
	if err := r.runs.MarkAsCompleted(run.ID, snapshot.ID, result.GroupsFound, skipped); err != nil {
		return "", err
	}

	return snapshot.ID, nil
}
