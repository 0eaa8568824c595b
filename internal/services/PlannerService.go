package services

import (
	"sync"

	"cpd/internal/models"
)

type PlannerServiceInterface interface {
	// Dispatch applies an action and returns the resulting snapshot. It is
	// the sole write path into the collections.
	Dispatch(action models.Action) models.Snapshot
	GetSnapshot() models.Snapshot
	// Updates signals after every mutating dispatch. The channel is buffered
	// with capacity one, so bursts coalesce into a single pending signal.
	Updates() <-chan struct{}
	Counts() (personas, blogs, exports int)
}

// PlannerService owns the current snapshot. Dispatches are serialized by a
// mutex; readers get value copies of the snapshot and can never observe a
// partially applied action.
type PlannerService struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
	reducer  *models.Reducer
	updates  chan struct{}
}

func NewPlannerService() PlannerServiceInterface {
	return &PlannerService{
		snapshot: models.NewSnapshot(),
		reducer:  models.NewReducer(),
		updates:  make(chan struct{}, 1),
	}
}

func (ps *PlannerService) Dispatch(action models.Action) models.Snapshot {
	ps.mu.Lock()
	ps.snapshot = ps.reducer.Apply(ps.snapshot, action)
	snap := ps.snapshot
	ps.mu.Unlock()

	// Hydration replays persisted state; writing it straight back out
	// would be a pointless save, so only real mutations notify.
	if _, hydrate := action.(models.LoadData); !hydrate {
		select {
		case ps.updates <- struct{}{}:
		default:
		}
	}

	return snap
}

func (ps *PlannerService) GetSnapshot() models.Snapshot {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.snapshot
}

func (ps *PlannerService) Updates() <-chan struct{} {
	return ps.updates
}

func (ps *PlannerService) Counts() (int, int, int) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.snapshot.Personas), len(ps.snapshot.Blogs), len(ps.snapshot.GptExports)
}
