package runstore

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]RunRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	run.States = slices.Clone(run.States)
	run.Transitions = slices.Clone(run.Transitions)
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, machineID string) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []RunRecord
	for _, r := range s.runs {
		if machineID == "" || r.MachineID == machineID {
			out = append(out, r)
		}
	}
	sortRuns(out)
	return out, nil
}

func sortRuns(runs []RunRecord) {
	slices.SortFunc(runs, func(a, b RunRecord) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}
