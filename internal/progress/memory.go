package progress

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps progress in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	profile   Profile
	completed map[string]struct{}
	results   []RunResult
}

// NewMemoryStore creates an empty store for the given trainee.
func NewMemoryStore(id, name string) *MemoryStore {
	return &MemoryStore{
		profile:   Profile{ID: id, Name: name, Level: 1},
		completed: make(map[string]struct{}),
	}
}

// Record implements Sink.
func (s *MemoryStore) Record(_ context.Context, d Delta, r RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile.Experience += d.ExperienceAwarded
	s.profile.Level = LevelFor(s.profile.Experience)
	if _, ok := s.completed[d.MissionKey]; !ok {
		s.completed[d.MissionKey] = struct{}{}
		s.profile.CompletedMissions = append(s.profile.CompletedMissions, d.MissionKey)
	}
	r.ToolsUsed = slices.Clone(r.ToolsUsed)
	s.results = append(s.results, r)
	return nil
}

// Profile returns a copy of the current profile.
func (s *MemoryStore) Profile(context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	p.CompletedMissions = slices.Clone(s.profile.CompletedMissions)
	return p, nil
}

// Results returns every recorded run in insertion order.
func (s *MemoryStore) Results(context.Context) ([]RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
