package mission

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissionNotFound is returned when a key is not in the catalog.
var ErrMissionNotFound = errors.New("no such mission")

// Catalog is a read-only set of missions and their scripted timelines.
type Catalog struct {
	order     []string
	missions  map[string]Mission
	timelines map[string][]TimelineEvent
}

// NewCatalog validates missions and timelines and sorts every timeline
// by timestamp. Events sharing a timestamp keep their authored order.
func NewCatalog(missions []Mission, timelines map[string][]TimelineEvent) (*Catalog, error) {
	c := &Catalog{
		missions:  make(map[string]Mission, len(missions)),
		timelines: make(map[string][]TimelineEvent, len(timelines)),
	}
	for _, m := range missions {
		if m.Key == "" {
			return nil, errors.New("mission without key")
		}
		if _, dup := c.missions[m.Key]; dup {
			return nil, fmt.Errorf("duplicate mission %q", m.Key)
		}
		if m.SuccessCriteria.DetectionTimeSeconds <= 0 {
			return nil, fmt.Errorf("mission %q: detection goal must be positive", m.Key)
		}
		if m.SuccessCriteria.MaxDataLossFraction < 0 || m.SuccessCriteria.MaxDataLossFraction > 1 {
			return nil, fmt.Errorf("mission %q: max data loss fraction out of range", m.Key)
		}
		c.missions[m.Key] = m
		c.order = append(c.order, m.Key)
	}
	for key, events := range timelines {
		sorted := make([]TimelineEvent, len(events))
		copy(sorted, events)
		for _, ev := range sorted {
			if ev.Timestamp < 0 {
				return nil, fmt.Errorf("timeline %q: negative timestamp %d", key, ev.Timestamp)
			}
			if !ev.Kind.Scripted() {
				return nil, fmt.Errorf("timeline %q: kind %q cannot be scripted", key, ev.Kind)
			}
		}
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })
		c.timelines[key] = sorted
	}
	return c, nil
}

// Mission returns the mission for key.
func (c *Catalog) Mission(key string) (Mission, error) {
	m, ok := c.missions[key]
	if !ok {
		return Mission{}, fmt.Errorf("%w: %q", ErrMissionNotFound, key)
	}
	return m, nil
}

// Timeline returns a copy of the sorted timeline for key.
// A key without a timeline yields an empty timeline.
func (c *Catalog) Timeline(key string) []TimelineEvent {
	events := c.timelines[key]
	out := make([]TimelineEvent, len(events))
	copy(out, events)
	return out
}

// Missions lists the catalog in authored order.
func (c *Catalog) Missions() []Mission {
	out := make([]Mission, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.missions[k])
	}
	return out
}
