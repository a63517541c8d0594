package memory

import (
	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

func copyMoment(m *entities.Moment) *entities.Moment {
	c := *m
	if m.Timestamp != nil {
		ts := *m.Timestamp
		c.Timestamp = &ts
	}
	if m.Tags != nil {
		c.Tags = append([]string(nil), m.Tags...)
	}
	return &c
}

func copyCycle(cycle *entities.CycleRecord) *entities.CycleRecord {
	c := *cycle
	if cycle.ConnectionID != nil {
		id := *cycle.ConnectionID
		c.ConnectionID = &id
	}
	if cycle.CycleEndDate != nil {
		end := *cycle.CycleEndDate
		c.CycleEndDate = &end
	}
	return &c
}

// momentLess orders timed moments chronologically, then untimed ones by creation
func momentLess(a, b *entities.Moment) bool {
	if a.HasTimestamp() != b.HasTimestamp() {
		return a.HasTimestamp()
	}
	ta, tb := a.CreatedAt, b.CreatedAt
	if a.HasTimestamp() {
		ta, tb = *a.Timestamp, *b.Timestamp
	}
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.ID.String() < b.ID.String()
}

// Snapshot is the JSON document the CLI loads into a store
type Snapshot struct {
	Connections []*entities.Connection  `json:"connections"`
	Moments     []*entities.Moment      `json:"moments"`
	Cycles      []*entities.CycleRecord `json:"cycles"`
}

// Load copies a snapshot into the store. Records are assigned to userID
// when they carry no owner.
func (s *Store) Load(snap Snapshot, userID valueobjects.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := func(id valueobjects.UserID) valueobjects.UserID {
		if id.IsZero() {
			return userID
		}
		return id
	}

	for _, c := range snap.Connections {
		if c == nil {
			continue
		}
		cc := *c
		cc.UserID = owner(c.UserID)
		bucket(s.connections, cc.UserID.String())[cc.ID.String()] = &cc
	}
	for _, m := range snap.Moments {
		if m == nil {
			continue
		}
		mc := copyMoment(m)
		mc.UserID = owner(m.UserID)
		bucket(s.moments, mc.UserID.String())[mc.ID.String()] = mc
	}
	for _, c := range snap.Cycles {
		if c == nil {
			continue
		}
		cc := copyCycle(c)
		cc.UserID = owner(c.UserID)
		bucket(s.cycles, cc.UserID.String())[cc.ID.String()] = cc
	}
}
