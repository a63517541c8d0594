package analytics

import (
	"time"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

// base is a Monday
var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var testUser = valueobjects.MustUserID("user-1")

func at(days int, hour int) *time.Time {
	t := base.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	return &t
}

func newConn(name, stage string) *entities.Connection {
	return &entities.Connection{
		ID:                valueobjects.NewConnectionID(),
		UserID:            testUser,
		Name:              name,
		RelationshipStage: stage,
	}
}

func moment(conn *entities.Connection, ts *time.Time, emoji string, tags ...string) *entities.Moment {
	return &entities.Moment{
		ID:           valueobjects.NewMomentID(),
		UserID:       testUser,
		ConnectionID: conn.ID,
		Timestamp:    ts,
		Emoji:        emoji,
		Tags:         tags,
	}
}

func openCycle(startDay int) *entities.CycleRecord {
	return &entities.CycleRecord{
		ID:              valueobjects.NewCycleID(),
		UserID:          testUser,
		PeriodStartDate: base.AddDate(0, 0, startDay),
	}
}

func closedCycle(startDay, endDay int) *entities.CycleRecord {
	c := openCycle(startDay)
	end := base.AddDate(0, 0, endDay)
	c.CycleEndDate = &end
	return c
}

func titles(in []entities.Insight) []string {
	out := make([]string, len(in))
	for i, ins := range in {
		out[i] = ins.Title
	}
	return out
}
