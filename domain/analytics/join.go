package analytics

import (
	"kindra-backend/domain/core/entities"
)

// Association pairs a timestamped moment with the cycle containing it
type Association struct {
	Moment *entities.Moment
	Cycle  *entities.CycleRecord
}

// JoinResult is the outcome of associating moments with cycles
type JoinResult struct {
	Associations []Association
	// Unmatched holds timestamped moments that fall outside every cycle.
	Unmatched []*entities.Moment
	// Untimed counts moments without a timestamp.
	Untimed int
	// Malformed counts nil moment entries.
	Malformed int
	// InvalidCycles holds records with a missing start or an inverted window.
	InvalidCycles []*entities.CycleRecord
}

// AssociateCycles pairs every timestamped moment with the first cycle, in
// iteration order, whose membership window contains the moment's UTC
// calendar day. Window bounds are inclusive. Inputs are not modified.
func AssociateCycles(moments []*entities.Moment, cycles []*entities.CycleRecord) JoinResult {
	var res JoinResult

	type window struct {
		cycle    *entities.CycleRecord
		from, to int64
	}
	windows := make([]window, 0, len(cycles))
	for _, c := range cycles {
		if !c.Valid() {
			res.InvalidCycles = append(res.InvalidCycles, c)
			continue
		}
		start, end := c.Window()
		windows = append(windows, window{
			cycle: c,
			from:  utcDay(start).Unix(),
			to:    utcDay(end).Unix(),
		})
	}

	for _, m := range moments {
		if m == nil {
			res.Malformed++
			continue
		}
		if !m.HasTimestamp() {
			res.Untimed++
			continue
		}
		d := utcDay(*m.Timestamp).Unix()

		var match *entities.CycleRecord
		for _, w := range windows {
			if d >= w.from && d <= w.to {
				match = w.cycle
				break
			}
		}
		if match == nil {
			res.Unmatched = append(res.Unmatched, m)
			continue
		}
		res.Associations = append(res.Associations, Association{Moment: m, Cycle: match})
	}

	return res
}
