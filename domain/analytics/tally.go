package analytics

import (
	"sort"

	"kindra-backend/domain/core/entities"
)

// facetTally counts facets over a set of moments regardless of timestamps
type facetTally struct {
	n             int
	positive      int
	conflict      int
	intimate      int
	communication int
	emotional     int
}

func tallyFacets(moments []*entities.Moment) facetTally {
	var t facetTally
	for _, m := range moments {
		if m == nil {
			continue
		}
		f := Categorize(m)
		t.n++
		if f.Positive {
			t.positive++
		}
		if f.Conflict {
			t.conflict++
		}
		if f.Intimate {
			t.intimate++
		}
		if f.Communication {
			t.communication++
		}
		if f.Emotional {
			t.emotional++
		}
	}
	return t
}

func (t facetTally) ratio(count int) float64 {
	if t.n == 0 {
		return 0
	}
	return float64(count) / float64(t.n)
}

// timestamped returns the moments carrying a timestamp in chronological
// order. Equal timestamps keep input order.
func timestamped(moments []*entities.Moment) []*entities.Moment {
	out := make([]*entities.Moment, 0, len(moments))
	for _, m := range moments {
		if m.HasTimestamp() {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(*out[j].Timestamp)
	})
	return out
}

func positiveRatio(moments []*entities.Moment) float64 {
	if len(moments) == 0 {
		return 0
	}
	pos := 0
	for _, m := range moments {
		if Categorize(m).Positive {
			pos++
		}
	}
	return float64(pos) / float64(len(moments))
}

func momentsFor(moments []*entities.Moment, conn *entities.Connection) []*entities.Moment {
	out := make([]*entities.Moment, 0, len(moments))
	for _, m := range moments {
		if m == nil {
			continue
		}
		if conn == nil || m.ConnectionID.Equals(conn.ID) {
			out = append(out, m)
		}
	}
	return out
}

func capInsights(in []entities.Insight, n int) []entities.Insight {
	if len(in) > n {
		return in[:n]
	}
	return in
}
