package analytics

import (
	"math"
	"time"

	"kindra-backend/domain/core/entities"
	"kindra-backend/domain/core/valueobjects"
)

const day = 24 * time.Hour

// ClassifyPhase maps the elapsed whole days between cycleStart and eventDate
// to a phase. Events before the start are attributed to the luteal phase.
func ClassifyPhase(eventDate, cycleStart time.Time) valueobjects.Phase {
	return valueobjects.PhaseForDay(DaysBetween(cycleStart, eventDate))
}

// DaysBetween returns floor((to - from) / 1 day)
func DaysBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(day)))
}

// Categorize derives the facets of a single moment by exact emoji and tag
// membership.
func Categorize(m *entities.Moment) valueobjects.Facets {
	if m == nil {
		return valueobjects.Facets{}
	}
	return valueobjects.Facets{
		Positive:      IsPositiveEmoji(m.Emoji) || m.HasTag(TagGreenFlag),
		Conflict:      IsConflictEmoji(m.Emoji) || m.HasTag(TagRedFlag) || m.HasTag(TagYellowFlag),
		Intimate:      m.IsIntimate || IsIntimateEmoji(m.Emoji) || m.HasTag(TagPhysicalTouch),
		Communication: communicationTags.intersects(m.Tags),
		Emotional:     emotionalTags.intersects(m.Tags),
	}
}

// utcDay truncates t to the start of its UTC calendar day
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
