package valueobjects

// Facets are the boolean classifications of a single moment. They overlap:
// a moment may be positive and intimate at once.
type Facets struct {
	Positive      bool `json:"positive"`
	Conflict      bool `json:"conflict"`
	Intimate      bool `json:"intimate"`
	Communication bool `json:"communication"`
	Emotional     bool `json:"emotional"`
}

// Any reports whether at least one facet is set
func (f Facets) Any() bool {
	return f.Positive || f.Conflict || f.Intimate || f.Communication || f.Emotional
}
