package chart

// LabelPlacement says where an institution's bar label is drawn
type LabelPlacement int

const (
	// LabelInside places the label inside the bar at its base, in white
	LabelInside LabelPlacement = iota
	// LabelOutside places the label just past the end of the bar,
	// colored to match the bar fill
	LabelOutside
)

// Placements returns the label placement for each of n ranked bars. The
// split is positional: the first inside ranks are labeled inside regardless
// of bar length, and the remainder outside. When n is smaller than the
// split point the outside set is simply empty.
func Placements(n, inside int) []LabelPlacement {
	placements := make([]LabelPlacement, n)
	for i := range placements {
		if i >= inside {
			placements[i] = LabelOutside
		}
	}
	return placements
}
