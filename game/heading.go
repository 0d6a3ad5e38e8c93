package game

// Heading is one of the four directions of travel on the grid.
type Heading int

// Headings, clockwise from the top.
const (
	North Heading = iota
	East
	South
	West
)

// DefaultHeading is the direction a new snake travels in until told
// otherwise.
const DefaultHeading = East

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// Opposite reports whether a and b point 180 degrees apart. A turn request
// opposite to the current heading would drive the snake into its own neck, so
// the transition refuses it.
func Opposite(a, b Heading) bool {
	switch {
	case a == North && b == South:
		return true
	case a == South && b == North:
		return true
	case a == East && b == West:
		return true
	case a == West && b == East:
		return true
	}
	return false
}
