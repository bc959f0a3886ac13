package config

// BoundedInt is an integer preference restricted to [Min, Max].
type BoundedInt struct {
	Min     int
	Max     int
	Default int
}

// Clamp forces v into the allowed range.
func (b BoundedInt) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Valid reports whether v is inside the range without clamping.
func (b BoundedInt) Valid(v int) bool {
	return v >= b.Min && v <= b.Max
}
