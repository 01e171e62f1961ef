package series

// View is an immutable capture of a Store. It answers the same read
// queries as the Store, limited to the samples it kept.
type View struct {
	keys    []string
	entries map[string]viewEntry
}

type viewEntry struct {
	color Color
	total int
	tail  []float64
}

// Keys returns the captured keys in first-seen order.
func (v *View) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Windowed returns the last length captured samples for key.
func (v *View) Windowed(key string, length int) []float64 {
	if v == nil {
		return nil
	}
	e, ok := v.entries[key]
	if !ok {
		return nil
	}
	if length > len(e.tail) {
		length = len(e.tail)
	}
	if length <= 0 {
		return nil
	}
	out := make([]float64, length)
	copy(out, e.tail[len(e.tail)-length:])
	return out
}

// MaxLength returns the longest captured logical length.
func (v *View) MaxLength() int {
	if v == nil {
		return 0
	}
	longest := 0
	for _, e := range v.entries {
		if e.total > longest {
			longest = e.total
		}
	}
	return longest
}

// Len returns the captured logical length of key.
func (v *View) Len(key string) int {
	if v == nil {
		return 0
	}
	return v.entries[key].total
}

// Color returns the captured color of key.
func (v *View) Color(key string) Color {
	if v == nil {
		return Color{}
	}
	return v.entries[key].color
}
