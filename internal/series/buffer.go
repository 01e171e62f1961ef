package series

// Buffer holds the samples of a single series.
type Buffer interface {
	// Push appends a value.
	Push(val float64)
	// Tail copies the most recent n values, oldest first.
	Tail(n int) []float64
	// Retained returns how many values the buffer still holds.
	Retained() int
	// Total returns how many values were ever pushed.
	Total() int
}

// Discipline selects how series buffers store their history.
type Discipline int

const (
	// Append keeps every sample.
	Append Discipline = iota
	// Ring keeps the last HistorySize samples in a duplicated-span ring.
	Ring
)

func (d Discipline) String() string {
	switch d {
	case Ring:
		return "ring"
	default:
		return "append"
	}
}

// ParseDiscipline maps a config name to a Discipline.
func ParseDiscipline(s string) (Discipline, bool) {
	switch s {
	case "", "append":
		return Append, true
	case "ring":
		return Ring, true
	}
	return Append, false
}

// AppendBuffer grows without limit.
type AppendBuffer struct {
	buf []float64
}

// NewAppendBuffer creates an empty unbounded buffer.
func NewAppendBuffer() *AppendBuffer {
	return &AppendBuffer{}
}

func (b *AppendBuffer) Push(val float64) {
	b.buf = append(b.buf, val)
}

func (b *AppendBuffer) Tail(n int) []float64 {
	if n > len(b.buf) {
		n = len(b.buf)
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	copy(out, b.buf[len(b.buf)-n:])
	return out
}

func (b *AppendBuffer) Retained() int { return len(b.buf) }

func (b *AppendBuffer) Total() int { return len(b.buf) }

// RingBuffer is a fixed-capacity circular buffer stored twice over.
// Slot i and slot i+size always hold the same value, so the last size
// values are the contiguous slice buf[pos : pos+size].
type RingBuffer struct {
	buf   []float64
	size  int
	pos   int // next write slot in [0, size)
	total int
}

// NewRingBuffer creates a ring holding up to size values.
func NewRingBuffer(size int) *RingBuffer {
	if size < 1 {
		size = 1
	}
	return &RingBuffer{
		buf:  make([]float64, 2*size),
		size: size,
	}
}

// Push writes val into both copies of the current slot and advances.
func (r *RingBuffer) Push(val float64) {
	r.buf[r.pos] = val
	r.buf[r.pos+r.size] = val
	r.pos = (r.pos + 1) % r.size
	r.total++
}

// Tail copies the last n values without wraparound arithmetic.
func (r *RingBuffer) Tail(n int) []float64 {
	if held := r.Retained(); n > held {
		n = held
	}
	if n <= 0 {
		return nil
	}
	end := r.pos + r.size
	out := make([]float64, n)
	copy(out, r.buf[end-n:end])
	return out
}

func (r *RingBuffer) Retained() int {
	if r.total < r.size {
		return r.total
	}
	return r.size
}

func (r *RingBuffer) Total() int { return r.total }

// Size returns the ring capacity.
func (r *RingBuffer) Size() int { return r.size }

// mirrored reports whether every slot pair is equal. Used by tests.
func (r *RingBuffer) mirrored() bool {
	for i := 0; i < r.size; i++ {
		if r.buf[i] != r.buf[i+r.size] {
			return false
		}
	}
	return true
}
