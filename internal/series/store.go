package series

import (
	"math"
	"sync"
)

// Options configures a Store.
type Options struct {
	Discipline  Discipline
	HistorySize int         // ring capacity, ignored for Append
	Colors      ColorPicker // nil picks random colors
}

// Series is the history and display color of one labeled stream.
type Series struct {
	Key   string
	Color Color
	buf   Buffer
}

// Store is a thread-safe keyed collection of series.
type Store struct {
	mu     sync.RWMutex
	opts   Options
	series map[string]*Series
	order  []string
}

// NewStore creates an empty Store.
func NewStore(opts Options) *Store {
	if opts.Colors == nil {
		opts.Colors = NewRandomColors(nil)
	}
	if opts.Discipline == Ring && opts.HistorySize < 1 {
		opts.HistorySize = 1
	}
	return &Store{
		opts:   opts,
		series: make(map[string]*Series),
	}
}

// Ingest appends value to the series for key, creating the series on first
// sight. Non-finite values are rejected and leave the store untouched.
func (s *Store) Ingest(key string, value float64) error {
	return s.ingest(key, value, nil)
}

// IngestColored is Ingest with an explicit color, used only if key is new.
func (s *Store) IngestColored(key string, value float64, c Color) error {
	return s.ingest(key, value, &c)
}

func (s *Store) ingest(key string, value float64, c *Color) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &InvalidSampleError{Key: key, Value: value}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrCreate(key, c).buf.Push(value)
	return nil
}

// getOrCreate returns the series for key, inserting it if absent.
// Caller holds the write lock.
func (s *Store) getOrCreate(key string, c *Color) *Series {
	if existing, ok := s.series[key]; ok {
		return existing
	}

	var color Color
	if c != nil {
		color = *c
	} else {
		color = s.opts.Colors.Pick(key)
	}

	sr := &Series{Key: key, Color: color, buf: s.newBuffer()}
	s.series[key] = sr
	s.order = append(s.order, key)
	return sr
}

func (s *Store) newBuffer() Buffer {
	if s.opts.Discipline == Ring {
		return NewRingBuffer(s.opts.HistorySize)
	}
	return NewAppendBuffer()
}

// Keys returns all known keys in first-seen order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Windowed returns a copy of the most recent length samples for key.
// The result is shorter when fewer samples are retained and nil for
// unknown keys.
func (s *Store) Windowed(key string, length int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sr, ok := s.series[key]
	if !ok {
		return nil
	}
	return sr.buf.Tail(length)
}

// Len returns the logical length (samples ever accepted) of key.
func (s *Store) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sr, ok := s.series[key]; ok {
		return sr.buf.Total()
	}
	return 0
}

// MaxLength returns the logical length of the longest series.
func (s *Store) MaxLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	longest := 0
	for _, sr := range s.series {
		if n := sr.buf.Total(); n > longest {
			longest = n
		}
	}
	return longest
}

// Color returns the display color of key.
func (s *Store) Color(key string) (Color, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sr, ok := s.series[key]
	if !ok {
		return Color{}, false
	}
	return sr.Color, true
}

// Count returns the number of series.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series)
}

// Discipline returns the storage discipline in use.
func (s *Store) Discipline() Discipline {
	return s.opts.Discipline
}

// Record is the full retained history of one series.
type Record struct {
	Key    string
	Color  Color
	Values []float64
}

// Snapshot copies every series' retained history in first-seen order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(s.order))
	for _, key := range s.order {
		sr := s.series[key]
		result = append(result, Record{
			Key:    key,
			Color:  sr.Color,
			Values: sr.buf.Tail(sr.buf.Retained()),
		})
	}
	return result
}

// View captures keys, colors, logical lengths and the last keep samples of
// every series in one consistent read.
func (s *Store) View(keep int) *View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := &View{
		keys:    make([]string, len(s.order)),
		entries: make(map[string]viewEntry, len(s.order)),
	}
	copy(v.keys, s.order)
	for _, key := range s.order {
		sr := s.series[key]
		v.entries[key] = viewEntry{
			color: sr.Color,
			total: sr.buf.Total(),
			tail:  sr.buf.Tail(keep),
		}
	}
	return v
}
