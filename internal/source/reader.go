package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"streamplot.klederson.com/internal/stream"
)

// MaxLineLength bounds one input line. Longer lines are counted as
// malformed and skipped.
const MaxLineLength = 64 * 1024

// ErrLineTooLong marks a line longer than MaxLineLength.
var ErrLineTooLong = errors.New("line too long")

// LineReader decodes KEY:number lines from r on its own goroutine.
// Malformed lines are counted and dropped.
type LineReader struct {
	name   string
	r      io.Reader
	queue  *Queue
	log    *slog.Logger
	cancel context.CancelFunc
	done   chan struct{}

	lines     atomic.Int64
	malformed atomic.Int64
}

// NewLineReader creates a reader source. name appears in log lines.
func NewLineReader(name string, r io.Reader, queueSize int, log *slog.Logger) *LineReader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &LineReader{
		name:  name,
		r:     r,
		queue: NewQueue(queueSize),
		log:   log.With("source", name),
		done:  make(chan struct{}),
	}
}

// Start begins reading in a goroutine.
func (s *LineReader) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *LineReader) loop(ctx context.Context) {
	defer close(s.done)

	br := bufio.NewReaderSize(s.r, MaxLineLength)
	overlong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			// keep discarding until the newline that ends this line
			overlong = true
			continue
		}

		if len(chunk) > 0 || overlong {
			s.lines.Add(1)
			if overlong {
				s.malformed.Add(1)
				s.log.Debug("Line dropped", "error", ErrLineTooLong)
			} else if !s.handle(ctx, chunk) {
				return
			}
			overlong = false
		}

		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				s.log.Warn("Read failed", "error", err)
				return
			}
			s.log.Info("Input closed", "lines", s.lines.Load(), "malformed", s.malformed.Load())
			return
		}
	}
}

// handle parses one line and queues its samples. It reports false once ctx
// is done.
func (s *LineReader) handle(ctx context.Context, line []byte) bool {
	samples, err := ParseLine(strings.TrimRight(string(line), "\r\n"))
	if err != nil {
		s.malformed.Add(1)
		s.log.Debug("Line dropped", "error", err)
		return true
	}
	for _, smp := range samples {
		if !s.queue.Push(ctx, smp) {
			return false
		}
	}
	return true
}

// Next implements stream.SampleSource.
func (s *LineReader) Next() (stream.Sample, bool) {
	return s.queue.Next()
}

// Done is closed once the reader goroutine exits.
func (s *LineReader) Done() <-chan struct{} {
	return s.done
}

// Malformed returns how many lines were dropped.
func (s *LineReader) Malformed() int64 { return s.malformed.Load() }

// Stop halts reading. The underlying reader is closed when it is an io.Closer.
func (s *LineReader) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if c, ok := s.r.(io.Closer); ok {
		_ = c.Close()
	}
}
