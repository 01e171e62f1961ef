package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"streamplot.klederson.com/internal/stream"
)

// ErrMalformedLine is returned for lines not shaped KEY:number[,KEY:number]*.
var ErrMalformedLine = errors.New("malformed line")

// ParseLine decodes "KEY1:12,KEY2:-3.5" into samples. A line with any bad
// entry yields no samples at all.
func ParseLine(line string) ([]stream.Sample, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedLine)
	}

	entries := strings.Split(line, ",")
	out := make([]stream.Sample, 0, len(entries))
	for _, entry := range entries {
		key, raw, ok := strings.Cut(entry, ":")
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if !ok || key == "" || raw == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, entry)
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedLine, entry, err)
		}
		out = append(out, stream.Sample{Key: key, Value: val})
	}
	return out, nil
}
