package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"streamplot.klederson.com/internal/series"
)

// DirLayout names the per-run export directory.
const DirLayout = "2006-01-02_15-04-05"

// Result describes a finished export.
type Result struct {
	Dir   string
	Files []string
}

// Write dumps every record to <root>/<timestamp>/<key>.csv, one value per
// line. It returns the first error; files already written stay on disk.
func Write(root string, at time.Time, records []series.Record) (Result, error) {
	dir := filepath.Join(root, at.Format(DirLayout))
	res := Result{Dir: dir}

	if len(records) == 0 {
		return res, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create export directory: %w", err)
	}

	for _, rec := range records {
		path := filepath.Join(dir, FileName(rec.Key))
		if err := writeRecord(path, rec.Values); err != nil {
			return res, fmt.Errorf("failed to export %q: %w", rec.Key, err)
		}
		res.Files = append(res.Files, path)
	}
	return res, nil
}

func writeRecord(path string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, v := range values {
		if err := w.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FileName maps a series key to a safe file name.
func FileName(key string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, key)
	if name == "" || name == "." || name == ".." {
		name = "_" + name
	}
	return name + ".csv"
}
