package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Recorder handles structured run output with CSV logging.
// A nil Recorder is valid and discards everything, so callers can run with
// telemetry disabled without guarding every write.
type Recorder struct {
	dir        string
	renderFile *os.File

	renderHeaderWritten bool
}

// NewRecorder creates a recorder writing under dir.
// Returns nil if dir is empty (output disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	r := &Recorder{dir: dir}

	renderPath := filepath.Join(dir, "renders.csv")
	f, err := os.Create(renderPath)
	if err != nil {
		return nil, fmt.Errorf("creating renders.csv: %w", err)
	}
	r.renderFile = f

	return r, nil
}

// WriteRender appends one render record to renders.csv. The header row is
// written with the first record only.
func (r *Recorder) WriteRender(stats RenderStats) error {
	if r == nil {
		return nil
	}

	records := []RenderStats{stats}

	if !r.renderHeaderWritten {
		if err := gocsv.Marshal(records, r.renderFile); err != nil {
			return fmt.Errorf("writing render stats: %w", err)
		}
		r.renderHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.renderFile); err != nil {
			return fmt.Errorf("writing render stats: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close flushes and closes the output files.
func (r *Recorder) Close() error {
	if r == nil || r.renderFile == nil {
		return nil
	}
	return r.renderFile.Close()
}
