package particles

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// snapshotRow is the CSV schema for particle snapshots.
type snapshotRow struct {
	X  float64 `csv:"x"`
	Y  float64 `csv:"y"`
	Z  float64 `csv:"z"`
	VX float64 `csv:"vx"`
	VY float64 `csv:"vy"`
	VZ float64 `csv:"vz"`
	M  float64 `csv:"m"`
	H  float64 `csv:"h"`
}

// ReadSnapshot loads a particle set from a CSV snapshot.
func ReadSnapshot(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	var rows []snapshotRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("snapshot %s holds no particles", path)
	}

	n := len(rows)
	s := &Set{
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n),
		VX: make([]float64, n), VY: make([]float64, n), VZ: make([]float64, n),
		M: make([]float64, n), H: make([]float64, n),
	}
	for i, r := range rows {
		s.X[i], s.Y[i], s.Z[i] = r.X, r.Y, r.Z
		s.VX[i], s.VY[i], s.VZ[i] = r.VX, r.VY, r.VZ
		s.M[i], s.H[i] = r.M, r.H
	}
	return s, nil
}

// WriteSnapshot saves a particle set as a CSV snapshot.
func WriteSnapshot(path string, s *Set) error {
	rows := make([]snapshotRow, s.N())
	for i := range rows {
		rows[i] = snapshotRow{
			X: s.X[i], Y: s.Y[i], Z: s.Z[i],
			VX: s.VX[i], VY: s.VY[i], VZ: s.VZ[i],
			M: s.M[i], H: s.H[i],
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return f.Close()
}
