package clips

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Merger concatenates raw clips byte-for-byte, in the given order, into one
// new clip. It assumes every input shares the fixed raw geometry; it is not a
// codec-aware concatenation and does no re-muxing or re-encoding.
type Merger struct {
	geom Geometry
	est  *Estimator
}

// NewMerger returns a Merger for the given geometry.
func NewMerger(geom Geometry, est *Estimator) *Merger {
	return &Merger{geom: geom, est: est}
}

// Merge writes the exact concatenation of the inputs' bytes to a new uniquely
// named file in dir. Two passes: the first sums sizes and estimated durations
// to pre-size the output buffer, the second copies each input into successive
// offsets. The output duration is the sum of the per-input estimates, not
// re-derived from the merged byte count.
func (m *Merger) Merge(inputs []Clip, dir string) (*TransformResult, error) {
	if len(inputs) < 2 {
		return nil, InvalidArgumentf("at least two clips required")
	}

	var totalSize int64
	var totalDuration float64
	for _, c := range inputs {
		info, err := os.Stat(c.Filepath)
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFoundf("clip %s is missing from storage", c.ID)
		}
		if err != nil {
			return nil, IOFailuref(err, "stat %s", c.Filename)
		}
		d, err := m.est.EstimateDuration(c.Filepath)
		if err != nil {
			return nil, err
		}
		totalSize += info.Size()
		totalDuration += d
	}

	buf := make([]byte, totalSize)
	var off int64
	for _, c := range inputs {
		data, err := os.ReadFile(c.Filepath)
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFoundf("clip %s is missing from storage", c.ID)
		}
		if err != nil {
			return nil, IOFailuref(err, "read %s", c.Filename)
		}
		off += int64(copy(buf[off:], data))
	}

	name := MergedName(time.Now())
	outPath := filepath.Join(dir, name)
	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return nil, IOFailuref(err, "write %s", name)
	}

	return &TransformResult{
		Filename: name,
		Filepath: outPath,
		Size:     totalSize,
		Duration: totalDuration,
	}, nil
}
