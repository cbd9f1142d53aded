package clips

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultMaxClipSeconds is the upload duration ceiling: 5 minutes. Together
// with the fixed geometry it bounds how much memory a whole-file trim or
// merge can need.
const DefaultMaxClipSeconds = 300.0

// Service coordinates the transform engine with catalog persistence. Every
// successful upload, trim, and merge inserts exactly one new clip record;
// stored files are never modified, overwritten, or deleted (except a
// just-stored file of a rejected upload).
type Service struct {
	catalog     Catalog
	est         *Estimator
	trimmer     *Trimmer
	merger      *Merger
	storageDir  string
	maxDuration float64
	log         *slog.Logger
}

// NewService wires the estimator, trimmer, and merger for the given geometry.
// maxDuration caps upload playtime in seconds; <= 0 selects the 5-minute
// default. transcoder may be nil when container clips are not expected.
func NewService(catalog Catalog, geom Geometry, transcoder Transcoder, storageDir string, maxDuration float64, log *slog.Logger) *Service {
	if maxDuration <= 0 {
		maxDuration = DefaultMaxClipSeconds
	}
	est := NewEstimator(geom)
	return &Service{
		catalog:     catalog,
		est:         est,
		trimmer:     NewTrimmer(geom, est, transcoder),
		merger:      NewMerger(geom, est),
		storageDir:  storageDir,
		maxDuration: maxDuration,
		log:         log,
	}
}

// StorageDir returns the directory freshly stored uploads belong in.
func (s *Service) StorageDir() string { return s.storageDir }

// Upload catalogs a freshly stored file. If its estimated duration exceeds
// the ceiling the file is deleted and the upload rejected with no record
// created; a failed delete is logged as an anomaly, never swallowed silently.
func (s *Service) Upload(path string) (Clip, error) {
	duration, err := s.est.EstimateDuration(path)
	if err != nil {
		return Clip{}, err
	}

	if duration > s.maxDuration {
		if rmErr := os.Remove(path); rmErr != nil {
			s.log.Warn("could not remove rejected upload",
				slog.String("path", path),
				slog.String("error", rmErr.Error()))
		}
		return Clip{}, InvalidArgumentf("video duration %.1fs exceeds the %.0fs limit", duration, s.maxDuration)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Clip{}, IOFailuref(err, "stat %s", filepath.Base(path))
	}

	clip := Clip{
		Filename: filepath.Base(path),
		Filepath: path,
		Size:     info.Size(),
		Duration: duration,
	}
	if err := s.catalog.InsertClip(&clip); err != nil {
		return Clip{}, err
	}
	return clip, nil
}

// Get returns the clip record for id.
func (s *Service) Get(id string) (Clip, error) {
	return s.catalog.GetClip(id)
}

// List returns all clip records.
func (s *Service) List() ([]Clip, error) {
	return s.catalog.ListClips()
}

// Trim cuts the referenced clip and catalogs the result as a new clip.
func (s *Service) Trim(ctx context.Context, id string, trimStart, trimEnd float64) (Clip, error) {
	src, err := s.catalog.GetClip(id)
	if err != nil {
		return Clip{}, err
	}

	res, err := s.trimmer.Trim(ctx, src, trimStart, trimEnd)
	if err != nil {
		return Clip{}, err
	}

	return s.insertResult(res)
}

// Merge concatenates the referenced clips, in the given order, and catalogs
// the result as a new clip. Every id must resolve; an unresolvable id fails
// the whole operation before any bytes move.
func (s *Service) Merge(ids []string) (Clip, error) {
	if len(ids) < 2 {
		return Clip{}, InvalidArgumentf("at least two clips required")
	}

	inputs := make([]Clip, 0, len(ids))
	for _, id := range ids {
		c, err := s.catalog.GetClip(id)
		if err != nil {
			return Clip{}, err
		}
		inputs = append(inputs, c)
	}

	res, err := s.merger.Merge(inputs, s.storageDir)
	if err != nil {
		return Clip{}, err
	}

	return s.insertResult(res)
}

func (s *Service) insertResult(res *TransformResult) (Clip, error) {
	clip := Clip{
		Filename: res.Filename,
		Filepath: res.Filepath,
		Size:     res.Size,
		Duration: res.Duration,
	}
	if err := s.catalog.InsertClip(&clip); err != nil {
		return Clip{}, err
	}
	return clip, nil
}
