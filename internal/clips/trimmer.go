package clips

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"
)

// TransformResult describes the new file a trim or merge produced. The caller
// turns it into a catalog record; the transform itself never touches the
// catalog.
type TransformResult struct {
	Filename string
	Filepath string
	Size     int64
	Duration float64
}

// Trimmer produces a new clip containing only the retained frames of a
// source clip. Raw clips are cut by byte arithmetic on whole-frame
// boundaries; container clips are handed to the external transcoder.
type Trimmer struct {
	geom       Geometry
	est        *Estimator
	transcoder Transcoder
}

// NewTrimmer returns a Trimmer for the given geometry. transcoder handles
// container clips and may be nil if only raw clips will ever be trimmed.
func NewTrimmer(geom Geometry, est *Estimator, transcoder Transcoder) *Trimmer {
	return &Trimmer{geom: geom, est: est, transcoder: transcoder}
}

// Trim cuts trimStart seconds from the front and trimEnd seconds from the
// back of clip, writing the retained content to a new uniquely named file
// next to the source. The source file is never modified.
func (t *Trimmer) Trim(ctx context.Context, clip Clip, trimStart, trimEnd float64) (*TransformResult, error) {
	if trimStart < 0 || trimEnd < 0 {
		return nil, InvalidArgumentf("trim amounts must not be negative")
	}
	if trimStart == 0 && trimEnd == 0 {
		return nil, InvalidArgumentf("must specify a positive trim amount")
	}

	total := clip.Duration
	if clip.Kind == RawClip {
		var err error
		total, err = t.est.EstimateDuration(clip.Filepath)
		if err != nil {
			return nil, err
		}
	}

	newDuration := total - trimStart - trimEnd
	if newDuration <= 0 {
		return nil, InvalidArgumentf("resulting clip would be empty")
	}

	if clip.Kind == ContainerClip {
		return t.trimDelegate(ctx, clip, trimStart, newDuration)
	}
	return t.trimRaw(clip, trimStart, total, trimEnd, newDuration)
}

// trimRaw copies the contiguous frame range [startFrame, endFrame) of the
// source into a new file. Cut points floor to whole frames, so retained
// content is biased to include at most one partial second extra.
func (t *Trimmer) trimRaw(clip Clip, trimStart, total, trimEnd, newDuration float64) (*TransformResult, error) {
	fps := float64(t.geom.FrameRate)
	startFrame := int64(math.Floor(trimStart * fps))
	endFrame := int64(math.Floor((total - trimEnd) * fps))

	data, err := os.ReadFile(clip.Filepath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, NotFoundf("clip file %s does not exist", clip.Filename)
	}
	if err != nil {
		return nil, IOFailuref(err, "read %s", clip.Filename)
	}

	// Clamp to the whole frames actually present; a fixture-reported
	// duration can exceed what the bytes hold.
	frameSize := t.geom.FrameSize()
	if maxFrames := t.geom.FrameCount(int64(len(data))); endFrame > maxFrames {
		endFrame = maxFrames
	}
	if startFrame > endFrame {
		startFrame = endFrame
	}

	out := make([]byte, (endFrame-startFrame)*frameSize)
	copy(out, data[startFrame*frameSize:endFrame*frameSize])

	name := TrimmedName(clip.Filepath, time.Now())
	outPath := filepath.Join(filepath.Dir(clip.Filepath), name)
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return nil, IOFailuref(err, "write %s", name)
	}

	return &TransformResult{
		Filename: name,
		Filepath: outPath,
		Size:     int64(len(out)),
		Duration: newDuration,
	}, nil
}

// trimDelegate hands a container clip to the external transcoder and awaits
// its single completion or failure signal, passing a failure message through
// unmodified.
func (t *Trimmer) trimDelegate(ctx context.Context, clip Clip, trimStart, newDuration float64) (*TransformResult, error) {
	if t.transcoder == nil {
		return nil, DelegateFailure("no transcoder configured for container clips")
	}

	name := TrimmedName(clip.Filepath, time.Now())
	outPath := filepath.Join(filepath.Dir(clip.Filepath), name)

	res := <-t.transcoder.Transcode(ctx, TranscodeJob{
		InputPath:   clip.Filepath,
		OutputPath:  outPath,
		StartOffset: trimStart,
		Duration:    newDuration,
	})
	if res.Err != nil {
		return nil, DelegateFailure(res.Err.Error())
	}

	return &TransformResult{
		Filename: name,
		Filepath: outPath,
		Size:     res.Size,
		Duration: res.Duration,
	}, nil
}
