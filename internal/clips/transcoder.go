package clips

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// TranscodeJob describes one cut for the external transcoder.
type TranscodeJob struct {
	InputPath  string
	OutputPath string
	// StartOffset in seconds; 0 starts from the beginning.
	StartOffset float64
	// Duration in seconds; 0 runs to the end of the input.
	Duration float64
}

// TranscodeResult is the single completion or failure signal of a job.
// On success Size and Duration describe the written output.
type TranscodeResult struct {
	Size     int64
	Duration float64
	Err      error
}

// Transcoder is the external general-purpose media tool used for clips not in
// the raw encoding. Implementations signal completion or failure exactly once
// on the returned channel; callers await it at a single receive.
type Transcoder interface {
	Transcode(ctx context.Context, job TranscodeJob) <-chan TranscodeResult
}

// FFmpegTranscoder shells out to ffmpeg.
type FFmpegTranscoder struct {
	Binary string
}

// NewFFmpegTranscoder returns a transcoder using the ffmpeg binary on PATH.
func NewFFmpegTranscoder() *FFmpegTranscoder {
	return &FFmpegTranscoder{Binary: "ffmpeg"}
}

// Available reports whether the ffmpeg binary can be found.
func (f *FFmpegTranscoder) Available() bool {
	_, err := exec.LookPath(f.Binary)
	return err == nil
}

// Transcode runs the job in the background and delivers exactly one result.
func (f *FFmpegTranscoder) Transcode(ctx context.Context, job TranscodeJob) <-chan TranscodeResult {
	ch := make(chan TranscodeResult, 1)
	go func() {
		out, err := exec.CommandContext(ctx, f.Binary, ffmpegArgs(job)...).CombinedOutput()
		if err != nil {
			ch <- TranscodeResult{Err: fmt.Errorf("%v: %s", err, bytes.TrimSpace(out))}
			return
		}
		info, err := os.Stat(job.OutputPath)
		if err != nil {
			ch <- TranscodeResult{Err: fmt.Errorf("transcoder produced no output: %v", err)}
			return
		}
		ch <- TranscodeResult{Size: info.Size(), Duration: job.Duration}
	}()
	return ch
}

// ffmpegArgs builds the argv for a cut. -ss before -i seeks the input;
// -c copy avoids recompression since this service never alters quality.
func ffmpegArgs(job TranscodeJob) []string {
	args := make([]string, 0, 12)
	if job.StartOffset > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.3f", job.StartOffset))
	}
	args = append(args, "-i", job.InputPath)
	if job.Duration > 0 {
		args = append(args, "-t", fmt.Sprintf("%.3f", job.Duration))
	}
	args = append(args, "-c", "copy", "-y", job.OutputPath)
	return args
}
