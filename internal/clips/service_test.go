package clips

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T, cat Catalog, tc Transcoder) *Service {
	t.Helper()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(cat, testGeometry(), tc, t.TempDir(), 300, log)
}

func TestService_Upload(t *testing.T) {
	cat := NewInMemoryCatalog()
	svc := newTestService(t, cat, nil)
	path := writeRawFrames(t, svc.StorageDir(), "clip.raw", 90, 0)

	clip, err := svc.Upload(path)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if clip.ID == "" {
		t.Error("upload should return a cataloged identity")
	}
	if clip.Duration != 3.0 {
		t.Errorf("duration = %v, want 3.0", clip.Duration)
	}
	if clip.Size != 90*testGeometry().FrameSize() {
		t.Errorf("size = %d", clip.Size)
	}

	got, err := cat.GetClip(clip.ID)
	if err != nil || got.Filepath != path {
		t.Errorf("catalog row = %+v, %v", got, err)
	}
}

func TestService_Upload_over_duration_ceiling(t *testing.T) {
	cat := NewInMemoryCatalog()
	svc := newTestService(t, cat, nil)
	// The long fixture reports 400s, over the 300s ceiling, without
	// needing 400 seconds of actual frames.
	path := writeRawFrames(t, svc.StorageDir(), "sample-long.raw", 1, 0)

	_, err := svc.Upload(path)
	if KindOf(err) != KindInvalidArgument {
		t.Fatalf("oversized upload should be InvalidArgument, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("rejected upload's file should be deleted")
	}
	if n, _ := cat.ClipCount(); n != 0 {
		t.Error("rejected upload must not create a catalog row")
	}
}

func TestService_Upload_missing_file(t *testing.T) {
	svc := newTestService(t, NewInMemoryCatalog(), nil)
	_, err := svc.Upload(filepath.Join(svc.StorageDir(), "nope.raw"))
	if KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestService_Trim_creates_new_row(t *testing.T) {
	cat := NewInMemoryCatalog()
	svc := newTestService(t, cat, nil)
	path := writeRawFrames(t, svc.StorageDir(), "clip.raw", 150, 0)
	src, err := svc.Upload(path)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	out, err := svc.Trim(context.Background(), src.ID, 1, 1)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if out.ID == src.ID {
		t.Error("trim must create a new clip, not reuse the source identity")
	}
	if out.Duration != 3.0 {
		t.Errorf("trimmed duration = %v, want 3.0", out.Duration)
	}

	// Source row and file both intact.
	if _, err := cat.GetClip(src.ID); err != nil {
		t.Errorf("source row gone: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("source file gone: %v", err)
	}
	if n, _ := cat.ClipCount(); n != 2 {
		t.Errorf("ClipCount = %d, want 2", n)
	}
}

func TestService_Trim_unknown_id(t *testing.T) {
	svc := newTestService(t, NewInMemoryCatalog(), nil)
	_, err := svc.Trim(context.Background(), "ghost", 1, 0)
	if KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestService_Merge(t *testing.T) {
	cat := NewInMemoryCatalog()
	svc := newTestService(t, cat, nil)
	a, err := svc.Upload(writeRawFrames(t, svc.StorageDir(), "a.raw", 30, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Upload(writeRawFrames(t, svc.StorageDir(), "b.raw", 60, 0))
	if err != nil {
		t.Fatal(err)
	}

	out, err := svc.Merge([]string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.Duration != a.Duration+b.Duration {
		t.Errorf("merged duration = %v, want %v", out.Duration, a.Duration+b.Duration)
	}
	if out.Size != a.Size+b.Size {
		t.Errorf("merged size = %d, want %d", out.Size, a.Size+b.Size)
	}
	if n, _ := cat.ClipCount(); n != 3 {
		t.Errorf("ClipCount = %d, want 3", n)
	}
}

func TestService_Merge_too_few_inputs(t *testing.T) {
	cat := NewInMemoryCatalog()
	svc := newTestService(t, cat, nil)
	a, _ := svc.Upload(writeRawFrames(t, svc.StorageDir(), "a.raw", 30, 0))

	_, err := svc.Merge([]string{a.ID})
	if KindOf(err) != KindInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
	if n, _ := cat.ClipCount(); n != 1 {
		t.Error("failed merge must not create a row")
	}
}

func TestService_Merge_unresolvable_id(t *testing.T) {
	cat := NewInMemoryCatalog()
	svc := newTestService(t, cat, nil)
	a, _ := svc.Upload(writeRawFrames(t, svc.StorageDir(), "a.raw", 30, 0))

	_, err := svc.Merge([]string{a.ID, "ghost"})
	if KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if n, _ := cat.ClipCount(); n != 1 {
		t.Error("failed merge must not create a row")
	}
}
