package clips

import (
	"strings"
	"testing"
	"time"
)

func TestTrimmedName(t *testing.T) {
	now := time.Now()
	name := TrimmedName("/videos/holiday.raw", now)
	if !strings.HasPrefix(name, "holiday-trimmed-") {
		t.Errorf("name = %q, want holiday-trimmed-... prefix", name)
	}
	if !strings.HasSuffix(name, ".raw") {
		t.Errorf("name = %q, want source extension preserved", name)
	}

	name = TrimmedName("movie.mp4", now)
	if !strings.HasPrefix(name, "movie-trimmed-") || !strings.HasSuffix(name, ".mp4") {
		t.Errorf("name = %q", name)
	}
}

func TestMergedName(t *testing.T) {
	name := MergedName(time.Now())
	if !strings.HasPrefix(name, "merged-") || !strings.HasSuffix(name, RawExtension) {
		t.Errorf("name = %q, want merged-<suffix>.raw", name)
	}
}

func TestUniqueNames_do_not_collide(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := TrimmedName("clip.raw", now)
		if seen[n] {
			t.Fatalf("duplicate name %q within one instant", n)
		}
		seen[n] = true
	}
}

func TestNewShareTokenString_unique(t *testing.T) {
	now := time.Now()
	a := NewShareTokenString(now)
	b := NewShareTokenString(now)
	if a == b {
		t.Error("tokens issued in the same instant must differ")
	}
	if len(a) < 32 {
		t.Errorf("token %q looks guessable", a)
	}
}

func TestStoredName_keeps_base_and_extension(t *testing.T) {
	name := StoredName("sample-short.raw", time.Now())
	if !strings.HasPrefix(name, "sample-short-") || !strings.HasSuffix(name, ".raw") {
		t.Errorf("name = %q", name)
	}
}

func TestKindForName(t *testing.T) {
	if KindForName("a.raw") != RawClip {
		t.Error(".raw should be RawClip")
	}
	if KindForName("a.RAW") != RawClip {
		t.Error("extension match should be case-insensitive")
	}
	if KindForName("a.mp4") != ContainerClip {
		t.Error(".mp4 should be ContainerClip")
	}
	if KindForName("noext") != ContainerClip {
		t.Error("no extension should be ContainerClip")
	}
}
