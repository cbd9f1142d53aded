package clips

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// uniqueSuffix combines a millisecond timestamp with a random component so
// two outputs generated in the same instant still get distinct names, without
// needing a coordination service.
func uniqueSuffix(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// StoredName returns a unique storage filename for an upload, preserving the
// original base name and extension.
func StoredName(original string, now time.Time) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	return fmt.Sprintf("%s-%s%s", base, uniqueSuffix(now), ext)
}

// TrimmedName returns the output filename for a trim of source, preserving
// the source extension: <base>-trimmed-<timestamp>-<rand>.<ext>.
func TrimmedName(source string, now time.Time) string {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(filepath.Base(source), ext)
	return fmt.Sprintf("%s-trimmed-%s%s", base, uniqueSuffix(now), ext)
}

// MergedName returns the output filename for a merge: merged-<timestamp>-<rand>.raw.
func MergedName(now time.Time) string {
	return fmt.Sprintf("merged-%s%s", uniqueSuffix(now), RawExtension)
}

// NewClipID returns a fresh opaque clip identity.
func NewClipID() string {
	return uuid.NewString()
}

// NewShareTokenString returns an opaque unguessable token. Uniqueness comes
// from the timestamp plus the random suffix; collisions are negligible.
func NewShareTokenString(now time.Time) string {
	return fmt.Sprintf("%x%s", now.UnixNano(), strings.ReplaceAll(uuid.NewString(), "-", ""))
}
