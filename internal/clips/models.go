package clips

import (
	"path/filepath"
	"strings"
	"time"
)

// RawExtension marks files stored in the fixed raw frame encoding.
const RawExtension = ".raw"

// ClipKind tells transforms how to treat a clip's bytes: frame arithmetic for
// raw clips, delegation to the external transcoder for everything else.
// It is resolved once when the record is built, not re-derived at call sites.
type ClipKind int

const (
	RawClip ClipKind = iota
	ContainerClip
)

// KindForName resolves the clip kind from a filename.
func KindForName(name string) ClipKind {
	if strings.EqualFold(filepath.Ext(name), RawExtension) {
		return RawClip
	}
	return ContainerClip
}

// Clip is one stored video artifact. The file at Filepath belongs exclusively
// to this record and is immutable once the record exists; every transform
// writes a new file and a new record.
type Clip struct {
	ID       string   `gorm:"primaryKey" json:"id"`
	Filename string   `json:"filename"`
	Filepath string   `json:"-"`
	Size     int64    `json:"size"`
	Duration float64  `json:"duration"`
	Kind     ClipKind `gorm:"-" json:"-"`
}

// ShareToken grants time-limited read access to one clip. It is never renewed
// or revoked; expiry is the only termination path.
type ShareToken struct {
	Token     string    `gorm:"primaryKey;column:token" json:"token"`
	VideoID   string    `gorm:"column:video_id" json:"video_id"`
	ExpiresAt time.Time `gorm:"column:expiry_timestamp" json:"expires_at"`
}
