package clips

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormCatalog is a SQLite-backed Catalog. The database is the single
// serialization point per request: each insert is one transaction, so a
// reader never observes a half-written record.
type GormCatalog struct {
	db *gorm.DB
}

// OpenGormCatalog opens (creating if needed) the SQLite database at path and
// migrates the clip and share token tables.
func OpenGormCatalog(path string) (*GormCatalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Clip{}, &ShareToken{}); err != nil {
		return nil, err
	}
	return &GormCatalog{db: db}, nil
}

// InsertClip implements Catalog.InsertClip.
func (g *GormCatalog) InsertClip(c *Clip) error {
	if c.ID == "" {
		c.ID = NewClipID()
	}
	c.Kind = KindForName(c.Filename)
	if err := g.db.Create(c).Error; err != nil {
		return IOFailuref(err, "insert clip %s", c.ID)
	}
	return nil
}

// GetClip implements Catalog.GetClip.
func (g *GormCatalog) GetClip(id string) (Clip, error) {
	var c Clip
	err := g.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Clip{}, NotFoundf("clip %s not found", id)
	}
	if err != nil {
		return Clip{}, IOFailuref(err, "load clip %s", id)
	}
	c.Kind = KindForName(c.Filename)
	return c, nil
}

// ListClips implements Catalog.ListClips.
func (g *GormCatalog) ListClips() ([]Clip, error) {
	var out []Clip
	if err := g.db.Find(&out).Error; err != nil {
		return nil, IOFailuref(err, "list clips")
	}
	for i := range out {
		out[i].Kind = KindForName(out[i].Filename)
	}
	return out, nil
}

// ClipCount implements Catalog.ClipCount.
func (g *GormCatalog) ClipCount() (int64, error) {
	var n int64
	if err := g.db.Model(&Clip{}).Count(&n).Error; err != nil {
		return 0, IOFailuref(err, "count clips")
	}
	return n, nil
}

// StoredBytes implements Catalog.StoredBytes.
func (g *GormCatalog) StoredBytes() (int64, error) {
	var n int64
	err := g.db.Model(&Clip{}).Select("COALESCE(SUM(size), 0)").Scan(&n).Error
	if err != nil {
		return 0, IOFailuref(err, "sum clip sizes")
	}
	return n, nil
}

// InsertToken implements Catalog.InsertToken.
func (g *GormCatalog) InsertToken(t *ShareToken) error {
	if err := g.db.Create(t).Error; err != nil {
		return IOFailuref(err, "insert share token")
	}
	return nil
}

// GetToken implements Catalog.GetToken.
func (g *GormCatalog) GetToken(token string) (ShareToken, error) {
	var t ShareToken
	err := g.db.First(&t, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ShareToken{}, NotFoundf("share token not found")
	}
	if err != nil {
		return ShareToken{}, IOFailuref(err, "load share token")
	}
	return t, nil
}
