package clips

import "sync"

// Catalog is the persistence abstraction for clip and share token records.
// Implementations can be in-memory or database-backed; the services use
// Catalog for all reads and writes and never care which one is plugged in.
// Every write is a single fully-populated record insert; nothing in this
// service updates or deletes an existing record.
type Catalog interface {
	// InsertClip stores a new clip record, assigning an identity if the
	// record has none. Identities are never reused.
	InsertClip(c *Clip) error

	// GetClip returns the clip with the given identity, or a NotFound
	// failure.
	GetClip(id string) (Clip, error)

	// ListClips returns all clip records.
	ListClips() ([]Clip, error)

	// ClipCount returns the number of clip records. Used for metrics.
	ClipCount() (int64, error)

	// StoredBytes returns the total byte size of all cataloged clips.
	// Used for metrics.
	StoredBytes() (int64, error)

	// InsertToken stores a new share token record.
	InsertToken(t *ShareToken) error

	// GetToken returns the share token record for the given opaque string,
	// or a NotFound failure. Expiry is the caller's concern.
	GetToken(token string) (ShareToken, error)
}

// InMemoryCatalog is a concurrency-safe in-memory Catalog, used in tests and
// as the no-database fallback.
type InMemoryCatalog struct {
	mu     sync.RWMutex
	clips  map[string]Clip
	tokens map[string]ShareToken
}

// NewInMemoryCatalog returns a new empty in-memory catalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		clips:  make(map[string]Clip),
		tokens: make(map[string]ShareToken),
	}
}

// InsertClip implements Catalog.InsertClip.
func (c *InMemoryCatalog) InsertClip(clip *Clip) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if clip.ID == "" {
		clip.ID = NewClipID()
	}
	clip.Kind = KindForName(clip.Filename)
	c.clips[clip.ID] = *clip
	return nil
}

// GetClip implements Catalog.GetClip.
func (c *InMemoryCatalog) GetClip(id string) (Clip, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	clip, ok := c.clips[id]
	if !ok {
		return Clip{}, NotFoundf("clip %s not found", id)
	}
	return clip, nil
}

// ListClips implements Catalog.ListClips.
func (c *InMemoryCatalog) ListClips() ([]Clip, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Clip, 0, len(c.clips))
	for _, clip := range c.clips {
		out = append(out, clip)
	}
	return out, nil
}

// ClipCount implements Catalog.ClipCount.
func (c *InMemoryCatalog) ClipCount() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.clips)), nil
}

// StoredBytes implements Catalog.StoredBytes.
func (c *InMemoryCatalog) StoredBytes() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, clip := range c.clips {
		n += clip.Size
	}
	return n, nil
}

// InsertToken implements Catalog.InsertToken.
func (c *InMemoryCatalog) InsertToken(t *ShareToken) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[t.Token] = *t
	return nil
}

// GetToken implements Catalog.GetToken.
func (c *InMemoryCatalog) GetToken(token string) (ShareToken, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tokens[token]
	if !ok {
		return ShareToken{}, NotFoundf("share token not found")
	}
	return t, nil
}
