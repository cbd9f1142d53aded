package clips

import "time"

// DefaultShareTTLHours is the token lifetime when the caller does not choose one.
const DefaultShareTTLHours = 24.0

// ShareService issues and resolves time-limited download tokens. A token is
// valid strictly before its expiry timestamp, judged against the resolver's
// clock at resolution time; there is no renewal and no revocation.
type ShareService struct {
	catalog Catalog
	now     func() time.Time
}

// NewShareService returns a ShareService on the real clock.
func NewShareService(catalog Catalog) *ShareService {
	return NewShareServiceWithClock(catalog, time.Now)
}

// NewShareServiceWithClock injects the clock; used by tests to step time
// across an expiry boundary.
func NewShareServiceWithClock(catalog Catalog, now func() time.Time) *ShareService {
	return &ShareService{catalog: catalog, now: now}
}

// Issue creates a token for clipID valid for ttlHours (<= 0 selects the
// 24-hour default). Fails NotFound if the clip does not exist.
func (s *ShareService) Issue(clipID string, ttlHours float64) (ShareToken, error) {
	if ttlHours <= 0 {
		ttlHours = DefaultShareTTLHours
	}

	if _, err := s.catalog.GetClip(clipID); err != nil {
		return ShareToken{}, err
	}

	now := s.now()
	tok := ShareToken{
		Token:     NewShareTokenString(now),
		VideoID:   clipID,
		ExpiresAt: now.Add(time.Duration(ttlHours * float64(time.Hour))),
	}
	if err := s.catalog.InsertToken(&tok); err != nil {
		return ShareToken{}, err
	}
	return tok, nil
}

// Resolve returns the clip a token grants access to. Unknown and expired
// tokens both fail NotFound; expiry is re-checked on every call, never cached.
func (s *ShareService) Resolve(token string) (Clip, error) {
	t, err := s.catalog.GetToken(token)
	if err != nil {
		return Clip{}, err
	}
	if !s.now().Before(t.ExpiresAt) {
		return Clip{}, NotFoundf("share token has expired")
	}
	return s.catalog.GetClip(t.VideoID)
}
