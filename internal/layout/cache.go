package layout

import "github.com/Dev-Aditya-More/MetryAIMobile-sub000/internal/appointment"

// Cache memoizes Build per (snapshot, date, staff). Loading a new snapshot
// drops every cached view. A Cache is not safe for concurrent use, and the
// slices it returns must not be modified.
type Cache struct {
	wildcard  string
	version   int64
	stale     bool // next SetSnapshot applies even for the same version
	intervals []appointment.Interval
	views     map[viewKey][]Interval
}

type viewKey struct {
	date  string
	staff string
}

// NewCache creates an empty cache; wildcard is the all-staff label.
func NewCache(wildcard string) *Cache {
	return &Cache{
		wildcard: wildcard,
		views:    make(map[viewKey][]Interval),
	}
}

// SetSnapshot replaces the source intervals. Setting the version already
// loaded is a no-op unless Invalidate was called since.
func (c *Cache) SetSnapshot(version int64, intervals []appointment.Interval) {
	if version == c.version && c.intervals != nil && !c.stale {
		return
	}
	c.version = version
	c.stale = false
	c.intervals = intervals
	if c.intervals == nil {
		c.intervals = []appointment.Interval{}
	}
	c.markDirty()
}

// Version returns the snapshot version the cache holds.
func (c *Cache) Version() int64 {
	return c.version
}

// Intervals returns the current snapshot.
func (c *Cache) Intervals() []appointment.Interval {
	return c.intervals
}

// View returns the layout for date and staff, building it on first use.
func (c *Cache) View(date, staff string) []Interval {
	key := viewKey{date: date, staff: staff}
	if laid, ok := c.views[key]; ok {
		return laid
	}
	laid := Build(c.intervals, date, staff, c.wildcard)
	c.views[key] = laid
	return laid
}

// Invalidate drops every cached view and makes the next SetSnapshot
// replace the intervals even if its version is unchanged.
func (c *Cache) Invalidate() {
	c.stale = true
	c.markDirty()
}

func (c *Cache) markDirty() {
	clear(c.views)
}
