package browse

import (
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/model"
)

// DefaultCacheTTL is how long a filter result stays memoized.
const DefaultCacheTTL = 10 * time.Minute

// Index serves filtered views of an immutable snapshot, memoizing filter
// results by Filter.Key.
type Index struct {
	list  []model.Facility
	cache *cache.Cache
	log   *zap.Logger
}

// NewIndex wraps list. The caller must not modify list afterwards. ttl <= 0
// uses DefaultCacheTTL.
func NewIndex(list []model.Facility, ttl time.Duration) *Index {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Index{
		list:  list,
		cache: cache.New(ttl, 2*ttl),
		log:   zap.L().With(zap.String("component", "browse.index")),
	}
}

// Len returns the snapshot size.
func (x *Index) Len() int { return len(x.list) }

// All returns the unfiltered snapshot.
func (x *Index) All() []model.Facility { return x.list }

// Filter returns the facilities matching f.
func (x *Index) Filter(f Filter) []model.Facility {
	key := f.Key()
	if v, ok := x.cache.Get(key); ok {
		return v.([]model.Facility)
	}
	out := Apply(x.list, f)
	x.cache.SetDefault(key, out)
	x.log.Debug("filter computed",
		zap.String("type", f.Type),
		zap.String("region", f.Region),
		zap.String("query", f.Query),
		zap.Int("matched", len(out)),
	)
	return out
}

// Page filters then paginates.
func (x *Index) Page(f Filter, page, size int) Page {
	return Paginate(x.Filter(f), page, size)
}

// Stats counts the filtered facilities by type.
func (x *Index) Stats(f Filter) Stats {
	return Count(x.Filter(f))
}

// View computes the map view of the filtered facilities.
func (x *Index) View(f Filter, vp Viewport, zoom float64, opts ViewOptions) View {
	return Visible(x.Filter(f), vp, zoom, opts)
}

// Find returns the facility with the given id.
func (x *Index) Find(id string) (model.Facility, bool) {
	for _, f := range x.list {
		if f.ID == id {
			return f, true
		}
	}
	return model.Facility{}, false
}

// Flush drops memoized results.
func (x *Index) Flush() { x.cache.Flush() }
