package handlers

import (
	"time"

	"github.com/shreyasboddani/MENTICS/internal/cache"
	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/services"
)

// pathCacheTTL bounds staleness of the cached active path between
// mutations that miss an invalidation.
const pathCacheTTL = 30 * time.Second

// pathKey identifies one cached active path.
type pathKey struct {
	UserID   uint
	Category string
}

// PathCache memoizes the active-path response per (user, category).
// One instance is shared by every handler that can replace or mutate a
// path, so an invalidation from any of them reaches the read side.
type PathCache struct {
	entries *cache.TTLCache[pathKey, []services.TaskView]
}

// NewPathCache creates an empty PathCache.
func NewPathCache() *PathCache {
	return &PathCache{entries: cache.New[pathKey, []services.TaskView]()}
}

func (p *PathCache) Get(userID uint, category string) ([]services.TaskView, bool) {
	return p.entries.Get(pathKey{UserID: userID, Category: category})
}

func (p *PathCache) Set(userID uint, category string, views []services.TaskView) {
	p.entries.Set(pathKey{UserID: userID, Category: category}, views, pathCacheTTL)
}

func (p *PathCache) Invalidate(userID uint, category string) {
	p.entries.Delete(pathKey{UserID: userID, Category: category})
}

// InvalidateAll drops both category entries for a user. Used by
// mutations that only know a task id.
func (p *PathCache) InvalidateAll(userID uint) {
	p.Invalidate(userID, models.CategoryTestPrep)
	p.Invalidate(userID, models.CategoryCollegePlanning)
}
