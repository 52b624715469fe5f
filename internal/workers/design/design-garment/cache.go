// internal/workers/design/design-garment/cache.go
package designgarment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"time"

	"garment-workers/internal/common/database"
	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/metrics"
	"garment-workers/internal/garment"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "garment:extract:"

// CacheKey identifies an extraction by its inputs. The NUL separator keeps
// text and image bytes from running into each other.
func CacheKey(text string, image []byte) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write(image)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// extractionCache is best effort: every Redis failure is logged and treated
// as a miss.
type extractionCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func (c *extractionCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

func (c *extractionCache) get(ctx context.Context, key string) (garment.SparseAttributes, bool) {
	var attrs garment.SparseAttributes
	if !c.enabled() {
		return attrs, false
	}

	err := database.GetJSON(ctx, c.rdb, key, &attrs)
	switch {
	case err == nil:
		metrics.GarmentExtractionCache.WithLabelValues("hit").Inc()
		return attrs, true
	case stderrors.Is(err, database.ErrCacheMiss):
		metrics.GarmentExtractionCache.WithLabelValues("miss").Inc()
	default:
		metrics.GarmentExtractionCache.WithLabelValues("error").Inc()
		c.logger.Warn("extraction cache read failed", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err),
		})
	}
	return garment.SparseAttributes{}, false
}

func (c *extractionCache) put(ctx context.Context, key string, attrs garment.SparseAttributes) {
	if !c.enabled() {
		return
	}
	if err := database.SetJSON(ctx, c.rdb, key, attrs, c.ttl); err != nil {
		metrics.GarmentExtractionCache.WithLabelValues("error").Inc()
		c.logger.Warn("extraction cache write failed", map[string]interface{}{
			"key":   key,
			"error": errors.NewCacheUnavailableError(err),
		})
	}
}
