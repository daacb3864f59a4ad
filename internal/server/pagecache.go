package server

import (
	"time"

	"plume/internal/cache"
	"plume/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// cachedPage is the stored form of a whole feed response.
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// FeedPageCache returns middleware that serves the global feed from Redis
// for the configured TTL. The cache is deliberately never invalidated by
// writes: a new post may take up to the TTL to appear, and that staleness
// bound is the whole contract. The key includes the query string, so each
// page number is cached separately.
func (s *Server) FeedPageCache() fiber.Handler {
	ttl := time.Duration(s.config.FeedCacheTTLSeconds) * time.Second

	return func(c *fiber.Ctx) error {
		if s.redis == nil || ttl <= 0 || !s.featureFlags.Enabled("feed_cache", 0) {
			observability.FeedCacheRequests.WithLabelValues("bypass").Inc()
			return c.Next()
		}

		key := cache.FeedPageKey(c.OriginalURL())

		var page cachedPage
		found, err := cache.GetJSON(c.Context(), key, &page)
		if err == nil && found {
			observability.FeedCacheRequests.WithLabelValues("hit").Inc()
			if page.ContentType != "" {
				c.Set(fiber.HeaderContentType, page.ContentType)
			}
			return c.Status(page.Status).Send(page.Body)
		}

		observability.FeedCacheRequests.WithLabelValues("miss").Inc()
		if err := c.Next(); err != nil {
			return err
		}

		// only successful pages are worth replaying
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			_ = cache.SetJSON(c.Context(), key, cachedPage{
				Status:      c.Response().StatusCode(),
				ContentType: string(c.Response().Header.ContentType()),
				Body:        body,
			}, ttl)
		}
		return nil
	}
}
