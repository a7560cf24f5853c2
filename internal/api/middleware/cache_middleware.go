package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cobraflex/printercare/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CacheMiddleware struct {
	cache  *cache.RedisClient
	prefix string
	ttl    time.Duration
}

func NewCacheMiddleware(cache *cache.RedisClient, prefix string, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
	}
}

// responseBuffer is a custom ResponseWriter that stores the response
type responseBuffer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func newResponseBuffer(original gin.ResponseWriter) *responseBuffer {
	return &responseBuffer{
		ResponseWriter: original,
		body:           bytes.NewBufferString(""),
	}
}

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.ResponseWriter.Write(b)
	return r.body.Write(b)
}

func (r *responseBuffer) WriteString(s string) (int, error) {
	r.ResponseWriter.WriteString(s)
	return r.body.WriteString(s)
}

func (r *responseBuffer) WriteHeader(code int) {
	r.ResponseWriter.WriteHeader(code)
}

// CacheResponse caches the JSON response of a GET endpoint per user
func (m *CacheMiddleware) CacheResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		key := m.generateCacheKey(c)

		if cached, err := m.cache.Get(c, key); err == nil {
			var response map[string]interface{}
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				c.JSON(http.StatusOK, response)
				c.Abort()
				return
			}
		}

		writer := c.Writer
		buff := newResponseBuffer(writer)
		c.Writer = buff

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			responseData := buff.body.String()
			if err := m.cache.Set(c, key, responseData, m.ttl); err != nil {
				log.Error("Failed to cache response", zap.Error(err))
			}
		}

		c.Writer = writer
	}
}

// CacheInvalidate invalidates cache entries after a successful mutation
func (m *CacheMiddleware) CacheInvalidate(patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			for _, pattern := range patterns {
				key := fmt.Sprintf("%s:%s", m.prefix, pattern)
				if err := m.cache.ClearByPattern(c, key); err != nil {
					log.Error("Failed to invalidate cache", zap.Error(err), zap.String("pattern", pattern))
				}
			}
		}
	}
}

func (m *CacheMiddleware) generateCacheKey(c *gin.Context) string {
	userID, _ := GetUserID(c)

	parts := []string{m.prefix}

	// Extract resource type and id from the path. Task ids are catalog slugs
	// rather than uuids, so any third segment counts as an id.
	pathParts := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
	if len(pathParts) >= 2 {
		resourceType := pathParts[1] // e.g. "tasks"
		parts = append(parts, resourceType)

		if len(pathParts) >= 3 && pathParts[2] != "" {
			parts = append(parts, "id", pathParts[2])
		} else {
			parts = append(parts, "list")
		}
	}

	if len(c.Request.URL.RawQuery) > 0 {
		parts = append(parts, c.Request.URL.RawQuery)
	}

	if userID != uuid.Nil {
		parts = append(parts, userID.String())
	}

	return strings.Join(parts, ":")
}
