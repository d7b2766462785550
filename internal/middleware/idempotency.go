package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridebook/internal/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response of a POST that carries an
// Idempotency-Key already seen on the same route from the same caller.
// It must be placed after any RequireRole guard on the route. A nil store disables it.
func IdempotencyMiddleware(store redis.IdempotencyStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyCacheKey(c, key)

		data, err := store.GetResponse(ctx, cacheKey)
		if err != nil {
			// Store unavailable: serve the request without replay.
			log.Printf("idempotency lookup failed: key=%s err=%v", cacheKey, err)
			c.Next()
			return
		}

		if data != nil {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				for k, v := range cached.Headers {
					for _, val := range v {
						c.Header(k, val)
					}
				}
				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		if !replayable(c.Writer.Status()) {
			return
		}
		encoded, err := json.Marshal(cachedResponse{
			StatusCode: c.Writer.Status(),
			Body:       w.body.Bytes(),
			Headers:    extractResponseHeaders(c),
		})
		if err != nil {
			return
		}
		if err := store.SetResponse(ctx, cacheKey, encoded, idempotencyTTL); err != nil {
			log.Printf("idempotency store failed: key=%s err=%v", cacheKey, err)
		}
	}
}

// replayable reports whether a response may be stored. 5xx, 401, 403 and 409
// responses never are.
func replayable(status int) bool {
	if status < 200 || status >= 500 {
		return false
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusConflict:
		return false
	}
	return true
}

// idempotencyCacheKey scopes a client key to the route, its path parameters
// and the authenticated caller.
func idempotencyCacheKey(c *gin.Context, key string) string {
	scope := c.FullPath()
	for _, p := range c.Params {
		scope += ":" + p.Value
	}
	if subject := c.GetString(ContextUserID); subject != "" {
		scope += "@" + subject
	}
	return scope + ":" + key
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	// Only cache Content-Type header.
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
