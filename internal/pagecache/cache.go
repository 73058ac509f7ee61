package pagecache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/folio-works/portfolio-backend/internal/metrics"
)

const (
	keyPrefix    = "page:"    // page:{path} -> cached response
	genPrefix    = "pagegen:" // pagegen:{path} -> invalidation counter
	defaultTTL   = 10 * time.Minute
	headerStatus = "X-Cache"
)

// entry is the stored form of a cached response.
type entry struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Cache stores rendered page responses in Redis keyed by request path.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func New(client *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

func key(path string) string {
	return keyPrefix + path
}

func genKey(path string) string {
	return genPrefix + path
}

// errStale means the page was invalidated while it was being rendered.
var errStale = errors.New("page invalidated during render")

// Invalidate drops the cached responses of the given paths and bumps their
// generation so in-flight renders of those paths are not stored.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, key(p))
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, p := range paths {
			pipe.Incr(ctx, genKey(p))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate pages: %w", err)
	}
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Middleware serves GET requests from the cache and stores successful misses.
// Redis failures degrade to an uncached response.
func (c *Cache) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		k := key(ctx.Request.URL.Path)
		raw, err := c.client.Get(ctx.Request.Context(), k).Bytes()
		switch {
		case err == nil:
			var e entry
			if jerr := json.Unmarshal(raw, &e); jerr == nil {
				metrics.PageCacheLookups.WithLabelValues("hit").Inc()
				ctx.Header(headerStatus, "HIT")
				ctx.Data(http.StatusOK, e.ContentType, e.Body)
				ctx.Abort()
				return
			}
			metrics.PageCacheLookups.WithLabelValues("error").Inc()
		case errors.Is(err, redis.Nil):
			metrics.PageCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.PageCacheLookups.WithLabelValues("error").Inc()
			c.log.Warn("page cache read failed", zap.String("key", k), zap.Error(err))
		}

		gk := genKey(ctx.Request.URL.Path)
		gen, err := generation(ctx.Request.Context(), c.client, gk)
		storable := err == nil

		rec := &recorder{ResponseWriter: ctx.Writer}
		ctx.Writer = rec
		ctx.Header(headerStatus, "MISS")
		ctx.Next()

		if !storable || rec.Status() != http.StatusOK || rec.body.Len() == 0 {
			return
		}
		data, err := json.Marshal(entry{
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := c.store(ctx.Request.Context(), k, gk, gen, data); err != nil {
			if errors.Is(err, errStale) || errors.Is(err, redis.TxFailedErr) {
				c.log.Debug("page cache fill skipped", zap.String("key", k), zap.Error(err))
				return
			}
			c.log.Warn("page cache write failed", zap.String("key", k), zap.Error(err))
		}
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, r getter, gk string) (int64, error) {
	gen, err := r.Get(ctx, gk).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store writes data under k only if the path's generation is still gen.
func (c *Cache) store(ctx context.Context, k, gk string, gen int64, data []byte) error {
	return c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx, gk)
		if err != nil {
			return err
		}
		if cur != gen {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, c.ttl)
			return nil
		})
		return err
	}, gk)
}

// recorder tees the response body so it can be cached after the handler runs.
type recorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *recorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// Noop is used when no Redis is configured.
type Noop struct{}

func (Noop) Invalidate(context.Context, ...string) error { return nil }

func (Noop) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}
