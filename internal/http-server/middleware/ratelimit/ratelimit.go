// Package ratelimit throttles API calls with a token bucket kept in Redis.
// Redis failures let the request through.
package ratelimit

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"

	"visitBooker/internal/config"
	"visitBooker/internal/http-server/middleware/mwauth"
	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/lib/logger/sl"
)

var bucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// New returns a pass-through middleware when limiting is disabled or no Redis
// client is configured.
func New(log *slog.Logger, cfg config.RateLimit, rdb *redis.Client) func(next http.Handler) http.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/ratelimit"),
		)

		log.Info("rate limiter enabled",
			slog.Int("capacity", cfg.Capacity),
			slog.String("refill_interval", cfg.RefillInterval.String()),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			key := buildKey(cfg.Prefix, r)

			vals, err := bucketScript.Run(r.Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Result()
			if err != nil {
				log.Warn("rate limiter unavailable", slog.String("key", key), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			arr, ok := vals.([]interface{})
			if !ok || len(arr) != 3 {
				log.Warn("unexpected rate limiter result", slog.String("key", key), slog.Any("result", vals))
				next.ServeHTTP(w, r)
				return
			}

			allowed := asInt64(arr[0]) == 1
			remaining := asInt64(arr[1])

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := int(math.Ceil(float64(asInt64(arr[2])) / 1000.0))
				w.Header().Set("Retry-After", strconv.Itoa(secs))

				log.Info("request throttled", slog.String("key", key))

				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

// buildKey scopes a bucket to client address, caller and route.
func buildKey(prefix string, r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	if ip == "" {
		ip = "unknown"
	}

	user := "anon"
	if identity := mwauth.FromContext(r.Context()); identity != nil {
		user = identity.ID
	}

	return strings.Join([]string{prefix, "ip", ip, "user", user, "route", r.Method + " " + r.URL.Path}, ":")
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}

	return 0
}
