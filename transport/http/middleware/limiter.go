package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
	localLimiterTTL   = 10 * time.Minute
)

// RateLimit counts requests per client in Redis when the cache is enabled and in process memory otherwise.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			key := cache.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			remaining, allowed, ok := a.take(r, key)
			if !ok {
				// If the counter is unavailable, allow the request to continue
				next.ServeHTTP(w, r)

				return
			}

			if !allowed {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(remaining))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) take(r *http.Request, key string) (remaining int, allowed bool, ok bool) {
	if !a.config.Cache.Enable {
		remaining, allowed = a.local.take(key)

		return remaining, allowed, true
	}

	maxReqs := a.config.App.RateLimiter.MaxRequests

	var count int

	err := a.cache.Get(r.Context(), key, &count)
	if err != nil {
		if !errors.Is(err, cache.Nil) {
			return 0, false, false
		}

		count = 1
	} else {
		count++
	}

	if count > maxReqs {
		return 0, false, true
	}

	if err = a.cache.Save(r.Context(), key, count, a.config.App.RateLimiter.WindowSeconds); err != nil {
		return 0, false, false
	}

	return max(0, maxReqs-count), true, true
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiter is a token bucket per client refilling maxReqs tokens every window.
type localLimiter struct {
	mu      sync.Mutex
	clients map[string]*localEntry
	limit   rate.Limit
	burst   int
}

func newLocalLimiter(maxReqs, windowSecs int) *localLimiter {
	if maxReqs <= 0 {
		maxReqs = 1
	}

	if windowSecs <= 0 {
		windowSecs = 1
	}

	return &localLimiter{
		clients: map[string]*localEntry{},
		limit:   rate.Every(time.Duration(windowSecs) * time.Second / time.Duration(maxReqs)),
		burst:   maxReqs,
	}
}

func (l *localLimiter) take(key string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	for k, entry := range l.clients {
		if now.Sub(entry.lastSeen) > localLimiterTTL {
			delete(l.clients, k)
		}
	}

	entry, ok := l.clients[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = entry
	}

	entry.lastSeen = now

	if !entry.limiter.AllowN(now, 1) {
		return 0, false
	}

	return max(0, int(entry.limiter.TokensAt(now))), true
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
