package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/utils/response"
)

// Rate limit tiers
const (
	// Register / login (strict)
	limitAuth = rate.Limit(2)
	burstAuth = 5

	// Everything else
	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}

	go rl.cleanupVisitors()

	return rl
}

// getVisitor retrieves or creates a rate limiter for the given bucket key.
func (rl *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		rl.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries to keep the map bounded.
func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Limit throttles requests per caller. Authenticated callers are keyed by
// user ID, anonymous callers by IP. Auth endpoints get a tighter tier so a
// credential-stuffing burst cannot hide inside general traffic.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		limit, burst, tier := resolveRateTier(r)

		var identity string

		if claims, ok := r.Context().Value(UserContextKey).(*models.Claims); ok {
			identity = "user:" + claims.UserID.String()
		} else {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			identity = "ip:" + ip
		}

		// Same caller keeps separate quotas for auth vs general actions.
		key := identity + ":" + tier

		limiter := rl.getVisitor(key, limit, burst)
		if !limiter.Allow() {
			LoggerFromContext(r.Context()).Warn("Request rate limited")
			response.Error(w, errors.TooManyRequestsError("Too many requests, please slow down"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if strings.HasPrefix(r.URL.Path, "/api/v1/users/register") || strings.HasPrefix(r.URL.Path, "/api/v1/users/login") {
		return limitAuth, burstAuth, "auth"
	}

	return limitGeneral, burstGeneral, "general"
}
