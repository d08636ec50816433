package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	reads    *rate.Limiter
	writes   *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles per client IP. Mutations get a quarter of the
// read budget since each one may upload a photo.
type RateLimitMiddleware struct {
	readRPM  int
	writeRPM int
	mu       sync.Mutex
	clients  map[string]*clientLimiter
}

func NewRateLimitMiddleware(rpm int) *RateLimitMiddleware {
	if rpm <= 0 {
		rpm = 300
	}

	return &RateLimitMiddleware{
		readRPM:  rpm,
		writeRPM: max(rpm/4, 1),
		clients:  map[string]*clientLimiter{},
	}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health", "/metrics":
			next.ServeHTTP(w, r)
			return
		}

		limiter := m.getLimiter(extractClientIP(r))

		target := limiter.reads
		if isMutation(r.Method) {
			target = limiter.writes
		}

		if !target.Allow() {
			retry := int(time.Minute / time.Duration(m.limitFor(r.Method)) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
			writeJSONError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (m *RateLimitMiddleware) limitFor(method string) int {
	if isMutation(method) {
		return m.writeRPM
	}
	return m.readRPM
}

func (m *RateLimitMiddleware) getLimiter(clientIP string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, exists := m.clients[clientIP]; exists {
		limiter.lastSeen = time.Now()
		m.gcLocked()
		return limiter
	}

	created := &clientLimiter{
		reads:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.readRPM)), m.readRPM),
		writes:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.writeRPM)), m.writeRPM),
		lastSeen: time.Now(),
	}
	m.clients[clientIP] = created
	m.gcLocked()

	return created
}

func (m *RateLimitMiddleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

func extractClientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
