package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count int
	until time.Time
}

// RateLimit caps each client IP to limit requests per window. Rejected
// requests get a Retry-After header and the API's JSON error shape, so
// analysis clients can back off instead of retrying immediately.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIPForRateLimit(r)
			mu.Lock()
			b, ok := buckets[ip]
			now := time.Now()
			if !ok || now.After(b.until) {
				b = &bucket{count: 0, until: now.Add(per)}
				buckets[ip] = b
			}
			if b.count >= limit {
				retryAfter := int(b.until.Sub(now).Seconds()) + 1
				mu.Unlock()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error":"rate_limited","message":"too many requests, retry in %ds"}`+"\n", retryAfter)
				return
			}
			b.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

func clientIPForRateLimit(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
